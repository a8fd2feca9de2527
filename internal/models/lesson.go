package models

import "time"

// LessonStatus enumerates the lifecycle of a driving lesson.
type LessonStatus string

const (
	LessonStatusScheduled LessonStatus = "scheduled"
	LessonStatusCompleted LessonStatus = "completed"
	LessonStatusCancelled LessonStatus = "cancelled"
)

// Lesson is a single practical session between a student and a trainer.
type Lesson struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	StudentID uint         `gorm:"index;not null" json:"student_id"`
	TrainerID uint         `gorm:"index;not null" json:"trainer_id"`
	VehicleID uint         `gorm:"index" json:"vehicle_id"`
	Date      time.Time    `gorm:"index;not null" json:"date"`
	StartTime string       `gorm:"size:5" json:"start_time"`
	EndTime   string       `gorm:"size:5" json:"end_time"`
	Status    LessonStatus `gorm:"size:32;not null;default:scheduled" json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	Student *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Trainer *Trainer `gorm:"foreignKey:TrainerID" json:"trainer,omitempty"`
	Vehicle *Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
}
