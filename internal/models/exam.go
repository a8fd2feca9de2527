package models

import "time"

// ExamType distinguishes the two licence exams.
type ExamType string

// ExamResult captures the outcome of an exam sitting.
type ExamResult string

const (
	ExamTypeTheory    ExamType = "theory"
	ExamTypePractical ExamType = "practical"

	ExamResultPassed  ExamResult = "passed"
	ExamResultFailed  ExamResult = "failed"
	ExamResultPending ExamResult = "pending"
)

// Exam is one theory or practical exam sitting for a student.
type Exam struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	StudentID uint       `gorm:"index;not null" json:"student_id"`
	Date      time.Time  `gorm:"index;not null" json:"date"`
	Type      ExamType   `gorm:"size:16;not null" json:"type"`
	Result    ExamResult `gorm:"size:16;not null;default:pending" json:"result"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Student *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}
