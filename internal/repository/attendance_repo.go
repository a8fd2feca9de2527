package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/drivedesk-api/internal/models"
)

// AttendanceRepository persists daily presence marks.
type AttendanceRepository interface {
	ListForDate(ctx context.Context, date string, officeID *uint) ([]models.Attendance, error)
	Upsert(ctx context.Context, records []models.Attendance) ([]models.Attendance, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository constructs the attendance repository.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

// ListForDate returns staff marks and the marks of students of the office for one day.
func (r *attendanceRepository) ListForDate(ctx context.Context, date string, officeID *uint) ([]models.Attendance, error) {
	query := r.db.WithContext(ctx).Where("date = ?", date)
	if officeID != nil {
		query = query.Where(
			r.db.Where("entity_type = ?", models.AttendanceStaff).
				Or("entity_type = ? AND entity_id IN (?)", models.AttendanceStudent, officeStudents(r.db, *officeID)),
		)
	}

	var records []models.Attendance
	err := query.Order("entity_type ASC").Order("entity_id ASC").Find(&records).Error
	return records, err
}

func (r *attendanceRepository) Upsert(ctx context.Context, records []models.Attendance) ([]models.Attendance, error) {
	if len(records) == 0 {
		return []models.Attendance{}, nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}, {Name: "entity_type"}, {Name: "entity_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "notes", "updated_at"}),
		}).Create(&records).Error
	})
	if err != nil {
		return nil, err
	}

	stored := make([]models.Attendance, 0, len(records))
	for _, record := range records {
		var row models.Attendance
		if err := r.db.WithContext(ctx).
			Where("date = ? AND entity_type = ? AND entity_id = ?", record.Date, record.EntityType, record.EntityID).
			First(&row).Error; err != nil {
			return nil, err
		}
		stored = append(stored, row)
	}
	return stored, nil
}
