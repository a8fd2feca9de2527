package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/drivedesk-api/internal/models"
)

const dateLayout = "2006-01-02"

// StudentGetter loads a student by id.
type StudentGetter interface {
	GetByID(ctx context.Context, id uint) (models.Student, error)
}

// scopedStudent loads a student and hides students of other offices when the actor is office-bound.
func scopedStudent(ctx context.Context, students StudentGetter, id uint, actor ActivityActor) (models.Student, error) {
	student, err := students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Student{}, ErrStudentNotFound
		}
		return models.Student{}, fmt.Errorf("load student %d: %w", id, err)
	}
	if actor.OfficeID != nil && student.OfficeID != *actor.OfficeID {
		return models.Student{}, ErrStudentNotFound
	}
	return student, nil
}

// parseDate reads a YYYY-MM-DD value, falling back when it is empty.
func parseDate(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return parsed, nil
}

// today truncates a timestamp to midnight UTC.
func today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func officePtr(id uint) *uint {
	return &id
}
