package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/models"
	"github.com/noah-isme/drivedesk-api/internal/repository"
)

// AttendanceService records daily presence of students and staff.
type AttendanceService interface {
	ForDate(ctx context.Context, date string, officeID *uint) ([]dto.AttendanceResponse, error)
	Mark(ctx context.Context, payload dto.AttendanceMarkRequest, actor ActivityActor) ([]dto.AttendanceResponse, error)
}

type attendanceService struct {
	repo      repository.AttendanceRepository
	students  StudentGetter
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo repository.AttendanceRepository, students StudentGetter, validate *validator.Validate, logger zerolog.Logger) AttendanceService {
	return &attendanceService{
		repo:      repo,
		students:  students,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "attendance_service").Logger(),
		now:       time.Now,
	}
}

func (s *attendanceService) ForDate(ctx context.Context, date string, officeID *uint) ([]dto.AttendanceResponse, error) {
	day, err := parseDate(strings.TrimSpace(date), today(s.now()))
	if err != nil {
		return nil, err
	}

	records, err := s.repo.ListForDate(ctx, day.Format(dateLayout), officeID)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return attendanceResponses(records), nil
}

// Mark upserts one row per (date, entity type, entity id) and returns the stored rows.
func (s *attendanceService) Mark(ctx context.Context, payload dto.AttendanceMarkRequest, actor ActivityActor) ([]dto.AttendanceResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, err
	}

	records := make([]models.Attendance, 0, len(payload.Records))
	seen := make(map[string]int, len(payload.Records))
	for _, entry := range payload.Records {
		if entry.EntityType == models.AttendanceStudent {
			if _, err := scopedStudent(ctx, s.students, entry.EntityID, actor); err != nil {
				return nil, err
			}
		}

		record := models.Attendance{
			EntityID:   entry.EntityID,
			EntityType: entry.EntityType,
			Date:       payload.Date,
			Status:     entry.Status,
			Notes:      plainText(s.sanitizer, entry.Notes),
		}

		// The last mark for an entity in one request wins.
		key := fmt.Sprintf("%s:%d", entry.EntityType, entry.EntityID)
		if pos, ok := seen[key]; ok {
			records[pos] = record
			continue
		}
		seen[key] = len(records)
		records = append(records, record)
	}

	stored, err := s.repo.Upsert(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("mark attendance: %w", err)
	}

	s.logger.Debug().Str("date", payload.Date).Int("records", len(stored)).Msg("attendance marked")
	return attendanceResponses(stored), nil
}

func attendanceResponses(records []models.Attendance) []dto.AttendanceResponse {
	out := make([]dto.AttendanceResponse, 0, len(records))
	for _, record := range records {
		out = append(out, dto.NewAttendanceResponse(record))
	}
	return out
}
