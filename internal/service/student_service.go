package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/models"
	"github.com/noah-isme/drivedesk-api/internal/repository"
)

var (
	// ErrUnknownLicenseCategory indicates the category has no entry in the price table.
	ErrUnknownLicenseCategory = errors.New("unknown license category")
	// ErrOfficeRequired indicates the request did not name an office.
	ErrOfficeRequired = errors.New("office is required")
	// ErrInvalidSort indicates an unsupported sort key.
	ErrInvalidSort = errors.New("invalid sort parameter")
)

const maxStandardAvatars = 5

var standardColors = []string{"teal", "blue", "red", "brown", "purple", "cyan", "orange", "indigo"}

var studentSortColumns = map[string]string{
	"name":             "name ASC",
	"-name":            "name DESC",
	"join_date":        "join_date ASC",
	"-join_date":       "join_date DESC",
	"created_at":       "created_at ASC",
	"-created_at":      "created_at DESC",
	"license_category": "license_category ASC",
	"status":           "status ASC",
}

// StudentService manages enrolment records and student read models.
type StudentService interface {
	Create(ctx context.Context, payload dto.StudentCreateRequest, actor ActivityActor) (dto.StudentResponse, error)
	Get(ctx context.Context, id uint, actor ActivityActor) (dto.StudentResponse, error)
	Update(ctx context.Context, id uint, payload dto.StudentUpdateRequest, actor ActivityActor) (dto.StudentResponse, error)
	List(ctx context.Context, req dto.StudentListRequest) (dto.StudentListResponse, error)
	Progress(ctx context.Context, id uint, actor ActivityActor) (dto.ProgressResponse, error)
	Standards(ctx context.Context, officeID *uint) ([]dto.StandardGroupResponse, error)
}

type studentService struct {
	repo      repository.StudentRepository
	lessons   repository.LessonRepository
	exams     repository.ExamRepository
	prices    PriceLookup
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
	now       func() time.Time
}

// NewStudentService constructs the student service.
func NewStudentService(repo repository.StudentRepository, lessons repository.LessonRepository, exams repository.ExamRepository, prices PriceLookup, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) StudentService {
	return &studentService{
		repo:      repo,
		lessons:   lessons,
		exams:     exams,
		prices:    prices,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "student_service").Logger(),
		now:       time.Now,
	}
}

func (s *studentService) Create(ctx context.Context, payload dto.StudentCreateRequest, actor ActivityActor) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	officeID := payload.OfficeID
	if actor.OfficeID != nil {
		officeID = *actor.OfficeID
	}
	if officeID == 0 {
		return dto.StudentResponse{}, ErrOfficeRequired
	}

	category, err := s.knownCategory(ctx, payload.LicenseCategory)
	if err != nil {
		return dto.StudentResponse{}, err
	}

	joinDate, err := parseDate(payload.JoinDate, today(s.now()))
	if err != nil {
		return dto.StudentResponse{}, err
	}

	status := models.StudentStatusActive
	if payload.Status != "" {
		status = strings.ToLower(payload.Status)
	}

	student := models.Student{
		Name:            strings.TrimSpace(payload.Name),
		Email:           strings.ToLower(strings.TrimSpace(payload.Email)),
		Phone:           strings.TrimSpace(payload.Phone),
		JoinDate:        joinDate,
		Status:          status,
		LicenseCategory: category,
		OfficeID:        officeID,
	}
	if err := s.repo.Create(ctx, &student); err != nil {
		return dto.StudentResponse{}, fmt.Errorf("create student: %w", err)
	}

	recordActivity(ctx, s.activity, s.logger, withOffice(actor, officeID), "student.created", "student", &student.ID, map[string]interface{}{
		"category": category,
	})

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Get(ctx context.Context, id uint, actor ActivityActor) (dto.StudentResponse, error) {
	student, err := scopedStudent(ctx, s.repo, id, actor)
	if err != nil {
		return dto.StudentResponse{}, err
	}
	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Update(ctx context.Context, id uint, payload dto.StudentUpdateRequest, actor ActivityActor) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	student, err := scopedStudent(ctx, s.repo, id, actor)
	if err != nil {
		return dto.StudentResponse{}, err
	}

	updates := make(map[string]interface{})
	changedFields := make([]string, 0)

	if payload.Name != nil {
		updates["name"] = strings.TrimSpace(*payload.Name)
		changedFields = append(changedFields, "name")
	}
	if payload.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*payload.Email))
		changedFields = append(changedFields, "email")
	}
	if payload.Phone != nil {
		updates["phone"] = strings.TrimSpace(*payload.Phone)
		changedFields = append(changedFields, "phone")
	}
	if payload.Status != nil {
		updates["status"] = strings.ToLower(strings.TrimSpace(*payload.Status))
		changedFields = append(changedFields, "status")
	}
	if payload.LicenseCategory != nil {
		category, err := s.knownCategory(ctx, *payload.LicenseCategory)
		if err != nil {
			return dto.StudentResponse{}, err
		}
		updates["license_category"] = category
		changedFields = append(changedFields, "license_category")
	}

	if len(updates) == 0 {
		return dto.NewStudentResponse(student), nil
	}

	updated, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		return dto.StudentResponse{}, err
	}

	recordActivity(ctx, s.activity, s.logger, withOffice(actor, updated.OfficeID), "student.updated", "student", &updated.ID, map[string]interface{}{
		"fields": changedFields,
	})

	return dto.NewStudentResponse(updated), nil
}

func (s *studentService) List(ctx context.Context, req dto.StudentListRequest) (dto.StudentListResponse, error) {
	order := ""
	if key := strings.TrimSpace(req.Sort); key != "" {
		column, ok := studentSortColumns[key]
		if !ok {
			return dto.StudentListResponse{}, ErrInvalidSort
		}
		order = column
	}

	filter := repository.StudentFilter{
		OfficeID:        req.OfficeID,
		Search:          strings.TrimSpace(req.Search),
		Category:        NormalizeCategory(req.Category),
		Status:          strings.ToLower(strings.TrimSpace(req.Status)),
		Sort:            order,
		Page:            req.Page,
		PageSize:        req.PageSize,
		IncludeArchived: req.IncludeArchived,
	}

	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.StudentListResponse{}, fmt.Errorf("list students: %w", err)
	}

	responses := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, dto.NewStudentResponse(student))
	}

	return dto.StudentListResponse{
		Items:      responses,
		Pagination: dto.NewPaginationMeta(req.Page, req.PageSize, total),
	}, nil
}

func (s *studentService) Progress(ctx context.Context, id uint, actor ActivityActor) (dto.ProgressResponse, error) {
	student, err := scopedStudent(ctx, s.repo, id, actor)
	if err != nil {
		return dto.ProgressResponse{}, err
	}

	lessons, err := s.lessons.ListByStudent(ctx, student.ID)
	if err != nil {
		return dto.ProgressResponse{}, fmt.Errorf("list lessons of student %d: %w", student.ID, err)
	}

	exams, err := s.exams.ListByStudent(ctx, student.ID)
	if err != nil {
		return dto.ProgressResponse{}, fmt.Errorf("list exams of student %d: %w", student.ID, err)
	}

	result := ComputeProgress(lessons, exams)
	return dto.ProgressResponse{
		StudentID:          student.ID,
		Percent:            result.Percent,
		CompletedLessons:   result.CompletedLessons,
		TotalLessonsTarget: result.TotalLessonsTarget,
		TheoryStatus:       result.TheoryStatus,
		PracticalStatus:    result.PracticalStatus,
	}, nil
}

// Standards groups the non-archived students by licence category.
func (s *studentService) Standards(ctx context.Context, officeID *uint) ([]dto.StandardGroupResponse, error) {
	students, err := s.repo.ListActiveByCategory(ctx, officeID)
	if err != nil {
		return nil, fmt.Errorf("list students by category: %w", err)
	}

	return GroupByCategory(students), nil
}

// GroupByCategory builds one group per licence category, ordered by category code.
func GroupByCategory(students []models.Student) []dto.StandardGroupResponse {
	groups := make([]dto.StandardGroupResponse, 0)
	index := make(map[string]int)

	for _, student := range students {
		category := NormalizeCategory(student.LicenseCategory)
		pos, ok := index[category]
		if !ok {
			pos = len(groups)
			index[category] = pos
			groups = append(groups, dto.StandardGroupResponse{
				Category: category,
				Name:     "Category " + category,
				Avatars:  []string{},
			})
		}

		group := &groups[pos]
		group.Count++
		if len(group.Avatars) < maxStandardAvatars {
			group.Avatars = append(group.Avatars, fmt.Sprintf("https://i.pravatar.cc/150?u=%d", student.ID))
		}
	}

	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Category < groups[j].Category })
	for i := range groups {
		groups[i].Color = standardColors[i%len(standardColors)]
	}
	return groups
}

func (s *studentService) knownCategory(ctx context.Context, raw string) (string, error) {
	category := NormalizeCategory(raw)
	if category == "" {
		return "", ErrUnknownLicenseCategory
	}
	if s.prices == nil {
		return category, nil
	}
	_, found, err := s.prices.FindPrice(ctx, category)
	if err != nil {
		return "", fmt.Errorf("find price of category %s: %w", category, err)
	}
	if !found {
		return "", ErrUnknownLicenseCategory
	}
	return category, nil
}
