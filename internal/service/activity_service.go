package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/models"
	"github.com/noah-isme/drivedesk-api/internal/repository"
)

// ActivityActor represents the authenticated user performing an action.
type ActivityActor struct {
	ID       uint
	Role     string
	OfficeID *uint
}

// SystemActor is used for changes made by automatic policies.
var SystemActor = ActivityActor{Role: "system"}

// ActivityEntry captures the details required to persist an audit entry.
type ActivityEntry struct {
	ActorID    uint
	ActorRole  string
	OfficeID   *uint
	Action     string
	EntityType string
	EntityID   *uint
	Metadata   map[string]interface{}
}

// ActivityRecorder defines behaviour for recording activity logs.
type ActivityRecorder interface {
	Record(ctx context.Context, entry ActivityEntry) (dto.AdminActivityResponse, error)
}

// ActivityService exposes methods to query and persist activity logs.
type ActivityService interface {
	ActivityRecorder
	List(ctx context.Context, req dto.AdminActivityListRequest) (dto.AdminActivityListResponse, error)
}

type activityService struct {
	repo   repository.ActivityLogRepository
	logger zerolog.Logger
}

// NewActivityService constructs the activity log service.
func NewActivityService(repo repository.ActivityLogRepository, logger zerolog.Logger) ActivityService {
	return &activityService{
		repo:   repo,
		logger: logger.With().Str("component", "activity_service").Logger(),
	}
}

func (s *activityService) Record(ctx context.Context, entry ActivityEntry) (dto.AdminActivityResponse, error) {
	if strings.TrimSpace(entry.Action) == "" {
		return dto.AdminActivityResponse{}, fmt.Errorf("action is required")
	}
	if strings.TrimSpace(entry.EntityType) == "" {
		return dto.AdminActivityResponse{}, fmt.Errorf("entity type is required")
	}

	model := models.ActivityLog{
		ActorID:    entry.ActorID,
		ActorRole:  normalizeRole(entry.ActorRole),
		OfficeID:   entry.OfficeID,
		Action:     strings.ToLower(strings.TrimSpace(entry.Action)),
		EntityType: strings.ToLower(strings.TrimSpace(entry.EntityType)),
		EntityID:   entry.EntityID,
		Metadata:   sanitizeMetadata(entry.Metadata),
	}

	if err := s.repo.Create(ctx, &model); err != nil {
		s.logger.Error().Err(err).Str("action", model.Action).Msg("failed to persist activity log")
		return dto.AdminActivityResponse{}, err
	}

	return dto.NewAdminActivityResponse(model), nil
}

func (s *activityService) List(ctx context.Context, req dto.AdminActivityListRequest) (dto.AdminActivityListResponse, error) {
	filter := repository.ActivityLogFilter{
		Page:       req.Page,
		PageSize:   req.PageSize,
		OfficeID:   req.OfficeID,
		Action:     strings.ToLower(strings.TrimSpace(req.Action)),
		EntityType: strings.ToLower(strings.TrimSpace(req.EntityType)),
	}
	if req.ActorID > 0 {
		filter.ActorID = &req.ActorID
	}

	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.AdminActivityListResponse{}, fmt.Errorf("list activity: %w", err)
	}

	responses := make([]dto.AdminActivityResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, dto.NewAdminActivityResponse(entry))
	}

	return dto.AdminActivityListResponse{
		Items:      responses,
		Pagination: dto.NewPaginationMeta(req.Page, req.PageSize, total),
	}, nil
}

// recordActivity writes an audit entry when a recorder is configured. Failures are logged only.
func recordActivity(ctx context.Context, recorder ActivityRecorder, logger zerolog.Logger, actor ActivityActor, action, entityType string, entityID *uint, metadata map[string]interface{}) {
	if recorder == nil {
		return
	}
	_, err := recorder.Record(ctx, ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		OfficeID:   actor.OfficeID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Metadata:   metadata,
	})
	if err != nil {
		logger.Warn().Err(err).Str("action", action).Msg("activity not recorded")
	}
}

func sanitizeMetadata(metadata map[string]interface{}) datatypes.JSONMap {
	if metadata == nil {
		return datatypes.JSONMap{}
	}

	sanitized := datatypes.JSONMap{}
	for key, value := range metadata {
		lower := strings.ToLower(key)
		if strings.Contains(lower, "email") || strings.Contains(lower, "token") || strings.Contains(lower, "password") {
			sanitized[key] = "***"
			continue
		}
		sanitized[key] = value
	}
	return sanitized
}

func normalizeRole(role string) string {
	r := strings.ToLower(strings.TrimSpace(role))
	if r == "" {
		return "system"
	}
	return r
}
