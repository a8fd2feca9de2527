package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/models"
	"github.com/noah-isme/drivedesk-api/internal/observability"
	"github.com/noah-isme/drivedesk-api/internal/repository"
)

const dashboardMonths = 6

// DashboardService produces the aggregated figures of the office and super-admin dashboards.
type DashboardService interface {
	Office(ctx context.Context, officeID *uint) (dto.OfficeDashboardResponse, error)
	SuperAdmin(ctx context.Context) (dto.SuperAdminDashboardResponse, error)
}

type dashboardService struct {
	repo     repository.DashboardRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
	tracer   trace.Tracer
	now      func() time.Time
}

// NewDashboardService builds the dashboard aggregator. A nil cache disables caching.
func NewDashboardService(repo repository.DashboardRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		repo:     repo,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "dashboard_service").Logger(),
		tracer:   otel.Tracer("github.com/noah-isme/drivedesk-api/internal/service/dashboard"),
		now:      time.Now,
	}
}

func (s *dashboardService) Office(ctx context.Context, officeID *uint) (dto.OfficeDashboardResponse, error) {
	scope := "all"
	if officeID != nil {
		scope = fmt.Sprintf("%d", *officeID)
	}
	cacheKey := "dashboard:office:" + scope

	ctx, span := s.tracer.Start(ctx, "dashboard.office", trace.WithAttributes(attribute.String("dashboard.scope", scope)))
	defer span.End()

	var response dto.OfficeDashboardResponse
	if s.readCache(ctx, cacheKey, &response) {
		response.CacheHit = true
		return response, nil
	}

	var err error
	if response.TotalStudents, err = s.repo.CountStudents(ctx, officeID); err != nil {
		return dto.OfficeDashboardResponse{}, fmt.Errorf("count students: %w", err)
	}
	if response.ScheduledLessons, err = s.repo.CountLessons(ctx, officeID, models.LessonStatusScheduled); err != nil {
		return dto.OfficeDashboardResponse{}, fmt.Errorf("count lessons: %w", err)
	}
	if response.Revenue, err = s.repo.SumPayments(ctx, officeID, models.PaymentStatusPaid); err != nil {
		return dto.OfficeDashboardResponse{}, fmt.Errorf("sum payments: %w", err)
	}
	if response.AvailableCars, err = s.repo.CountVehicles(ctx, models.VehicleKindCar, models.VehicleStatusAvailable); err != nil {
		return dto.OfficeDashboardResponse{}, fmt.Errorf("count vehicles: %w", err)
	}
	if response.TotalCharges, err = s.repo.SumCharges(ctx, ""); err != nil {
		return dto.OfficeDashboardResponse{}, fmt.Errorf("sum charges: %w", err)
	}
	if response.SalaryCharges, err = s.repo.SumCharges(ctx, models.ChargeSalary); err != nil {
		return dto.OfficeDashboardResponse{}, fmt.Errorf("sum salary charges: %w", err)
	}

	staff, err := s.repo.CountStaffByStatus(ctx)
	if err != nil {
		return dto.OfficeDashboardResponse{}, fmt.Errorf("count staff: %w", err)
	}
	for _, count := range staff {
		response.TotalStaff += count
	}
	response.PresentStaff = staff[models.PresencePresent]
	response.AbsentStaff = staff[models.PresenceAbsent]

	now := s.now().UTC()
	months := lastMonths(now, dashboardMonths)
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(dashboardMonths - 1), 0)

	lessons, err := s.repo.ListLessonsSince(ctx, officeID, since)
	if err != nil {
		return dto.OfficeDashboardResponse{}, fmt.Errorf("list lessons: %w", err)
	}
	lessonCounts := make(map[string]float64, len(months))
	for _, lesson := range lessons {
		lessonCounts[lesson.Date.UTC().Format("2006-01")]++
	}

	payments, err := s.repo.ListPaidPaymentsSince(ctx, officeID, since)
	if err != nil {
		return dto.OfficeDashboardResponse{}, fmt.Errorf("list payments: %w", err)
	}
	revenue := make(map[string]float64, len(months))
	for _, payment := range payments {
		revenue[payment.Date.UTC().Format("2006-01")] += payment.Amount
	}

	response.LessonsByMonth = monthlySeries(months, lessonCounts)
	response.RevenueByMonth = monthlySeries(months, revenue)
	response.Revenue = roundCents(response.Revenue)
	response.TotalCharges = roundCents(response.TotalCharges)
	response.SalaryCharges = roundCents(response.SalaryCharges)
	response.GeneratedAt = now

	s.writeCache(ctx, cacheKey, response)
	return response, nil
}

func (s *dashboardService) SuperAdmin(ctx context.Context) (dto.SuperAdminDashboardResponse, error) {
	const cacheKey = "dashboard:superadmin"

	ctx, span := s.tracer.Start(ctx, "dashboard.superadmin")
	defer span.End()

	var response dto.SuperAdminDashboardResponse
	if s.readCache(ctx, cacheKey, &response) {
		response.CacheHit = true
		return response, nil
	}

	var err error
	if response.TotalOffices, err = s.repo.CountOffices(ctx); err != nil {
		return dto.SuperAdminDashboardResponse{}, fmt.Errorf("count offices: %w", err)
	}
	if response.TotalStudents, err = s.repo.CountStudents(ctx, nil); err != nil {
		return dto.SuperAdminDashboardResponse{}, fmt.Errorf("count students: %w", err)
	}
	if response.TotalTrainers, err = s.repo.CountTrainers(ctx); err != nil {
		return dto.SuperAdminDashboardResponse{}, fmt.Errorf("count trainers: %w", err)
	}
	if response.TotalRevenue, err = s.repo.SumPayments(ctx, nil, models.PaymentStatusPaid); err != nil {
		return dto.SuperAdminDashboardResponse{}, fmt.Errorf("sum payments: %w", err)
	}
	if response.OfficesPerPlan, err = s.repo.CountOfficesByPlan(ctx); err != nil {
		return dto.SuperAdminDashboardResponse{}, fmt.Errorf("count offices per plan: %w", err)
	}
	response.TotalRevenue = roundCents(response.TotalRevenue)
	response.GeneratedAt = s.now().UTC()

	s.writeCache(ctx, cacheKey, response)
	return response, nil
}

// readCache reports a hit only when a cached payload decodes cleanly.
func (s *dashboardService) readCache(ctx context.Context, key string, target interface{}) bool {
	if s.cache == nil {
		return false
	}

	cached, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Str("key", key).Msg("failed to read dashboard cache")
			observability.DashboardCache().WithLabelValues("error").Inc()
			return false
		}
		observability.DashboardCache().WithLabelValues("miss").Inc()
		return false
	}

	if err := json.Unmarshal([]byte(cached), target); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("discarding corrupt dashboard cache entry")
		observability.DashboardCache().WithLabelValues("error").Inc()
		return false
	}

	observability.DashboardCache().WithLabelValues("hit").Inc()
	return true
}

func (s *dashboardService) writeCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to store dashboard cache")
	}
}

// lastMonths lists the YYYY-MM keys of the n months ending with the month of now, oldest first.
func lastMonths(now time.Time, n int) []string {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	months := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		months = append(months, first.AddDate(0, -i, 0).Format("2006-01"))
	}
	return months
}

func monthlySeries(months []string, values map[string]float64) []dto.MonthlyPoint {
	points := make([]dto.MonthlyPoint, 0, len(months))
	for _, month := range months {
		points = append(points, dto.MonthlyPoint{Month: month, Value: roundCents(values[month])})
	}
	return points
}
