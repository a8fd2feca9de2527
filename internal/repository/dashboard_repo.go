package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/drivedesk-api/internal/models"
)

// DashboardRepository supplies the aggregates shown on office and super-admin dashboards.
type DashboardRepository interface {
	CountStudents(ctx context.Context, officeID *uint) (int64, error)
	CountLessons(ctx context.Context, officeID *uint, status models.LessonStatus) (int64, error)
	SumPayments(ctx context.Context, officeID *uint, status models.PaymentStatus) (float64, error)
	CountVehicles(ctx context.Context, kind models.VehicleKind, status models.VehicleStatus) (int64, error)
	SumCharges(ctx context.Context, category string) (float64, error)
	CountStaffByStatus(ctx context.Context) (map[string]int64, error)
	ListLessonsSince(ctx context.Context, officeID *uint, since time.Time) ([]models.Lesson, error)
	ListPaidPaymentsSince(ctx context.Context, officeID *uint, since time.Time) ([]models.Payment, error)
	CountOffices(ctx context.Context) (int64, error)
	CountTrainers(ctx context.Context) (int64, error)
	CountOfficesByPlan(ctx context.Context) (map[string]int64, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository constructs the dashboard repository.
func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

type groupCount struct {
	Label string
	Total int64
}

func (r *dashboardRepository) CountStudents(ctx context.Context, officeID *uint) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Student{}).Where("archived = ?", false)
	if officeID != nil {
		query = query.Where("office_id = ?", *officeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountLessons(ctx context.Context, officeID *uint, status models.LessonStatus) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Lesson{}).Where("status = ?", status)
	if officeID != nil {
		query = query.Where("student_id IN (?)", officeStudents(r.db, *officeID))
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *dashboardRepository) SumPayments(ctx context.Context, officeID *uint, status models.PaymentStatus) (float64, error) {
	query := r.db.WithContext(ctx).Model(&models.Payment{}).Where("status = ?", status)
	if officeID != nil {
		query = query.Where("student_id IN (?)", officeStudents(r.db, *officeID))
	}
	var total float64
	err := query.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, err
}

func (r *dashboardRepository) CountVehicles(ctx context.Context, kind models.VehicleKind, status models.VehicleStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Vehicle{}).
		Where("kind = ? AND status = ?", kind, status).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepository) SumCharges(ctx context.Context, category string) (float64, error) {
	query := r.db.WithContext(ctx).Model(&models.Charge{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var total float64
	err := query.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, err
}

func (r *dashboardRepository) CountStaffByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []groupCount
	err := r.db.WithContext(ctx).
		Model(&models.Staff{}).
		Select("status AS label, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return groupCountMap(rows), nil
}

func (r *dashboardRepository) ListLessonsSince(ctx context.Context, officeID *uint, since time.Time) ([]models.Lesson, error) {
	query := r.db.WithContext(ctx).Where("date >= ?", since)
	if officeID != nil {
		query = query.Where("student_id IN (?)", officeStudents(r.db, *officeID))
	}
	var lessons []models.Lesson
	err := query.Find(&lessons).Error
	return lessons, err
}

func (r *dashboardRepository) ListPaidPaymentsSince(ctx context.Context, officeID *uint, since time.Time) ([]models.Payment, error) {
	query := r.db.WithContext(ctx).
		Where("date >= ?", since).
		Where("status = ?", models.PaymentStatusPaid)
	if officeID != nil {
		query = query.Where("student_id IN (?)", officeStudents(r.db, *officeID))
	}
	var payments []models.Payment
	err := query.Find(&payments).Error
	return payments, err
}

func (r *dashboardRepository) CountOffices(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Office{}).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountTrainers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Trainer{}).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountOfficesByPlan(ctx context.Context) (map[string]int64, error) {
	var rows []groupCount
	err := r.db.WithContext(ctx).
		Model(&models.Office{}).
		Select("subscription_plan AS label, COUNT(*) AS total").
		Group("subscription_plan").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return groupCountMap(rows), nil
}

func groupCountMap(rows []groupCount) map[string]int64 {
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Label] = row.Total
	}
	return out
}
