package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/drivedesk-api/internal/models"
)

// PaymentFilter narrows payment queries.
type PaymentFilter struct {
	OfficeID  *uint
	StudentID uint
	Status    string
}

// PaymentRepository persists payments against licence fees.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id uint) (models.Payment, error)
	List(ctx context.Context, filter PaymentFilter) ([]models.Payment, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Payment, error)
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository constructs the payment repository.
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Omit("Student").Create(payment).Error
}

func (r *paymentRepository) GetByID(ctx context.Context, id uint) (models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).Preload("Student").First(&payment, id).Error; err != nil {
		return models.Payment{}, err
	}
	return payment, nil
}

func (r *paymentRepository) List(ctx context.Context, filter PaymentFilter) ([]models.Payment, error) {
	query := r.db.WithContext(ctx).Model(&models.Payment{})
	if filter.OfficeID != nil {
		query = query.Where("student_id IN (?)", officeStudents(r.db, *filter.OfficeID))
	}
	if filter.StudentID > 0 {
		query = query.Where("student_id = ?", filter.StudentID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var payments []models.Payment
	err := query.Preload("Student").Order("date DESC").Order("id DESC").Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("date ASC").
		Find(&payments).Error
	return payments, err
}
