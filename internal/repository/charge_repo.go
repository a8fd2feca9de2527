package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/drivedesk-api/internal/models"
)

// ChargeRepository persists school expenses.
type ChargeRepository interface {
	Create(ctx context.Context, charge *models.Charge) error
	List(ctx context.Context, category string) ([]models.Charge, error)
}

type chargeRepository struct {
	db *gorm.DB
}

// NewChargeRepository constructs the charge repository.
func NewChargeRepository(db *gorm.DB) ChargeRepository {
	return &chargeRepository{db: db}
}

func (r *chargeRepository) Create(ctx context.Context, charge *models.Charge) error {
	return r.db.WithContext(ctx).Create(charge).Error
}

func (r *chargeRepository) List(ctx context.Context, category string) ([]models.Charge, error) {
	query := r.db.WithContext(ctx).Model(&models.Charge{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var charges []models.Charge
	err := query.Order("date DESC").Order("id DESC").Find(&charges).Error
	return charges, err
}
