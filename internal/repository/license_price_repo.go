package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/drivedesk-api/internal/models"
)

// LicensePriceRepository stores the price table per licence category.
type LicensePriceRepository interface {
	List(ctx context.Context) ([]models.LicensePrice, error)
	Get(ctx context.Context, category string) (models.LicensePrice, error)
	Create(ctx context.Context, price *models.LicensePrice) error
	UpdatePrice(ctx context.Context, category string, price float64) (models.LicensePrice, error)
	Delete(ctx context.Context, category string) error
}

type licensePriceRepository struct {
	db *gorm.DB
}

// NewLicensePriceRepository constructs the licence price repository.
func NewLicensePriceRepository(db *gorm.DB) LicensePriceRepository {
	return &licensePriceRepository{db: db}
}

func (r *licensePriceRepository) List(ctx context.Context) ([]models.LicensePrice, error) {
	var prices []models.LicensePrice
	err := r.db.WithContext(ctx).Order("category ASC").Find(&prices).Error
	return prices, err
}

func (r *licensePriceRepository) Get(ctx context.Context, category string) (models.LicensePrice, error) {
	var price models.LicensePrice
	if err := r.db.WithContext(ctx).Where("category = ?", category).First(&price).Error; err != nil {
		return models.LicensePrice{}, err
	}
	return price, nil
}

func (r *licensePriceRepository) Create(ctx context.Context, price *models.LicensePrice) error {
	return r.db.WithContext(ctx).Create(price).Error
}

func (r *licensePriceRepository) UpdatePrice(ctx context.Context, category string, price float64) (models.LicensePrice, error) {
	update := r.db.WithContext(ctx).Model(&models.LicensePrice{}).
		Where("category = ?", category).
		Update("price", price)
	if update.Error != nil {
		return models.LicensePrice{}, update.Error
	}
	if update.RowsAffected == 0 {
		return models.LicensePrice{}, gorm.ErrRecordNotFound
	}
	return r.Get(ctx, category)
}

func (r *licensePriceRepository) Delete(ctx context.Context, category string) error {
	result := r.db.WithContext(ctx).Where("category = ?", category).Delete(&models.LicensePrice{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
