package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/drivedesk-api/internal/models"
)

// OfficeRepository persists offices, subscription plans and the school profile.
type OfficeRepository interface {
	CreateOffice(ctx context.Context, office *models.Office) error
	GetOffice(ctx context.Context, id uint) (models.Office, error)
	ListOffices(ctx context.Context) ([]models.Office, error)
	ListSubscriptions(ctx context.Context) ([]models.Subscription, error)
	GetSubscription(ctx context.Context, code string) (models.Subscription, error)
	SaveSubscription(ctx context.Context, subscription *models.Subscription) error
	GetProfile(ctx context.Context) (models.SchoolProfile, error)
	SaveProfile(ctx context.Context, profile *models.SchoolProfile) error
}

type officeRepository struct {
	db *gorm.DB
}

// NewOfficeRepository constructs the office repository.
func NewOfficeRepository(db *gorm.DB) OfficeRepository {
	return &officeRepository{db: db}
}

func (r *officeRepository) CreateOffice(ctx context.Context, office *models.Office) error {
	return r.db.WithContext(ctx).Create(office).Error
}

func (r *officeRepository) GetOffice(ctx context.Context, id uint) (models.Office, error) {
	var office models.Office
	if err := r.db.WithContext(ctx).First(&office, id).Error; err != nil {
		return models.Office{}, err
	}
	return office, nil
}

func (r *officeRepository) ListOffices(ctx context.Context) ([]models.Office, error) {
	var offices []models.Office
	err := r.db.WithContext(ctx).Order("id ASC").Find(&offices).Error
	return offices, err
}

func (r *officeRepository) ListSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	var subscriptions []models.Subscription
	err := r.db.WithContext(ctx).Order("price ASC").Find(&subscriptions).Error
	return subscriptions, err
}

func (r *officeRepository) GetSubscription(ctx context.Context, code string) (models.Subscription, error) {
	var subscription models.Subscription
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&subscription).Error; err != nil {
		return models.Subscription{}, err
	}
	return subscription, nil
}

func (r *officeRepository) SaveSubscription(ctx context.Context, subscription *models.Subscription) error {
	return r.db.WithContext(ctx).Save(subscription).Error
}

// GetProfile returns the single school profile row.
func (r *officeRepository) GetProfile(ctx context.Context) (models.SchoolProfile, error) {
	var profile models.SchoolProfile
	if err := r.db.WithContext(ctx).Order("id ASC").First(&profile).Error; err != nil {
		return models.SchoolProfile{}, err
	}
	return profile, nil
}

func (r *officeRepository) SaveProfile(ctx context.Context, profile *models.SchoolProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
