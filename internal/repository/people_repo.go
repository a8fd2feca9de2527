package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/drivedesk-api/internal/models"
)

// PeopleRepository persists trainers and staff members.
type PeopleRepository interface {
	CreateTrainer(ctx context.Context, trainer *models.Trainer) error
	GetTrainer(ctx context.Context, id uint) (models.Trainer, error)
	ListTrainers(ctx context.Context) ([]models.Trainer, error)
	CreateStaff(ctx context.Context, staff *models.Staff) error
	GetStaff(ctx context.Context, id uint) (models.Staff, error)
	ListStaff(ctx context.Context) ([]models.Staff, error)
}

type peopleRepository struct {
	db *gorm.DB
}

// NewPeopleRepository constructs the people repository.
func NewPeopleRepository(db *gorm.DB) PeopleRepository {
	return &peopleRepository{db: db}
}

func (r *peopleRepository) CreateTrainer(ctx context.Context, trainer *models.Trainer) error {
	return r.db.WithContext(ctx).Create(trainer).Error
}

func (r *peopleRepository) GetTrainer(ctx context.Context, id uint) (models.Trainer, error) {
	var trainer models.Trainer
	if err := r.db.WithContext(ctx).First(&trainer, id).Error; err != nil {
		return models.Trainer{}, err
	}
	return trainer, nil
}

func (r *peopleRepository) ListTrainers(ctx context.Context) ([]models.Trainer, error) {
	var trainers []models.Trainer
	err := r.db.WithContext(ctx).Order("name ASC").Find(&trainers).Error
	return trainers, err
}

func (r *peopleRepository) CreateStaff(ctx context.Context, staff *models.Staff) error {
	return r.db.WithContext(ctx).Create(staff).Error
}

func (r *peopleRepository) GetStaff(ctx context.Context, id uint) (models.Staff, error) {
	var staff models.Staff
	if err := r.db.WithContext(ctx).First(&staff, id).Error; err != nil {
		return models.Staff{}, err
	}
	return staff, nil
}

func (r *peopleRepository) ListStaff(ctx context.Context) ([]models.Staff, error) {
	var staff []models.Staff
	err := r.db.WithContext(ctx).Order("name ASC").Find(&staff).Error
	return staff, err
}
