package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/noah-isme/drivedesk-api/internal/models"
)

// UserRepository persists dashboard accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id uint) (models.User, error)
	ListByRole(ctx context.Context, role string, officeID *uint) ([]models.User, error)
	DeleteWithRole(ctx context.Context, id uint, role string) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository constructs the user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *userRepository) ListByRole(ctx context.Context, role string, officeID *uint) ([]models.User, error) {
	query := r.db.WithContext(ctx).Where("role = ?", role)
	if officeID != nil {
		query = query.Where("office_id = ?", *officeID)
	}

	var users []models.User
	err := query.Order("name ASC").Find(&users).Error
	return users, err
}

func (r *userRepository) DeleteWithRole(ctx context.Context, id uint, role string) error {
	result := r.db.WithContext(ctx).Where("id = ? AND role = ?", id, role).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
