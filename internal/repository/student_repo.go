package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/drivedesk-api/internal/models"
)

// StudentFilter defines filters for listing students.
type StudentFilter struct {
	OfficeID        *uint
	Search          string
	Category        string
	Status          string
	Sort            string
	Page            int
	PageSize        int
	IncludeArchived bool
}

// StudentRepository exposes persistence helpers for student records.
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	List(ctx context.Context, filter StudentFilter) ([]models.Student, int64, error)
	GetByID(ctx context.Context, id uint) (models.Student, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Student, error)
	MarkArchived(ctx context.Context, id uint, at time.Time) (bool, error)
	ListActiveByCategory(ctx context.Context, officeID *uint) ([]models.Student, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs the student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepository) List(ctx context.Context, filter StudentFilter) ([]models.Student, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Student{})
	if !filter.IncludeArchived {
		query = query.Where("archived = ?", false)
	}

	if filter.OfficeID != nil {
		query = query.Where("office_id = ?", *filter.OfficeID)
	}

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	if filter.Category != "" {
		query = query.Where("license_category = ?", filter.Category)
	}

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sort := filter.Sort
	if sort == "" {
		sort = "created_at DESC"
	}
	query = query.Order(sort).Order("id ASC")

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		offset := (page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var students []models.Student
	if err := query.Find(&students).Error; err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

func (r *studentRepository) GetByID(ctx context.Context, id uint) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Student, error) {
	delete(updates, "archived")
	delete(updates, "archived_at")

	result := r.db.WithContext(ctx).Model(&models.Student{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return models.Student{}, result.Error
	}

	return r.GetByID(ctx, id)
}

// MarkArchived flips the archive flag once. It reports false when the student was already archived.
func (r *studentRepository) MarkArchived(ctx context.Context, id uint, at time.Time) (bool, error) {
	update := r.db.WithContext(ctx).Model(&models.Student{}).
		Where("id = ?", id).
		Where("archived = ?", false).
		Updates(map[string]interface{}{
			"archived":    true,
			"archived_at": at,
		})
	if update.Error != nil {
		return false, update.Error
	}

	return update.RowsAffected > 0, nil
}

func (r *studentRepository) ListActiveByCategory(ctx context.Context, officeID *uint) ([]models.Student, error) {
	query := r.db.WithContext(ctx).Model(&models.Student{}).Where("archived = ?", false)
	if officeID != nil {
		query = query.Where("office_id = ?", *officeID)
	}

	var students []models.Student
	if err := query.Order("license_category ASC").Order("id ASC").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}
