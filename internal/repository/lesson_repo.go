package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/drivedesk-api/internal/models"
)

// LessonFilter narrows lesson queries.
type LessonFilter struct {
	OfficeID  *uint
	StudentID uint
	TrainerID uint
	Status    string
}

// LessonRepository persists driving lessons.
type LessonRepository interface {
	Create(ctx context.Context, lesson *models.Lesson) error
	GetByID(ctx context.Context, id uint) (models.Lesson, error)
	List(ctx context.Context, filter LessonFilter) ([]models.Lesson, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Lesson, error)
	UpdateStatus(ctx context.Context, id uint, status models.LessonStatus) (models.Lesson, error)
}

type lessonRepository struct {
	db *gorm.DB
}

// NewLessonRepository constructs the lesson repository.
func NewLessonRepository(db *gorm.DB) LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	return r.db.WithContext(ctx).Omit("Student", "Trainer", "Vehicle").Create(lesson).Error
}

func (r *lessonRepository) GetByID(ctx context.Context, id uint) (models.Lesson, error) {
	var lesson models.Lesson
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Trainer").
		Preload("Vehicle").
		First(&lesson, id).Error
	if err != nil {
		return models.Lesson{}, err
	}
	return lesson, nil
}

func (r *lessonRepository) List(ctx context.Context, filter LessonFilter) ([]models.Lesson, error) {
	query := r.db.WithContext(ctx).Model(&models.Lesson{})
	if filter.OfficeID != nil {
		query = query.Where("student_id IN (?)", officeStudents(r.db, *filter.OfficeID))
	}
	if filter.StudentID > 0 {
		query = query.Where("student_id = ?", filter.StudentID)
	}
	if filter.TrainerID > 0 {
		query = query.Where("trainer_id = ?", filter.TrainerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var lessons []models.Lesson
	err := query.
		Preload("Student").
		Preload("Trainer").
		Preload("Vehicle").
		Order("date ASC").
		Order("start_time ASC").
		Find(&lessons).Error
	return lessons, err
}

func (r *lessonRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("date ASC").
		Find(&lessons).Error
	return lessons, err
}

func (r *lessonRepository) UpdateStatus(ctx context.Context, id uint, status models.LessonStatus) (models.Lesson, error) {
	update := r.db.WithContext(ctx).Model(&models.Lesson{}).
		Where("id = ?", id).
		Update("status", status)
	if update.Error != nil {
		return models.Lesson{}, update.Error
	}
	if update.RowsAffected == 0 {
		return models.Lesson{}, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// officeStudents is a subquery selecting the ids of students enrolled at an office.
func officeStudents(db *gorm.DB, officeID uint) *gorm.DB {
	return db.Model(&models.Student{}).Select("id").Where("office_id = ?", officeID)
}
