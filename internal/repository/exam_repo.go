package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/drivedesk-api/internal/models"
)

// ExamFilter narrows exam queries.
type ExamFilter struct {
	OfficeID  *uint
	StudentID uint
	Type      string
	Result    string
}

// ExamRepository persists exam sittings.
type ExamRepository interface {
	Create(ctx context.Context, exam *models.Exam) error
	GetByID(ctx context.Context, id uint) (models.Exam, error)
	List(ctx context.Context, filter ExamFilter) ([]models.Exam, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Exam, error)
	UpdateResult(ctx context.Context, id uint, result models.ExamResult) (models.Exam, error)
}

type examRepository struct {
	db *gorm.DB
}

// NewExamRepository constructs the exam repository.
func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) Create(ctx context.Context, exam *models.Exam) error {
	return r.db.WithContext(ctx).Omit("Student").Create(exam).Error
}

func (r *examRepository) GetByID(ctx context.Context, id uint) (models.Exam, error) {
	var exam models.Exam
	if err := r.db.WithContext(ctx).Preload("Student").First(&exam, id).Error; err != nil {
		return models.Exam{}, err
	}
	return exam, nil
}

func (r *examRepository) List(ctx context.Context, filter ExamFilter) ([]models.Exam, error) {
	query := r.db.WithContext(ctx).Model(&models.Exam{})
	if filter.OfficeID != nil {
		query = query.Where("student_id IN (?)", officeStudents(r.db, *filter.OfficeID))
	}
	if filter.StudentID > 0 {
		query = query.Where("student_id = ?", filter.StudentID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Result != "" {
		query = query.Where("result = ?", filter.Result)
	}

	var exams []models.Exam
	err := query.Preload("Student").Order("date DESC").Order("id DESC").Find(&exams).Error
	return exams, err
}

// ListByStudent returns the exams of a student, most recent first.
func (r *examRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Exam, error) {
	var exams []models.Exam
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("date DESC").
		Order("id DESC").
		Find(&exams).Error
	return exams, err
}

func (r *examRepository) UpdateResult(ctx context.Context, id uint, result models.ExamResult) (models.Exam, error) {
	update := r.db.WithContext(ctx).Model(&models.Exam{}).
		Where("id = ?", id).
		Update("result", result)
	if update.Error != nil {
		return models.Exam{}, update.Error
	}
	if update.RowsAffected == 0 {
		return models.Exam{}, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}
