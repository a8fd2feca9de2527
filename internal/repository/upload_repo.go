package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/drivedesk-api/internal/models"
)

// UploadRepository persists metadata about uploaded documents.
type UploadRepository interface {
	Create(ctx context.Context, record *models.UploadRecord) error
	FindByChecksum(ctx context.Context, checksum, purpose string) (models.UploadRecord, error)
}

type uploadRepository struct {
	db *gorm.DB
}

// NewUploadRepository constructs a repository for upload records.
func NewUploadRepository(db *gorm.DB) UploadRepository {
	return &uploadRepository{db: db}
}

func (r *uploadRepository) Create(ctx context.Context, record *models.UploadRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// FindByChecksum returns a previously stored document with the same content and purpose.
func (r *uploadRepository) FindByChecksum(ctx context.Context, checksum, purpose string) (models.UploadRecord, error) {
	var record models.UploadRecord
	err := r.db.WithContext(ctx).
		Where("checksum = ? AND purpose = ?", checksum, purpose).
		Order("id ASC").
		First(&record).Error
	if err != nil {
		return models.UploadRecord{}, err
	}
	return record, nil
}
