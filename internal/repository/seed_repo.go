package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/drivedesk-api/internal/models"
)

// SeedWriter inserts rows inside a seed transaction.
type SeedWriter interface {
	Create(value interface{}) error
}

// SeedRepository loads demo data atomically.
type SeedRepository interface {
	HasData(ctx context.Context) (bool, error)
	Reset(ctx context.Context) error
	Transaction(ctx context.Context, fn func(w SeedWriter) error) error
}

type seedRepository struct {
	db *gorm.DB
}

type gormSeedWriter struct {
	tx *gorm.DB
}

// NewSeedRepository constructs the seed repository.
func NewSeedRepository(db *gorm.DB) SeedRepository {
	return &seedRepository{db: db}
}

func (w gormSeedWriter) Create(value interface{}) error {
	return w.tx.Omit("Student", "Trainer", "Vehicle").Create(value).Error
}

// HasData reports whether any office exists.
func (r *seedRepository) HasData(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Office{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Reset deletes every demo table, children first.
func (r *seedRepository) Reset(ctx context.Context) error {
	tables := []interface{}{
		&models.Attendance{},
		&models.Notification{},
		&models.Lesson{},
		&models.Exam{},
		&models.Payment{},
		&models.Maintenance{},
		&models.Inspection{},
		&models.Vehicle{},
		&models.Student{},
		&models.Trainer{},
		&models.Staff{},
		&models.Charge{},
		&models.LicensePrice{},
		&models.Subscription{},
		&models.User{},
		&models.Office{},
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range tables {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *seedRepository) Transaction(ctx context.Context, fn func(w SeedWriter) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(gormSeedWriter{tx: tx})
	})
}
