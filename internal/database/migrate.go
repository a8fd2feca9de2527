package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/noah-isme/drivedesk-api/internal/models"
)

// Models lists every persisted entity in migration order.
func Models() []interface{} {
	return []interface{}{
		&models.Office{},
		&models.User{},
		&models.Student{},
		&models.Trainer{},
		&models.Staff{},
		&models.Vehicle{},
		&models.Maintenance{},
		&models.Inspection{},
		&models.Lesson{},
		&models.Exam{},
		&models.Payment{},
		&models.LicensePrice{},
		&models.Notification{},
		&models.Charge{},
		&models.Attendance{},
		&models.Subscription{},
		&models.SchoolProfile{},
		&models.ActivityLog{},
		&models.UploadRecord{},
	}
}

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
