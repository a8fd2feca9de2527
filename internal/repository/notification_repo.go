package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/drivedesk-api/internal/models"
)

// NotificationFilter narrows notification queries.
type NotificationFilter struct {
	OfficeID   *uint
	UnreadOnly bool
	Limit      int
	Offset     int
}

// NotificationRepository handles persistence for notification entities.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	List(ctx context.Context, filter NotificationFilter) ([]models.Notification, error)
	MarkRead(ctx context.Context, id uint, officeID *uint) (models.Notification, error)
	MarkAllRead(ctx context.Context, officeID *uint) (int64, error)
	FindByID(ctx context.Context, id uint) (models.Notification, error)
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository constructs a repository backed by GORM.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) List(ctx context.Context, filter NotificationFilter) ([]models.Notification, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := r.db.WithContext(ctx).Model(&models.Notification{})
	if filter.OfficeID != nil {
		query = query.Where("office_id = ?", *filter.OfficeID)
	}
	if filter.UnreadOnly {
		query = query.Where("read = ?", false)
	}

	var notifications []models.Notification
	if err := query.
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uint, officeID *uint) (models.Notification, error) {
	query := r.db.WithContext(ctx).Where("id = ?", id)
	if officeID != nil {
		query = query.Where("office_id = ?", *officeID)
	}

	var notification models.Notification
	if err := query.First(&notification).Error; err != nil {
		return models.Notification{}, err
	}

	if notification.Read {
		return notification, nil
	}

	if err := r.db.WithContext(ctx).Model(&notification).Update("read", true).Error; err != nil {
		return models.Notification{}, err
	}
	notification.Read = true

	return notification, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, officeID *uint) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Notification{}).Where("read = ?", false)
	if officeID != nil {
		query = query.Where("office_id = ?", *officeID)
	}
	result := query.Update("read", true)
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) FindByID(ctx context.Context, id uint) (models.Notification, error) {
	var notification models.Notification
	if err := r.db.WithContext(ctx).First(&notification, id).Error; err != nil {
		return models.Notification{}, err
	}
	return notification, nil
}
