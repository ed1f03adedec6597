package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thesislink/engine/internal/models"
	appErr "github.com/thesislink/engine/pkg/errors"
)

type NotificationRepository interface {
	BaseRepository[models.Notification]
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Notification, error)
}

type notificationRepository struct {
	BaseRepository[models.Notification]
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{BaseRepository: NewBaseRepository[models.Notification](db), db: db}
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	var out []models.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list notifications failed")
	}
	return out, nil
}
