package repository

import (
	"errors"

	"djibtrade/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// CreateBatch persists a fan-out as one insert: either every recipient gets
// their row or none does. Conflicts on the (user, product, type) unique
// index are ignored, so re-delivering an event is a no-op.
func (r *NotificationRepository) CreateBatch(ns []models.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&ns).Error
}

func (r *NotificationRepository) ListByUserID(userID uint, limit, offset int) ([]models.Notification, error) {
	var list []models.Notification
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

// MarkRead flips is_read on the caller's notification. The lookup is scoped
// to the caller, so a foreign ID reports zero rows just like a missing one.
// Re-marking an already-read notification still counts as found: MySQL's
// changed-rows semantics must not turn it into a 404.
func (r *NotificationRepository) MarkRead(id, userID uint) (int64, error) {
	var n models.Notification
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&n).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if n.IsRead {
		return 1, nil
	}
	if err := r.db.Model(&n).Update("is_read", true).Error; err != nil {
		return 0, err
	}
	return 1, nil
}

// MarkAllRead flips every unread notification of the user. Idempotent.
func (r *NotificationRepository) MarkAllRead(userID uint) (int64, error) {
	res := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}
