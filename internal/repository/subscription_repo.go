package repository

import (
	"errors"

	"djibtrade/internal/domain"
	"djibtrade/internal/models"

	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// GetOrCreate returns the user's subscription, creating a FREE one when the
// user has none yet.
func (r *SubscriptionRepository) GetOrCreate(userID uint) (*models.Subscription, error) {
	var s models.Subscription
	err := r.db.Where("user_id = ?", userID).First(&s).Error
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	fresh := &models.Subscription{UserID: userID, Plan: domain.PlanFree}
	if err := r.db.Create(fresh).Error; err != nil {
		return nil, err
	}
	return fresh, nil
}

func (r *SubscriptionRepository) Save(s *models.Subscription) error {
	return r.db.Save(s).Error
}
