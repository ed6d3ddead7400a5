package repository

import (
	"errors"

	"djibtrade/internal/models"

	"gorm.io/gorm"
)

type PreferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// GetOrCreate returns the user's preference row, inserting one with the
// documented defaults when none exists yet. Users never create these
// explicitly; every read path funnels through here.
func (r *PreferenceRepository) GetOrCreate(userID uint) (*models.NotificationPreferences, error) {
	var p models.NotificationPreferences
	err := r.db.Where("user_id = ?", userID).First(&p).Error
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	fresh := models.DefaultPreferences(userID)
	if err := r.db.Create(fresh).Error; err != nil {
		return nil, err
	}
	return fresh, nil
}

func (r *PreferenceRepository) Save(p *models.NotificationPreferences) error {
	return r.db.Save(p).Error
}
