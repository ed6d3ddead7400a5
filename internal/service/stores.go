package service

import (
	"djibtrade/internal/models"
)

// Store interfaces consumed by the services. The gorm repositories satisfy
// them; tests use in-memory fakes.

type UserStore interface {
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Create(u *models.User) error
	Update(u *models.User) error
	ListIDsExcept(id uint) ([]uint, error)
}

type ProductStore interface {
	Create(p *models.Product) error
	GetByID(id uint) (*models.Product, error)
	Update(p *models.Product) error
	Delete(id uint) error
	List(categoryID *uint, limit, offset int) ([]models.Product, error)
	IncrementViews(id uint) error
}

type CategoryStore interface {
	Exists(id uint) (bool, error)
}

type NotificationStore interface {
	CreateBatch(ns []models.Notification) error
	ListByUserID(userID uint, limit, offset int) ([]models.Notification, error)
	MarkRead(id, userID uint) (int64, error)
	MarkAllRead(userID uint) (int64, error)
}

type PreferenceStore interface {
	GetOrCreate(userID uint) (*models.NotificationPreferences, error)
	Save(p *models.NotificationPreferences) error
}

// Pusher delivers a freshly created notification to a connected user, e.g.
// over the websocket stream. May be nil.
type Pusher interface {
	Push(userID uint, payload interface{})
}
