package models

import (
	"time"

	"djibtrade/internal/domain"
)

// Notification is system-created only; clients can merely flip IsRead.
// The unique (user, product, type) index makes fan-out inserts idempotent:
// re-delivering a creation event cannot duplicate rows.
type Notification struct {
	ID               uint                    `gorm:"primaryKey" json:"id"`
	UserID           uint                    `gorm:"not null;index;uniqueIndex:idx_notif_user_product_type" json:"user_id"`
	Title            string                  `gorm:"size:200;not null" json:"title"`
	Message          string                  `gorm:"type:text" json:"message"`
	NotificationType domain.NotificationType `gorm:"size:10;not null;default:info;uniqueIndex:idx_notif_user_product_type" json:"notification_type"`
	IsRead           bool                    `gorm:"not null;default:false;index" json:"is_read"`
	RelatedProductID *uint                   `gorm:"uniqueIndex:idx_notif_user_product_type" json:"related_product"`
	CreatedAt        time.Time               `gorm:"autoCreateTime" json:"created_at"`

	User           User     `gorm:"foreignKey:UserID" json:"-"`
	RelatedProduct *Product `gorm:"foreignKey:RelatedProductID;constraint:OnDelete:SET NULL" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}

// NotificationPreferences is one row per user, created lazily with these
// defaults the first time it is read or needed.
type NotificationPreferences struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UserID             uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	EmailNotifications bool      `gorm:"not null;default:true" json:"email_notifications"`
	PushNotifications  bool      `gorm:"not null;default:false" json:"push_notifications"`
	ProductUpdates     bool      `gorm:"not null;default:true" json:"product_updates"`
	MarketingEmails    bool      `gorm:"not null;default:false" json:"marketing_emails"`
	SecurityAlerts     bool      `gorm:"not null;default:true" json:"security_alerts"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (NotificationPreferences) TableName() string {
	return "notification_preferences"
}

// DefaultPreferences returns a fresh row with the documented defaults.
func DefaultPreferences(userID uint) *NotificationPreferences {
	return &NotificationPreferences{
		UserID:             userID,
		EmailNotifications: true,
		PushNotifications:  false,
		ProductUpdates:     true,
		MarketingEmails:    false,
		SecurityAlerts:     true,
	}
}
