package models

import (
	"time"

	"djibtrade/internal/domain"
)

// Subscription is a one-to-one plan flag per user. There is no expiry
// worker: EndDate is informational until someone flips the plan back.
type Subscription struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	UserID    uint        `gorm:"uniqueIndex;not null" json:"user_id"`
	Plan      domain.Plan `gorm:"size:20;not null;default:FREE" json:"plan"`
	StartDate time.Time   `gorm:"autoCreateTime" json:"start_date"`
	EndDate   *time.Time  `json:"end_date"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
