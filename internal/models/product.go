package models

import (
	"time"

	"djibtrade/internal/domain"
)

// Product is a published listing. TotalPrice and WhatsappLink are derived at
// save time and never accepted from clients; Views is bumped on every
// retrieve.
type Product struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OwnerID     uint    `gorm:"not null;index" json:"owner_id"`
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
	UnitPrice   int64   `gorm:"not null" json:"unit_price"`
	Currency    domain.Currency `gorm:"size:3;not null;default:DJF" json:"currency"`
	Stock       int64   `gorm:"not null;default:1" json:"stock"`
	TotalPrice  *int64  `json:"total_price"`
	CategoryID  *uint   `gorm:"index" json:"category"`
	City        string  `gorm:"size:100" json:"city,omitempty"`
	ImageURL    string  `gorm:"size:512;not null" json:"image"`

	ContactMethod   domain.ContactMethod `gorm:"size:10;not null;default:whatsapp" json:"contact_method"`
	WhatsappContact string               `gorm:"size:20" json:"whatsapp_contact,omitempty"`
	PhoneContact    string               `gorm:"size:20" json:"phone_contact,omitempty"`
	WhatsappLink    *string              `gorm:"size:255" json:"whatsapp_link"`

	Views     uint      `gorm:"not null;default:0" json:"views"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner    User      `gorm:"foreignKey:OwnerID" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
