package models

import (
	"time"

	"djibtrade/internal/domain"
)

// User is a company account. Email is the login identifier; phone feeds the
// WhatsApp deep link on the company's listings.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	CompanyName  string    `gorm:"size:255;not null" json:"company_name"`
	LogoURL      string    `gorm:"size:512" json:"logo_url"`
	Phone        string    `gorm:"size:20;not null" json:"phone"`
	Address      string    `gorm:"size:255" json:"address,omitempty"`
	City         string    `gorm:"size:100" json:"city,omitempty"`
	Role         string    `gorm:"size:10;not null;default:user;index" json:"role"` // user | moderator | admin
	IsPremium    bool      `gorm:"default:false" json:"is_premium"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	DateJoined   time.Time `gorm:"autoCreateTime" json:"date_joined"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) IsModerator() bool { return u.Role == domain.RoleModerator }
func (u *User) IsAdmin() bool     { return u.Role == domain.RoleAdmin }

func (User) TableName() string {
	return "users"
}
