package models

import "time"

// Cliente da barbearia. PasswordHash só é preenchido para quem usa o portal.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Phone        string `gorm:"size:20;index" json:"phone"`
	Email        string `gorm:"size:100;index" json:"email"`
	PasswordHash string `gorm:"size:255" json:"-"`

	RegistrationDate time.Time  `json:"registration_date"`
	LastVisit        *time.Time `json:"last_visit"`

	LoyaltyPoints  int  `gorm:"default:0" json:"loyalty_points"`
	LoyaltyEnabled bool `gorm:"default:true" json:"loyalty_enabled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
