package models

import "time"

// Configuração única da barbearia
type Barbershop struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"size:100;not null" json:"name"`
	Phone             string    `gorm:"size:20" json:"phone"`
	Address           string    `gorm:"size:255" json:"address"`
	OpenTime          string    `gorm:"size:5;default:'08:00'" json:"open_time"`
	CloseTime         string    `gorm:"size:5;default:'18:00'" json:"close_time"`
	Timezone          string    `gorm:"size:64;default:'America/Sao_Paulo'" json:"timezone"`
	MinAdvanceMinutes int       `gorm:"default:120" json:"min_advance_minutes"`
	LogoURL           string    `gorm:"size:512" json:"logo_url"`
	BannerURL         string    `gorm:"size:512" json:"banner_url"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
