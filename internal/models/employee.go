package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PositionBarber       = "barbeiro"
	PositionReception    = "recepcao"
	PositionAssistant    = "auxiliar"
	AccessEmployee       = "funcionario"
	AccessAdministrator  = "administrador"
	CommissionPercentage = "percentage"
	CommissionFixed      = "fixed"
)

type Employee struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Position     string `gorm:"size:20;default:'barbeiro'" json:"position"`
	AccessLevel  string `gorm:"size:20;default:'funcionario'" json:"access_level"`

	CommissionType  string          `gorm:"size:20" json:"commission_type"`
	CommissionValue decimal.Decimal `gorm:"type:numeric(10,2);default:0" json:"commission_value"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *Employee) IsAdmin() bool {
	return e.AccessLevel == AccessAdministrator
}
