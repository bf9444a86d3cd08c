package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EmployeeID uint     `gorm:"index" json:"employee_id"`
	Employee   Employee `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"employee"`

	ClientID uint   `gorm:"index" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"client"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
