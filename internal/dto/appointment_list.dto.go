package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barbershop-manager/internal/domain/commission"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type AppointmentListDTO struct {
	ID           uint            `json:"id"`
	StartTime    time.Time       `json:"start_time"`
	EndTime      time.Time       `json:"end_time"`
	Status       string          `json:"status"`
	Notes        string          `json:"notes"`
	ClientID     uint            `json:"client_id"`
	ClientName   string          `json:"client_name"`
	EmployeeID   uint            `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	ServiceID    uint            `json:"service_id"`
	ServiceName  string          `json:"service_name"`
	Price        decimal.Decimal `json:"price"`
	Commission   decimal.Decimal `json:"commission"`
}

func AppointmentFrom(ap models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		ID:           ap.ID,
		StartTime:    ap.StartTime,
		EndTime:      ap.EndTime,
		Status:       ap.Status,
		Notes:        ap.Notes,
		ClientID:     ap.ClientID,
		ClientName:   ap.Client.Name,
		EmployeeID:   ap.EmployeeID,
		EmployeeName: ap.Employee.Name,
		ServiceID:    ap.ServiceID,
		ServiceName:  ap.Service.Name,
		Price:        ap.Service.Price,
		Commission:   commission.ForAppointment(ap).Employee,
	}
}

func AppointmentList(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, AppointmentFrom(ap))
	}
	return out
}
