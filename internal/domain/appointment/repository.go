package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type ListFilter struct {
	EmployeeID uint
	ClientID   uint
	From       time.Time
	To         time.Time
	Statuses   []Status
}

type Repository interface {
	// -------- Barbershop --------
	GetBarbershop(ctx context.Context) (*models.Barbershop, error)

	// -------- Catalog / people --------
	GetService(ctx context.Context, id uint) (*models.Service, error)
	GetEmployee(ctx context.Context, id uint) (*models.Employee, error)
	GetClient(ctx context.Context, id uint) (*models.Client, error)

	GetOrCreateClient(
		ctx context.Context,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Availability --------
	// Devolve (nil, nil) quando o funcionário não tem horário próprio.
	GetWorkingHours(
		ctx context.Context,
		employeeID uint,
		weekday int,
	) (*models.WorkingHours, error)

	ListAppointments(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, error)

	// -------- Appointment --------
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error
	DeleteAppointment(ctx context.Context, id uint) error

	// CompleteAppointment grava a transição scheduled -> completed só se o
	// agendamento ainda estiver agendado (senão invalid_state) e, na mesma
	// transação, aplica credit ao cliente relido com lock. Devolve o
	// cliente já atualizado.
	CompleteAppointment(
		ctx context.Context,
		ap *models.Appointment,
		credit func(client *models.Client),
	) (*models.Client, error)
}
