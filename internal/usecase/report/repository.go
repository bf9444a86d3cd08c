package report

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

// Repository é o recorte de leitura usado pelos painéis e relatórios.
type Repository interface {
	GetBarbershop(ctx context.Context) (*models.Barbershop, error)
	GetEmployee(ctx context.Context, id uint) (*models.Employee, error)
	GetClient(ctx context.Context, id uint) (*models.Client, error)
	ListAppointments(ctx context.Context, filter domain.ListFilter) ([]models.Appointment, error)
	CountClients(ctx context.Context) (int64, error)
}

// Clock devolve o "agora" no fuso informado.
type Clock func(tz string) time.Time
