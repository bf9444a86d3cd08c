package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/dto"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

// Execute lista a agenda do dia; employeeID 0 traz todos os funcionários.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	employeeID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	shop, err := uc.repo.GetBarbershop(ctx)
	if err != nil {
		return nil, notFoundAs(err, "barbershop_not_found")
	}

	loc := timezone.Location(shop.Timezone)
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)

	appointments, err := uc.repo.ListAppointments(ctx, domain.ListFilter{
		EmployeeID: employeeID,
		From:       start,
		To:         end,
	})
	if err != nil {
		return nil, err
	}

	return dto.AppointmentList(appointments), nil
}
