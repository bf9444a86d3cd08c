package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/dto"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

type ListAppointmentsByMonth struct {
	repo domain.Repository
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo: repo,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	employeeID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	shop, err := uc.repo.GetBarbershop(ctx)
	if err != nil {
		return nil, notFoundAs(err, "barbershop_not_found")
	}

	loc := timezone.Location(shop.Timezone)
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

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
