package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
	now  Clock
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo, now: timezone.NowIn}
}

// Execute lista os horários livres do funcionário na data. in.Date deve
// estar no fuso da barbearia.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	shop, err := uc.repo.GetBarbershop(ctx)
	if err != nil {
		return nil, notFoundAs(err, "barbershop_not_found")
	}

	svc, emp, err := loadBookable(ctx, uc.repo, in.ServiceID, in.EmployeeID)
	if err != nil {
		return nil, err
	}

	wh, err := uc.repo.GetWorkingHours(ctx, emp.ID, int(in.Date.Weekday()))
	if err != nil {
		return nil, err
	}

	window := domain.ResolveWindow(shop, wh, in.Date)
	if window.Closed {
		return []domain.TimeSlot{}, nil
	}

	dayStart, dayEnd := timezone.DayBounds(in.Date, in.Date.Location())
	appointments, err := uc.repo.ListAppointments(ctx, domain.ListFilter{
		EmployeeID: emp.ID,
		From:       dayStart,
		To:         dayEnd,
		Statuses:   []domain.Status{domain.StatusScheduled, domain.StatusCompleted},
	})
	if err != nil {
		return nil, err
	}

	earliest := uc.now(shop.Timezone).Add(domain.MinAdvance(shop))

	return domain.AvailableSlots(
		window,
		serviceDuration(svc),
		domain.SlotStep,
		domain.BusyIntervals(appointments, 0),
		earliest,
	), nil
}
