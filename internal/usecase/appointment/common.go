package appointment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

// Clock devolve o "agora" no fuso informado.
type Clock func(tz string) time.Time

// Actor identifica quem dispara o caso de uso. Admin enxerga todos os
// agendamentos; os demais funcionários só os próprios.
type Actor struct {
	ID    uint
	Kind  string
	Admin bool
}

func (a Actor) auditID() *uint {
	if a.ID == 0 {
		return nil
	}
	id := a.ID
	return &id
}

func (a Actor) canTouch(ap *models.Appointment) bool {
	if a.Admin {
		return true
	}
	switch a.Kind {
	case audit.ActorEmployee:
		return ap.EmployeeID == a.ID
	case audit.ActorClient:
		return ap.ClientID == a.ID
	}
	return false
}

func notFoundAs(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}

// loadForActor busca o agendamento e esconde os que o ator não pode ver.
func loadForActor(
	ctx context.Context,
	repo domain.Repository,
	actor Actor,
	id uint,
) (*models.Appointment, error) {

	ap, err := repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "appointment_not_found")
	}
	if !actor.canTouch(ap) {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	return ap, nil
}

// checkSlot valida expediente e conflitos para [start, end) do funcionário.
func checkSlot(
	ctx context.Context,
	repo domain.Repository,
	shop *models.Barbershop,
	employeeID uint,
	start time.Time,
	end time.Time,
	skipID uint,
) error {

	wh, err := repo.GetWorkingHours(ctx, employeeID, int(start.Weekday()))
	if err != nil {
		return err
	}

	window := domain.ResolveWindow(shop, wh, start)
	if !window.Contains(start, end) {
		return httperr.ErrBusiness("outside_working_hours")
	}

	dayStart, dayEnd := timezone.DayBounds(start, start.Location())
	existing, err := repo.ListAppointments(ctx, domain.ListFilter{
		EmployeeID: employeeID,
		From:       dayStart,
		To:         dayEnd,
		Statuses:   []domain.Status{domain.StatusScheduled, domain.StatusCompleted},
	})
	if err != nil {
		return err
	}

	busy := domain.BusyIntervals(existing, skipID)
	if domain.OverlapsAny(domain.Interval{Start: start, End: end}, busy) {
		return httperr.ErrBusiness("time_conflict")
	}

	return nil
}

func loadBookable(
	ctx context.Context,
	repo domain.Repository,
	serviceID uint,
	employeeID uint,
) (*models.Service, *models.Employee, error) {

	svc, err := repo.GetService(ctx, serviceID)
	if err != nil {
		return nil, nil, notFoundAs(err, "service_not_found")
	}
	if !svc.Active {
		return nil, nil, httperr.ErrBusiness("service_not_found")
	}

	emp, err := repo.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, nil, notFoundAs(err, "employee_not_found")
	}
	if !emp.Active {
		return nil, nil, httperr.ErrBusiness("employee_not_found")
	}

	return svc, emp, nil
}

func serviceDuration(svc *models.Service) time.Duration {
	if svc.DurationMin <= 0 {
		return domain.DefaultDuration
	}
	return time.Duration(svc.DurationMin) * time.Minute
}
