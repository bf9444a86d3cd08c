package appointment

import (
	"context"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

// UpdateAppointmentInput: campos nil não mudam.
type UpdateAppointmentInput struct {
	Actor Actor
	ID    uint

	EmployeeID *uint
	ServiceID  *uint
	Date       *string
	Time       *string
	Notes      *string
}

func (in UpdateAppointmentInput) reschedules() bool {
	return in.EmployeeID != nil || in.ServiceID != nil || in.Date != nil || in.Time != nil
}

type UpdateAppointment struct {
	repo  domain.Repository
	audit audit.Sink
	now   Clock
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit audit.Sink,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
		now:   timezone.NowIn,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbershop(ctx)
	if err != nil {
		return nil, notFoundAs(err, "barbershop_not_found")
	}

	ap, err := loadForActor(ctx, uc.repo, in.Actor, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Notes != nil {
		ap.Notes = *in.Notes
	}

	if in.reschedules() {
		if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
			return nil, err
		}
		if err := uc.reschedule(ctx, shop, ap, in); err != nil {
			return nil, err
		}
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, httperr.ErrBusiness("time_conflict")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:   in.Actor.auditID(),
		ActorKind: in.Actor.Kind,
		Action:    "appointment_updated",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}

func (uc *UpdateAppointment) reschedule(
	ctx context.Context,
	shop *models.Barbershop,
	ap *models.Appointment,
	in UpdateAppointmentInput,
) error {

	loc := timezone.Location(shop.Timezone)
	current := ap.StartTime.In(loc)

	date := current.Format("2006-01-02")
	hm := current.Format("15:04")
	if in.Date != nil {
		date = *in.Date
	}
	if in.Time != nil {
		hm = *in.Time
	}

	start, err := timezone.ParseDateTime(date, hm, loc)
	if err != nil {
		return httperr.ErrBusiness("invalid_date_or_time")
	}
	if err := domain.CheckAdvance(start, uc.now(shop.Timezone), domain.MinAdvance(shop)); err != nil {
		return err
	}

	serviceID, employeeID := ap.ServiceID, ap.EmployeeID
	if in.ServiceID != nil {
		serviceID = *in.ServiceID
	}
	if in.EmployeeID != nil {
		employeeID = *in.EmployeeID
	}

	svc, emp, err := loadBookable(ctx, uc.repo, serviceID, employeeID)
	if err != nil {
		return err
	}

	end := start.Add(serviceDuration(svc))
	if err := checkSlot(ctx, uc.repo, shop, emp.ID, start, end, ap.ID); err != nil {
		return err
	}

	ap.ServiceID, ap.Service = svc.ID, *svc
	ap.EmployeeID, ap.Employee = emp.ID, *emp
	ap.StartTime, ap.EndTime = start, end
	return nil
}
