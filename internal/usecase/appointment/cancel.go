package appointment

import (
	"context"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit audit.Sink
	now   Clock
}

func NewCancelAppointment(
	repo domain.Repository,
	audit audit.Sink,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
		now:   timezone.NowIn,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actor Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbershop(ctx)
	if err != nil {
		return nil, notFoundAs(err, "barbershop_not_found")
	}

	ap, err := loadForActor(ctx, uc.repo, actor, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.Cancel(ap, uc.now(shop.Timezone)); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:   actor.auditID(),
		ActorKind: actor.Kind,
		Action:    "appointment_cancelled",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
