package appointment

import (
	"context"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit audit.Sink
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit audit.Sink,
) *DeleteAppointment {
	return &DeleteAppointment{repo: repo, audit: audit}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	actor Actor,
	appointmentID uint,
) error {

	ap, err := loadForActor(ctx, uc.repo, actor, appointmentID)
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteAppointment(ctx, ap.ID); err != nil {
		return notFoundAs(err, "appointment_not_found")
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:   actor.auditID(),
		ActorKind: actor.Kind,
		Action:    "appointment_deleted",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return nil
}
