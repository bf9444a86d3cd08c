package appointment

import (
	"context"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/domain/commission"
	"github.com/BruksfildServices01/barbershop-manager/internal/domain/loyalty"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

type CompleteResult struct {
	Appointment *models.Appointment `json:"appointment"`
	Commission  commission.Split    `json:"commission"`
	Loyalty     loyalty.Progress    `json:"loyalty"`
	Rewarded    bool                `json:"rewarded"`
}

type CompleteAppointment struct {
	repo  domain.Repository
	audit audit.Sink
	now   Clock
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit audit.Sink,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		audit: audit,
		now:   timezone.NowIn,
	}
}

// Execute conclui o atendimento e credita o ponto de fidelidade do cliente
// na mesma transação.
func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	actor Actor,
	appointmentID uint,
) (*CompleteResult, error) {

	shop, err := uc.repo.GetBarbershop(ctx)
	if err != nil {
		return nil, notFoundAs(err, "barbershop_not_found")
	}

	ap, err := loadForActor(ctx, uc.repo, actor, appointmentID)
	if err != nil {
		return nil, err
	}

	now := uc.now(shop.Timezone)
	if err := domain.Complete(ap, now); err != nil {
		return nil, err
	}

	// A pontuação é calculada sobre o cliente relido dentro da transação.
	var rewarded bool
	client, err := uc.repo.CompleteAppointment(ctx, ap, func(c *models.Client) {
		rewarded = loyalty.AccrueClient(c)
		c.LastVisit = &now
	})
	if err != nil {
		return nil, notFoundAs(err, "client_not_found")
	}
	ap.Client = *client

	uc.audit.Dispatch(audit.Event{
		ActorID:   actor.auditID(),
		ActorKind: actor.Kind,
		Action:    "appointment_completed",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	if rewarded {
		uc.audit.Dispatch(audit.Event{
			ActorID:   actor.auditID(),
			ActorKind: actor.Kind,
			Action:    "loyalty_reward_earned",
			Entity:    "client",
			EntityID:  &client.ID,
			Metadata:  map[string]any{"appointment_id": ap.ID},
		})
	}

	return &CompleteResult{
		Appointment: ap,
		Commission:  commission.ForAppointment(*ap),
		Loyalty:     loyalty.ProgressOf(client),
		Rewarded:    rewarded,
	}, nil
}
