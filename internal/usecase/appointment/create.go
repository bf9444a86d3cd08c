package appointment

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/notify"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	Actor Actor

	EmployeeID uint
	ServiceID  uint

	// ClientID tem prioridade; sem ele o cliente é buscado pelo telefone
	// ou criado.
	ClientID    uint
	ClientName  string
	ClientPhone string
	ClientEmail string

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo   domain.Repository
	audit  audit.Sink
	notify notify.Notifier
	now    Clock
}

func NewCreateAppointment(
	repo domain.Repository,
	audit audit.Sink,
	notifier notify.Notifier,
) *CreateAppointment {
	return &CreateAppointment{
		repo:   repo,
		audit:  audit,
		notify: notifier,
		now:    timezone.NowIn,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// 1️⃣ Barbearia
	shop, err := uc.repo.GetBarbershop(ctx)
	if err != nil {
		return nil, notFoundAs(err, "barbershop_not_found")
	}

	// 2️⃣ Data / hora no timezone da barbearia
	start, err := timezone.ParseDateTime(in.Date, in.Time, timezone.Location(shop.Timezone))
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// 3️⃣ Antecedência mínima
	if err := domain.CheckAdvance(start, uc.now(shop.Timezone), domain.MinAdvance(shop)); err != nil {
		return nil, err
	}

	// 4️⃣ Serviço e funcionário
	svc, emp, err := loadBookable(ctx, uc.repo, in.ServiceID, in.EmployeeID)
	if err != nil {
		return nil, err
	}

	end := start.Add(serviceDuration(svc))

	// 5️⃣ Expediente + conflito
	if err := checkSlot(ctx, uc.repo, shop, emp.ID, start, end, 0); err != nil {
		return nil, err
	}

	// 6️⃣ Cliente
	client, err := uc.resolveClient(ctx, in)
	if err != nil {
		return nil, err
	}

	// 7️⃣ Criação (status centralizado)
	ap := &models.Appointment{
		EmployeeID: emp.ID,
		ClientID:   client.ID,
		ServiceID:  svc.ID,
		StartTime:  start,
		EndTime:    end,
		Status:     string(domain.InitialStatus()),
		Notes:      in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsExclusionConflict(err) {
			uc.audit.Dispatch(audit.Event{
				ActorID:   in.Actor.auditID(),
				ActorKind: in.Actor.Kind,
				Action:    "appointment_conflict",
				Entity:    "appointment",
				Metadata:  map[string]any{"start": start, "end": end, "employee_id": emp.ID},
			})
			return nil, httperr.ErrBusiness("time_conflict")
		}
		return nil, err
	}

	ap.Client = *client
	ap.Service = *svc
	ap.Employee = *emp

	// 8️⃣ Auditoria + confirmação
	uc.audit.Dispatch(audit.Event{
		ActorID:   in.Actor.auditID(),
		ActorKind: in.Actor.Kind,
		Action:    "appointment_created",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	uc.notify.Enqueue(notify.BookingConfirmation{
		ClientName:   client.Name,
		ClientEmail:  client.Email,
		ShopName:     shop.Name,
		ShopAddress:  shop.Address,
		ServiceName:  svc.Name,
		EmployeeName: emp.Name,
		Start:        start,
	})

	return ap, nil
}

func (uc *CreateAppointment) resolveClient(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Client, error) {

	if in.ClientID != 0 {
		client, err := uc.repo.GetClient(ctx, in.ClientID)
		if err != nil {
			return nil, notFoundAs(err, "client_not_found")
		}
		return client, nil
	}

	name := strings.TrimSpace(in.ClientName)
	phone := strings.TrimSpace(in.ClientPhone)
	if name == "" || phone == "" {
		return nil, httperr.ErrBusiness("client_required")
	}

	return uc.repo.GetOrCreateClient(ctx, name, phone, strings.TrimSpace(in.ClientEmail))
}
