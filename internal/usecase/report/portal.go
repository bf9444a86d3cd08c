package report

import (
	"context"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/domain/commission"
	"github.com/BruksfildServices01/barbershop-manager/internal/domain/loyalty"
	"github.com/BruksfildServices01/barbershop-manager/internal/dto"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

// ======================================================
// EMPLOYEE PORTAL
// ======================================================

type EmployeePortal struct {
	Employee          *models.Employee         `json:"employee"`
	Today             []dto.AppointmentListDTO `json:"today"`
	Appointments      []dto.AppointmentListDTO `json:"appointments"`
	CompletedServices int                      `json:"completed_services"`
	MonthlyEarnings   decimal.Decimal          `json:"monthly_earnings"`
}

type GetEmployeePortal struct {
	repo Repository
	now  Clock
}

func NewGetEmployeePortal(repo Repository) *GetEmployeePortal {
	return &GetEmployeePortal{repo: repo, now: timezone.NowIn}
}

func (uc *GetEmployeePortal) Execute(ctx context.Context, employeeID uint) (*EmployeePortal, error) {
	shop, err := uc.repo.GetBarbershop(ctx)
	if err != nil {
		return nil, notFoundAs(err, "barbershop_not_found")
	}

	emp, err := uc.repo.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, notFoundAs(err, "employee_not_found")
	}

	aps, err := uc.repo.ListAppointments(ctx, domain.ListFilter{EmployeeID: emp.ID})
	if err != nil {
		return nil, err
	}

	now := uc.now(shop.Timezone)
	dayStart, dayEnd := timezone.DayBounds(now, now.Location())

	p := &EmployeePortal{
		Employee:        emp,
		Today:           []dto.AppointmentListDTO{},
		Appointments:    dto.AppointmentList(aps),
		MonthlyEarnings: commission.MonthlyEarnings(emp.ID, aps, now),
	}

	for _, ap := range aps {
		if domain.Status(ap.Status) == domain.StatusCompleted {
			p.CompletedServices++
		}
		if !ap.StartTime.Before(dayStart) && ap.StartTime.Before(dayEnd) {
			p.Today = append(p.Today, dto.AppointmentFrom(ap))
		}
	}

	return p, nil
}

// ======================================================
// CLIENT PORTAL
// ======================================================

type ClientPortal struct {
	Client       *models.Client           `json:"client"`
	Loyalty      loyalty.Progress         `json:"loyalty"`
	Upcoming     []dto.AppointmentListDTO `json:"upcoming"`
	TotalVisits  int                      `json:"total_visits"`
	LastServices []dto.AppointmentListDTO `json:"last_services"`
}

const lastServicesLimit = 5

type GetClientPortal struct {
	repo Repository
	now  Clock
}

func NewGetClientPortal(repo Repository) *GetClientPortal {
	return &GetClientPortal{repo: repo, now: timezone.NowIn}
}

// Execute monta o portal do cliente: fidelidade, próximos agendamentos em
// ordem de início e os últimos atendimentos concluídos.
func (uc *GetClientPortal) Execute(ctx context.Context, clientID uint) (*ClientPortal, error) {
	shop, err := uc.repo.GetBarbershop(ctx)
	if err != nil {
		return nil, notFoundAs(err, "barbershop_not_found")
	}

	client, err := uc.repo.GetClient(ctx, clientID)
	if err != nil {
		return nil, notFoundAs(err, "client_not_found")
	}

	upcoming, err := uc.repo.ListAppointments(ctx, domain.ListFilter{
		ClientID: client.ID,
		From:     uc.now(shop.Timezone),
		Statuses: []domain.Status{domain.StatusScheduled},
	})
	if err != nil {
		return nil, err
	}

	done, err := uc.repo.ListAppointments(ctx, domain.ListFilter{
		ClientID: client.ID,
		Statuses: []domain.Status{domain.StatusCompleted},
	})
	if err != nil {
		return nil, err
	}

	last := make([]dto.AppointmentListDTO, 0, lastServicesLimit)
	for i := len(done) - 1; i >= 0 && len(last) < lastServicesLimit; i-- {
		last = append(last, dto.AppointmentFrom(done[i]))
	}

	return &ClientPortal{
		Client:       client,
		Loyalty:      loyalty.ProgressOf(client),
		Upcoming:     dto.AppointmentList(upcoming),
		TotalVisits:  len(done),
		LastServices: last,
	}, nil
}
