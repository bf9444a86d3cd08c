package report

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type fakeRepo struct {
	shop         models.Barbershop
	employees    map[uint]*models.Employee
	clients      map[uint]*models.Client
	appointments []models.Appointment
}

var (
	corte = models.Service{ID: 1, Name: "Corte Masculino", Price: decimal.NewFromInt(30), DurationMin: 45, Active: true}
	combo = models.Service{ID: 3, Name: "Corte + Barba", Price: decimal.NewFromInt(45), DurationMin: 75, Active: true}

	carlos = models.Employee{ID: 1, Name: "Carlos Barbeiro", Active: true,
		CommissionType: models.CommissionPercentage, CommissionValue: decimal.NewFromInt(60)}
	roberto = models.Employee{ID: 2, Name: "Roberto Silva", Active: true,
		CommissionType: models.CommissionFixed, CommissionValue: decimal.NewFromInt(25)}
)

func newFakeRepo() *fakeRepo {
	joao := &models.Client{ID: 1, Name: "João Silva", LoyaltyPoints: 3, LoyaltyEnabled: true}
	maria := &models.Client{ID: 2, Name: "Maria Santos", LoyaltyPoints: 7, LoyaltyEnabled: true}

	r := &fakeRepo{
		shop:      models.Barbershop{ID: 1, Name: "BarberShop Premium", Timezone: "UTC"},
		employees: map[uint]*models.Employee{1: &carlos, 2: &roberto},
		clients:   map[uint]*models.Client{1: joao, 2: maria},
	}

	r.add(1, 1, 1, corte, time.Date(2024, 12, 2, 14, 0, 0, 0, time.UTC), "scheduled")
	r.add(2, 2, 2, combo, time.Date(2024, 12, 2, 15, 30, 0, 0, time.UTC), "completed")
	r.add(3, 1, 1, corte, time.Date(2024, 11, 28, 10, 0, 0, 0, time.UTC), "completed")
	r.add(4, 1, 2, corte, time.Date(2024, 12, 3, 9, 0, 0, 0, time.UTC), "cancelled")
	r.add(5, 1, 2, combo, time.Date(2024, 12, 10, 9, 0, 0, 0, time.UTC), "scheduled")
	return r
}

func (r *fakeRepo) add(id, employeeID, clientID uint, svc models.Service, start time.Time, status string) {
	r.appointments = append(r.appointments, models.Appointment{
		ID:         id,
		EmployeeID: employeeID,
		Employee:   *r.employees[employeeID],
		ClientID:   clientID,
		Client:     *r.clients[clientID],
		ServiceID:  svc.ID,
		Service:    svc,
		StartTime:  start,
		EndTime:    start.Add(time.Duration(svc.DurationMin) * time.Minute),
		Status:     status,
	})
}

func (r *fakeRepo) GetBarbershop(ctx context.Context) (*models.Barbershop, error) {
	shop := r.shop
	return &shop, nil
}

func (r *fakeRepo) GetEmployee(ctx context.Context, id uint) (*models.Employee, error) {
	if e, ok := r.employees[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	if c, ok := r.clients[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) ListAppointments(ctx context.Context, f domain.ListFilter) ([]models.Appointment, error) {
	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if f.EmployeeID != 0 && ap.EmployeeID != f.EmployeeID {
			continue
		}
		if f.ClientID != 0 && ap.ClientID != f.ClientID {
			continue
		}
		if !f.From.IsZero() && ap.StartTime.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && !ap.StartTime.Before(f.To) {
			continue
		}
		if len(f.Statuses) > 0 {
			match := false
			for _, s := range f.Statuses {
				match = match || string(s) == ap.Status
			}
			if !match {
				continue
			}
		}
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *fakeRepo) CountClients(ctx context.Context) (int64, error) {
	return int64(len(r.clients)), nil
}

var _ Repository = (*fakeRepo)(nil)

func clockAt(t time.Time) Clock {
	return func(string) time.Time { return t }
}
