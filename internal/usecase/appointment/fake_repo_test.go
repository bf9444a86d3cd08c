package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/notify"
)

type fakeRepo struct {
	shop         models.Barbershop
	services     map[uint]*models.Service
	employees    map[uint]*models.Employee
	clients      map[uint]*models.Client
	workingHours map[uint]map[int]*models.WorkingHours
	appointments map[uint]*models.Appointment
	nextID       uint
	createErr    error
}

func newFakeRepo() *fakeRepo {
	r := &fakeRepo{
		shop: models.Barbershop{
			ID: 1, Name: "BarberShop Premium", Address: "Rua das Flores, 123 - Centro",
			OpenTime: "08:00", CloseTime: "18:00", Timezone: "UTC", MinAdvanceMinutes: 120,
		},
		services: map[uint]*models.Service{
			1: {ID: 1, Name: "Corte Masculino", Price: decimal.NewFromInt(30), DurationMin: 45, Active: true},
			2: {ID: 2, Name: "Barba", Price: decimal.NewFromInt(20), DurationMin: 30, Active: true},
			3: {ID: 3, Name: "Corte + Barba", Price: decimal.NewFromInt(45), DurationMin: 75, Active: true},
		},
		employees: map[uint]*models.Employee{
			1: {ID: 1, Name: "Carlos Barbeiro", Active: true, Position: models.PositionBarber,
				CommissionType: models.CommissionPercentage, CommissionValue: decimal.NewFromInt(60)},
			2: {ID: 2, Name: "Roberto Silva", Active: true, Position: models.PositionBarber,
				CommissionType: models.CommissionFixed, CommissionValue: decimal.NewFromInt(25)},
			9: {ID: 9, Name: "Inativo", Active: false},
		},
		clients: map[uint]*models.Client{
			1: {ID: 1, Name: "João Silva", Phone: "(11) 99999-9999", Email: "joao@email.com", LoyaltyPoints: 3, LoyaltyEnabled: true},
			2: {ID: 2, Name: "Maria Santos", Phone: "(11) 88888-8888", LoyaltyPoints: 7, LoyaltyEnabled: true},
		},
		workingHours: map[uint]map[int]*models.WorkingHours{},
		appointments: map[uint]*models.Appointment{},
		nextID:       100,
	}
	return r
}

func (r *fakeRepo) id() uint {
	r.nextID++
	return r.nextID
}

func (r *fakeRepo) hydrate(ap models.Appointment) models.Appointment {
	if s, ok := r.services[ap.ServiceID]; ok {
		ap.Service = *s
	}
	if e, ok := r.employees[ap.EmployeeID]; ok {
		ap.Employee = *e
	}
	if c, ok := r.clients[ap.ClientID]; ok {
		ap.Client = *c
	}
	return ap
}

func (r *fakeRepo) add(ap models.Appointment) *models.Appointment {
	if ap.ID == 0 {
		ap.ID = r.id()
	}
	r.appointments[ap.ID] = &ap
	return &ap
}

func (r *fakeRepo) GetBarbershop(ctx context.Context) (*models.Barbershop, error) {
	shop := r.shop
	return &shop, nil
}

func (r *fakeRepo) GetService(ctx context.Context, id uint) (*models.Service, error) {
	if s, ok := r.services[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
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

func (r *fakeRepo) GetOrCreateClient(ctx context.Context, name, phone, email string) (*models.Client, error) {
	for _, c := range r.clients {
		if c.Phone == phone {
			cp := *c
			return &cp, nil
		}
	}
	c := &models.Client{ID: r.id(), Name: name, Phone: phone, Email: email, LoyaltyEnabled: true}
	r.clients[c.ID] = c
	cp := *c
	return &cp, nil
}

func (r *fakeRepo) GetWorkingHours(ctx context.Context, employeeID uint, weekday int) (*models.WorkingHours, error) {
	if byDay, ok := r.workingHours[employeeID]; ok {
		if wh, ok := byDay[weekday]; ok {
			cp := *wh
			return &cp, nil
		}
	}
	return nil, nil
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
				if string(s) == ap.Status {
					match = true
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, r.hydrate(*ap))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	if r.createErr != nil {
		return r.createErr
	}
	ap.ID = r.id()
	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *fakeRepo) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	if ap, ok := r.appointments[id]; ok {
		cp := r.hydrate(*ap)
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	if _, ok := r.appointments[ap.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *fakeRepo) DeleteAppointment(ctx context.Context, id uint) error {
	if _, ok := r.appointments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.appointments, id)
	return nil
}

func (r *fakeRepo) CompleteAppointment(
	ctx context.Context,
	ap *models.Appointment,
	credit func(client *models.Client),
) (*models.Client, error) {
	stored, ok := r.appointments[ap.ID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if stored.Status != string(domain.StatusScheduled) {
		return nil, httperr.ErrBusiness("invalid_state")
	}
	current, ok := r.clients[ap.ClientID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	fresh := *current
	credit(&fresh)

	done := *ap
	r.appointments[ap.ID] = &done
	r.clients[fresh.ID] = &fresh

	out := fresh
	return &out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

type recordingAudit struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *recordingAudit) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *recordingAudit) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, ev := range a.events {
		out = append(out, ev.Action)
	}
	return out
}

type recordingNotifier struct {
	sent []notify.BookingConfirmation
}

func (n *recordingNotifier) Enqueue(c notify.BookingConfirmation) {
	n.sent = append(n.sent, c)
}

func (n *recordingNotifier) Close() {}

// Segunda-feira, 2 de dezembro de 2024, 08:00 UTC.
var fixedNow = time.Date(2024, 12, 2, 8, 0, 0, 0, time.UTC)

func fixedClock(string) time.Time { return fixedNow }

func at(h, m int) time.Time {
	return time.Date(2024, 12, 2, h, m, 0, 0, time.UTC)
}
