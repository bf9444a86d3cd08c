package repository

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/barbershop-manager/internal/db"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

var day = time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func newRepo(t *testing.T) (*AppointmentGormRepository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "repo.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := dbpkg.Migrate(db, slog.New(slog.NewTextHandler(io.Discard, nil))); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	must(db.Create(&models.Barbershop{ID: 1, Name: "BarberShop", OpenTime: "08:00", CloseTime: "18:00", Timezone: "UTC", MinAdvanceMinutes: 120}).Error)
	must(db.Create(&models.Service{ID: 1, Name: "Corte", Price: decimal.NewFromInt(30), DurationMin: 45, Active: true}).Error)
	must(db.Create(&[]models.Employee{
		{ID: 1, Name: "Carlos", Email: "carlos@barbearia.com", PasswordHash: "x", AccessLevel: models.AccessEmployee, Active: true},
		{ID: 2, Name: "Roberto", Email: "roberto@barbearia.com", PasswordHash: "x", AccessLevel: models.AccessEmployee, Active: true},
	}).Error)
	must(db.Create(&[]models.Client{
		{ID: 1, Name: "João", Phone: "(11) 99999-9999", LoyaltyPoints: 3, LoyaltyEnabled: true},
		{ID: 2, Name: "Maria", Phone: "(11) 88888-8888", LoyaltyPoints: 0, LoyaltyEnabled: true},
	}).Error)

	must(db.Omit(clause.Associations).Create(&[]models.Appointment{
		{ID: 1, ClientID: 1, EmployeeID: 1, ServiceID: 1, StartTime: at(9, 0), EndTime: at(9, 45), Status: "scheduled"},
		{ID: 2, ClientID: 2, EmployeeID: 1, ServiceID: 1, StartTime: at(11, 0), EndTime: at(11, 45), Status: "cancelled"},
		{ID: 3, ClientID: 1, EmployeeID: 2, ServiceID: 1, StartTime: at(14, 0), EndTime: at(14, 45), Status: "completed"},
		{ID: 4, ClientID: 2, EmployeeID: 2, ServiceID: 1, StartTime: day.AddDate(0, 0, 1).Add(9 * time.Hour), EndTime: day.AddDate(0, 0, 1).Add(10 * time.Hour), Status: "scheduled"},
	}).Error)

	return NewAppointmentGormRepository(db), db
}

func ids(aps []models.Appointment) []uint {
	out := make([]uint, 0, len(aps))
	for _, ap := range aps {
		out = append(out, ap.ID)
	}
	return out
}

func TestListAppointmentsFilters(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		filter domain.ListFilter
		want   []uint
	}{
		{"everything ordered by start", domain.ListFilter{}, []uint{1, 2, 3, 4}},
		{"by employee", domain.ListFilter{EmployeeID: 2}, []uint{3, 4}},
		{"by client", domain.ListFilter{ClientID: 1}, []uint{1, 3}},
		{"single day", domain.ListFilter{From: day, To: day.AddDate(0, 0, 1)}, []uint{1, 2, 3}},
		{"from is inclusive", domain.ListFilter{From: at(11, 0)}, []uint{2, 3, 4}},
		{"to is exclusive", domain.ListFilter{To: at(14, 0)}, []uint{1, 2}},
		{"open only", domain.ListFilter{Statuses: []domain.Status{domain.StatusScheduled}}, []uint{1, 4}},
		{"several statuses", domain.ListFilter{Statuses: []domain.Status{domain.StatusCancelled, domain.StatusCompleted}}, []uint{2, 3}},
		{"combined", domain.ListFilter{EmployeeID: 1, From: day, To: day.AddDate(0, 0, 1), Statuses: []domain.Status{domain.StatusScheduled}}, []uint{1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			aps, err := repo.ListAppointments(ctx, tc.filter)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			got := ids(aps)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestListAppointmentsPreloadsRelations(t *testing.T) {
	repo, _ := newRepo(t)

	aps, err := repo.ListAppointments(context.Background(), domain.ListFilter{ClientID: 2, EmployeeID: 1})
	if err != nil || len(aps) != 1 {
		t.Fatalf("list: %v %v", aps, err)
	}
	if aps[0].Client.Name != "Maria" || aps[0].Employee.Name != "Carlos" || aps[0].Service.DurationMin != 45 {
		t.Fatalf("relations not loaded: %+v", aps[0])
	}
}

func TestCompleteAppointmentCreditsOnce(t *testing.T) {
	repo, db := newRepo(t)
	ctx := context.Background()
	now := at(9, 50)

	first, err := repo.GetAppointment(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	stale, _ := repo.GetAppointment(ctx, 1)

	credit := func(c *models.Client) {
		c.LoyaltyPoints++
		c.LastVisit = &now
	}

	if err := domain.Complete(first, now); err != nil {
		t.Fatalf("complete: %v", err)
	}
	client, err := repo.CompleteAppointment(ctx, first, credit)
	if err != nil {
		t.Fatalf("first completion: %v", err)
	}
	if client.LoyaltyPoints != 4 || client.LastVisit == nil {
		t.Fatalf("unexpected client %+v", client)
	}

	// segunda conclusão com a cópia lida antes da primeira
	if err := domain.Complete(stale, now); err != nil {
		t.Fatalf("complete stale copy: %v", err)
	}
	called := false
	_, err = repo.CompleteAppointment(ctx, stale, func(c *models.Client) { called = true })
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state, got %v", err)
	}
	if called {
		t.Fatal("credit must not run when the appointment was already completed")
	}

	var stored models.Client
	db.First(&stored, 1)
	if stored.LoyaltyPoints != 4 {
		t.Fatalf("expected 4 points stored, got %d", stored.LoyaltyPoints)
	}

	var ap models.Appointment
	db.First(&ap, 1)
	if ap.Status != string(domain.StatusCompleted) || ap.CompletedAt == nil {
		t.Fatalf("appointment not completed: %+v", ap)
	}
}

func TestCompleteAppointmentRejectsCancelled(t *testing.T) {
	repo, db := newRepo(t)

	ap := &models.Appointment{ID: 2, ClientID: 2, Status: string(domain.StatusCompleted)}
	_, err := repo.CompleteAppointment(context.Background(), ap, func(*models.Client) {})
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state, got %v", err)
	}

	var stored models.Appointment
	db.First(&stored, 2)
	if stored.Status != "cancelled" {
		t.Fatalf("cancelled appointment must stay cancelled, got %s", stored.Status)
	}
}
