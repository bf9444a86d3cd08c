package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

var (
	carlos  = models.Employee{ID: 1, Name: "Carlos Barbeiro", CommissionType: models.CommissionPercentage, CommissionValue: decimal.NewFromInt(60)}
	roberto = models.Employee{ID: 2, Name: "Roberto Silva", CommissionType: models.CommissionFixed, CommissionValue: decimal.NewFromInt(25)}
	corte   = models.Service{ID: 1, Name: "Corte Masculino", Price: decimal.NewFromInt(30), DurationMin: 45}
	combo   = models.Service{ID: 3, Name: "Corte + Barba", Price: decimal.NewFromInt(45), DurationMin: 75}
)

func at(d, h int) time.Time {
	return time.Date(2024, 12, d, h, 0, 0, 0, time.UTC)
}

func ap(id uint, emp models.Employee, svc models.Service, status string, start time.Time) models.Appointment {
	return models.Appointment{
		ID: id, EmployeeID: emp.ID, Employee: emp,
		ServiceID: svc.ID, Service: svc,
		Status: status, StartTime: start,
	}
}

func fixture() []models.Appointment {
	return []models.Appointment{
		ap(1, carlos, corte, "completed", at(2, 14)),
		ap(2, roberto, combo, "completed", at(2, 15)),
		ap(3, carlos, combo, "cancelled", at(3, 10)),
		ap(4, carlos, corte, "scheduled", at(20, 10)),
	}
}

func TestSummarizeAll(t *testing.T) {
	s := Summarize(fixture(), nil, nil)

	if s.Total != 4 || s.Completed != 2 || s.Cancelled != 1 {
		t.Fatalf("unexpected counts %+v", s)
	}
	if !s.Revenue.Equal(decimal.NewFromInt(75)) {
		t.Fatalf("expected revenue 75, got %s", s.Revenue)
	}
	// 18 (60% de 30) + 25 fixo
	if !s.Commissions.Equal(decimal.NewFromInt(43)) {
		t.Fatalf("expected commissions 43, got %s", s.Commissions)
	}
	if !s.NetRevenue.Equal(decimal.NewFromInt(32)) {
		t.Fatalf("expected net 32, got %s", s.NetRevenue)
	}
	if len(s.Employees) != 2 || s.Employees[0].Name != "Carlos Barbeiro" || s.Employees[0].Appointments != 1 {
		t.Fatalf("unexpected employee stats %+v", s.Employees)
	}
	if len(s.Services) != 2 || !s.Services[1].Revenue.Equal(decimal.NewFromInt(45)) {
		t.Fatalf("unexpected service stats %+v", s.Services)
	}
}

func TestSummarizeRangeIsInclusive(t *testing.T) {
	from := time.Date(2024, 12, 3, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 3, 0, 0, 0, 0, time.UTC)

	s := Summarize(fixture(), &from, &to)
	if s.Total != 1 || s.Cancelled != 1 || s.Completed != 0 {
		t.Fatalf("expected only the 3rd december appointment, got %+v", s)
	}
	if len(s.Employees) != 0 {
		t.Fatal("employees without completed work are omitted")
	}
}

func TestBuildDashboard(t *testing.T) {
	now := at(2, 9)
	aps := fixture()
	for i := 5; i < 10; i++ {
		aps = append(aps, ap(uint(i), carlos, corte, "scheduled", at(i+5, 9)))
	}

	d := BuildDashboard(3, aps, now)
	if d.TotalClients != 3 {
		t.Fatalf("expected 3 clients, got %d", d.TotalClients)
	}
	if d.TodayAppointments != 2 {
		t.Fatalf("expected 2 today, got %d", d.TodayAppointments)
	}
	if d.CompletedServices != 2 || !d.MonthRevenue.Equal(decimal.NewFromInt(75)) {
		t.Fatalf("unexpected completed=%d revenue=%s", d.CompletedServices, d.MonthRevenue)
	}
	if len(d.Recent) != RecentLimit {
		t.Fatalf("expected %d recent, got %d", RecentLimit, len(d.Recent))
	}
	if d.Recent[0].ID != 4 {
		t.Fatalf("expected most recent first (id 4 on the 20th), got %d", d.Recent[0].ID)
	}
	for _, r := range d.Recent {
		if r.Status == "cancelled" {
			t.Fatal("cancelled appointments are not listed as recent")
		}
	}
}
