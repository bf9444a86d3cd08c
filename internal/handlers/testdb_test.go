package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	dbpkg "github.com/BruksfildServices01/barbershop-manager/internal/db"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestDB abre um SQLite em arquivo temporário com o mesmo schema da API.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "barbershop.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := dbpkg.Migrate(gdb, discardLogger()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

type auditSpy struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *auditSpy) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *auditSpy) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, ev := range a.events {
		out = append(out, ev.Action)
	}
	return out
}

// fixture: barbearia, 3 funcionários (3 é admin), 2 serviços, 2 clientes e
// 3 agendamentos.
func seedFixture(t *testing.T, db *gorm.DB) {
	t.Helper()

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	must(db.Create(&models.Barbershop{
		ID: 1, Name: "BarberShop Premium", Address: "Rua das Flores, 123 - Centro",
		OpenTime: "08:00", CloseTime: "18:00", Timezone: "UTC", MinAdvanceMinutes: 120,
	}).Error)

	must(db.Create(&[]models.Service{
		{ID: 1, Name: "Corte Masculino", Price: decimal.NewFromInt(30), DurationMin: 45, Active: true},
		{ID: 2, Name: "Barba", Price: decimal.NewFromInt(20), DurationMin: 30, Active: true},
	}).Error)

	must(db.Create(&[]models.Employee{
		{ID: 1, Name: "Carlos Barbeiro", Email: "carlos@barbearia.com", PasswordHash: "x",
			Position: models.PositionBarber, AccessLevel: models.AccessEmployee,
			CommissionType: models.CommissionPercentage, CommissionValue: decimal.NewFromInt(60), Active: true},
		{ID: 2, Name: "Roberto Silva", Email: "roberto@barbearia.com", PasswordHash: "x",
			Position: models.PositionBarber, AccessLevel: models.AccessEmployee,
			CommissionType: models.CommissionFixed, CommissionValue: decimal.NewFromInt(25), Active: true},
		{ID: 3, Name: "Admin User", Email: "admin@barbearia.com", PasswordHash: "x",
			Position: models.PositionBarber, AccessLevel: models.AccessAdministrator,
			CommissionType: models.CommissionPercentage, CommissionValue: decimal.NewFromInt(70), Active: true},
	}).Error)

	must(db.Create(&[]models.Client{
		{ID: 1, Name: "João Silva", Phone: "(11) 99999-9999", LoyaltyPoints: 3, LoyaltyEnabled: true},
		{ID: 2, Name: "Maria Santos", Phone: "(11) 88888-8888", LoyaltyPoints: 7, LoyaltyEnabled: true},
	}).Error)

	start := time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC)
	must(db.Omit(clause.Associations).Create(&[]models.Appointment{
		{ID: 1, ClientID: 1, EmployeeID: 1, ServiceID: 1, StartTime: start, EndTime: start.Add(45 * time.Minute), Status: "scheduled"},
		{ID: 2, ClientID: 2, EmployeeID: 2, ServiceID: 2, StartTime: start, EndTime: start.Add(30 * time.Minute), Status: "scheduled"},
		{ID: 3, ClientID: 1, EmployeeID: 2, ServiceID: 2, StartTime: start.Add(time.Hour), EndTime: start.Add(90 * time.Minute), Status: "scheduled"},
	}).Error)
}

// authAs simula o AuthMiddleware para um funcionário.
func authAs(id uint, access string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextSubjectID, id)
		c.Set(middleware.ContextSubjectKind, middleware.KindEmployee)
		c.Set(middleware.ContextAccessLevel, access)
		c.Next()
	}
}

func serve(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func countRows(t *testing.T, db *gorm.DB, model any, where string, args ...any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Where(where, args...).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

