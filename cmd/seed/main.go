package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/config"
	dbpkg "github.com/BruksfildServices01/barbershop-manager/internal/db"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

// Popula o banco com os dados de demonstração. Não faz nada se a barbearia
// já existir.
func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, err := dbpkg.NewDB(cfg, logger)
	if err != nil {
		logger.Error("database setup failed", "error", err)
		os.Exit(1)
	}

	var count int64
	db.Model(&models.Barbershop{}).Count(&count)
	if count > 0 {
		logger.Info("barbershop already seeded, nothing to do")
		return
	}

	if err := db.Transaction(seed); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
	logger.Info("seed completed")
}

func seed(tx *gorm.DB) error {
	shop := models.Barbershop{
		Name:              "BarberShop Premium",
		Address:           "Rua das Flores, 123 - Centro",
		OpenTime:          "08:00",
		CloseTime:         "18:00",
		Timezone:          "America/Sao_Paulo",
		MinAdvanceMinutes: 120,
	}
	if err := tx.Create(&shop).Error; err != nil {
		return fmt.Errorf("barbershop: %w", err)
	}
	loc := timezone.Location(shop.Timezone)

	// --------------------------------------------------
	// Serviços
	// --------------------------------------------------
	services := []models.Service{
		{Name: "Corte Masculino", Price: decimal.NewFromInt(30), DurationMin: 45, Active: true},
		{Name: "Barba", Price: decimal.NewFromInt(20), DurationMin: 30, Active: true},
		{Name: "Corte + Barba", Price: decimal.NewFromInt(45), DurationMin: 75, Active: true},
	}
	if err := tx.Create(&services).Error; err != nil {
		return fmt.Errorf("services: %w", err)
	}

	// --------------------------------------------------
	// Funcionários
	// --------------------------------------------------
	type employeeSeed struct {
		models.Employee
		password string
	}
	seeds := []employeeSeed{
		{models.Employee{
			Name: "Carlos Barbeiro", Phone: "(11) 77777-7777", Email: "carlos@barbearia.com",
			Position: models.PositionBarber, AccessLevel: models.AccessEmployee,
			CommissionType: models.CommissionPercentage, CommissionValue: decimal.NewFromInt(60),
			Active: true,
		}, "123456"},
		{models.Employee{
			Name: "Roberto Silva", Phone: "(11) 66666-6666", Email: "roberto@barbearia.com",
			Position: models.PositionBarber, AccessLevel: models.AccessEmployee,
			CommissionType: models.CommissionFixed, CommissionValue: decimal.NewFromInt(25),
			Active: true,
		}, "123456"},
		{models.Employee{
			Name: "Admin User", Phone: "(11) 55555-5555", Email: "admin@barbearia.com",
			Position: models.PositionBarber, AccessLevel: models.AccessAdministrator,
			CommissionType: models.CommissionPercentage, CommissionValue: decimal.NewFromInt(70),
			Active: true,
		}, "admin123"},
	}

	employees := make([]models.Employee, 0, len(seeds))
	for _, s := range seeds {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		e := s.Employee
		e.PasswordHash = string(hash)
		employees = append(employees, e)
	}
	if err := tx.Create(&employees).Error; err != nil {
		return fmt.Errorf("employees: %w", err)
	}

	// --------------------------------------------------
	// Clientes
	// --------------------------------------------------
	portalHash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	day := func(s string) time.Time {
		t, _ := timezone.ParseDate(s, loc)
		return t
	}
	visit := func(s string) *time.Time {
		t := day(s)
		return &t
	}

	clients := []models.Client{
		{
			Name: "João Silva", Phone: "(11) 99999-9999", Email: "joao@email.com",
			RegistrationDate: day("2024-01-15"), LastVisit: visit("2024-12-01"),
			LoyaltyPoints: 3, LoyaltyEnabled: true,
		},
		{
			Name: "Maria Santos", Phone: "(11) 88888-8888", Email: "maria@email.com",
			RegistrationDate: day("2024-02-20"), LastVisit: visit("2024-11-28"),
			LoyaltyPoints: 7, LoyaltyEnabled: true,
		},
		{
			Name: "João Cliente", Phone: "(11) 77777-7777", Email: "cliente@teste.com",
			PasswordHash:     string(portalHash),
			RegistrationDate: day("2024-03-01"), LastVisit: visit("2024-11-30"),
			LoyaltyPoints: 2, LoyaltyEnabled: true,
		},
	}
	if err := tx.Create(&clients).Error; err != nil {
		return fmt.Errorf("clients: %w", err)
	}

	// --------------------------------------------------
	// Agendamentos
	// --------------------------------------------------
	first, _ := timezone.ParseDateTime("2024-12-02", "14:00", loc)
	second, _ := timezone.ParseDateTime("2024-12-02", "15:30", loc)
	completedAt := second.Add(time.Duration(services[2].DurationMin) * time.Minute)

	appointments := []models.Appointment{
		{
			ClientID: clients[0].ID, ServiceID: services[0].ID, EmployeeID: employees[0].ID,
			StartTime: first,
			EndTime:   first.Add(time.Duration(services[0].DurationMin) * time.Minute),
			Status:    string(domain.StatusScheduled),
			Notes:     "Cliente prefere máquina 2",
		},
		{
			ClientID: clients[1].ID, ServiceID: services[2].ID, EmployeeID: employees[1].ID,
			StartTime:   second,
			EndTime:     completedAt,
			Status:      string(domain.StatusCompleted),
			CompletedAt: &completedAt,
		},
	}
	if err := tx.Create(&appointments).Error; err != nil {
		return fmt.Errorf("appointments: %w", err)
	}

	return nil
}
