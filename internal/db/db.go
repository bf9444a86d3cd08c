package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/config"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

// Impede dois agendamentos ativos do mesmo funcionário no mesmo intervalo.
const appointmentOverlapConstraint = `
	ALTER TABLE appointments
	ADD CONSTRAINT appointments_no_overlap
	EXCLUDE USING gist (
		employee_id WITH =,
		tstzrange(start_time, end_time) WITH &&
	) WHERE (status <> 'cancelled')
`

func NewDB(cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db, log); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB, log *slog.Logger) error {
	if err := db.AutoMigrate(
		&models.Barbershop{},
		&models.Employee{},
		&models.Service{},
		&models.WorkingHours{},
		&models.Client{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	db.Exec(`
        UPDATE barbershops
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `)

	// --------------------------------------------------
	// Exclusão por sobreposição (melhor esforço)
	// --------------------------------------------------
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Warn("btree_gist unavailable, overlap constraint skipped", "error", err)
		return nil
	}

	var exists int64
	db.Raw(`SELECT COUNT(*) FROM pg_constraint WHERE conname = 'appointments_no_overlap'`).Scan(&exists)
	if exists > 0 {
		return nil
	}
	if err := db.Exec(appointmentOverlapConstraint).Error; err != nil {
		log.Warn("overlap constraint not created", "error", err)
	}
	return nil
}
