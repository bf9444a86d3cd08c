package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Barbershop
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarbershop(
	ctx context.Context,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).Order("id ASC").First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// --------------------------------------------------
// Catalog / people
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetEmployee(
	ctx context.Context,
	id uint,
) (*models.Employee, error) {

	var emp models.Employee
	if err := r.db.WithContext(ctx).First(&emp, id).Error; err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	client = models.Client{
		Name:             name,
		Phone:            phone,
		Email:            email,
		RegistrationDate: time.Now(),
		LoyaltyEnabled:   true,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) GetWorkingHours(
	ctx context.Context,
	employeeID uint,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND weekday = ?", employeeID, weekday).
		First(&wh).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &wh, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Employee")

	if f.EmployeeID != 0 {
		q = q.Where("employee_id = ?", f.EmployeeID)
	}
	if f.ClientID != 0 {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if !f.From.IsZero() {
		q = q.Where("start_time >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("start_time < ?", f.To)
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, 0, len(f.Statuses))
		for _, s := range f.Statuses {
			statuses = append(statuses, string(s))
		}
		q = q.Where("status IN ?", statuses)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit("Client", "Service", "Employee").Create(ap).Error
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Employee").
		First(&ap, id).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit("Client", "Service", "Employee").Save(ap).Error
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {
	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AppointmentGormRepository) CompleteAppointment(
	ctx context.Context,
	ap *models.Appointment,
	credit func(client *models.Client),
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Appointment{}).
			Where("id = ? AND status = ?", ap.ID, string(domain.StatusScheduled)).
			Updates(map[string]any{
				"status":       ap.Status,
				"completed_at": ap.CompletedAt,
				"notes":        ap.Notes,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("invalid_state")
		}

		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&client, ap.ClientID).Error; err != nil {
			return err
		}

		credit(&client)

		return tx.Model(&client).Updates(map[string]any{
			"loyalty_points": client.LoyaltyPoints,
			"last_visit":     client.LastVisit,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// --------------------------------------------------
// Reports
// --------------------------------------------------

func (r *AppointmentGormRepository) CountClients(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Client{}).Count(&n).Error
	return n, err
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
