package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

type WorkingDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,dive"`
}

// Validate confere formato HH:MM e a ordem dos horários do dia.
func (d WorkingDayConfig) Validate() string {
	if !d.Active {
		return ""
	}
	if !validHM(d.StartTime) || !validHM(d.EndTime) || d.EndTime <= d.StartTime {
		return "invalid_working_time"
	}
	if d.LunchStart == "" && d.LunchEnd == "" {
		return ""
	}
	if !validHM(d.LunchStart) || !validHM(d.LunchEnd) || d.LunchEnd <= d.LunchStart ||
		d.LunchStart < d.StartTime || d.LunchEnd > d.EndTime {
		return "invalid_lunch_time"
	}
	return ""
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	employeeID := middleware.SubjectID(c)

	var hours []models.WorkingHours
	if err := h.db.
		Where("employee_id = ?", employeeID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		httperr.Internal(c, "failed_to_get_working_hours", "Erro ao buscar expediente.")
		return
	}

	httpresp.List(c, hours)
}

// Update substitui a semana inteira do funcionário.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	employeeID := middleware.SubjectID(c)

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	seen := map[int]bool{}
	toCreate := make([]models.WorkingHours, 0, len(req.Days))
	for _, d := range req.Days {
		if seen[d.Weekday] {
			httperr.BadRequest(c, "duplicated_weekday", "Dia da semana repetido.")
			return
		}
		seen[d.Weekday] = true

		if code := d.Validate(); code != "" {
			httperr.BadRequest(c, code, "Horário inválido (HH:MM).")
			return
		}

		toCreate = append(toCreate, models.WorkingHours{
			EmployeeID: employeeID,
			Weekday:    d.Weekday,
			Active:     d.Active,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			LunchStart: d.LunchStart,
			LunchEnd:   d.LunchEnd,
		})
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", employeeID).Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}
		if len(toCreate) == 0 {
			return nil
		}
		return tx.Create(&toCreate).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_working_hours", "Erro ao salvar expediente.")
		return
	}

	httpresp.List(c, toCreate)
}
