package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/dto"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barbershop-manager/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	repo         domain.Repository
	create       *ucAppointment.CreateAppointment
	update       *ucAppointment.UpdateAppointment
	remove       *ucAppointment.DeleteAppointment
	complete     *ucAppointment.CompleteAppointment
	cancel       *ucAppointment.CancelAppointment
	byDate       *ucAppointment.ListAppointmentsByDate
	byMonth      *ucAppointment.ListAppointmentsByMonth
	availability *ucAppointment.GetAvailability
}

func NewAppointmentHandler(
	repo domain.Repository,
	create *ucAppointment.CreateAppointment,
	update *ucAppointment.UpdateAppointment,
	remove *ucAppointment.DeleteAppointment,
	complete *ucAppointment.CompleteAppointment,
	cancel *ucAppointment.CancelAppointment,
	byDate *ucAppointment.ListAppointmentsByDate,
	byMonth *ucAppointment.ListAppointmentsByMonth,
	availability *ucAppointment.GetAvailability,
) *AppointmentHandler {
	return &AppointmentHandler{
		repo:         repo,
		create:       create,
		update:       update,
		remove:       remove,
		complete:     complete,
		cancel:       cancel,
		byDate:       byDate,
		byMonth:      byMonth,
		availability: availability,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	EmployeeID  uint   `json:"employee_id" binding:"required"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	ClientID    uint   `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`
}

type UpdateAppointmentRequest struct {
	EmployeeID *uint   `json:"employee_id"`
	ServiceID  *uint   `json:"service_id"`
	Date       *string `json:"date"`
	Time       *string `json:"time"`
	Notes      *string `json:"notes"`
}

// ======================================================
// CREATE / UPDATE / DELETE (ADMIN)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		Actor:       actorFrom(c),
		EmployeeID:  req.EmployeeID,
		ServiceID:   req.ServiceID,
		ClientID:    req.ClientID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		Date:        req.Date,
		Time:        req.Time,
		Notes:       req.Notes,
	})
	if err != nil {
		writeError(c, err, "failed_to_create_appointment", "Erro ao criar agendamento.")
		return
	}

	httpresp.Created(c, dto.AppointmentFrom(*ap))
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), ucAppointment.UpdateAppointmentInput{
		Actor:      actorFrom(c),
		ID:         id,
		EmployeeID: req.EmployeeID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Time:       req.Time,
		Notes:      req.Notes,
	})
	if err != nil {
		writeError(c, err, "failed_to_update_appointment", "Erro ao atualizar agendamento.")
		return
	}

	httpresp.OK(c, dto.AppointmentFrom(*ap))
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), actorFrom(c), id); err != nil {
		writeError(c, err, "failed_to_delete_appointment", "Erro ao remover agendamento.")
		return
	}

	c.Status(204)
}

// ======================================================
// COMPLETE / CANCEL
// ======================================================

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	res, err := h.complete.Execute(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		writeError(c, err, "failed_to_complete_appointment", "Erro ao concluir agendamento.")
		return
	}

	httpresp.OK(c, gin.H{
		"appointment": dto.AppointmentFrom(*res.Appointment),
		"commission":  res.Commission,
		"loyalty":     res.Loyalty,
		"rewarded":    res.Rewarded,
	})
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		writeError(c, err, "failed_to_cancel_appointment", "Erro ao cancelar agendamento.")
		return
	}

	httpresp.OK(c, dto.AppointmentFrom(*ap))
}

// ======================================================
// LIST
// ======================================================

// scopeEmployee: rotas /me sempre usam o próprio funcionário; no admin o
// filtro employee_id é opcional.
func (h *AppointmentHandler) scopeEmployee(c *gin.Context, own bool) (uint, bool) {
	if own {
		return middleware.SubjectID(c), true
	}
	return queryID(c, "employee_id")
}

func (h *AppointmentHandler) listByDate(c *gin.Context, own bool) {
	employeeID, ok := h.scopeEmployee(c, own)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	shop, err := h.repo.GetBarbershop(c.Request.Context())
	if err != nil {
		writeError(c, err, "barbershop_not_found", "Barbearia não encontrada.")
		return
	}

	date, err := timezone.ParseDate(dateStr, timezone.Location(shop.Timezone))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	aps, err := h.byDate.Execute(c.Request.Context(), employeeID, date)
	if err != nil {
		writeError(c, err, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, aps)
}

func (h *AppointmentHandler) listByMonth(c *gin.Context, own bool) {
	employeeID, ok := h.scopeEmployee(c, own)
	if !ok {
		return
	}

	yearStr := c.Query("year")
	monthStr := c.Query("month")
	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Ano e mês são obrigatórios.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	aps, err := h.byMonth.Execute(c.Request.Context(), employeeID, year, month)
	if err != nil {
		writeError(c, err, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.OK(c, gin.H{
		"year":         year,
		"month":        month,
		"appointments": aps,
	})
}

func (h *AppointmentHandler) ListMineByDate(c *gin.Context)  { h.listByDate(c, true) }
func (h *AppointmentHandler) ListMineByMonth(c *gin.Context) { h.listByMonth(c, true) }
func (h *AppointmentHandler) ListByDate(c *gin.Context)      { h.listByDate(c, false) }
func (h *AppointmentHandler) ListByMonth(c *gin.Context)     { h.listByMonth(c, false) }

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	availability(c, h.repo, h.availability)
}

func availability(c *gin.Context, repo domain.Repository, uc *ucAppointment.GetAvailability) {
	dateStr := c.Query("date")
	employeeID, ok1 := queryID(c, "employee_id")
	if !ok1 {
		return
	}
	serviceID, ok2 := queryID(c, "service_id")
	if !ok2 {
		return
	}
	if dateStr == "" || employeeID == 0 || serviceID == 0 {
		httperr.BadRequest(c, "missing_params", "Data, funcionário e serviço obrigatórios.")
		return
	}

	shop, err := repo.GetBarbershop(c.Request.Context())
	if err != nil {
		writeError(c, err, "barbershop_not_found", "Barbearia não encontrada.")
		return
	}

	date, err := timezone.ParseDate(dateStr, timezone.Location(shop.Timezone))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := uc.Execute(c.Request.Context(), domain.AvailabilityInput{
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		Date:       date,
	})
	if err != nil {
		writeError(c, err, "availability_failed", "Erro ao calcular horários.")
		return
	}

	httpresp.OK(c, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}
