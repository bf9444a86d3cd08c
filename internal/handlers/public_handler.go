package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/dto"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-manager/internal/validators"
	ucAppointment "github.com/BruksfildServices01/barbershop-manager/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	repo         domain.Repository
	create       *ucAppointment.CreateAppointment
	availability *ucAppointment.GetAvailability
}

func NewPublicHandler(
	repo domain.Repository,
	create *ucAppointment.CreateAppointment,
	availability *ucAppointment.GetAvailability,
) *PublicHandler {
	return &PublicHandler{
		repo:         repo,
		create:       create,
		availability: availability,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	EmployeeID  uint   `json:"employee_id" binding:"required"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`
}

////////////////////////////////////////////////////////
// SHOP
////////////////////////////////////////////////////////

func (h *PublicHandler) Shop(c *gin.Context) {
	shop, err := h.repo.GetBarbershop(c.Request.Context())
	if err != nil {
		writeError(c, err, "barbershop_not_found", "Barbearia não encontrada.")
		return
	}

	httpresp.OK(c, gin.H{
		"name":                shop.Name,
		"phone":               shop.Phone,
		"address":             shop.Address,
		"open_time":           shop.OpenTime,
		"close_time":          shop.CloseTime,
		"timezone":            shop.Timezone,
		"min_advance_minutes": int(domain.MinAdvance(shop).Minutes()),
		"logo_url":            shop.LogoURL,
		"banner_url":          shop.BannerURL,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	availability(c, h.repo, h.availability)
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if !validators.IsPhoneValid(req.ClientPhone) {
		httperr.BadRequest(c, "invalid_phone", "Telefone inválido.")
		return
	}
	email := validators.NormalizeEmail(req.ClientEmail)
	if email != "" && !validators.IsEmailValid(email) {
		httperr.BadRequest(c, "invalid_email", "E-mail inválido.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		Actor:       ucAppointment.Actor{Kind: audit.ActorPublic},
		EmployeeID:  req.EmployeeID,
		ServiceID:   req.ServiceID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: email,
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
