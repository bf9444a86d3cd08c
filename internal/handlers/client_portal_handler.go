package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-manager/internal/dto"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barbershop-manager/internal/usecase/appointment"
	ucReport "github.com/BruksfildServices01/barbershop-manager/internal/usecase/report"
)

// ClientPortalHandler atende clientes logados.
type ClientPortalHandler struct {
	portal *ucReport.GetClientPortal
	create *ucAppointment.CreateAppointment
	cancel *ucAppointment.CancelAppointment
}

func NewClientPortalHandler(
	portal *ucReport.GetClientPortal,
	create *ucAppointment.CreateAppointment,
	cancel *ucAppointment.CancelAppointment,
) *ClientPortalHandler {
	return &ClientPortalHandler{portal: portal, create: create, cancel: cancel}
}

type ClientBookingRequest struct {
	EmployeeID uint   `json:"employee_id" binding:"required"`
	ServiceID  uint   `json:"service_id" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Time       string `json:"time" binding:"required"`
	Notes      string `json:"notes"`
}

func (h *ClientPortalHandler) Portal(c *gin.Context) {
	p, err := h.portal.Execute(c.Request.Context(), middleware.SubjectID(c))
	if err != nil {
		writeError(c, err, "failed_to_load_portal", "Erro ao carregar o portal.")
		return
	}
	httpresp.OK(c, p)
}

func (h *ClientPortalHandler) CreateAppointment(c *gin.Context) {
	var req ClientBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	actor := actorFrom(c)
	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		Actor:      actor,
		EmployeeID: req.EmployeeID,
		ServiceID:  req.ServiceID,
		ClientID:   actor.ID,
		Date:       req.Date,
		Time:       req.Time,
		Notes:      req.Notes,
	})
	if err != nil {
		writeError(c, err, "failed_to_create_appointment", "Erro ao criar agendamento.")
		return
	}

	httpresp.Created(c, dto.AppointmentFrom(*ap))
}

// Cancel só alcança agendamentos do próprio cliente.
func (h *ClientPortalHandler) Cancel(c *gin.Context) {
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
