package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	audit audit.Sink
}

func NewServiceHandler(db *gorm.DB, audit audit.Sink) *ServiceHandler {
	return &ServiceHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	DurationMin int             `json:"duration_min" binding:"required,min=1"`
	Price       decimal.Decimal `json:"price"`
}

type UpdateServiceRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	DurationMin *int             `json:"duration_min,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

// --------- Handlers ---------

// List aceita ?query= (nome ou descrição) e ?active=true|false.
func (h *ServiceHandler) List(c *gin.Context) {
	activeStr := strings.TrimSpace(c.Query("active"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Model(&models.Service{})

	switch activeStr {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, services)
}

// ListActive é a vitrine pública.
func (h *ServiceHandler) ListActive(c *gin.Context) {
	var services []models.Service
	if err := h.db.Where("active = ?", true).Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}
	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}
	if req.Price.IsNegative() {
		httperr.BadRequest(c, "invalid_price", "Preço não pode ser negativo.")
		return
	}

	service := models.Service{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price.Round(2),
		Active:      true,
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Erro ao criar serviço.")
		return
	}

	h.dispatch(c, "service_created", service.ID)
	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var service models.Service
	if err := h.db.First(&service, id).Error; err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Erro ao buscar serviço.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMin != nil {
		if *req.DurationMin < 1 {
			httperr.BadRequest(c, "invalid_duration", "Duração deve ser de pelo menos 1 minuto.")
			return
		}
		service.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			httperr.BadRequest(c, "invalid_price", "Preço não pode ser negativo.")
			return
		}
		service.Price = req.Price.Round(2)
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Erro ao atualizar serviço.")
		return
	}

	h.dispatch(c, "service_updated", service.ID)
	httpresp.OK(c, service)
}

// Delete remove o serviço e os agendamentos dele.
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_id = ?", id).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Service{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_delete_service", "Erro ao remover serviço.")
		return
	}

	h.dispatch(c, "service_deleted", id)
	c.Status(204)
}

func (h *ServiceHandler) dispatch(c *gin.Context, action string, id uint) {
	actor := actorFrom(c)
	h.audit.Dispatch(audit.Event{
		ActorID:   &actor.ID,
		ActorKind: actor.Kind,
		Action:    action,
		Entity:    "service",
		EntityID:  &id,
	})
}
