package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/domain/loyalty"
	"github.com/BruksfildServices01/barbershop-manager/internal/dto"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
	"github.com/BruksfildServices01/barbershop-manager/internal/validators"
)

type ClientHandler struct {
	db    *gorm.DB
	repo  domain.Repository
	audit audit.Sink
}

func NewClientHandler(db *gorm.DB, repo domain.Repository, audit audit.Sink) *ClientHandler {
	return &ClientHandler{db: db, repo: repo, audit: audit}
}

type ClientRequest struct {
	Name           string `json:"name" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	LoyaltyEnabled *bool  `json:"loyalty_enabled"`
}

type LoyaltyRequest struct {
	Enabled bool `json:"enabled"`
}

// ======================================================
// LIST / GET
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Model(&models.Client{})
	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.Order("created_at DESC").Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	httpresp.List(c, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	client, ok := h.load(c)
	if !ok {
		return
	}
	httpresp.OK(c, gin.H{
		"client":  client,
		"loyalty": loyalty.ProgressOf(client),
	})
}

// ======================================================
// CREATE / UPDATE / DELETE
// ======================================================

func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	client := models.Client{RegistrationDate: time.Now(), LoyaltyEnabled: true}
	if !h.apply(c, &client, req) {
		return
	}

	if err := h.db.Create(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", "Erro ao criar cliente.")
		return
	}

	h.dispatch(c, "client_created", client.ID, nil)
	httpresp.Created(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	client, ok := h.load(c)
	if !ok {
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}
	if !h.apply(c, client, req) {
		return
	}

	if err := h.db.Save(client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Erro ao atualizar cliente.")
		return
	}

	h.dispatch(c, "client_updated", client.ID, nil)
	httpresp.OK(c, client)
}

func (h *ClientHandler) apply(c *gin.Context, client *models.Client, req ClientRequest) bool {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	email := validators.NormalizeEmail(req.Email)

	if name == "" {
		httperr.BadRequest(c, "invalid_name", "Nome é obrigatório.")
		return false
	}
	if !validators.IsPhoneValid(phone) {
		httperr.BadRequest(c, "invalid_phone", "Telefone inválido.")
		return false
	}
	if email != "" && !validators.IsEmailValid(email) {
		httperr.BadRequest(c, "invalid_email", "E-mail inválido.")
		return false
	}

	client.Name, client.Phone, client.Email = name, phone, email
	if req.LoyaltyEnabled != nil {
		client.LoyaltyEnabled = *req.LoyaltyEnabled
	}

	if req.Password != "" {
		if email == "" {
			httperr.BadRequest(c, "email_required", "Acesso ao portal exige e-mail.")
			return false
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "failed_to_hash_password", "Erro ao processar senha.")
			return false
		}
		client.PasswordHash = string(hashed)
	}
	return true
}

// Delete remove o cliente e os agendamentos dele.
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", id).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Client{}, id)
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
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_delete_client", "Erro ao remover cliente.")
		return
	}

	h.dispatch(c, "client_deleted", id, nil)
	c.Status(204)
}

// ======================================================
// FIDELIDADE
// ======================================================

func (h *ClientHandler) SetLoyalty(c *gin.Context) {
	client, ok := h.load(c)
	if !ok {
		return
	}

	var req LoyaltyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if err := h.db.Model(client).Update("loyalty_enabled", req.Enabled).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Erro ao atualizar cliente.")
		return
	}
	client.LoyaltyEnabled = req.Enabled

	h.dispatch(c, "loyalty_toggled", client.ID, map[string]any{"enabled": req.Enabled})
	httpresp.OK(c, loyalty.ProgressOf(client))
}

func (h *ClientHandler) ResetLoyalty(c *gin.Context) {
	client, ok := h.load(c)
	if !ok {
		return
	}

	before := client.LoyaltyPoints
	loyalty.Reset(client)
	if err := h.db.Model(client).Update("loyalty_points", client.LoyaltyPoints).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Erro ao atualizar cliente.")
		return
	}

	h.dispatch(c, "loyalty_reset", client.ID, map[string]any{"previous_points": before})
	httpresp.OK(c, loyalty.ProgressOf(client))
}

// FutureAppointments lista os agendamentos em aberto a partir de agora.
func (h *ClientHandler) FutureAppointments(c *gin.Context) {
	client, ok := h.load(c)
	if !ok {
		return
	}

	shop, err := h.repo.GetBarbershop(c.Request.Context())
	if err != nil {
		writeError(c, err, "failed_to_get_barbershop", "Erro ao buscar dados da barbearia.")
		return
	}

	aps, err := h.repo.ListAppointments(c.Request.Context(), domain.ListFilter{
		ClientID: client.ID,
		From:     timezone.NowIn(shop.Timezone),
		Statuses: []domain.Status{domain.StatusScheduled},
	})
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, dto.AppointmentList(aps))
}

func (h *ClientHandler) load(c *gin.Context) (*models.Client, bool) {
	id, ok := paramID(c)
	if !ok {
		return nil, false
	}

	var client models.Client
	if err := h.db.First(&client, id).Error; err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_client", "Erro ao buscar cliente.")
		return nil, false
	}
	return &client, true
}

func (h *ClientHandler) dispatch(c *gin.Context, action string, id uint, meta any) {
	actor := actorFrom(c)
	h.audit.Dispatch(audit.Event{
		ActorID:   &actor.ID,
		ActorKind: actor.Kind,
		Action:    action,
		Entity:    "client",
		EntityID:  &id,
		Metadata:  meta,
	})
}
