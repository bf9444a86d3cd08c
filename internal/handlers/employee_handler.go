package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/validators"
)

type EmployeeHandler struct {
	db    *gorm.DB
	audit audit.Sink
}

func NewEmployeeHandler(db *gorm.DB, audit audit.Sink) *EmployeeHandler {
	return &EmployeeHandler{db: db, audit: audit}
}

type CreateEmployeeRequest struct {
	Name            string          `json:"name" binding:"required"`
	Email           string          `json:"email" binding:"required,email"`
	Password        string          `json:"password" binding:"required,min=6"`
	Phone           string          `json:"phone"`
	Position        string          `json:"position"`
	AccessLevel     string          `json:"access_level"`
	CommissionType  string          `json:"commission_type"`
	CommissionValue decimal.Decimal `json:"commission_value"`
}

type UpdateEmployeeRequest struct {
	Name            *string          `json:"name"`
	Email           *string          `json:"email"`
	Password        *string          `json:"password"`
	Phone           *string          `json:"phone"`
	Position        *string          `json:"position"`
	AccessLevel     *string          `json:"access_level"`
	CommissionType  *string          `json:"commission_type"`
	CommissionValue *decimal.Decimal `json:"commission_value"`
	Active          *bool            `json:"active"`
}

var (
	positions    = map[string]bool{models.PositionBarber: true, models.PositionReception: true, models.PositionAssistant: true}
	accessLevels = map[string]bool{models.AccessEmployee: true, models.AccessAdministrator: true}
)

func (h *EmployeeHandler) List(c *gin.Context) {
	var employees []models.Employee
	if err := h.db.Order("id ASC").Find(&employees).Error; err != nil {
		httperr.Internal(c, "failed_to_list_employees", "Erro ao listar funcionários.")
		return
	}
	httpresp.List(c, employees)
}

// ListBarbers devolve os barbeiros ativos para o agendamento online.
func (h *EmployeeHandler) ListBarbers(c *gin.Context) {
	var employees []models.Employee
	if err := h.db.
		Select("id", "name", "position").
		Where("active = ? AND position = ?", true, models.PositionBarber).
		Order("name ASC").
		Find(&employees).Error; err != nil {
		httperr.Internal(c, "failed_to_list_employees", "Erro ao listar funcionários.")
		return
	}

	out := make([]gin.H, 0, len(employees))
	for _, e := range employees {
		out = append(out, gin.H{"id": e.ID, "name": e.Name, "position": e.Position})
	}
	httpresp.List(c, out)
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	emp := models.Employee{
		Name:            strings.TrimSpace(req.Name),
		Email:           validators.NormalizeEmail(req.Email),
		Phone:           strings.TrimSpace(req.Phone),
		Position:        orDefault(req.Position, models.PositionBarber),
		AccessLevel:     orDefault(req.AccessLevel, models.AccessEmployee),
		CommissionType:  orDefault(req.CommissionType, models.CommissionPercentage),
		CommissionValue: req.CommissionValue.Round(2),
		Active:          true,
	}
	if !validEmployee(c, &emp) {
		return
	}
	if !h.emailFree(c, emp.Email, 0) {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao processar senha.")
		return
	}
	emp.PasswordHash = string(hashed)

	if err := h.db.Create(&emp).Error; err != nil {
		if httperr.IsExclusionConflict(err) {
			httperr.Conflict(c, "email_already_exists", "E-mail já cadastrado.")
			return
		}
		httperr.Internal(c, "failed_to_create_employee", "Erro ao criar funcionário.")
		return
	}

	h.dispatch(c, "employee_created", emp.ID)
	httpresp.Created(c, emp)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var emp models.Employee
	if err := h.db.First(&emp, id).Error; err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "employee_not_found", "Funcionário não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_employee", "Erro ao buscar funcionário.")
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		emp.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		emp.Email = validators.NormalizeEmail(*req.Email)
	}
	if req.Phone != nil {
		emp.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Position != nil {
		emp.Position = *req.Position
	}
	if req.AccessLevel != nil {
		emp.AccessLevel = *req.AccessLevel
	}
	if req.CommissionType != nil {
		emp.CommissionType = *req.CommissionType
	}
	if req.CommissionValue != nil {
		emp.CommissionValue = req.CommissionValue.Round(2)
	}
	if req.Active != nil {
		emp.Active = *req.Active
	}
	if !validEmployee(c, &emp) {
		return
	}
	if req.Email != nil && !h.emailFree(c, emp.Email, emp.ID) {
		return
	}

	if req.Password != nil {
		if len(*req.Password) < 6 {
			httperr.BadRequest(c, "invalid_password", "Senha deve ter pelo menos 6 caracteres.")
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "failed_to_hash_password", "Erro ao processar senha.")
			return
		}
		emp.PasswordHash = string(hashed)
	}

	if err := h.db.Save(&emp).Error; err != nil {
		httperr.Internal(c, "failed_to_update_employee", "Erro ao atualizar funcionário.")
		return
	}

	h.dispatch(c, "employee_updated", emp.ID)
	httpresp.OK(c, emp)
}

// Delete remove o funcionário, o expediente e os agendamentos dele.
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if id == actorFrom(c).ID {
		httperr.BadRequest(c, "cannot_delete_self", "Você não pode remover o próprio usuário.")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", id).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("employee_id = ?", id).Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Employee{}, id)
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
			httperr.NotFound(c, "employee_not_found", "Funcionário não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_delete_employee", "Erro ao remover funcionário.")
		return
	}

	h.dispatch(c, "employee_deleted", id)
	c.Status(204)
}

func validEmployee(c *gin.Context, emp *models.Employee) bool {
	switch {
	case emp.Name == "":
		httperr.BadRequest(c, "invalid_name", "Nome é obrigatório.")
	case !validators.IsEmailValid(emp.Email):
		httperr.BadRequest(c, "invalid_email", "E-mail inválido.")
	case !positions[emp.Position]:
		httperr.BadRequest(c, "invalid_position", "Cargo inválido.")
	case !accessLevels[emp.AccessLevel]:
		httperr.BadRequest(c, "invalid_access_level", "Nível de acesso inválido.")
	case emp.CommissionValue.IsNegative():
		httperr.BadRequest(c, "invalid_commission", "Comissão não pode ser negativa.")
	case emp.CommissionType == models.CommissionPercentage && emp.CommissionValue.GreaterThan(decimal.NewFromInt(100)):
		httperr.BadRequest(c, "invalid_commission", "Percentual de comissão acima de 100.")
	default:
		return true
	}
	return false
}

func (h *EmployeeHandler) emailFree(c *gin.Context, email string, selfID uint) bool {
	var count int64
	if err := h.db.Model(&models.Employee{}).
		Where("email = ? AND id <> ?", email, selfID).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_check_email", "Erro ao validar e-mail.")
		return false
	}
	if count > 0 {
		httperr.Conflict(c, "email_already_exists", "E-mail já cadastrado.")
		return false
	}
	return true
}

func (h *EmployeeHandler) dispatch(c *gin.Context, action string, id uint) {
	actor := actorFrom(c)
	h.audit.Dispatch(audit.Event{
		ActorID:   &actor.ID,
		ActorKind: actor.Kind,
		Action:    action,
		Entity:    "employee",
		EntityID:  &id,
	})
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}
