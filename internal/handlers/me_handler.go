package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	id := middleware.SubjectID(c)
	kind := c.GetString(middleware.ContextSubjectKind)

	var user any
	var err error
	switch kind {
	case middleware.KindClient:
		var client models.Client
		err = h.db.First(&client, id).Error
		user = client
	default:
		var emp models.Employee
		err = h.db.First(&emp, id).Error
		user = emp
	}
	if err != nil {
		if isNotFound(err) {
			httperr.Unauthorized(c, "user_not_found", "Usuário não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_user", "Erro ao buscar usuário.")
		return
	}

	var shop models.Barbershop
	if err := h.db.Order("id ASC").First(&shop).Error; err != nil && !isNotFound(err) {
		httperr.Internal(c, "failed_to_get_barbershop", "Erro ao buscar dados da barbearia.")
		return
	}

	httpresp.OK(c, gin.H{
		"kind":       kind,
		"user":       user,
		"barbershop": shop,
	})
}
