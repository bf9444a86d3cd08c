package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, limit := pagination(c)
	offset := (page - 1) * limit

	q := h.db.Model(&models.AuditLog{})

	// --------------------------------------------------
	// Filtros opcionais
	// --------------------------------------------------

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if kind := c.Query("actor_kind"); kind != "" {
		q = q.Where("actor_kind = ?", kind)
	}
	if actorID, err := strconv.ParseUint(c.Query("actor_id"), 10, 64); err == nil {
		q = q.Where("actor_id = ?", actorID)
	}
	if from, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		q = q.Where("created_at >= ?", from)
	}
	if to, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		q = q.Where("created_at < ?", to.AddDate(0, 0, 1))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Erro ao contar logs.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}

// pagination lê page (>=1) e limit (1..200, padrão 50).
func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return page, limit
}
