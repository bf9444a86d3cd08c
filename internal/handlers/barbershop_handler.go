package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-manager/internal/imaging"
	"github.com/BruksfildServices01/barbershop-manager/internal/infra/storage"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

type BarbershopHandler struct {
	db       *gorm.DB
	uploader storage.Uploader
	audit    audit.Sink
	log      *slog.Logger
}

// uploader pode ser nil quando o storage não está configurado.
func NewBarbershopHandler(db *gorm.DB, uploader storage.Uploader, audit audit.Sink, log *slog.Logger) *BarbershopHandler {
	return &BarbershopHandler{db: db, uploader: uploader, audit: audit, log: log}
}

type UpdateBarbershopRequest struct {
	Name              *string `json:"name"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
	OpenTime          *string `json:"open_time"`
	CloseTime         *string `json:"close_time"`
	Timezone          *string `json:"timezone"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
}

func (h *BarbershopHandler) load(c *gin.Context) (*models.Barbershop, bool) {
	var shop models.Barbershop
	if err := h.db.Order("id ASC").First(&shop).Error; err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_barbershop", "Erro ao buscar dados da barbearia.")
		return nil, false
	}
	return &shop, true
}

func (h *BarbershopHandler) Get(c *gin.Context) {
	shop, ok := h.load(c)
	if !ok {
		return
	}
	httpresp.OK(c, shop)
}

func (h *BarbershopHandler) Update(c *gin.Context) {
	shop, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateBarbershopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "Nome da barbearia é obrigatório.")
			return
		}
		shop.Name = name
	}
	if req.Phone != nil {
		shop.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		shop.Address = strings.TrimSpace(*req.Address)
	}
	if req.OpenTime != nil {
		shop.OpenTime = *req.OpenTime
	}
	if req.CloseTime != nil {
		shop.CloseTime = *req.CloseTime
	}
	if !validHM(shop.OpenTime) || !validHM(shop.CloseTime) || shop.CloseTime <= shop.OpenTime {
		httperr.BadRequest(c, "invalid_opening_hours", "Horário de funcionamento inválido (HH:MM).")
		return
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
			return
		}
		shop.Timezone = *req.Timezone
	}
	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Antecedência mínima deve ser zero ou positiva (em minutos).")
			return
		}
		shop.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if err := h.db.Save(shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barbershop", "Erro ao salvar as configurações da barbearia.")
		return
	}

	actor := actorFrom(c)
	h.audit.Dispatch(audit.Event{
		ActorID:   &actor.ID,
		ActorKind: actor.Kind,
		Action:    "barbershop_updated",
		Entity:    "barbershop",
		EntityID:  &shop.ID,
	})

	httpresp.OK(c, shop)
}

// ======================================================
// IMAGENS
// ======================================================

func (h *BarbershopHandler) UploadLogo(c *gin.Context) {
	h.upload(c, "logo", imaging.LogoBox, func(s *models.Barbershop, url string) { s.LogoURL = url })
}

func (h *BarbershopHandler) UploadBanner(c *gin.Context) {
	h.upload(c, "banner", imaging.BannerBox, func(s *models.Barbershop, url string) { s.BannerURL = url })
}

func (h *BarbershopHandler) upload(
	c *gin.Context,
	kind string,
	box imaging.Box,
	apply func(*models.Barbershop, string),
) {
	if h.uploader == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "storage_disabled", "Armazenamento de imagens não configurado.")
		return
	}

	shop, ok := h.load(c)
	if !ok {
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "file_required", "Arquivo de imagem obrigatório (campo file).")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, imaging.MaxUploadBytes+1))
	if err != nil {
		httperr.BadRequest(c, "invalid_file", "Não foi possível ler o arquivo.")
		return
	}
	if len(raw) > imaging.MaxUploadBytes {
		httperr.Write(c, http.StatusRequestEntityTooLarge, "file_too_large", "Imagem maior que 10MB.")
		return
	}

	optimized, err := imaging.Optimize(raw, box)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Imagem deve ser PNG, JPEG ou WEBP.")
		return
	}

	url, err := h.uploader.Put(c.Request.Context(), storage.ObjectKey(kind, "webp"), imaging.ContentType, optimized)
	if err != nil {
		h.log.Error("image upload failed", "kind", kind, "err", err)
		httperr.Internal(c, "upload_failed", "Erro ao enviar a imagem.")
		return
	}

	apply(shop, url)
	if err := h.db.Save(shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barbershop", "Erro ao salvar as configurações da barbearia.")
		return
	}

	actor := actorFrom(c)
	h.audit.Dispatch(audit.Event{
		ActorID:   &actor.ID,
		ActorKind: actor.Kind,
		Action:    "barbershop_" + kind + "_uploaded",
		Entity:    "barbershop",
		EntityID:  &shop.ID,
		Metadata:  map[string]any{"url": url},
	})

	httpresp.OK(c, shop)
}
