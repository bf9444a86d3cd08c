package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/config"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/validators"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login tenta primeiro funcionários e depois clientes com acesso ao portal.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	email := validators.NormalizeEmail(req.Email)

	var emp models.Employee
	err := h.db.Where("email = ? AND active = ?", email, true).First(&emp).Error
	if err == nil {
		if bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)) != nil {
			httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
			return
		}
		h.respond(c, emp.ID, middleware.KindEmployee, emp.AccessLevel, emp)
		return
	}
	if !isNotFound(err) {
		httperr.Internal(c, "internal_error", "Erro ao autenticar.")
		return
	}

	var client models.Client
	err = h.db.Where("email = ? AND password_hash <> ''", email).First(&client).Error
	if err != nil {
		if isNotFound(err) {
			httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
			return
		}
		httperr.Internal(c, "internal_error", "Erro ao autenticar.")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(client.PasswordHash), []byte(req.Password)) != nil {
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
		return
	}

	h.respond(c, client.ID, middleware.KindClient, "cliente", client)
}

func (h *AuthHandler) respond(c *gin.Context, id uint, kind, access string, user any) {
	token, err := GenerateToken(h.config.JWTSecret, id, kind, access, time.Now())
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":        token,
		"kind":         kind,
		"access_level": access,
		"user":         user,
	})
}

// --------- JWT ---------

func GenerateToken(secret string, id uint, kind, access string, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		middleware.ClaimSubject:     id,
		middleware.ClaimKind:        kind,
		middleware.ClaimAccessLevel: access,
		"exp":                       now.Add(tokenTTL).Unix(),
		"iat":                       now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
