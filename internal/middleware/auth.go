package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/barbershop-manager/internal/config"
)

const (
	ContextSubjectID   = "subjectID"
	ContextSubjectKind = "subjectKind"
	ContextAccessLevel = "accessLevel"
)

// Tipos de sujeito no token.
const (
	KindEmployee = "employee"
	KindClient   = "client"
)

const (
	ClaimSubject     = "sub"
	ClaimKind        = "kind"
	ClaimAccessLevel = "access_level"
)

const accessAdministrator = "administrador"

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "missing_authorization_header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abort(c, http.StatusUnauthorized, "invalid_authorization_header")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			abort(c, http.StatusUnauthorized, "invalid_token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abort(c, http.StatusUnauthorized, "invalid_token_claims")
			return
		}

		subject, ok1 := claims[ClaimSubject].(float64)
		kind, ok2 := claims[ClaimKind].(string)
		if !ok1 || !ok2 || subject <= 0 || (kind != KindEmployee && kind != KindClient) {
			abort(c, http.StatusUnauthorized, "invalid_token_payload")
			return
		}
		access, _ := claims[ClaimAccessLevel].(string)

		c.Set(ContextSubjectID, uint(subject))
		c.Set(ContextSubjectKind, kind)
		c.Set(ContextAccessLevel, access)

		c.Next()
	}
}

// RequireEmployee bloqueia tokens de cliente.
func RequireEmployee() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextSubjectKind) != KindEmployee {
			abort(c, http.StatusForbidden, "employee_only")
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextSubjectKind) != KindEmployee || c.GetString(ContextAccessLevel) != accessAdministrator {
			abort(c, http.StatusForbidden, "admin_only")
			return
		}
		c.Next()
	}
}

func RequireClient() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextSubjectKind) != KindClient {
			abort(c, http.StatusForbidden, "client_only")
			return
		}
		c.Next()
	}
}

// SubjectID devolve o id autenticado (funcionário ou cliente).
func SubjectID(c *gin.Context) uint {
	v, _ := c.Get(ContextSubjectID)
	id, _ := v.(uint)
	return id
}

func IsAdmin(c *gin.Context) bool {
	return c.GetString(ContextAccessLevel) == accessAdministrator
}

func abort(c *gin.Context, status int, code string) {
	c.AbortWithStatusJSON(status, gin.H{"error_code": code})
}
