package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mentormind-api/internal/models"
	appErrors "github.com/noah-isme/mentormind-api/pkg/errors"
	"github.com/noah-isme/mentormind-api/pkg/response"
)

// ContextUserKey is the gin context key storing JWT claims.
const ContextUserKey = "currentUser"

// TokenValidator validates bearer tokens.
type TokenValidator interface {
	ValidateToken(token string) (*models.JWTClaims, error)
}

// JWT protects routes by requiring a valid access token. A missing token is
// reported as 401, a token that fails verification as 403.
func JWT(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, token := splitAuthorization(c.GetHeader("Authorization"))
		if token == "" {
			response.Error(c, appErrors.ErrTokenRequired)
			return
		}
		if !strings.EqualFold(scheme, "Bearer") {
			response.Error(c, appErrors.ErrInvalidToken)
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			response.Error(c, err)
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// CurrentUser returns the claims stored by JWT, or nil.
func CurrentUser(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	claims, _ := value.(*models.JWTClaims)
	return claims
}

func splitAuthorization(header string) (string, string) {
	parts := strings.Fields(header)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], parts[1]
	}
}
