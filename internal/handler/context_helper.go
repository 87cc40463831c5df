package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mentormind-api/internal/dto"
	"github.com/noah-isme/mentormind-api/internal/middleware"
	"github.com/noah-isme/mentormind-api/internal/models"
	appErrors "github.com/noah-isme/mentormind-api/pkg/errors"
	"github.com/noah-isme/mentormind-api/pkg/response"
	"github.com/noah-isme/mentormind-api/pkg/validation"
)

// claimsFromContext returns the caller's claims or writes 401 and returns nil.
func claimsFromContext(c *gin.Context) *models.JWTClaims {
	claims := middleware.CurrentUser(c)
	if claims == nil {
		response.Error(c, appErrors.ErrTokenRequired)
		return nil
	}
	return claims
}

// bindJSON decodes the request body into dst, writing a 400 on failure.
func bindJSON(c *gin.Context, v *validation.Validator, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, v.Invalid(err))
		return false
	}
	return true
}

func auditMeta(c *gin.Context) dto.AuditMeta {
	return dto.AuditMeta{IP: c.ClientIP(), UserAgent: c.GetHeader("User-Agent")}
}
