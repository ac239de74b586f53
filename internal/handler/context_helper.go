package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholarsync-api/internal/dto"
	"github.com/noah-isme/scholarsync-api/internal/middleware"
	"github.com/noah-isme/scholarsync-api/internal/models"
	"github.com/noah-isme/scholarsync-api/pkg/response"
)

func claimsFromContext(c *gin.Context) *models.SessionClaims {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return nil
	}
	return claims
}

func roleFromContext(c *gin.Context) models.UserRole {
	if claims := claimsFromContext(c); claims != nil && claims.Role.Valid() {
		return claims.Role
	}
	return models.RoleStudent
}

// respondGenerated writes a payload carrying AI text, flagging fallbacks in meta.
func respondGenerated(c *gin.Context, data interface{}, generated dto.GeneratedText) {
	response.Generated(c, data, generated.Cached, generated.Fallback)
}
