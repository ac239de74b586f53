package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholarsync-api/internal/dto"
	"github.com/noah-isme/scholarsync-api/internal/models"
	appErrors "github.com/noah-isme/scholarsync-api/pkg/errors"
	"github.com/noah-isme/scholarsync-api/pkg/response"
)

type dashboardService interface {
	Get(ctx context.Context, claims *models.SessionClaims) (*dto.DashboardResponse, error)
}

// DashboardHandler wires dashboard service to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Get godoc
// @Summary Role-specific dashboard
// @Description Students get the study tip, up next, alerts, study focus and timeline. Teachers get courses, at-risk students and the teaching timeline.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	dashboard, err := h.service.Get(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	if dashboard.Student != nil {
		respondGenerated(c, dashboard, dashboard.Student.StudyTip)
		return
	}
	response.OK(c, dashboard)
}
