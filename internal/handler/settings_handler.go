package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholarsync-api/internal/dto"
	"github.com/noah-isme/scholarsync-api/internal/models"
	appErrors "github.com/noah-isme/scholarsync-api/pkg/errors"
	"github.com/noah-isme/scholarsync-api/pkg/response"
)

type portalService interface {
	Portals(ctx context.Context) ([]models.PortalConfig, error)
	TogglePortal(ctx context.Context, id string) (*dto.PortalToggleResponse, error)
}

type preferenceService interface {
	Get(ctx context.Context, viewer string) (*models.Preferences, error)
	Update(ctx context.Context, viewer string, req dto.UpdatePreferencesRequest) (*models.Preferences, error)
}

// SettingsHandler serves integrations and notification preferences.
type SettingsHandler struct {
	portals     portalService
	preferences preferenceService
}

// NewSettingsHandler constructs the handler.
func NewSettingsHandler(portals portalService, preferences preferenceService) *SettingsHandler {
	return &SettingsHandler{portals: portals, preferences: preferences}
}

// Portals godoc
// @Summary List portal integrations
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /settings/portals [get]
func (h *SettingsHandler) Portals(c *gin.Context) {
	portals, err := h.portals.Portals(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, portals)
}

// TogglePortal godoc
// @Summary Connect or disconnect a portal
// @Description The portal moves to CONNECTING and flips once the background job completes.
// @Tags Settings
// @Produce json
// @Param id path string true "Portal ID"
// @Success 202 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /settings/portals/{id}/toggle [post]
func (h *SettingsHandler) TogglePortal(c *gin.Context) {
	res, err := h.portals.TogglePortal(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, res)
}

// Preferences godoc
// @Summary Notification preferences
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /settings/preferences [get]
func (h *SettingsHandler) Preferences(c *gin.Context) {
	prefs, err := h.preferences.Get(c.Request.Context(), claimsFromContext(c).ViewerID())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, prefs)
}

// UpdatePreferences godoc
// @Summary Update notification preferences
// @Tags Settings
// @Accept json
// @Produce json
// @Param payload body dto.UpdatePreferencesRequest true "Preferences"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /settings/preferences [put]
func (h *SettingsHandler) UpdatePreferences(c *gin.Context) {
	var req dto.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid preferences payload"))
		return
	}
	prefs, err := h.preferences.Update(c.Request.Context(), claimsFromContext(c).ViewerID(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, prefs)
}
