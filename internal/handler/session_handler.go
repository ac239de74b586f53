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

type sessionService interface {
	Issue(ctx context.Context, req dto.CreateSessionRequest) (*dto.SessionResponse, error)
	Describe(claims *models.SessionClaims) dto.SessionInfo
}

type navigationService interface {
	Items(role models.UserRole) []dto.NavItem
	Title(role models.UserRole, path string) dto.PageTitle
}

// SessionHandler exposes role switching and navigation.
type SessionHandler struct {
	sessions   sessionService
	navigation navigationService
}

// NewSessionHandler constructs the handler.
func NewSessionHandler(sessions sessionService, navigation navigationService) *SessionHandler {
	return &SessionHandler{sessions: sessions, navigation: navigation}
}

// Create godoc
// @Summary Start a role session
// @Description Issues a signed token selecting the STUDENT or TEACHER view. Switching role means issuing a new session.
// @Tags Session
// @Accept json
// @Produce json
// @Param payload body dto.CreateSessionRequest true "Role selection"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /session [post]
func (h *SessionHandler) Create(c *gin.Context) {
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid session payload"))
		return
	}
	res, err := h.sessions.Issue(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, res)
}

// Current godoc
// @Summary Describe the current session
// @Tags Session
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /session [get]
func (h *SessionHandler) Current(c *gin.Context) {
	response.OK(c, h.sessions.Describe(claimsFromContext(c)))
}

// Navigation godoc
// @Summary Navigation for the current role
// @Tags Session
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /navigation [get]
func (h *SessionHandler) Navigation(c *gin.Context) {
	response.OK(c, h.navigation.Items(roleFromContext(c)))
}

// Title godoc
// @Summary Page title for a route
// @Tags Session
// @Produce json
// @Param path query string false "Route path"
// @Success 200 {object} response.Envelope
// @Router /navigation/title [get]
func (h *SessionHandler) Title(c *gin.Context) {
	response.OK(c, h.navigation.Title(roleFromContext(c), c.Query("path")))
}
