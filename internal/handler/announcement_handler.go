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

type announcementService interface {
	Feed(ctx context.Context, viewer string) (*dto.AnnouncementFeed, error)
	Get(ctx context.Context, id string) (*models.Announcement, error)
	Toggle(ctx context.Context, viewer, id string) (*dto.ToggleResponse, error)
	MarkRead(ctx context.Context, id string) (*models.Announcement, error)
	Summarize(ctx context.Context, id string) (*dto.SummaryResponse, error)
	Create(ctx context.Context, author *models.SessionClaims, req dto.CreateAnnouncementRequest) (*models.Announcement, error)
}

// AnnouncementHandler serves the announcements feed.
type AnnouncementHandler struct {
	service announcementService
}

// NewAnnouncementHandler constructs the handler.
func NewAnnouncementHandler(service announcementService) *AnnouncementHandler {
	return &AnnouncementHandler{service: service}
}

// List godoc
// @Summary Announcements feed
// @Tags Announcements
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /announcements [get]
func (h *AnnouncementHandler) List(c *gin.Context) {
	feed, err := h.service.Feed(c.Request.Context(), claimsFromContext(c).ViewerID())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, feed)
}

// Get godoc
// @Summary Get an announcement
// @Tags Announcements
// @Produce json
// @Param id path string true "Announcement ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /announcements/{id} [get]
func (h *AnnouncementHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

// Toggle godoc
// @Summary Expand or collapse an announcement
// @Tags Announcements
// @Produce json
// @Param id path string true "Announcement ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /announcements/{id}/toggle [post]
func (h *AnnouncementHandler) Toggle(c *gin.Context) {
	res, err := h.service.Toggle(c.Request.Context(), claimsFromContext(c).ViewerID(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// MarkRead godoc
// @Summary Mark an announcement read
// @Tags Announcements
// @Produce json
// @Param id path string true "Announcement ID"
// @Success 200 {object} response.Envelope
// @Router /announcements/{id}/read [post]
func (h *AnnouncementHandler) MarkRead(c *gin.Context) {
	item, err := h.service.MarkRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

// Summarize godoc
// @Summary Summarize an announcement with AI
// @Description Returns the stored summary when present. On generation failure the fallback text is returned with meta.fallback=true.
// @Tags Announcements
// @Produce json
// @Param id path string true "Announcement ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 429 {object} response.Envelope
// @Router /announcements/{id}/summary [post]
func (h *AnnouncementHandler) Summarize(c *gin.Context) {
	res, err := h.service.Summarize(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondGenerated(c, res, res.GeneratedText)
}

// Create godoc
// @Summary Publish an announcement
// @Tags Announcements
// @Accept json
// @Produce json
// @Param payload body dto.CreateAnnouncementRequest true "Announcement"
// @Success 201 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /announcements [post]
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req dto.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid announcement payload"))
		return
	}
	item, err := h.service.Create(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}
