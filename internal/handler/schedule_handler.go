package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholarsync-api/internal/dto"
	"github.com/noah-isme/scholarsync-api/internal/service"
	appErrors "github.com/noah-isme/scholarsync-api/pkg/errors"
	"github.com/noah-isme/scholarsync-api/pkg/response"
)

type scheduleService interface {
	ParseDate(raw string) (time.Time, error)
	Week(ctx context.Context, anchor time.Time, offset int) (*dto.ScheduleWeek, error)
	Events(ctx context.Context, from, to *time.Time) ([]dto.ScheduleEventView, error)
	Day(ctx context.Context, day time.Time) ([]dto.ScheduleEventView, error)
	CreateEvent(ctx context.Context, req dto.CreateEventRequest) (*dto.ScheduleEventView, error)
}

type calendarSyncService interface {
	StartCalendarSync(ctx context.Context) (*dto.SyncStatusResponse, error)
	SyncStatus() dto.SyncStatusResponse
}

type weekExporter interface {
	ScheduleWeek(week *dto.ScheduleWeek, format string) (*service.ExportResult, error)
}

// ScheduleHandler serves the weekly calendar.
type ScheduleHandler struct {
	schedule scheduleService
	sync     calendarSyncService
	exports  weekExporter
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(schedule scheduleService, sync calendarSyncService, exports weekExporter) *ScheduleHandler {
	return &ScheduleHandler{schedule: schedule, sync: sync, exports: exports}
}

// Week godoc
// @Summary Weekly calendar grid
// @Description Monday to Friday buckets for the week containing date, shifted by offset weeks.
// @Tags Schedule
// @Produce json
// @Param date query string false "Anchor date (YYYY-MM-DD), defaults to today"
// @Param offset query int false "Week offset, -1 previous, 1 next; at most 520 either way"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /schedule/week [get]
func (h *ScheduleHandler) Week(c *gin.Context) {
	week, err := h.resolveWeek(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, week)
}

// Events godoc
// @Summary List calendar events
// @Tags Schedule
// @Produce json
// @Param from query string false "Lower bound (RFC3339 or YYYY-MM-DD)"
// @Param to query string false "Exclusive upper bound (RFC3339 or YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /schedule/events [get]
func (h *ScheduleHandler) Events(c *gin.Context) {
	from, err := h.parseBound(c.Query("from"))
	if err != nil {
		response.Error(c, err)
		return
	}
	to, err := h.parseBound(c.Query("to"))
	if err != nil {
		response.Error(c, err)
		return
	}
	events, err := h.schedule.Events(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, events)
}

// Day godoc
// @Summary Events for one day
// @Tags Schedule
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Envelope
// @Router /schedule/day [get]
func (h *ScheduleHandler) Day(c *gin.Context) {
	day, err := h.schedule.ParseDate(c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	events, err := h.schedule.Day(c.Request.Context(), day)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, events)
}

// CreateEvent godoc
// @Summary Add a calendar event
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body dto.CreateEventRequest true "Event"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /schedule/events [post]
func (h *ScheduleHandler) CreateEvent(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid event payload"))
		return
	}
	event, err := h.schedule.CreateEvent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, event)
}

// StartSync godoc
// @Summary Sync to calendar
// @Description Queues a calendar sync. While one is running the current status is returned.
// @Tags Schedule
// @Produce json
// @Success 202 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /schedule/sync [post]
func (h *ScheduleHandler) StartSync(c *gin.Context) {
	status, err := h.sync.StartCalendarSync(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, status)
}

// SyncStatus godoc
// @Summary Calendar sync status
// @Tags Schedule
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedule/sync [get]
func (h *ScheduleHandler) SyncStatus(c *gin.Context) {
	response.OK(c, h.sync.SyncStatus())
}

// Export godoc
// @Summary Export the visible week
// @Tags Schedule
// @Produce application/pdf
// @Produce text/csv
// @Param format query string false "pdf (default) or csv"
// @Param date query string false "Anchor date (YYYY-MM-DD)"
// @Param offset query int false "Week offset"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /schedule/export [get]
func (h *ScheduleHandler) Export(c *gin.Context) {
	week, err := h.resolveWeek(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.exports.ScheduleWeek(week, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	sendFile(c, result)
}

func (h *ScheduleHandler) resolveWeek(c *gin.Context) (*dto.ScheduleWeek, error) {
	anchor, err := h.schedule.ParseDate(c.Query("date"))
	if err != nil {
		return nil, err
	}
	offset := 0
	if raw := strings.TrimSpace(c.Query("offset")); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "offset must be an integer")
		}
	}
	return h.schedule.Week(c.Request.Context(), anchor, offset)
}

func (h *ScheduleHandler) parseBound(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return &ts, nil
	}
	day, err := h.schedule.ParseDate(raw)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "bounds must be RFC3339 or YYYY-MM-DD")
	}
	return &day, nil
}

func sendFile(c *gin.Context, result *service.ExportResult) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", result.FileName))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
