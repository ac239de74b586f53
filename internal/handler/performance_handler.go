package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholarsync-api/internal/dto"
	"github.com/noah-isme/scholarsync-api/internal/models"
	"github.com/noah-isme/scholarsync-api/internal/service"
	appErrors "github.com/noah-isme/scholarsync-api/pkg/errors"
	"github.com/noah-isme/scholarsync-api/pkg/response"
)

type performanceService interface {
	View(ctx context.Context, role models.UserRole) (*dto.PerformanceView, error)
	Roster(ctx context.Context) (*dto.RosterSummary, error)
	Student(ctx context.Context, id string) (*models.StudentProfile, error)
	Analysis(ctx context.Context, id string) (*dto.StudentAnalysis, error)
	UpdateGrade(ctx context.Context, id string, req dto.UpdateGradeRequest) (*models.StudentProfile, error)
	ExportRoster(ctx context.Context) (*service.ExportResult, error)
}

// PerformanceHandler serves student analytics.
type PerformanceHandler struct {
	service performanceService
}

// NewPerformanceHandler constructs the handler.
func NewPerformanceHandler(service performanceService) *PerformanceHandler {
	return &PerformanceHandler{service: service}
}

// View godoc
// @Summary Performance overview for the current role
// @Tags Performance
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /performance [get]
func (h *PerformanceHandler) View(c *gin.Context) {
	view, err := h.service.View(c.Request.Context(), roleFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, view)
}

// Roster godoc
// @Summary Student roster
// @Tags Performance
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /performance/students [get]
func (h *PerformanceHandler) Roster(c *gin.Context) {
	roster, err := h.service.Roster(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, roster)
}

// Student godoc
// @Summary Student detail
// @Tags Performance
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /performance/students/{id} [get]
func (h *PerformanceHandler) Student(c *gin.Context) {
	student, err := h.service.Student(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, student)
}

// Analysis godoc
// @Summary AI intervention strategy for a student
// @Tags Performance
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /performance/students/{id}/analysis [post]
func (h *PerformanceHandler) Analysis(c *gin.Context) {
	analysis, err := h.service.Analysis(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondGenerated(c, analysis, analysis.GeneratedText)
}

// UpdateGrade godoc
// @Summary Replace a student's average grade
// @Tags Performance
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body dto.UpdateGradeRequest true "Grade"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /performance/students/{id}/grade [patch]
func (h *PerformanceHandler) UpdateGrade(c *gin.Context) {
	var req dto.UpdateGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid grade payload"))
		return
	}
	student, err := h.service.UpdateGrade(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, student)
}

// Export godoc
// @Summary Export the roster as XLSX
// @Tags Performance
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /performance/students/export [get]
func (h *PerformanceHandler) Export(c *gin.Context) {
	result, err := h.service.ExportRoster(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	sendFile(c, result)
}
