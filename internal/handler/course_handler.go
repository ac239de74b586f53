package handler

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholarsync-api/internal/dto"
	"github.com/noah-isme/scholarsync-api/internal/models"
	appErrors "github.com/noah-isme/scholarsync-api/pkg/errors"
	"github.com/noah-isme/scholarsync-api/pkg/response"
)

// multipart envelope allowance on top of the file itself
const formOverheadBytes = 1 << 20

type courseService interface {
	List(ctx context.Context) ([]models.Course, error)
	Materials(ctx context.Context, code, search string) ([]models.CourseMaterial, error)
	AddMaterial(ctx context.Context, code string, req dto.CreateMaterialRequest, upload *dto.MaterialUpload) (*models.CourseMaterial, error)
	OpenMaterial(ctx context.Context, token string) (*os.File, *models.CourseMaterial, error)
	SubmitFeedback(ctx context.Context, code string, req dto.FeedbackRequest) (*dto.FeedbackAck, error)
	Feedback(ctx context.Context, code string) ([]models.CourseFeedback, error)
	Insights(ctx context.Context, code string) (*dto.CourseInsights, error)
}

// CourseHandler serves the digital classroom and faculty hub.
type CourseHandler struct {
	service     courseService
	maxFileSize int64
}

// NewCourseHandler constructs the handler. maxFileSize bounds uploaded material files.
func NewCourseHandler(service courseService, maxFileSize int64) *CourseHandler {
	return &CourseHandler{service: service, maxFileSize: maxFileSize}
}

// List godoc
// @Summary List courses
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, courses)
}

// Materials godoc
// @Summary List course materials
// @Tags Courses
// @Produce json
// @Param code path string true "Course code"
// @Param search query string false "Case-insensitive title search"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{code}/materials [get]
func (h *CourseHandler) Materials(c *gin.Context) {
	materials, err := h.service.Materials(c.Request.Context(), c.Param("code"), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, materials)
}

// AddMaterial godoc
// @Summary Upload course material
// @Description Accepts JSON or multipart form data with an optional file. Title defaults to "New Material" and type to PDF.
// @Tags Courses
// @Accept json
// @Accept mpfd
// @Produce json
// @Param code path string true "Course code"
// @Param title formData string false "Title"
// @Param type formData string false "PDF, SLIDE, VIDEO or DOC"
// @Param file formData file false "Material file"
// @Success 201 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 413 {object} response.Envelope
// @Router /courses/{code}/materials [post]
func (h *CourseHandler) AddMaterial(c *gin.Context) {
	var req dto.CreateMaterialRequest
	var upload *dto.MaterialUpload

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if h.maxFileSize > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxFileSize+formOverheadBytes)
		}
		if err := c.ShouldBind(&req); err != nil {
			response.Error(c, h.formError(err))
			return
		}
		fileHeader, err := c.FormFile("file")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			response.Error(c, h.formError(err))
			return
		default:
			src, err := fileHeader.Open()
			if err != nil {
				response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open file"))
				return
			}
			defer src.Close()
			upload = &dto.MaterialUpload{FileName: fileHeader.Filename, Size: fileHeader.Size, Reader: src}
		}
	} else if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid material payload"))
			return
		}
	}

	material, err := h.service.AddMaterial(c.Request.Context(), c.Param("code"), req, upload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, material)
}

// Download godoc
// @Summary Download a material file
// @Tags Courses
// @Produce octet-stream
// @Param token path string true "Signed download token"
// @Success 200 {file} file
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /materials/download/{token} [get]
func (h *CourseHandler) Download(c *gin.Context) {
	file, material, err := h.service.OpenMaterial(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck
	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read material"))
		return
	}
	contentType := mime.TypeByExtension(filepath.Ext(material.FileName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", material.FileName))
	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, info.Size(), contentType, file, nil)
}

// SubmitFeedback godoc
// @Summary Send feedback to course faculty
// @Tags Courses
// @Accept json
// @Produce json
// @Param code path string true "Course code"
// @Param payload body dto.FeedbackRequest true "Feedback"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /courses/{code}/feedback [post]
func (h *CourseHandler) SubmitFeedback(c *gin.Context) {
	var req dto.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid feedback payload"))
		return
	}
	ack, err := h.service.SubmitFeedback(c.Request.Context(), c.Param("code"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, ack)
}

// Feedback godoc
// @Summary List course feedback
// @Tags Courses
// @Produce json
// @Param code path string true "Course code"
// @Success 200 {object} response.Envelope
// @Router /courses/{code}/feedback [get]
func (h *CourseHandler) Feedback(c *gin.Context) {
	items, err := h.service.Feedback(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

// Insights godoc
// @Summary AI lesson adjustments from feedback
// @Tags Courses
// @Produce json
// @Param code path string true "Course code"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /courses/{code}/insights [post]
func (h *CourseHandler) Insights(c *gin.Context) {
	insights, err := h.service.Insights(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondGenerated(c, insights, insights.GeneratedText)
}

func (h *CourseHandler) formError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return appErrors.Clone(appErrors.ErrTooLarge, "upload exceeds the allowed size")
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid material form")
}
