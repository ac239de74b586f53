package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarsync-api/internal/dto"
	"github.com/noah-isme/scholarsync-api/internal/models"
	"github.com/noah-isme/scholarsync-api/internal/repository"
	appErrors "github.com/noah-isme/scholarsync-api/pkg/errors"
)

// FeedbackAcknowledgement is returned to students after submitting feedback.
const FeedbackAcknowledgement = "Academic feedback received. The faculty will be notified."

const defaultMaterialTitle = "New Material"

type courseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	Get(ctx context.Context, code string) (*models.Course, error)
	ListMaterials(ctx context.Context, code, search string) ([]models.CourseMaterial, error)
	CreateMaterial(ctx context.Context, material *models.CourseMaterial) error
	GetMaterial(ctx context.Context, id string) (*models.CourseMaterial, error)
	AddFeedback(ctx context.Context, feedback models.CourseFeedback) error
	ListFeedback(ctx context.Context, code string) ([]models.CourseFeedback, error)
	FeedbackCounts(ctx context.Context) (map[string]int, error)
}

type materialStorage interface {
	SaveStream(filename string, r io.Reader) (int64, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
}

type urlSigner interface {
	Generate(resourceID, relPath string) (string, time.Time, error)
	Parse(token string, allowExpired bool) (resourceID, relPath string, expiresAt time.Time, err error)
}

type lessonAdvisor interface {
	LessonAdjustments(ctx context.Context, courseCode string, feedback []string) dto.GeneratedText
}

// CourseServiceParams groups constructor dependencies.
type CourseServiceParams struct {
	Repo         courseRepository
	Storage      materialStorage
	Signer       urlSigner
	Advisor      lessonAdvisor
	Validator    *validator.Validate
	Logger       *zap.Logger
	DownloadPath string
	MaxFileSize  int64
}

// CourseService serves the digital classroom and faculty hub.
type CourseService struct {
	repo         courseRepository
	storage      materialStorage
	signer       urlSigner
	advisor      lessonAdvisor
	validator    *validator.Validate
	logger       *zap.Logger
	downloadPath string
	maxFileSize  int64
	now          func() time.Time
}

// NewCourseService constructs the service.
func NewCourseService(params CourseServiceParams) *CourseService {
	if params.Validator == nil {
		params.Validator = NewValidator()
	}
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	if params.DownloadPath == "" {
		params.DownloadPath = "/api/v1/materials/download"
	}
	return &CourseService{
		repo:         params.Repo,
		storage:      params.Storage,
		signer:       params.Signer,
		advisor:      params.Advisor,
		validator:    params.Validator,
		logger:       params.Logger,
		downloadPath: strings.TrimRight(params.DownloadPath, "/"),
		maxFileSize:  params.MaxFileSize,
		now:          time.Now,
	}
}

// List returns all courses.
func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, nil
}

// Materials lists a course's materials filtered by a case-insensitive title search.
func (s *CourseService) Materials(ctx context.Context, code, search string) ([]models.CourseMaterial, error) {
	if _, err := s.course(ctx, code); err != nil {
		return nil, err
	}
	materials, err := s.repo.ListMaterials(ctx, code, search)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list materials")
	}
	for i := range materials {
		s.attachURL(&materials[i])
	}
	return materials, nil
}

// AddMaterial registers a new material, storing the uploaded file when present.
func (s *CourseService) AddMaterial(ctx context.Context, code string, req dto.CreateMaterialRequest, upload *dto.MaterialUpload) (*models.CourseMaterial, error) {
	course, err := s.course(ctx, code)
	if err != nil {
		return nil, err
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Type = strings.ToUpper(strings.TrimSpace(req.Type))
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid material payload")
	}

	material := &models.CourseMaterial{
		ID:         uuid.NewString(),
		Title:      req.Title,
		Type:       models.MaterialType(req.Type),
		CourseCode: course.Code,
		UploadDate: s.now(),
	}
	if material.Title == "" {
		material.Title = defaultMaterialTitle
	}
	if material.Type == "" {
		material.Type = models.MaterialTypePDF
	}

	if upload != nil && upload.Reader != nil {
		if s.maxFileSize > 0 && upload.Size > s.maxFileSize {
			return nil, appErrors.Clone(appErrors.ErrTooLarge, fmt.Sprintf("file exceeds %s limit", humanSize(s.maxFileSize)))
		}
		if s.storage == nil {
			return nil, appErrors.Clone(appErrors.ErrUnavailable, "material storage unavailable")
		}
		name := sanitizeFilename(filepath.Base(upload.FileName))
		relPath := filepath.ToSlash(filepath.Join(course.Code, material.ID, name))
		written, err := s.storage.SaveStream(relPath, upload.Reader)
		if err != nil {
			_ = s.storage.Delete(relPath)
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store material")
		}
		material.StoragePath = relPath
		material.FileName = name
		material.Size = humanSize(written)
	}

	if err := s.repo.CreateMaterial(ctx, material); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save material")
	}
	s.attachURL(material)
	s.logger.Info("material uploaded", zap.String("course", course.Code), zap.String("material_id", material.ID), zap.Bool("has_file", material.StoragePath != ""))
	return material, nil
}

// OpenMaterial resolves a signed download token to the stored file. Callers close the file.
func (s *CourseService) OpenMaterial(ctx context.Context, token string) (*os.File, *models.CourseMaterial, error) {
	if s.signer == nil || s.storage == nil {
		return nil, nil, appErrors.Clone(appErrors.ErrUnavailable, "material storage unavailable")
	}
	id, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrForbidden.Code, appErrors.ErrForbidden.Status, "invalid or expired download link")
	}
	material, err := s.repo.GetMaterial(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "material not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load material")
	}
	if material.StoragePath == "" || material.StoragePath != relPath {
		return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "material file not found")
	}
	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "material file not found")
	}
	return file, material, nil
}

// SubmitFeedback appends trimmed, non-empty feedback to a course.
func (s *CourseService) SubmitFeedback(ctx context.Context, code string, req dto.FeedbackRequest) (*dto.FeedbackAck, error) {
	course, err := s.course(ctx, code)
	if err != nil {
		return nil, err
	}
	req.Message = strings.TrimSpace(req.Message)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "feedback message is required")
	}
	feedback := models.CourseFeedback{CourseCode: course.Code, Message: req.Message, SubmittedAt: s.now()}
	if err := s.repo.AddFeedback(ctx, feedback); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save feedback")
	}
	return &dto.FeedbackAck{Message: FeedbackAcknowledgement, Feedback: feedback}, nil
}

// Feedback lists a course's feedback.
func (s *CourseService) Feedback(ctx context.Context, code string) ([]models.CourseFeedback, error) {
	course, err := s.course(ctx, code)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListFeedback(ctx, course.Code)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list feedback")
	}
	return items, nil
}

// FeedbackCounts returns feedback totals keyed by course code.
func (s *CourseService) FeedbackCounts(ctx context.Context) (map[string]int, error) {
	counts, err := s.repo.FeedbackCounts(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count feedback")
	}
	return counts, nil
}

// Insights asks for lesson adjustments based on the course's feedback.
func (s *CourseService) Insights(ctx context.Context, code string) (*dto.CourseInsights, error) {
	items, err := s.Feedback(ctx, code)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no feedback to analyze for this course")
	}
	messages := make([]string, len(items))
	for i, item := range items {
		messages[i] = item.Message
	}
	course := items[0].CourseCode
	generated := s.advisor.LessonAdjustments(ctx, course, messages)
	return &dto.CourseInsights{CourseCode: course, FeedbackCount: len(items), GeneratedText: generated}, nil
}

func (s *CourseService) course(ctx context.Context, code string) (*models.Course, error) {
	course, err := s.repo.Get(ctx, strings.TrimSpace(code))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

func (s *CourseService) attachURL(m *models.CourseMaterial) {
	if m.StoragePath == "" || s.signer == nil {
		return
	}
	token, _, err := s.signer.Generate(m.ID, m.StoragePath)
	if err != nil {
		s.logger.Warn("failed to sign material url", zap.String("material_id", m.ID), zap.Error(err))
		return
	}
	url := s.downloadPath + "/" + token
	m.URL = &url
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGT"[exp])
}
