package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarsync-api/internal/dto"
	"github.com/noah-isme/scholarsync-api/internal/models"
	appErrors "github.com/noah-isme/scholarsync-api/pkg/errors"
)

type preferenceRepository interface {
	Get(ctx context.Context, viewer string) (models.Preferences, error)
	Save(ctx context.Context, viewer string, prefs models.Preferences) error
}

// PreferenceService stores notification settings per viewer.
type PreferenceService struct {
	repo      preferenceRepository
	validator *validator.Validate
	logger    *zap.Logger
}

func NewPreferenceService(repo preferenceRepository, validate *validator.Validate, logger *zap.Logger) *PreferenceService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PreferenceService{repo: repo, validator: validate, logger: logger}
}

func (s *PreferenceService) Get(ctx context.Context, viewer string) (*models.Preferences, error) {
	prefs, err := s.repo.Get(ctx, viewer)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load preferences")
	}
	return &prefs, nil
}

func (s *PreferenceService) Update(ctx context.Context, viewer string, req dto.UpdatePreferencesRequest) (*models.Preferences, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "class_reminder_minutes must be 15, 30 or 60 and exam_alerts is required")
	}
	prefs := models.Preferences{ClassReminderMinutes: req.ClassReminderMinutes, ExamAlerts: *req.ExamAlerts}
	if err := s.repo.Save(ctx, viewer, prefs); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save preferences")
	}
	s.logger.Debug("preferences updated", zap.String("viewer", viewer), zap.Int("class_reminder_minutes", prefs.ClassReminderMinutes))
	return &prefs, nil
}
