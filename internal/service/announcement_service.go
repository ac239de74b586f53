package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarsync-api/internal/dto"
	"github.com/noah-isme/scholarsync-api/internal/models"
	"github.com/noah-isme/scholarsync-api/internal/repository"
	appErrors "github.com/noah-isme/scholarsync-api/pkg/errors"
)

type announcementRepository interface {
	List(ctx context.Context) ([]models.Announcement, error)
	GetByID(ctx context.Context, id string) (*models.Announcement, error)
	Create(ctx context.Context, announcement *models.Announcement) error
	MarkRead(ctx context.Context, id string) error
	SetSummary(ctx context.Context, id, summary string) error
	CountUnread(ctx context.Context) (int, error)
	Expanded(ctx context.Context, viewer string) (string, error)
	ToggleExpanded(ctx context.Context, viewer, id string) (string, error)
}

type announcementSummarizer interface {
	SummarizeAnnouncement(ctx context.Context, id, content string) dto.GeneratedText
}

// AnnouncementService handles the announcements feed.
type AnnouncementService struct {
	repo       announcementRepository
	summarizer announcementSummarizer
	validator  *validator.Validate
	logger     *zap.Logger
	now        func() time.Time
}

// NewAnnouncementService constructs the service.
func NewAnnouncementService(repo announcementRepository, summarizer announcementSummarizer, validate *validator.Validate, logger *zap.Logger) *AnnouncementService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnnouncementService{repo: repo, summarizer: summarizer, validator: validate, logger: logger, now: time.Now}
}

// Feed returns the announcements, newest first, with the viewer's expanded item.
func (s *AnnouncementService) Feed(ctx context.Context, viewer string) (*dto.AnnouncementFeed, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list announcements")
	}
	expanded, err := s.repo.Expanded(ctx, viewer)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load view state")
	}
	unread := 0
	for _, item := range items {
		if !item.IsRead {
			unread++
		}
	}
	return &dto.AnnouncementFeed{Items: items, ExpandedID: optional(expanded), UnreadCount: unread}, nil
}

// Get returns one announcement.
func (s *AnnouncementService) Get(ctx context.Context, id string) (*models.Announcement, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err)
	}
	return item, nil
}

// Toggle expands id for the viewer or collapses it if already expanded. Read state is untouched.
func (s *AnnouncementService) Toggle(ctx context.Context, viewer, id string) (*dto.ToggleResponse, error) {
	expanded, err := s.repo.ToggleExpanded(ctx, viewer, id)
	if err != nil {
		return nil, s.mapError(err)
	}
	return &dto.ToggleResponse{ExpandedID: optional(expanded)}, nil
}

// MarkRead flags an announcement as read.
func (s *AnnouncementService) MarkRead(ctx context.Context, id string) (*models.Announcement, error) {
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return nil, s.mapError(err)
	}
	return s.Get(ctx, id)
}

// UnreadCount returns the number of unread announcements.
func (s *AnnouncementService) UnreadCount(ctx context.Context) (int, error) {
	count, err := s.repo.CountUnread(ctx)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count announcements")
	}
	return count, nil
}

// Summarize returns the stored summary or generates one. Fallback text is returned but not stored.
func (s *AnnouncementService) Summarize(ctx context.Context, id string) (*dto.SummaryResponse, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err)
	}
	if item.Summary != nil {
		return &dto.SummaryResponse{AnnouncementID: id, GeneratedText: dto.GeneratedText{Text: *item.Summary, Cached: true}}, nil
	}

	generated := s.summarizer.SummarizeAnnouncement(ctx, id, item.Content)
	if !generated.Fallback {
		if err := s.repo.SetSummary(ctx, id, generated.Text); err != nil {
			s.logger.Warn("failed to store summary", zap.String("announcement_id", id), zap.Error(err))
		}
	}
	return &dto.SummaryResponse{AnnouncementID: id, GeneratedText: generated}, nil
}

// Create publishes a new announcement. Sender defaults to the author's display name.
func (s *AnnouncementService) Create(ctx context.Context, author *models.SessionClaims, req dto.CreateAnnouncementRequest) (*models.Announcement, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	req.Priority = strings.ToUpper(strings.TrimSpace(req.Priority))
	req.Sender = strings.TrimSpace(req.Sender)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid announcement payload")
	}

	priority := models.AnnouncementPriorityMedium
	if req.Priority != "" {
		priority = models.AnnouncementPriority(req.Priority)
	}
	sender := req.Sender
	if sender == "" && author != nil {
		sender = author.DisplayName
	}
	announcement := &models.Announcement{
		Title:    req.Title,
		Sender:   sender,
		Date:     s.now(),
		Content:  req.Content,
		Priority: priority,
	}
	if err := s.repo.Create(ctx, announcement); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create announcement")
	}
	s.logger.Info("announcement published", zap.String("announcement_id", announcement.ID), zap.String("priority", string(priority)))
	return announcement, nil
}

func (s *AnnouncementService) mapError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return appErrors.Clone(appErrors.ErrNotFound, "announcement not found")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load announcement")
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
