package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarsync-api/internal/dto"
	"github.com/noah-isme/scholarsync-api/internal/models"
	"github.com/noah-isme/scholarsync-api/internal/repository"
	appErrors "github.com/noah-isme/scholarsync-api/pkg/errors"
	"github.com/noah-isme/scholarsync-api/pkg/jobs"
)

// Job types processed by the integrations queue.
const (
	JobPortalToggle = "portal.toggle"
	JobCalendarSync = "calendar.sync"
)

type portalRepository interface {
	List(ctx context.Context) ([]models.PortalConfig, error)
	Get(ctx context.Context, id string) (*models.PortalConfig, error)
	Modify(ctx context.Context, id string, fn func(*models.PortalConfig) error) (*models.PortalConfig, error)
}

type jobEnqueuer interface {
	Enqueue(job jobs.Job) error
}

const defaultSyncedHold = 3 * time.Second

// IntegrationConfig sets the simulated latency of external systems.
// SyncedHold is how long a finished calendar sync reports SYNCED before
// returning to IDLE; zero means 3s and a negative value keeps it forever.
type IntegrationConfig struct {
	CalendarDelay time.Duration
	ConnectDelay  time.Duration
	SyncedHold    time.Duration
}

// IntegrationService simulates LMS portal connections and the calendar sync.
// Work is handed to a background queue; see Router.
type IntegrationService struct {
	portals portalRepository
	queue   jobEnqueuer
	cfg     IntegrationConfig
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time

	mu         sync.Mutex
	syncState  models.SyncState
	syncJobID  string
	lastSynced *time.Time
}

// NewIntegrationService constructs the service. Call AttachQueue before toggling.
func NewIntegrationService(portals portalRepository, cfg IntegrationConfig, metrics *MetricsService, logger *zap.Logger) *IntegrationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SyncedHold == 0 {
		cfg.SyncedHold = defaultSyncedHold
	}
	return &IntegrationService{
		portals:   portals,
		cfg:       cfg,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
		syncState: models.SyncStateIdle,
	}
}

// AttachQueue sets the queue jobs are submitted to.
func (s *IntegrationService) AttachQueue(q jobEnqueuer) {
	s.queue = q
}

// QueueWorkers sizes the integrations queue so every portal and one calendar
// sync can wait out their delays at the same time.
func (s *IntegrationService) QueueWorkers(ctx context.Context, configured int) int {
	need := 1
	if portals, err := s.portals.List(ctx); err == nil {
		need += len(portals)
	}
	if configured > need {
		return configured
	}
	return need
}

// Router maps job types to this service's handlers.
func (s *IntegrationService) Router() jobs.Router {
	return jobs.Router{
		JobPortalToggle: s.instrument(JobPortalToggle, s.handlePortalToggle),
		JobCalendarSync: s.instrument(JobCalendarSync, s.handleCalendarSync),
	}
}

// Portals lists portal integrations.
func (s *IntegrationService) Portals(ctx context.Context) ([]models.PortalConfig, error) {
	portals, err := s.portals.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load portals")
	}
	return portals, nil
}

// TogglePortal starts connecting or disconnecting a portal. The flip lands after ConnectDelay.
func (s *IntegrationService) TogglePortal(ctx context.Context, id string) (*dto.PortalToggleResponse, error) {
	portal, err := s.portals.Modify(ctx, id, func(p *models.PortalConfig) error {
		if p.Status == models.PortalStatusConnecting {
			return appErrors.Clone(appErrors.ErrConflict, "portal connection already in progress")
		}
		p.Status = models.PortalStatusConnecting
		return nil
	})
	if err != nil {
		return nil, s.mapPortalError(err)
	}

	jobID := uuid.NewString()
	if err := s.enqueue(jobs.Job{ID: jobID, Type: JobPortalToggle, Payload: id}); err != nil {
		_, _ = s.portals.Modify(ctx, id, func(p *models.PortalConfig) error {
			p.Status = models.PortalStatusIdle
			return nil
		})
		return nil, err
	}
	s.logger.Info("portal toggle queued", zap.String("portal_id", id), zap.String("job_id", jobID), zap.Bool("currently_connected", portal.IsConnected))
	return &dto.PortalToggleResponse{Portal: *portal, JobID: jobID}, nil
}

// StartCalendarSync queues a calendar sync unless one is already running.
func (s *IntegrationService) StartCalendarSync(ctx context.Context) (*dto.SyncStatusResponse, error) {
	s.mu.Lock()
	s.expireSyncedLocked()
	if s.syncState == models.SyncStateSyncing {
		status := s.statusLocked()
		s.mu.Unlock()
		return &status, nil
	}
	previous := s.syncState
	jobID := uuid.NewString()
	s.syncState = models.SyncStateSyncing
	s.syncJobID = jobID
	s.mu.Unlock()

	if err := s.enqueue(jobs.Job{ID: jobID, Type: JobCalendarSync}); err != nil {
		s.mu.Lock()
		s.syncState = previous
		s.syncJobID = ""
		s.mu.Unlock()
		return nil, err
	}
	status := s.SyncStatus()
	return &status, nil
}

// SyncStatus reports the calendar sync lifecycle.
func (s *IntegrationService) SyncStatus() dto.SyncStatusResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireSyncedLocked()
	return s.statusLocked()
}

// expireSyncedLocked drops a finished sync back to IDLE once SyncedHold has passed.
func (s *IntegrationService) expireSyncedLocked() {
	if s.syncState != models.SyncStateSynced || s.cfg.SyncedHold < 0 || s.lastSynced == nil {
		return
	}
	if s.now().Sub(*s.lastSynced) >= s.cfg.SyncedHold {
		s.syncState = models.SyncStateIdle
		s.syncJobID = ""
	}
}

func (s *IntegrationService) statusLocked() dto.SyncStatusResponse {
	status := dto.SyncStatusResponse{State: s.syncState, JobID: s.syncJobID}
	if s.lastSynced != nil {
		ts := *s.lastSynced
		status.LastSynced = &ts
	}
	return status
}

func (s *IntegrationService) handlePortalToggle(ctx context.Context, job jobs.Job) error {
	id, _ := job.Payload.(string)
	if err := wait(ctx, s.cfg.ConnectDelay); err != nil {
		return err
	}
	portal, err := s.portals.Modify(ctx, id, func(p *models.PortalConfig) error {
		p.IsConnected = !p.IsConnected
		if p.IsConnected {
			now := s.now()
			p.LastSynced = &now
		}
		p.Status = models.PortalStatusIdle
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("portal toggled", zap.String("portal_id", id), zap.Bool("connected", portal.IsConnected))
	return nil
}

func (s *IntegrationService) handleCalendarSync(ctx context.Context, job jobs.Job) error {
	if err := wait(ctx, s.cfg.CalendarDelay); err != nil {
		return err
	}
	now := s.now()
	s.mu.Lock()
	if s.syncJobID == job.ID {
		s.syncState = models.SyncStateSynced
		s.lastSynced = &now
	}
	s.mu.Unlock()
	s.logger.Info("calendar synced", zap.String("job_id", job.ID))
	return nil
}

func (s *IntegrationService) instrument(jobType string, h jobs.Handler) jobs.Handler {
	return func(ctx context.Context, job jobs.Job) error {
		err := h(ctx, job)
		s.metrics.RecordJob(jobType, err)
		return err
	}
}

func (s *IntegrationService) enqueue(job jobs.Job) error {
	if s.queue == nil {
		return appErrors.Clone(appErrors.ErrUnavailable, "background queue unavailable")
	}
	if err := s.queue.Enqueue(job); err != nil {
		s.logger.Warn("enqueue failed", zap.String("type", job.Type), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "background queue busy, try again")
	}
	return nil
}

func (s *IntegrationService) mapPortalError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return appErrors.Clone(appErrors.ErrNotFound, "portal not found")
	}
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update portal")
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
