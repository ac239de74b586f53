package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/noah-isme/scholarsync-api/internal/models"
)

// AnnouncementRepository holds the announcement feed and per-viewer expand state.
type AnnouncementRepository struct {
	mu       sync.RWMutex
	items    []models.Announcement
	expanded map[string]string
}

// NewAnnouncementRepository creates the repository.
func NewAnnouncementRepository(seed []models.Announcement) *AnnouncementRepository {
	items := make([]models.Announcement, len(seed))
	copy(items, seed)
	return &AnnouncementRepository{items: items, expanded: make(map[string]string)}
}

// List returns announcements newest first.
func (r *AnnouncementRepository) List(ctx context.Context) ([]models.Announcement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]models.Announcement, len(r.items))
	for i, item := range r.items {
		result[i] = cloneAnnouncement(item)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	return result, nil
}

// GetByID fetches a single announcement.
func (r *AnnouncementRepository) GetByID(ctx context.Context, id string) (*models.Announcement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx := r.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}
	item := cloneAnnouncement(r.items[idx])
	return &item, nil
}

// Create stores a new announcement.
func (r *AnnouncementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	if announcement.ID == "" {
		announcement.ID = uuid.NewString()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, cloneAnnouncement(*announcement))
	return nil
}

// MarkRead flags the announcement as read.
func (r *AnnouncementRepository) MarkRead(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	r.items[idx].IsRead = true
	return nil
}

// SetSummary attaches generated summary text.
func (r *AnnouncementRepository) SetSummary(ctx context.Context, id, summary string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	r.items[idx].Summary = &summary
	return nil
}

// CountUnread returns how many announcements are unread.
func (r *AnnouncementRepository) CountUnread(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, item := range r.items {
		if !item.IsRead {
			count++
		}
	}
	return count, nil
}

// Expanded returns the announcement id the viewer has open, or "".
func (r *AnnouncementRepository) Expanded(ctx context.Context, viewer string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.expanded[viewer], nil
}

// ToggleExpanded opens id for the viewer, or closes it if it was already open.
// It returns the resulting expanded id.
func (r *AnnouncementRepository) ToggleExpanded(ctx context.Context, viewer, id string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(id) < 0 {
		return "", ErrNotFound
	}
	if r.expanded[viewer] == id {
		delete(r.expanded, viewer)
		return "", nil
	}
	r.expanded[viewer] = id
	return id, nil
}

func (r *AnnouncementRepository) indexOf(id string) int {
	for i := range r.items {
		if r.items[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneAnnouncement(a models.Announcement) models.Announcement {
	if a.Summary != nil {
		summary := *a.Summary
		a.Summary = &summary
	}
	return a
}
