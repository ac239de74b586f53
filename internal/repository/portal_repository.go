package repository

import (
	"context"
	"sync"

	"github.com/noah-isme/scholarsync-api/internal/models"
)

// PortalRepository stores integration toggles.
type PortalRepository struct {
	mu      sync.RWMutex
	portals []models.PortalConfig
}

// NewPortalRepository creates the repository.
func NewPortalRepository(seed []models.PortalConfig) *PortalRepository {
	return &PortalRepository{portals: append([]models.PortalConfig(nil), seed...)}
}

// List returns all portals.
func (r *PortalRepository) List(ctx context.Context) ([]models.PortalConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.PortalConfig(nil), r.portals...), nil
}

// Get fetches a portal by id.
func (r *PortalRepository) Get(ctx context.Context, id string) (*models.PortalConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.portals {
		if p.ID == id {
			portal := p
			return &portal, nil
		}
	}
	return nil, ErrNotFound
}

// Modify applies fn to the stored portal under the write lock. fn returning an
// error leaves the portal untouched.
func (r *PortalRepository) Modify(ctx context.Context, id string, fn func(*models.PortalConfig) error) (*models.PortalConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.portals {
		if r.portals[i].ID != id {
			continue
		}
		updated := r.portals[i]
		if err := fn(&updated); err != nil {
			return nil, err
		}
		r.portals[i] = updated
		return &updated, nil
	}
	return nil, ErrNotFound
}
