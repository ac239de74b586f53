package repository

import (
	"context"
	"sync"

	"github.com/noah-isme/scholarsync-api/internal/models"
)

// PreferenceRepository keeps notification settings per viewer.
type PreferenceRepository struct {
	mu    sync.RWMutex
	prefs map[string]models.Preferences
}

// NewPreferenceRepository creates an empty repository.
func NewPreferenceRepository() *PreferenceRepository {
	return &PreferenceRepository{prefs: make(map[string]models.Preferences)}
}

// Get returns the viewer's preferences or the defaults.
func (r *PreferenceRepository) Get(ctx context.Context, viewer string) (models.Preferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.prefs[viewer]; ok {
		return p, nil
	}
	return models.DefaultPreferences(), nil
}

// Save stores the viewer's preferences.
func (r *PreferenceRepository) Save(ctx context.Context, viewer string, prefs models.Preferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefs[viewer] = prefs
	return nil
}
