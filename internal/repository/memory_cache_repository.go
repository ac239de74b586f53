package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/patrickmn/go-cache"

	appErrors "github.com/noah-isme/scholarsync-api/pkg/errors"
)

// MemoryCacheRepository is the in-process cache used when Redis is disabled.
// Values are stored JSON encoded so callers see the same decoding behaviour as Redis.
type MemoryCacheRepository struct {
	store *cache.Cache
}

// NewMemoryCacheRepository builds a cache whose entries default to ttl.
func NewMemoryCacheRepository(ttl time.Duration) *MemoryCacheRepository {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	cleanup := ttl
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	return &MemoryCacheRepository{store: cache.New(ttl, cleanup)}
}

// Get decodes the cached value into dest.
func (r *MemoryCacheRepository) Get(ctx context.Context, key string, dest interface{}) error {
	raw, found := r.store.Get(key)
	if !found {
		return appErrors.ErrCacheMiss
	}
	payload, ok := raw.([]byte)
	if !ok {
		r.store.Delete(key)
		return appErrors.ErrCacheMiss
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("unmarshal cache value for %s: %w", key, err)
	}
	return nil
}

// Set encodes and stores value for ttl.
func (r *MemoryCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value for %s: %w", key, err)
	}
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}
	r.store.Set(key, payload, ttl)
	return nil
}

// DeleteByPattern removes keys matching a glob pattern such as "ai:summary:*".
func (r *MemoryCacheRepository) DeleteByPattern(ctx context.Context, pattern string) error {
	for key := range r.store.Items() {
		matched, err := path.Match(pattern, key)
		if err != nil {
			return fmt.Errorf("match cache pattern %s: %w", pattern, err)
		}
		if matched {
			r.store.Delete(key)
		}
	}
	return nil
}
