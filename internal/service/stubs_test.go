package service

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/scholarsync-api/internal/repository"
)

type stubGenerator struct {
	text  string
	err   error
	gate  chan struct{}
	calls int32
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	atomic.AddInt32(&g.calls, 1)
	if g.gate != nil {
		<-g.gate
	}
	return g.text, g.err
}

func (g *stubGenerator) Calls() int {
	return int(atomic.LoadInt32(&g.calls))
}

func newTestCache() *CacheService {
	return NewCacheService(repository.NewMemoryCacheRepository(time.Hour), nil, time.Hour, zap.NewNop(), "memory")
}

func newTestInsights(gen textGenerator) *InsightService {
	return NewInsightService(gen, newTestCache(), nil, time.Hour, zap.NewNop())
}

// fixedNow is a Wednesday mid-morning.
var fixedNow = time.Date(2024, time.March, 13, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return fixedNow
}
