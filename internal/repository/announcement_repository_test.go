package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scholarsync-api/internal/seed"
)

func TestAnnouncementRepositoryListNewestFirst(t *testing.T) {
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)
	repo := NewAnnouncementRepository(seed.Announcements(now))

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "a1", items[0].ID)
	assert.Equal(t, "a3", items[2].ID)
}

func TestAnnouncementRepositoryToggleIsPerViewer(t *testing.T) {
	ctx := context.Background()
	repo := NewAnnouncementRepository(seed.Announcements(time.Now()))

	open, err := repo.ToggleExpanded(ctx, "viewer-1", "a1")
	require.NoError(t, err)
	assert.Equal(t, "a1", open)

	other, err := repo.Expanded(ctx, "viewer-2")
	require.NoError(t, err)
	assert.Empty(t, other)

	switched, err := repo.ToggleExpanded(ctx, "viewer-1", "a2")
	require.NoError(t, err)
	assert.Equal(t, "a2", switched)

	closed, err := repo.ToggleExpanded(ctx, "viewer-1", "a2")
	require.NoError(t, err)
	assert.Empty(t, closed)

	_, err = repo.ToggleExpanded(ctx, "viewer-1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAnnouncementRepositorySummaryIsCopied(t *testing.T) {
	ctx := context.Background()
	repo := NewAnnouncementRepository(seed.Announcements(time.Now()))
	require.NoError(t, repo.SetSummary(ctx, "a1", "Venue moved."))

	first, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	*first.Summary = "mutated"

	second, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "Venue moved.", *second.Summary)
}
