package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scholarsync-api/internal/models"
	"github.com/noah-isme/scholarsync-api/internal/seed"
)

func TestEventRepositoryListFiltersAndSorts(t *testing.T) {
	now := time.Date(2025, 3, 12, 8, 0, 0, 0, time.UTC)
	repo := NewEventRepository(seed.Events(now))
	ctx := context.Background()

	late := &models.ScheduleEvent{Title: "Study Group", Type: models.EventTypeStudyBlock, StartTime: now.Add(30 * time.Minute), EndTime: now.Add(90 * time.Minute)}
	require.NoError(t, repo.Create(ctx, late))
	assert.NotEmpty(t, late.ID)

	from := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	events, err := repo.List(ctx, models.EventFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, events, 4)
	assert.Equal(t, "Study Group", events[0].Title)
	for i := 1; i < len(events); i++ {
		assert.False(t, events[i].StartTime.Before(events[i-1].StartTime))
	}
}
