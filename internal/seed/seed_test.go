package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventsAreAnchoredToNow(t *testing.T) {
	loc := time.FixedZone("EAT", 3*60*60)
	now := time.Date(2025, 3, 12, 8, 15, 0, 0, loc)

	events := Events(now)
	require.Len(t, events, 5)

	assert.Equal(t, time.Date(2025, 3, 12, 9, 0, 0, 0, loc), events[0].StartTime)
	assert.Equal(t, time.Date(2025, 3, 13, 23, 59, 0, 0, loc), events[4].StartTime)
	assert.Nil(t, events[4].Location)
	for _, e := range events {
		assert.False(t, e.EndTime.Before(e.StartTime), e.ID)
	}
}

func TestAnnouncementsAreRelativeToNow(t *testing.T) {
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)
	items := Announcements(now)
	require.Len(t, items, 3)
	assert.Equal(t, now.Add(-2*time.Hour), items[0].Date)
	assert.True(t, items[1].IsRead)
	assert.Equal(t, now.Add(-48*time.Hour), items[2].Date)
}

func TestBuildCoversEveryCollection(t *testing.T) {
	data := Build(time.Now())
	assert.NotEmpty(t, data.Courses)
	assert.NotEmpty(t, data.Materials)
	assert.Len(t, data.Feedback, 4)
	assert.NotEmpty(t, data.Students)
	require.Len(t, data.Portals, 3)
	assert.True(t, data.Portals[0].IsConnected)
	assert.NotNil(t, data.Portals[0].LastSynced)
}
