package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarsync-api/internal/dto"
	"github.com/noah-isme/scholarsync-api/internal/models"
	"github.com/noah-isme/scholarsync-api/internal/repository"
	"github.com/noah-isme/scholarsync-api/internal/seed"
	appErrors "github.com/noah-isme/scholarsync-api/pkg/errors"
)

func newAnnouncementServiceForTest(gen textGenerator) *AnnouncementService {
	repo := repository.NewAnnouncementRepository(seed.Announcements(fixedNow))
	svc := NewAnnouncementService(repo, newTestInsights(gen), nil, zap.NewNop())
	svc.now = fixedClock
	return svc
}

func TestAnnouncementServiceToggleTwiceRestoresFeed(t *testing.T) {
	svc := newAnnouncementServiceForTest(&stubGenerator{text: "summary"})
	ctx := context.Background()

	initial, err := svc.Feed(ctx, "viewer-1")
	require.NoError(t, err)
	require.Nil(t, initial.ExpandedID)

	for _, item := range initial.Items {
		opened, err := svc.Toggle(ctx, "viewer-1", item.ID)
		require.NoError(t, err)
		require.NotNil(t, opened.ExpandedID)
		assert.Equal(t, item.ID, *opened.ExpandedID)

		closed, err := svc.Toggle(ctx, "viewer-1", item.ID)
		require.NoError(t, err)
		assert.Nil(t, closed.ExpandedID)

		after, err := svc.Feed(ctx, "viewer-1")
		require.NoError(t, err)
		assert.Equal(t, initial, after)
	}
}

func TestAnnouncementServiceToggleIsPerViewer(t *testing.T) {
	svc := newAnnouncementServiceForTest(nil)
	ctx := context.Background()

	_, err := svc.Toggle(ctx, "viewer-1", "a1")
	require.NoError(t, err)
	switched, err := svc.Toggle(ctx, "viewer-1", "a2")
	require.NoError(t, err)
	assert.Equal(t, "a2", *switched.ExpandedID)

	other, err := svc.Feed(ctx, "viewer-2")
	require.NoError(t, err)
	assert.Nil(t, other.ExpandedID)

	_, err = svc.Toggle(ctx, "viewer-1", "missing")
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestAnnouncementServiceFeedOrderAndUnread(t *testing.T) {
	svc := newAnnouncementServiceForTest(nil)
	ctx := context.Background()

	feed, err := svc.Feed(ctx, "guest")
	require.NoError(t, err)
	require.Len(t, feed.Items, 3)
	assert.Equal(t, []string{"a1", "a2", "a3"}, []string{feed.Items[0].ID, feed.Items[1].ID, feed.Items[2].ID})
	assert.Equal(t, 2, feed.UnreadCount)

	item, err := svc.MarkRead(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, item.IsRead)

	count, err := svc.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAnnouncementServiceSummarizeOnce(t *testing.T) {
	gen := &stubGenerator{text: "Exam venue moved to Exam Hall A, 14:00."}
	svc := newAnnouncementServiceForTest(gen)
	ctx := context.Background()

	first, err := svc.Summarize(ctx, "a1")
	require.NoError(t, err)
	assert.False(t, first.Fallback)
	assert.Equal(t, gen.text, first.Text)

	second, err := svc.Summarize(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, gen.text, second.Text)
	assert.Equal(t, 1, gen.Calls())

	feed, err := svc.Feed(ctx, "guest")
	require.NoError(t, err)
	require.NotNil(t, feed.Items[0].Summary)
	assert.Equal(t, gen.text, *feed.Items[0].Summary)
	assert.False(t, feed.Items[0].IsRead)
}

func TestAnnouncementServiceSummarizeFallbackNotStored(t *testing.T) {
	gen := &stubGenerator{err: errors.New("timeout")}
	svc := newAnnouncementServiceForTest(gen)
	ctx := context.Background()

	res, err := svc.Summarize(ctx, "a2")
	require.NoError(t, err)
	assert.True(t, res.Fallback)
	assert.Equal(t, SummaryCallSite.Failure, res.Text)

	item, err := svc.Get(ctx, "a2")
	require.NoError(t, err)
	assert.Nil(t, item.Summary)

	_, err = svc.Summarize(ctx, "nope")
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 404, appErr.Status)
}

func TestAnnouncementServiceCreate(t *testing.T) {
	svc := newAnnouncementServiceForTest(nil)
	ctx := context.Background()
	author := &models.SessionClaims{Role: models.RoleTeacher, DisplayName: "Dr. Okafor"}

	created, err := svc.Create(ctx, author, dto.CreateAnnouncementRequest{Title: " Lab closed ", Content: "Closed on Friday."})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Lab closed", created.Title)
	assert.Equal(t, "Dr. Okafor", created.Sender)
	assert.Equal(t, models.AnnouncementPriorityMedium, created.Priority)
	assert.False(t, created.IsRead)

	_, err = svc.Create(ctx, author, dto.CreateAnnouncementRequest{Title: "x", Content: "y", Priority: "urgent"})
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}
