package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarsync-api/internal/dto"
	"github.com/noah-isme/scholarsync-api/internal/models"
	"github.com/noah-isme/scholarsync-api/internal/repository"
	"github.com/noah-isme/scholarsync-api/internal/seed"
	appErrors "github.com/noah-isme/scholarsync-api/pkg/errors"
)

func newScheduleServiceForTest(loc *time.Location) *ScheduleService {
	repo := repository.NewEventRepository(seed.Events(fixedNow.In(loc)))
	svc := NewScheduleService(repo, loc, nil, zap.NewNop())
	svc.now = fixedClock
	return svc
}

func TestWeekStart(t *testing.T) {
	cases := map[string]string{
		"2024-03-11": "2024-03-11",
		"2024-03-13": "2024-03-11",
		"2024-03-16": "2024-03-11",
		"2024-03-17": "2024-03-11",
		"2024-03-18": "2024-03-18",
	}
	for in, want := range cases {
		day, err := time.ParseInLocation(dateLayout, in, time.UTC)
		require.NoError(t, err)
		assert.Equal(t, want, WeekStart(day.Add(15*time.Hour), time.UTC).Format(dateLayout), in)
	}
}

func TestScheduleServiceWeekBuckets(t *testing.T) {
	svc := newScheduleServiceForTest(time.UTC)

	week, err := svc.Week(context.Background(), time.Time{}, 0)
	require.NoError(t, err)

	assert.Equal(t, "Mar 11 - Mar 15, 2024", week.Label)
	require.Len(t, week.Days, 5)
	assert.Equal(t, "Monday", week.Days[0].Weekday)
	assert.Equal(t, "Friday", week.Days[4].Weekday)
	assert.True(t, week.Days[2].IsToday)

	wednesday := week.Days[2].Events
	require.Len(t, wednesday, 3)
	assert.Equal(t, "Advanced Calculus II", wednesday[0].Title)
	assert.Equal(t, "Physics Lab: Optics", wednesday[1].Title)
	assert.Equal(t, models.EventCategoryAssessment, wednesday[2].Category)

	thursday := week.Days[3].Events
	require.Len(t, thursday, 2)
	assert.Equal(t, models.EventCategoryDeadline, thursday[1].Category)
	assert.Equal(t, "Online", thursday[1].DisplayLocation)
	assert.Empty(t, week.Days[0].Events)
}

func TestScheduleServiceWeekOffset(t *testing.T) {
	svc := newScheduleServiceForTest(time.UTC)

	next, err := svc.Week(context.Background(), time.Time{}, 1)
	require.NoError(t, err)
	assert.Equal(t, "Mar 18 - Mar 22, 2024", next.Label)
	for _, d := range next.Days {
		assert.False(t, d.IsToday)
		assert.Empty(t, d.Events)
	}

	prev, err := svc.Week(context.Background(), time.Time{}, -1)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", prev.StartDate)
	assert.Equal(t, "2024-03-08", prev.EndDate)

	yearEnd, err := svc.Week(context.Background(), time.Date(2024, time.December, 31, 12, 0, 0, 0, time.UTC), 0)
	require.NoError(t, err)
	assert.Equal(t, "Dec 30 - Jan 3, 2025", yearEnd.Label)
}

func TestScheduleServiceWeekOffsetBounds(t *testing.T) {
	svc := newScheduleServiceForTest(time.UTC)
	ctx := context.Background()

	for _, offset := range []int{MaxWeekOffset + 1, -MaxWeekOffset - 1, 1 << 40, 1 << 62} {
		_, err := svc.Week(ctx, time.Time{}, offset)
		var appErr *appErrors.Error
		require.True(t, errors.As(err, &appErr), "offset %d", offset)
		assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	}

	far, err := svc.Week(ctx, time.Time{}, MaxWeekOffset)
	require.NoError(t, err)
	assert.Equal(t, "2034-02-27", far.StartDate)

	past, err := svc.Week(ctx, time.Time{}, -MaxWeekOffset)
	require.NoError(t, err)
	assert.Equal(t, "2014-03-24", past.StartDate)
}

func TestScheduleServiceAddedEventLandsInItsDay(t *testing.T) {
	svc := newScheduleServiceForTest(time.UTC)
	ctx := context.Background()

	start := time.Date(2024, time.March, 15, 8, 0, 0, 0, time.UTC)
	created, err := svc.CreateEvent(ctx, dto.CreateEventRequest{
		Title:     "Revision Session",
		Type:      "study_block",
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.EventTypeStudyBlock, created.Type)

	week, err := svc.Week(ctx, start, 0)
	require.NoError(t, err)
	friday := week.Days[4]
	require.Len(t, friday.Events, 1)
	assert.Equal(t, created.ID, friday.Events[0].ID)

	saturday := time.Date(2024, time.March, 16, 9, 0, 0, 0, time.UTC)
	_, err = svc.CreateEvent(ctx, dto.CreateEventRequest{Title: "Hike", Type: "CLASS", StartTime: saturday, EndTime: saturday.Add(time.Hour)})
	require.NoError(t, err)
	week, err = svc.Week(ctx, saturday, 0)
	require.NoError(t, err)
	total := 0
	for _, d := range week.Days {
		total += len(d.Events)
	}
	assert.Equal(t, 6, total)
}

func TestScheduleServiceBucketsInPortalTimezone(t *testing.T) {
	eat := time.FixedZone("EAT", 3*60*60)
	svc := NewScheduleService(repository.NewEventRepository(nil), eat, nil, zap.NewNop())
	svc.now = fixedClock
	ctx := context.Background()

	start := time.Date(2024, time.March, 14, 22, 30, 0, 0, time.UTC)
	_, err := svc.CreateEvent(ctx, dto.CreateEventRequest{Title: "Late Lab", Type: "CLASS", StartTime: start, EndTime: start.Add(time.Hour)})
	require.NoError(t, err)

	week, err := svc.Week(ctx, start, 0)
	require.NoError(t, err)
	assert.Empty(t, week.Days[3].Events)
	require.Len(t, week.Days[4].Events, 1)
	assert.Equal(t, eat, week.Days[4].Events[0].StartTime.Location())
}

func TestScheduleServiceCreateEventValidation(t *testing.T) {
	svc := newScheduleServiceForTest(time.UTC)
	start := fixedNow

	cases := []dto.CreateEventRequest{
		{Title: "  ", Type: "CLASS", StartTime: start, EndTime: start},
		{Title: "Quiz", Type: "QUIZ", StartTime: start, EndTime: start},
		{Title: "Backwards", Type: "EXAM", StartTime: start, EndTime: start.Add(-time.Minute)},
	}
	for _, req := range cases {
		_, err := svc.CreateEvent(context.Background(), req)
		var appErr *appErrors.Error
		require.True(t, errors.As(err, &appErr), req.Title)
		assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	}
}

func TestScheduleServiceDayAndEvents(t *testing.T) {
	svc := newScheduleServiceForTest(time.UTC)
	ctx := context.Background()

	day, err := svc.ParseDate("2024-03-14")
	require.NoError(t, err)
	events, err := svc.Day(ctx, day)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Database Systems", events[0].Title)

	all, err := svc.Events(ctx, nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	_, err = svc.ParseDate("14/03/2024")
	assert.Error(t, err)

	from := fixedNow
	to := fixedNow.Add(-time.Hour)
	_, err = svc.Events(ctx, &from, &to)
	assert.Error(t, err)
}
