package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scholarsync-api/internal/models"
	"github.com/noah-isme/scholarsync-api/internal/seed"
)

func TestCourseRepositoryMaterials(t *testing.T) {
	now := time.Date(2025, 3, 12, 8, 0, 0, 0, time.UTC)
	repo := NewCourseRepository(seed.Courses(now), seed.Materials(now), seed.Feedback(now))
	ctx := context.Background()

	course, err := repo.Get(ctx, "mat202")
	require.NoError(t, err)
	assert.Equal(t, "MAT202", course.Code)

	_, err = repo.Get(ctx, "BIO101")
	assert.ErrorIs(t, err, ErrNotFound)

	materials, err := repo.ListMaterials(ctx, "MAT202", "")
	require.NoError(t, err)
	require.Len(t, materials, 2)
	assert.Equal(t, "m2", materials[0].ID, "newest upload first")

	fresh := &models.CourseMaterial{Title: "Week 6 Notes", Type: models.MaterialTypePDF, CourseCode: "MAT202", UploadDate: now}
	require.NoError(t, repo.CreateMaterial(ctx, fresh))
	assert.NotEmpty(t, fresh.ID)

	found, err := repo.ListMaterials(ctx, "MAT202", "  NOTES ")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, fresh.ID, found[0].ID)

	stored, err := repo.GetMaterial(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, "Week 6 Notes", stored.Title)
}

func TestCourseRepositoryFeedback(t *testing.T) {
	now := time.Date(2025, 3, 12, 8, 0, 0, 0, time.UTC)
	repo := NewCourseRepository(seed.Courses(now), nil, seed.Feedback(now))
	ctx := context.Background()

	require.NoError(t, repo.AddFeedback(ctx, models.CourseFeedback{CourseCode: "PHY104", Message: "More lab time please", SubmittedAt: now}))

	items, err := repo.ListFeedback(ctx, "PHY104")
	require.NoError(t, err)
	require.Len(t, items, 1)

	counts, err := repo.FeedbackCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"MAT202": 2, "CSC301": 2, "PHY104": 1}, counts)
}

func TestStudentRepositoryCopiesOnReadAndWrite(t *testing.T) {
	repo := NewStudentRepository(seed.Students())
	ctx := context.Background()

	student, err := repo.FindByID(ctx, "s1")
	require.NoError(t, err)
	student.Grades[0].Score = 0
	student.AverageGrade = 10

	again, err := repo.FindByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, float64(82), again.Grades[0].Score)
	assert.Equal(t, float64(88), again.AverageGrade)

	require.NoError(t, repo.Update(ctx, student))
	updated, err := repo.FindByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, float64(10), updated.AverageGrade)

	assert.ErrorIs(t, repo.Update(ctx, &models.StudentProfile{ID: "ghost"}), ErrNotFound)
}

func TestPortalRepositoryModify(t *testing.T) {
	repo := NewPortalRepository(seed.Portals(time.Now()))
	ctx := context.Background()

	updated, err := repo.Modify(ctx, "moodle", func(p *models.PortalConfig) error {
		p.Status = models.PortalStatusConnecting
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, models.PortalStatusConnecting, updated.Status)

	boom := errors.New("busy")
	_, err = repo.Modify(ctx, "moodle", func(p *models.PortalConfig) error {
		p.IsConnected = true
		return boom
	})
	assert.ErrorIs(t, err, boom)

	stored, err := repo.Get(ctx, "moodle")
	require.NoError(t, err)
	assert.False(t, stored.IsConnected)
	assert.Equal(t, models.PortalStatusConnecting, stored.Status)

	_, err = repo.Modify(ctx, "ghost", func(*models.PortalConfig) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPreferenceRepositoryDefaults(t *testing.T) {
	repo := NewPreferenceRepository()
	ctx := context.Background()

	prefs, err := repo.Get(ctx, "viewer-1")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPreferences(), prefs)

	require.NoError(t, repo.Save(ctx, "viewer-1", models.Preferences{ClassReminderMinutes: 60}))
	prefs, err = repo.Get(ctx, "viewer-1")
	require.NoError(t, err)
	assert.Equal(t, 60, prefs.ClassReminderMinutes)
	assert.False(t, prefs.ExamAlerts)

	other, err := repo.Get(ctx, "viewer-2")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPreferences(), other)
}
