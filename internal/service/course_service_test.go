package service

import (
	"context"
	"errors"
	"io"
	"strings"
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
	"github.com/noah-isme/scholarsync-api/pkg/storage"
)

func newCourseServiceForTest(t *testing.T, gen textGenerator) *CourseService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	repo := repository.NewCourseRepository(seed.Courses(fixedNow), seed.Materials(fixedNow), seed.Feedback(fixedNow))
	svc := NewCourseService(CourseServiceParams{
		Repo:         repo,
		Storage:      store,
		Signer:       storage.NewSignedURLSigner("secret", time.Hour),
		Advisor:      newTestInsights(gen),
		Logger:       zap.NewNop(),
		DownloadPath: "/api/v1/materials/download",
		MaxFileSize:  1024,
	})
	svc.now = fixedClock
	return svc
}

func requireAppError(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr), "expected app error, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

func TestCourseServiceMaterialsSearch(t *testing.T) {
	svc := newCourseServiceForTest(t, nil)
	ctx := context.Background()

	all, err := svc.Materials(ctx, "mat202", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "m2", all[0].ID)

	filtered, err := svc.Materials(ctx, "MAT202", "SERIES")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Solved Examples: Series Convergence", filtered[0].Title)

	_, err = svc.Materials(ctx, "XYZ999", "")
	requireAppError(t, err, appErrors.ErrNotFound.Code)
}

func TestCourseServiceAddMaterialDefaults(t *testing.T) {
	svc := newCourseServiceForTest(t, nil)

	material, err := svc.AddMaterial(context.Background(), "CSC301", dto.CreateMaterialRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "New Material", material.Title)
	assert.Equal(t, models.MaterialTypePDF, material.Type)
	assert.Equal(t, fixedNow, material.UploadDate)
	assert.Nil(t, material.URL)

	materials, err := svc.Materials(context.Background(), "CSC301", "new")
	require.NoError(t, err)
	require.Len(t, materials, 1)

	_, err = svc.AddMaterial(context.Background(), "CSC301", dto.CreateMaterialRequest{Type: "audio"}, nil)
	requireAppError(t, err, appErrors.ErrValidation.Code)
}

func TestCourseServiceUploadAndDownload(t *testing.T) {
	svc := newCourseServiceForTest(t, nil)
	ctx := context.Background()
	body := "subnetting worksheet"

	material, err := svc.AddMaterial(ctx, "CSC301", dto.CreateMaterialRequest{Title: "Lab 3", Type: "doc"}, &dto.MaterialUpload{
		FileName: "../lab 3.docx",
		Size:     int64(len(body)),
		Reader:   strings.NewReader(body),
	})
	require.NoError(t, err)
	require.NotNil(t, material.URL)
	assert.True(t, strings.HasPrefix(*material.URL, "/api/v1/materials/download/"))
	assert.Equal(t, "20 B", material.Size)

	token := strings.TrimPrefix(*material.URL, "/api/v1/materials/download/")
	file, found, err := svc.OpenMaterial(ctx, token)
	require.NoError(t, err)
	defer file.Close()
	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, body, string(content))
	assert.Equal(t, "lab-3.docx", found.FileName)

	_, _, err = svc.OpenMaterial(ctx, token+"x")
	requireAppError(t, err, appErrors.ErrForbidden.Code)
}

func TestCourseServiceUploadTooLarge(t *testing.T) {
	svc := newCourseServiceForTest(t, nil)

	_, err := svc.AddMaterial(context.Background(), "CSC301", dto.CreateMaterialRequest{}, &dto.MaterialUpload{
		FileName: "big.pdf",
		Size:     4096,
		Reader:   strings.NewReader(strings.Repeat("x", 4096)),
	})
	requireAppError(t, err, appErrors.ErrTooLarge.Code)
}

func TestCourseServiceFeedback(t *testing.T) {
	svc := newCourseServiceForTest(t, nil)
	ctx := context.Background()

	ack, err := svc.SubmitFeedback(ctx, "phy104", dto.FeedbackRequest{Message: "  More lab demos please.  "})
	require.NoError(t, err)
	assert.Equal(t, FeedbackAcknowledgement, ack.Message)
	assert.Equal(t, "More lab demos please.", ack.Feedback.Message)
	assert.Equal(t, "PHY104", ack.Feedback.CourseCode)

	items, err := svc.Feedback(ctx, "PHY104")
	require.NoError(t, err)
	require.Len(t, items, 1)

	_, err = svc.SubmitFeedback(ctx, "PHY104", dto.FeedbackRequest{Message: "   "})
	requireAppError(t, err, appErrors.ErrValidation.Code)

	items, err = svc.Feedback(ctx, "PHY104")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCourseServiceInsights(t *testing.T) {
	gen := &stubGenerator{text: "Add a worked example per concept."}
	svc := newCourseServiceForTest(t, gen)
	ctx := context.Background()

	insights, err := svc.Insights(ctx, "MAT202")
	require.NoError(t, err)
	assert.Equal(t, 2, insights.FeedbackCount)
	assert.Equal(t, gen.text, insights.Text)

	_, err = svc.Insights(ctx, "ENG400")
	requireAppError(t, err, appErrors.ErrValidation.Code)
	assert.Equal(t, 1, gen.Calls())

	failing := newCourseServiceForTest(t, &stubGenerator{err: errors.New("boom")})
	insights, err = failing.Insights(ctx, "CSC301")
	require.NoError(t, err)
	assert.True(t, insights.Fallback)
	assert.Equal(t, LessonCallSite.Failure, insights.Text)
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "512 B", humanSize(512))
	assert.Equal(t, "1.5 KB", humanSize(1536))
	assert.Equal(t, "1.2 MB", humanSize(1258291))
}
