package service

import (
	"context"
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

func newPerformanceServiceForTest(gen textGenerator) *PerformanceService {
	return NewPerformanceService(repository.NewStudentRepository(seed.Students()), newTestInsights(gen), NewExportService(nil, nil, nil, zap.NewNop()), nil, zap.NewNop())
}

func TestPerformanceServiceStudentView(t *testing.T) {
	svc := newPerformanceServiceForTest(nil)

	view, err := svc.View(context.Background(), models.RoleStudent)
	require.NoError(t, err)
	require.NotNil(t, view.Student)
	assert.Nil(t, view.Roster)

	s := view.Student
	require.Len(t, s.Progression, 6)
	assert.Equal(t, "Wk 1", s.Progression[0].Name)
	assert.Equal(t, float64(88), s.Progression[5].Score)
	assert.Equal(t, "+12% Improvement", s.Improvement)
	assert.Equal(t, 12, s.Rank)
	assert.Equal(t, 140, s.ClassSize)
	assert.Equal(t, "A-", s.PredictedGrade)
	assert.Equal(t, 92, s.EngagementScore)
}

func TestPerformanceServiceRoster(t *testing.T) {
	svc := newPerformanceServiceForTest(nil)

	view, err := svc.View(context.Background(), models.RoleTeacher)
	require.NoError(t, err)
	require.NotNil(t, view.Roster)
	assert.Nil(t, view.Student)
	assert.Len(t, view.Roster.Students, 6)
	assert.Equal(t, 2, view.Roster.AtRiskCount)
	assert.Equal(t, 70.3, view.Roster.AverageGrade)
	assert.Equal(t, 82.8, view.Roster.AverageAttendance)
}

func TestPerformanceServiceUpdateGrade(t *testing.T) {
	svc := newPerformanceServiceForTest(nil)
	ctx := context.Background()

	grade := 77.5
	updated, err := svc.UpdateGrade(ctx, "s2", dto.UpdateGradeRequest{AverageGrade: &grade})
	require.NoError(t, err)
	assert.Equal(t, 77.5, updated.AverageGrade)

	reloaded, err := svc.Student(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, 77.5, reloaded.AverageGrade)

	tooHigh := 101.0
	_, err = svc.UpdateGrade(ctx, "s2", dto.UpdateGradeRequest{AverageGrade: &tooHigh})
	requireAppError(t, err, appErrors.ErrValidation.Code)

	_, err = svc.UpdateGrade(ctx, "s2", dto.UpdateGradeRequest{})
	requireAppError(t, err, appErrors.ErrValidation.Code)

	zero := 0.0
	_, err = svc.UpdateGrade(ctx, "missing", dto.UpdateGradeRequest{AverageGrade: &zero})
	requireAppError(t, err, appErrors.ErrNotFound.Code)
}

func TestPerformanceServiceAnalysis(t *testing.T) {
	gen := &stubGenerator{text: "Schedule a weekly check-in."}
	svc := newPerformanceServiceForTest(gen)

	analysis, err := svc.Analysis(context.Background(), "s5")
	require.NoError(t, err)
	assert.Equal(t, "s5", analysis.StudentID)
	assert.Equal(t, gen.text, analysis.Text)

	noKey := newPerformanceServiceForTest(nil)
	analysis, err = noKey.Analysis(context.Background(), "s5")
	require.NoError(t, err)
	assert.Equal(t, StudentAnalysisCallSite.NoKey, analysis.Text)
	assert.True(t, analysis.Fallback)
}

func TestPerformanceServiceExportRoster(t *testing.T) {
	svc := newPerformanceServiceForTest(nil)

	result, err := svc.ExportRoster(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, result.Data)
	assert.Equal(t, "PK", string(result.Data[:2]))
	assert.Contains(t, result.FileName, "roster-")
}

func TestLetterGrade(t *testing.T) {
	assert.Equal(t, "A", LetterGrade(95))
	assert.Equal(t, "A-", LetterGrade(89))
	assert.Equal(t, "B+", LetterGrade(80))
	assert.Equal(t, "F", LetterGrade(12))
}
