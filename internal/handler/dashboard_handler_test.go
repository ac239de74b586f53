package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scholarsync-api/internal/dto"
	"github.com/noah-isme/scholarsync-api/internal/middleware"
	"github.com/noah-isme/scholarsync-api/internal/models"
)

type fakeDashboardSrv struct {
	resp       *dto.DashboardResponse
	err        error
	lastClaims *models.SessionClaims
}

func (f *fakeDashboardSrv) Get(_ context.Context, claims *models.SessionClaims) (*dto.DashboardResponse, error) {
	f.lastClaims = claims
	return f.resp, f.err
}

func TestDashboardHandlerStudentFallbackMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeDashboardSrv{resp: &dto.DashboardResponse{
		Role:    models.RoleStudent,
		Student: &dto.StudentDashboardResponse{StudyTip: dto.GeneratedText{Text: "Stay organized and keep studying!", Fallback: true}},
	}}
	handler := NewDashboardHandler(service)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	c.Set(middleware.ContextUserKey, &models.SessionClaims{Role: models.RoleStudent})

	handler.Get(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, true, envelope.Meta["fallback"])
	assert.Equal(t, false, envelope.Meta["cache_hit"])
	assert.Equal(t, "STUDENT", envelope.Data["role"])
	require.NotNil(t, service.lastClaims)
}

func TestDashboardHandlerTeacherHasNoMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(&fakeDashboardSrv{resp: &dto.DashboardResponse{
		Role:    models.RoleTeacher,
		Teacher: &dto.TeacherDashboardResponse{TotalStudents: 6},
	}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	c.Set(middleware.ContextUserKey, &models.SessionClaims{Role: models.RoleTeacher})

	handler.Get(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Nil(t, envelope.Meta)
	teacher, ok := envelope.Data["teacher"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(6), teacher["total_students"])
}

func TestDashboardHandlerError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(&fakeDashboardSrv{err: errors.New("boom")})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard", nil)

	handler.Get(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Error map[string]interface{} `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}
