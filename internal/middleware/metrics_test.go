package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarsync-api/internal/service"
)

func TestMetricsLabelsRouteRoleAndThrottle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	sessions := service.NewSessionService(service.SessionConfig{Secret: "secret", TTL: time.Hour}, nil, zap.NewNop())

	router := gin.New()
	router.Use(Metrics(metrics), RoleContext(sessions))
	router.GET("/download/:token", RateLimit(NewRateLimiter(1, time.Minute)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	token := issueToken(t, sessions, "TEACHER")
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/download/secret-capability", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(httptest.NewRecorder(), req)
	}
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()

	assert.Contains(t, body, `route="/download/:token"`)
	assert.Contains(t, body, `role="TEACHER"`)
	assert.Contains(t, body, `route="unmatched"`)
	assert.Contains(t, body, `http_throttled_requests_total{route="/download/:token"} 1`)
	assert.NotContains(t, body, "secret-capability")
}
