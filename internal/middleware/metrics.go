package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholarsync-api/internal/service"
)

const unmatchedRoute = "unmatched"

// Metrics records every request against its route template and the viewer role
// RoleContext resolved for it. Routes outside the secured group are labelled "none".
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		role := "none"
		if claims, ok := ClaimsFrom(c); ok {
			role = string(claims.Role)
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, role, c.Writer.Status(), time.Since(start))
	}
}
