package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/scholarsync-api/pkg/errors"
)

// Envelope represents the common response contract.
type Envelope struct {
	Data  interface{}      `json:"data,omitempty"`
	Error *appErrors.Error `json:"error,omitempty"`
	Meta  *GenerationMeta  `json:"meta,omitempty"`
}

// GenerationMeta tells clients where generated text in the payload came from.
type GenerationMeta struct {
	CacheHit bool `json:"cache_hit"`
	Fallback bool `json:"fallback"`
}

func write(c *gin.Context, status int, envelope Envelope) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, envelope)
}

// OK responds with HTTP 200 and data.
func OK(c *gin.Context, data interface{}) {
	write(c, http.StatusOK, Envelope{Data: data})
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	write(c, http.StatusCreated, Envelope{Data: data})
}

// Accepted responds with HTTP 202 for work finished by a background job.
func Accepted(c *gin.Context, data interface{}) {
	write(c, http.StatusAccepted, Envelope{Data: data})
}

// Generated responds with HTTP 200 for a payload carrying generated text.
// Fallback text is flagged so clients can offer a retry.
func Generated(c *gin.Context, data interface{}, cacheHit, fallback bool) {
	write(c, http.StatusOK, Envelope{Data: data, Meta: &GenerationMeta{CacheHit: cacheHit, Fallback: fallback}})
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	write(c, appErr.Status, Envelope{Error: appErr})
}
