package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// BodyLimitConfig sets a default request body ceiling and per-route overrides.
// Routes is keyed by method and route pattern, e.g. "PUT /api/v1/slides".
type BodyLimitConfig struct {
	Default int64
	Routes  map[string]int64
}

// BodyLimit returns a middleware that limits request body size.
// Requests that declare a larger Content-Length are rejected up front; chunked
// bodies are cut off by http.MaxBytesReader while the handler reads them.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return BodyLimitWithConfig(BodyLimitConfig{Default: maxBytes})
}

// BodyLimitWithConfig is BodyLimit with route overrides. It relies on the
// matched route, so it must run as engine middleware, not before routing.
func BodyLimitWithConfig(cfg BodyLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		maxBytes := cfg.Default
		if limit, ok := cfg.Routes[c.Request.Method+" "+c.FullPath()]; ok {
			maxBytes = limit
		}

		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeTooLarge,
				"Request body exceeds maximum allowed size",
				GetRequestID(c),
			))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
