package middleware

import (
	"net/http"
	"net/http/httptest"
	"runtime/pprof"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestProfilingWithConfig(t *testing.T) {
	t.Run("adds route labels", func(t *testing.T) {
		var labels map[string]string
		router := gin.New()
		router.Use(ProfilingWithConfig(DefaultProfilingConfig()))
		router.GET("/api/v1/slides/:id", func(c *gin.Context) {
			labels = map[string]string{}
			pprof.ForLabels(c.Request.Context(), func(k, v string) bool {
				labels[k] = v
				return true
			})
			c.Status(http.StatusOK)
		})

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/slides/3", nil))

		assert.Equal(t, "GET", labels[ProfilingLabelMethod])
		assert.Equal(t, "/api/v1/slides/:id", labels[ProfilingLabelRoute])
		assert.Equal(t, "slides", labels[ProfilingLabelController])
	})

	t.Run("skips health checks", func(t *testing.T) {
		labelled := false
		router := gin.New()
		router.Use(ProfilingWithConfig(DefaultProfilingConfig()))
		router.GET("/health", func(c *gin.Context) {
			pprof.ForLabels(c.Request.Context(), func(string, string) bool {
				labelled = true
				return false
			})
			c.Status(http.StatusOK)
		})

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.False(t, labelled)
	})

	t.Run("disabled passes through", func(t *testing.T) {
		called := false
		router := gin.New()
		router.Use(ProfilingWithConfig(ProfilingConfig{Enabled: false}))
		router.GET("/test", func(c *gin.Context) {
			called = true
			c.Status(http.StatusOK)
		})

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.True(t, called)
	})
}

func TestExtractControllerFromRoute(t *testing.T) {
	tests := map[string]string{
		"/api/v1/slides":            "slides",
		"/api/v1/slides/:id":        "slides",
		"/api/v2/promos/:id/toggle": "promos",
		"/health":                   "health",
		"":                          "",
	}
	for route, want := range tests {
		assert.Equal(t, want, extractControllerFromRoute(route), route)
	}
	assert.True(t, isVersionSegment("v1"))
	assert.False(t, isVersionSegment("vx"))
	assert.False(t, isVersionSegment("v"))
}
