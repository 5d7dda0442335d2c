package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRouter_Setup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))
	assert.Equal(t, "/api/v2", r.BasePath())

	group := NewDomainGroup("test", "/test").GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	api := r.Register(group).Setup()
	assert.Equal(t, "/api/v2", api.BasePath())

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v2/test/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestDomainGroup_MiddlewareOrder(t *testing.T) {
	var calls []string
	mark := func(name string) gin.HandlerFunc {
		return func(c *gin.Context) { calls = append(calls, name) }
	}

	engine := gin.New()
	group := NewDomainGroup("orders", "/orders").Use(mark("group"))
	group.GET("", nil, mark("route"), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	group.Group("items", "/items").GET("/:id", mark("nested"))
	NewRouter(engine).Register(group).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"group", "route"}, calls)

	calls = nil
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders/items/3", nil))
	assert.Equal(t, []string{"group", "nested"}, calls)

	assert.Equal(t, []RouteInfo{
		{Method: http.MethodGet, Path: "/orders"},
		{Method: http.MethodGet, Path: "/orders/items/:id"},
	}, group.Routes())
}

// denyAll stands in for the admin guard
func denyAll(c *gin.Context) {
	c.AbortWithStatus(http.StatusUnauthorized)
}

func TestRouteTable(t *testing.T) {
	guards := Guards{Admin: denyAll}
	engine := gin.New()
	NewRouter(engine).Register(
		SlideRoutes(&handler.SlideHandler{}, guards),
		PromoRoutes(&handler.PromoHandler{}, guards),
		AuthRoutes(&handler.AuthHandler{}, guards),
		SystemRoutes(handler.NewSystemHandler("svc", "dev", nil)),
	).Setup()

	registered := make(map[string]bool)
	for _, ri := range engine.Routes() {
		registered[ri.Method+" "+ri.Path] = true
	}
	for _, want := range []string{
		"GET /api/v1/slides",
		"GET /api/v1/slides/:id",
		"POST /api/v1/slides",
		"PUT /api/v1/slides",
		"PUT /api/v1/slides/:id",
		"DELETE /api/v1/slides/:id",
		"GET /api/v1/promos/active",
		"PATCH /api/v1/promos/:id/toggle",
		"POST /api/v1/auth/login",
		"POST /api/v1/auth/logout",
		"GET /api/v1/system/info",
	} {
		assert.True(t, registered[want], want)
	}

	t.Run("mutations are guarded", func(t *testing.T) {
		for _, tc := range []struct{ method, path string }{
			{http.MethodPost, "/api/v1/slides"},
			{http.MethodPut, "/api/v1/slides"},
			{http.MethodPut, "/api/v1/slides/1"},
			{http.MethodDelete, "/api/v1/slides/1"},
			{http.MethodGet, "/api/v1/promos"},
			{http.MethodPatch, "/api/v1/promos/1/toggle"},
			{http.MethodPost, "/api/v1/auth/logout"},
		} {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, http.StatusUnauthorized, w.Code, tc.method+" "+tc.path)
		}
	})

	t.Run("system info is public", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/system/info", nil))
		require.Equal(t, http.StatusOK, w.Code)
	})
}
