package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/docker/go-units"
	"github.com/gin-gonic/gin"
	carouselapp "github.com/storefront/backend/internal/application/carousel"
	promotionapp "github.com/storefront/backend/internal/application/promotion"
	"github.com/storefront/backend/internal/domain/carousel"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Admin credentials accepted by an APIServer
const (
	AdminUsername = "admin"
	AdminPassword = "correct-horse-battery"
)

// MemoryImageStore keeps uploads in memory and hands out mem:// references
type MemoryImageStore struct {
	mu      sync.Mutex
	uploads []carousel.ImagePayload
}

// Upload implements the slide service's image store
func (s *MemoryImageStore) Upload(_ context.Context, folder string, payload carousel.ImagePayload) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads = append(s.uploads, payload)
	return fmt.Sprintf("mem://%s/%d", folder, len(s.uploads)), nil
}

// Uploads returns what has been uploaded so far
func (s *MemoryImageStore) Uploads() []carousel.ImagePayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]carousel.ImagePayload, len(s.uploads))
	copy(out, s.uploads)
	return out
}

// APIServer is the storefront API wired the way cmd/server wires it, on
// SQLite and an in-memory image store.
type APIServer struct {
	*httptest.Server
	DB     *gorm.DB
	Slides *persistence.GormSlideRepository
	Images *MemoryImageStore
}

// NewAPIServer starts an APIServer that is closed when the test ends
func NewAPIServer(t *testing.T) *APIServer {
	t.Helper()
	return NewAPIServerWithDB(t, NewSQLiteDB(t))
}

// NewAPIServerWithDB starts an APIServer on an existing database
func NewAPIServerWithDB(t *testing.T, db *gorm.DB) *APIServer {
	t.Helper()
	middleware.SetupValidator()

	hash, err := auth.HashPassword(AdminPassword)
	require.NoError(t, err)
	tokens := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: time.Hour,
		Issuer:                "storefront-test",
	})
	authenticator := auth.NewAdminAuthenticator(
		config.AdminConfig{Username: AdminUsername, PasswordHash: hash},
		tokens,
		auth.NewInMemoryTokenBlacklist(),
	)

	slides := persistence.NewGormSlideRepository(db)
	images := &MemoryImageStore{}
	slideService := carouselapp.NewSlideService(slides, images)
	promoService := promotionapp.NewPromoService(persistence.NewGormPromoRepository(db))

	engine := gin.New()
	engine.Use(middleware.RequestID())
	apiRouter := router.NewRouter(engine, router.WithAPIVersion("v1"))
	// Same limits cmd/server derives from the default upload settings
	engine.Use(middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
		Default: carousel.DefaultMaxImageSize + units.MiB,
		Routes: map[string]int64{
			router.SlideBatchRoute(apiRouter.BasePath()): config.BatchBodySize(carousel.DefaultMaxImageSize, carousel.DefaultMaxBatchImages),
		},
	}))
	idempotency := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = idempotency.Close() })
	guards := router.Guards{
		Admin:      middleware.RequireAdmin(authenticator, nil),
		Idempotent: middleware.Idempotency(middleware.IdempotencyConfig{Store: idempotency}),
	}
	apiRouter.
		Register(
			router.SlideRoutes(handler.NewSlideHandler(slideService, carousel.DefaultMaxImageSize), guards),
			router.PromoRoutes(handler.NewPromoHandler(promoService), guards),
			router.AuthRoutes(handler.NewAuthHandler(authenticator), guards),
		).
		Setup()

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return &APIServer{Server: srv, DB: db, Slides: slides, Images: images}
}

// APIURL returns the absolute URL of an /api/v1 path
func (s *APIServer) APIURL(path string) string {
	return s.URL + "/api/v1" + path
}

// AdminToken logs in and returns a bearer token
func (s *APIServer) AdminToken(t *testing.T) string {
	t.Helper()
	resp := DoJSON(t, http.MethodPost, s.APIURL("/auth/login"), "", map[string]string{
		"username": AdminUsername,
		"password": AdminPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(resp.Body))

	var env struct {
		Data struct {
			AccessToken string `json:"accessToken"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body, &env))
	require.NotEmpty(t, env.Data.AccessToken)
	return env.Data.AccessToken
}

// Response is a fully read HTTP response
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// JSON decodes the body into a generic map
func (r *Response) JSON(t *testing.T) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(r.Body, &out), string(r.Body))
	return out
}

// DoJSON sends body as JSON with an optional bearer token
func DoJSON(t *testing.T, method, url, token string, body any) *Response {
	t.Helper()
	return DoJSONWithHeaders(t, method, url, token, body, nil)
}

// DoJSONWithHeaders is DoJSON with extra request headers
func DoJSONWithHeaders(t *testing.T, method, url, token string, body any, header http.Header) *Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err, "Failed to marshal request body")
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(middleware.AuthHeaderKey, middleware.BearerPrefix+token)
	}
	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: raw}
}

// AssertSuccessResponse asserts the response is a successful envelope
func AssertSuccessResponse(t *testing.T, r *Response) {
	t.Helper()
	body := r.JSON(t)
	assert.Equal(t, true, body["success"], "Expected success to be true")
	assert.Nil(t, body["error"], "Expected no error")
}

// AssertErrorResponse asserts the response is a failure envelope with code
func AssertErrorResponse(t *testing.T, r *Response, status int, expectedCode string) {
	t.Helper()
	assert.Equal(t, status, r.StatusCode, string(r.Body))
	body := r.JSON(t)
	assert.Equal(t, false, body["success"], "Expected success to be false")

	errMap, ok := body["error"].(map[string]any)
	require.True(t, ok, "Expected error object in response")
	assert.Equal(t, expectedCode, errMap["code"], "Unexpected error code")
}
