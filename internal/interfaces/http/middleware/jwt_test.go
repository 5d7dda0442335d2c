package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuth(t *testing.T) (*auth.JWTService, *auth.AdminAuthenticator) {
	t.Helper()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "storefront-test",
	})
	return jwtService, auth.NewAdminAuthenticator(config.AdminConfig{Username: "admin"}, jwtService, auth.NewInMemoryTokenBlacklist())
}

func adminRouter(authenticator TokenAuthenticator) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), RequireAdmin(authenticator, nil))
	router.GET("/test", func(c *gin.Context) {
		claims := GetJWTClaims(c)
		c.JSON(http.StatusOK, gin.H{"user": c.GetString(UserIDKey), "role": claims.Role})
	})
	return router
}

func doGet(router http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if token != "" {
		req.Header.Set(AuthHeaderKey, token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRequireAdmin_ValidToken(t *testing.T) {
	jwtService, authenticator := newTestAuth(t)
	token, err := jwtService.Issue("admin", auth.RoleAdmin)
	require.NoError(t, err)

	w := doGet(adminRouter(authenticator), BearerPrefix+token.AccessToken)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"admin","role":"admin"}`, w.Body.String())
}

func TestRequireAdmin_Rejections(t *testing.T) {
	jwtService, authenticator := newTestAuth(t)
	router := adminRouter(authenticator)

	t.Run("missing header", func(t *testing.T) {
		w := doGet(router, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		resp := decodeEnvelope(t, w)
		assert.False(t, resp.Success)
		assert.Equal(t, dto.ErrCodeUnauthorized, resp.Error.Code)
		assert.NotEmpty(t, resp.Error.RequestID)
	})

	t.Run("not a bearer token", func(t *testing.T) {
		w := doGet(router, "Basic YWRtaW46YWRtaW4=")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doGet(router, BearerPrefix+"not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid token", decodeEnvelope(t, w).Message)
	})

	t.Run("non-admin role is forbidden", func(t *testing.T) {
		token, err := jwtService.Issue("editor", "viewer")
		require.NoError(t, err)

		w := doGet(router, BearerPrefix+token.AccessToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, dto.ErrCodeForbidden, decodeEnvelope(t, w).Error.Code)
	})

	t.Run("revoked token", func(t *testing.T) {
		token, err := jwtService.Issue("admin", auth.RoleAdmin)
		require.NoError(t, err)
		claims, err := authenticator.Authenticate(context.Background(), token.AccessToken)
		require.NoError(t, err)
		require.NoError(t, authenticator.Logout(context.Background(), claims))

		w := doGet(router, BearerPrefix+token.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Token has been revoked", decodeEnvelope(t, w).Message)
	})
}

func TestGetJWTClaims_Absent(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetJWTClaims(c))
}
