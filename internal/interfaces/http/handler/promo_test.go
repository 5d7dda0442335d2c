package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	promotionapp "github.com/storefront/backend/internal/application/promotion"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPromoTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	svc := promotionapp.NewPromoService(persistence.NewGormPromoRepository(newTestDB(t)))
	h := NewPromoHandler(svc)

	r := gin.New()
	r.GET("/promos/active", h.ListActive)
	r.GET("/promos", h.ListAll)
	r.GET("/promos/:id", h.Get)
	r.POST("/promos", h.Create)
	r.PUT("/promos/:id", h.Update)
	r.DELETE("/promos/:id", h.Delete)
	r.PATCH("/promos/:id/toggle", h.Toggle)
	return r
}

func createPromo(t *testing.T, r http.Handler, body map[string]any) promotionapp.PromoResponse {
	t.Helper()
	w := do(r, jsonRequest(t, http.MethodPost, "/promos", body))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeSlides[promotionapp.PromoResponse](t, w).Data
}

func TestPromoHandler_Create(t *testing.T) {
	r := newPromoTestRouter(t)

	t.Run("applies default styling", func(t *testing.T) {
		w := do(r, jsonRequest(t, http.MethodPost, "/promos", map[string]any{"message": "  Free shipping  "}))

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		env := decodeSlides[promotionapp.PromoResponse](t, w)
		assert.Equal(t, "Promotional message created successfully", env.Message)
		assert.Equal(t, "Free shipping", env.Data.Message)
		assert.Equal(t, "primary", env.Data.Theme)
		assert.Equal(t, "#ef4444", env.Data.Color)
		assert.True(t, env.Data.IsActive)
	})

	tests := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{"message required", map[string]any{"theme": "info"}, "message"},
		{"unknown theme", map[string]any{"message": "x", "theme": "neon"}, "theme"},
		{"bad color", map[string]any{"message": "x", "color": "red"}, "color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, jsonRequest(t, http.MethodPost, "/promos", tt.body))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeResponse(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
			require.NotEmpty(t, resp.Error.Details)
			assert.Equal(t, tt.field, resp.Error.Details[0].Field)
		})
	}

	t.Run("blank message reaches domain validation", func(t *testing.T) {
		w := do(r, jsonRequest(t, http.MethodPost, "/promos", map[string]any{"message": "   "}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Message is required", decodeResponse(t, w).Message)
	})
}

func TestPromoHandler_ListActiveHidesInactive(t *testing.T) {
	r := newPromoTestRouter(t)
	createPromo(t, r, map[string]any{"message": "shown"})
	createPromo(t, r, map[string]any{"message": "hidden", "isActive": false})

	w := do(r, httptest.NewRequest(http.MethodGet, "/promos/active", nil))
	require.Equal(t, http.StatusOK, w.Code)
	active := decodeSlides[[]promotionapp.PromoResponse](t, w)
	assert.Equal(t, "Active promotional messages retrieved successfully", active.Message)
	require.Len(t, active.Data, 1)
	assert.Equal(t, "shown", active.Data[0].Message)

	w = do(r, httptest.NewRequest(http.MethodGet, "/promos", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeSlides[[]promotionapp.PromoResponse](t, w).Data, 2)
}

func TestPromoHandler_UpdateToggleDelete(t *testing.T) {
	r := newPromoTestRouter(t)
	p := createPromo(t, r, map[string]any{"message": "Sale", "theme": "warning"})
	target := fmt.Sprintf("/promos/%d", p.ID)

	w := do(r, jsonRequest(t, http.MethodPut, target, map[string]any{"message": "Big sale", "theme": "danger", "color": "#000"}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decodeSlides[promotionapp.PromoResponse](t, w).Data
	assert.Equal(t, "Big sale", updated.Message)
	assert.Equal(t, "danger", updated.Theme)
	assert.True(t, updated.IsActive, "omitted isActive keeps the stored state")

	w = do(r, httptest.NewRequest(http.MethodPatch, target+"/toggle", nil))
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeSlides[promotionapp.PromoResponse](t, w)
	assert.Equal(t, "Promotional message deactivated successfully", env.Message)
	assert.False(t, env.Data.IsActive)

	w = do(r, httptest.NewRequest(http.MethodPatch, target+"/toggle", nil))
	assert.Equal(t, "Promotional message activated successfully", decodeResponse(t, w).Message)

	w = do(r, httptest.NewRequest(http.MethodDelete, target, nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, httptest.NewRequest(http.MethodGet, target, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Promo message not found", decodeResponse(t, w).Message)
}

func TestPromoHandler_UnknownIDs(t *testing.T) {
	r := newPromoTestRouter(t)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodDelete, "/promos/77", nil),
		httptest.NewRequest(http.MethodPatch, "/promos/77/toggle", nil),
		jsonRequest(t, http.MethodPut, "/promos/77", map[string]any{"message": "x"}),
	} {
		w := do(r, req)
		assert.Equal(t, http.StatusNotFound, w.Code, req.Method)
	}

	w := do(r, httptest.NewRequest(http.MethodGet, "/promos/zero", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
