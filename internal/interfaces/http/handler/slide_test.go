package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	carouselapp "github.com/storefront/backend/internal/application/carousel"
	"github.com/storefront/backend/internal/domain/carousel"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)
	gifBytes = []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;")
)

// memoryImageStore hands out sequential references
type memoryImageStore struct {
	mu      sync.Mutex
	uploads []carousel.ImagePayload
}

func (s *memoryImageStore) Upload(_ context.Context, folder string, payload carousel.ImagePayload) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads = append(s.uploads, payload)
	return fmt.Sprintf("mem://%s/%d", folder, len(s.uploads)), nil
}

type mockImageStore struct {
	mock.Mock
}

func (m *mockImageStore) Upload(ctx context.Context, folder string, payload carousel.ImagePayload) (string, error) {
	args := m.Called(ctx, folder, payload)
	return args.String(0), args.Error(1)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.SlideModel{}, &models.PromoMessageModel{}))
	return db
}

func slideRouter(h *SlideHandler) *gin.Engine {
	r := gin.New()
	r.GET("/slides", h.List)
	r.GET("/slides/:id", h.Get)
	r.POST("/slides", h.Create)
	r.PUT("/slides", h.BatchUpdate)
	r.PUT("/slides/:id", h.Update)
	r.DELETE("/slides/:id", h.Delete)
	return r
}

func newSlideTestRouter(t *testing.T, maxImageBytes int64) (*gin.Engine, *persistence.GormSlideRepository, *memoryImageStore) {
	t.Helper()
	repo := persistence.NewGormSlideRepository(newTestDB(t))
	images := &memoryImageStore{}
	svc := carouselapp.NewSlideService(repo, images)
	return slideRouter(NewSlideHandler(svc, maxImageBytes)), repo, images
}

type formFile struct {
	name string
	data []byte
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string, file *formFile) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		fw, err := mw.CreateFormFile("image", file.name)
		require.NoError(t, err)
		_, err = fw.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// slideEnvelope decodes a response whose data is one slide or a list of slides
type slideEnvelope[T any] struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    T              `json:"data"`
	Error   *dto.ErrorInfo `json:"error"`
}

func decodeSlides[T any](t *testing.T, w *httptest.ResponseRecorder) slideEnvelope[T] {
	t.Helper()
	var env slideEnvelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func seedSlide(t *testing.T, repo *persistence.GormSlideRepository, order int, title, ref string) *carousel.Slide {
	t.Helper()
	s, err := repo.Create(context.Background(), carousel.SlideData{Order: order, ImageRef: ref, SlideFields: carousel.SlideFields{Title: title}})
	require.NoError(t, err)
	return s
}

func TestSlideHandler_ListEmpty(t *testing.T) {
	r, _, _ := newSlideTestRouter(t, 0)

	w := do(r, httptest.NewRequest(http.MethodGet, "/slides", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Carousel slides retrieved successfully","data":[]}`, w.Body.String())
}

func TestSlideHandler_Get(t *testing.T) {
	r, repo, _ := newSlideTestRouter(t, 0)
	s := seedSlide(t, repo, 1, "Summer", "img://summer")

	t.Run("found", func(t *testing.T) {
		w := do(r, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/slides/%d", s.ID), nil))

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeSlides[carouselapp.SlideResponse](t, w)
		assert.Equal(t, "Carousel slide retrieved successfully", env.Message)
		assert.Equal(t, "Summer", env.Data.Title)
		assert.Equal(t, "img://summer", env.Data.ImageRef)
	})

	t.Run("not found", func(t *testing.T) {
		w := do(r, httptest.NewRequest(http.MethodGet, "/slides/999", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeSlides[any](t, w)
		assert.False(t, env.Success)
		assert.Equal(t, "Carousel slide not found", env.Message)
	})

	t.Run("invalid id", func(t *testing.T) {
		w := do(r, httptest.NewRequest(http.MethodGet, "/slides/abc", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSlideHandler_Create(t *testing.T) {
	t.Run("appends after the last slide", func(t *testing.T) {
		r, _, images := newSlideTestRouter(t, 0)

		w := do(r, multipartRequest(t, http.MethodPost, "/slides", map[string]string{"title": "  First  "}, &formFile{"a.png", pngBytes}))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		first := decodeSlides[carouselapp.SlideResponse](t, w)
		assert.Equal(t, "Carousel slide created successfully", first.Message)
		assert.Equal(t, "First", first.Data.Title)
		assert.Equal(t, 1, first.Data.Order)

		w = do(r, multipartRequest(t, http.MethodPost, "/slides", map[string]string{
			"title":    "Second",
			"subtitle": "Sub",
			"alt_text": "A beach",
		}, &formFile{"b.gif", gifBytes}))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		second := decodeSlides[carouselapp.SlideResponse](t, w)
		assert.Equal(t, 2, second.Data.Order)
		require.NotNil(t, second.Data.AltText)
		assert.Equal(t, "A beach", *second.Data.AltText)

		require.Len(t, images.uploads, 2)
		assert.Equal(t, "image/png", images.uploads[0].ContentType)
		assert.Equal(t, "image/gif", images.uploads[1].ContentType)
		assert.Equal(t, "b.gif", images.uploads[1].Filename)
	})

	t.Run("explicit order", func(t *testing.T) {
		r, _, _ := newSlideTestRouter(t, 0)

		w := do(r, multipartRequest(t, http.MethodPost, "/slides", map[string]string{"title": "X", "order": "7"}, &formFile{"a.png", pngBytes}))

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 7, decodeSlides[carouselapp.SlideResponse](t, w).Data.Order)
	})

	tests := []struct {
		name        string
		fields      map[string]string
		file        *formFile
		wantMessage string
	}{
		{"image is required", map[string]string{"title": "X"}, nil, "Image is required"},
		{"title is required", map[string]string{"title": "   "}, &formFile{"a.png", pngBytes}, "Title is required"},
		{"rejects non-images", map[string]string{"title": "X"}, &formFile{"notes.txt", []byte("hello, plain text")}, "Only image files are allowed"},
		{"rejects oversized images", map[string]string{"title": "X"}, &formFile{"big.png", append(append([]byte{}, pngBytes...), make([]byte, 128)...)}, "File too large. Maximum size is 64B."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, repo, images := newSlideTestRouter(t, 64)

			w := do(r, multipartRequest(t, http.MethodPost, "/slides", tt.fields, tt.file))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			env := decodeSlides[any](t, w)
			assert.Equal(t, tt.wantMessage, env.Message)
			assert.Equal(t, dto.ErrCodeValidation, env.Error.Code)

			all, err := repo.ListAll(context.Background())
			require.NoError(t, err)
			assert.Empty(t, all)
			assert.Empty(t, images.uploads)
		})
	}

	t.Run("unparsable order", func(t *testing.T) {
		r, _, _ := newSlideTestRouter(t, 0)

		w := do(r, multipartRequest(t, http.MethodPost, "/slides", map[string]string{"title": "X", "order": "first"}, &formFile{"a.png", pngBytes}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("zero order", func(t *testing.T) {
		r, _, _ := newSlideTestRouter(t, 0)

		w := do(r, multipartRequest(t, http.MethodPost, "/slides", map[string]string{"title": "X", "order": "0"}, &formFile{"a.png", pngBytes}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, decodeSlides[any](t, w).Error.Code)
	})
}

func TestSlideHandler_CreateUploadFailure(t *testing.T) {
	repo := persistence.NewGormSlideRepository(newTestDB(t))
	images := new(mockImageStore)
	images.On("Upload", mock.Anything, carousel.DefaultImageFolder, mock.Anything).Return("", errors.New("s3: RequestTimeout"))
	r := slideRouter(NewSlideHandler(carouselapp.NewSlideService(repo, images), 0))

	w := do(r, multipartRequest(t, http.MethodPost, "/slides", map[string]string{"title": "X"}, &formFile{"a.png", pngBytes}))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	env := decodeSlides[any](t, w)
	assert.Equal(t, dto.ErrCodeUpload, env.Error.Code)
	assert.NotContains(t, w.Body.String(), "RequestTimeout")

	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
	images.AssertExpectations(t)
}

func TestSlideHandler_Update(t *testing.T) {
	t.Run("keeps the image when none is sent", func(t *testing.T) {
		r, repo, images := newSlideTestRouter(t, 0)
		s := seedSlide(t, repo, 3, "Old", "img://old")

		w := do(r, multipartRequest(t, http.MethodPut, fmt.Sprintf("/slides/%d", s.ID), map[string]string{"title": "New"}, nil))

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		env := decodeSlides[carouselapp.SlideResponse](t, w)
		assert.Equal(t, "Carousel slide updated successfully", env.Message)
		assert.Equal(t, "New", env.Data.Title)
		assert.Equal(t, "img://old", env.Data.ImageRef)
		assert.Equal(t, 3, env.Data.Order)
		assert.Empty(t, images.uploads)
	})

	t.Run("replaces the image", func(t *testing.T) {
		r, repo, images := newSlideTestRouter(t, 0)
		s := seedSlide(t, repo, 1, "Old", "img://old")

		w := do(r, multipartRequest(t, http.MethodPut, fmt.Sprintf("/slides/%d", s.ID), map[string]string{"title": "Old", "order": "2"}, &formFile{"n.png", pngBytes}))

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		env := decodeSlides[carouselapp.SlideResponse](t, w)
		require.Len(t, images.uploads, 1)
		assert.NotEqual(t, "img://old", env.Data.ImageRef)
		assert.Equal(t, 2, env.Data.Order)
	})

	t.Run("unknown slide", func(t *testing.T) {
		r, _, _ := newSlideTestRouter(t, 0)

		w := do(r, multipartRequest(t, http.MethodPut, "/slides/42", map[string]string{"title": "X"}, nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Carousel slide not found", decodeSlides[any](t, w).Message)
	})
}

func TestSlideHandler_BatchUpdate(t *testing.T) {
	t.Run("orders slides by position", func(t *testing.T) {
		r, repo, images := newSlideTestRouter(t, 0)
		a := seedSlide(t, repo, 1, "A", "img://a")
		b := seedSlide(t, repo, 2, "B", "img://b")

		w := do(r, jsonRequest(t, http.MethodPut, "/slides", map[string]any{
			"slides": []map[string]any{
				{"id": b.ID, "title": "B"},
				{"title": "C", "image": map[string]any{
					"data":        base64.StdEncoding.EncodeToString(gifBytes),
					"contentType": "image/gif",
					"filename":    "c.gif",
				}},
				{"id": a.ID, "title": "A2"},
			},
		}))

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		env := decodeSlides[[]carouselapp.SlideResponse](t, w)
		assert.Equal(t, "Carousel slides updated successfully", env.Message)
		require.Len(t, env.Data, 3)

		assert.Equal(t, b.ID, env.Data[0].ID)
		assert.Equal(t, 1, env.Data[0].Order)
		assert.Equal(t, "img://b", env.Data[0].ImageRef)

		assert.Equal(t, "C", env.Data[1].Title)
		assert.Equal(t, 2, env.Data[1].Order)
		assert.Equal(t, "mem://"+carousel.DefaultImageFolder+"/1", env.Data[1].ImageRef)

		assert.Equal(t, a.ID, env.Data[2].ID)
		assert.Equal(t, 3, env.Data[2].Order)
		assert.Equal(t, "A2", env.Data[2].Title)

		require.Len(t, images.uploads, 1)
		assert.Equal(t, gifBytes, images.uploads[0].Data)
	})

	t.Run("accepts data URLs", func(t *testing.T) {
		r, _, images := newSlideTestRouter(t, 0)

		w := do(r, jsonRequest(t, http.MethodPut, "/slides", map[string]any{
			"slides": []map[string]any{{"title": "C", "image": map[string]any{
				"data":        "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes),
				"contentType": "image/png",
			}}},
		}))

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.Len(t, images.uploads, 1)
		assert.Equal(t, "image/png", images.uploads[0].ContentType)
	})

	t.Run("names the failing position", func(t *testing.T) {
		r, repo, images := newSlideTestRouter(t, 0)
		a := seedSlide(t, repo, 1, "A", "img://a")

		w := do(r, jsonRequest(t, http.MethodPut, "/slides", map[string]any{
			"slides": []map[string]any{{"id": a.ID, "title": "A"}, {"id": a.ID + 1, "title": ""}},
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Title is required for slide 2", decodeSlides[any](t, w).Message)
		assert.Empty(t, images.uploads)
	})

	t.Run("unknown id rolls nothing forward", func(t *testing.T) {
		r, repo, _ := newSlideTestRouter(t, 0)
		a := seedSlide(t, repo, 1, "A", "img://a")

		w := do(r, jsonRequest(t, http.MethodPut, "/slides", map[string]any{
			"slides": []map[string]any{{"id": 999, "title": "Ghost"}, {"id": a.ID, "title": "Renamed"}},
		}))

		assert.Equal(t, http.StatusNotFound, w.Code)
		got, err := repo.GetByID(context.Background(), a.ID)
		require.NoError(t, err)
		assert.Equal(t, "A", got.Title)
	})

	t.Run("empty list", func(t *testing.T) {
		r, _, _ := newSlideTestRouter(t, 0)

		w := do(r, jsonRequest(t, http.MethodPut, "/slides", map[string]any{"slides": []any{}}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Slides array is required", decodeSlides[any](t, w).Message)
	})

	t.Run("image data must be base64", func(t *testing.T) {
		r, _, _ := newSlideTestRouter(t, 0)

		w := do(r, jsonRequest(t, http.MethodPut, "/slides", map[string]any{
			"slides": []map[string]any{{"title": "C", "image": map[string]any{"data": "%%%", "contentType": "image/png"}}},
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, decodeSlides[any](t, w).Error.Code)
	})

	t.Run("inline image must be an image", func(t *testing.T) {
		r, _, _ := newSlideTestRouter(t, 0)

		w := do(r, jsonRequest(t, http.MethodPut, "/slides", map[string]any{
			"slides": []map[string]any{{"title": "C", "image": map[string]any{
				"data":        base64.StdEncoding.EncodeToString([]byte("#!/bin/sh\necho hi\n")),
				"contentType": "image/png",
			}}},
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid image for slide 1: Only image files are allowed", decodeSlides[any](t, w).Message)
	})

	t.Run("an earlier title error outranks a later bad image", func(t *testing.T) {
		r, repo, images := newSlideTestRouter(t, 0)
		a := seedSlide(t, repo, 1, "A", "img://a")

		w := do(r, jsonRequest(t, http.MethodPut, "/slides", map[string]any{
			"slides": []map[string]any{
				{"id": a.ID, "title": ""},
				{"title": "B", "imageRef": "img://b"},
				{"title": "C", "image": map[string]any{"data": "%%%", "contentType": "image/png"}},
			},
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Title is required for slide 1", decodeSlides[any](t, w).Message)
		assert.Empty(t, images.uploads)
	})

	t.Run("malformed json", func(t *testing.T) {
		r, _, _ := newSlideTestRouter(t, 0)
		req := httptest.NewRequest(http.MethodPut, "/slides", bytes.NewBufferString(`{"slides":`))
		req.Header.Set("Content-Type", "application/json")

		w := do(r, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeBadRequest, decodeSlides[any](t, w).Error.Code)
	})
}

func TestSlideHandler_BatchUploadFailureNamesPosition(t *testing.T) {
	repo := persistence.NewGormSlideRepository(newTestDB(t))
	a := seedSlide(t, repo, 1, "A", "img://a")
	images := new(mockImageStore)
	images.On("Upload", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("bucket missing"))
	r := slideRouter(NewSlideHandler(carouselapp.NewSlideService(repo, images), 0))

	w := do(r, jsonRequest(t, http.MethodPut, "/slides", map[string]any{
		"slides": []map[string]any{
			{"id": a.ID, "title": "A"},
			{"title": "B", "image": map[string]any{"data": base64.StdEncoding.EncodeToString(pngBytes), "contentType": "image/png"}},
		},
	}))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Failed to upload image for slide 2", decodeSlides[any](t, w).Message)

	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSlideHandler_Delete(t *testing.T) {
	r, repo, _ := newSlideTestRouter(t, 0)
	s := seedSlide(t, repo, 1, "A", "img://a")
	target := fmt.Sprintf("/slides/%d", s.ID)

	w := do(r, httptest.NewRequest(http.MethodDelete, target, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Carousel slide deleted successfully"}`, w.Body.String())

	w = do(r, httptest.NewRequest(http.MethodDelete, target, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
