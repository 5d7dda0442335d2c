package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader lets a client retry a write without applying it twice
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotentReplayedHeader marks a response served from the replay cache
	IdempotentReplayedHeader = "Idempotent-Replayed"

	maxIdempotencyKeyLength = 255
)

// IdempotencyConfig configures the Idempotency middleware
type IdempotencyConfig struct {
	Store  cache.IdempotencyStore
	TTL    time.Duration
	Logger *zap.Logger
}

type recordingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the recorded response when a request repeats an
// Idempotency-Key. Requests without the header pass straight through.
// Responses with a 5xx status are not recorded so the client may retry them.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if cfg.TTL <= 0 {
		cfg.TTL = cache.DefaultIdempotencyTTL
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		header := c.GetHeader(IdempotencyKeyHeader)
		if header == "" {
			c.Next()
			return
		}
		requestID := GetRequestID(c)
		if len(header) > maxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeBadRequest, "Idempotency-Key is too long", requestID))
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeTooLarge, "Request body too large", requestID))
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		sum := sha256.Sum256(body)
		fingerprint := hex.EncodeToString(sum[:])
		key := c.Request.Method + " " + c.FullPath() + " " + header
		ctx := c.Request.Context()

		stored, found, err := cfg.Store.Lookup(ctx, key)
		if err != nil {
			// The store is an optimisation; serve the request unguarded.
			log.Warn("Idempotency lookup failed", zap.Error(err), zap.String("request_id", requestID))
			c.Next()
			return
		}
		if found {
			replay(c, stored, fingerprint, requestID)
			return
		}

		reserved, err := cfg.Store.Reserve(ctx, key, cfg.TTL)
		if err != nil {
			log.Warn("Idempotency reserve failed", zap.Error(err), zap.String("request_id", requestID))
			c.Next()
			return
		}
		if !reserved {
			inProgress(c, requestID)
			return
		}

		rw := &recordingWriter{ResponseWriter: c.Writer}
		c.Writer = rw
		c.Next()

		// A cancelled request context must not strand the key as pending.
		storeCtx := context.WithoutCancel(ctx)
		if status := rw.Status(); status >= http.StatusInternalServerError {
			if err := cfg.Store.Release(storeCtx, key); err != nil {
				log.Warn("Idempotency release failed", zap.Error(err), zap.String("request_id", requestID))
			}
			return
		}
		resp := cache.Response{
			Fingerprint: fingerprint,
			Status:      rw.Status(),
			ContentType: rw.Header().Get("Content-Type"),
			Body:        rw.body.Bytes(),
		}
		if err := cfg.Store.Complete(storeCtx, key, resp, cfg.TTL); err != nil {
			log.Warn("Idempotency record failed", zap.Error(err), zap.String("request_id", requestID))
		}
	}
}

func replay(c *gin.Context, stored *cache.Response, fingerprint, requestID string) {
	if stored == nil {
		inProgress(c, requestID)
		return
	}
	if stored.Fingerprint != fingerprint {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeIdempotencyMismatch, "Idempotency-Key was already used for a different request", requestID))
		return
	}
	c.Header(IdempotentReplayedHeader, "true")
	contentType := stored.ContentType
	if contentType == "" {
		contentType = "application/json; charset=utf-8"
	}
	c.Data(stored.Status, contentType, stored.Body)
	c.Abort()
}

func inProgress(c *gin.Context, requestID string) {
	c.Header("Retry-After", "1")
	c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeConflict, "A request with this Idempotency-Key is still in progress", requestID))
}
