package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	carouselapp "github.com/storefront/backend/internal/application/carousel"
	"github.com/storefront/backend/internal/domain/carousel"
	"go.uber.org/zap"
)

var _ carouselapp.ImageStore = (*LocalImageStore)(nil)

// LocalImageStore writes images below a directory that the HTTP server
// exposes under URLPath. Intended for development and single-node setups.
type LocalImageStore struct {
	dir     string
	urlPath string
	logger  *zap.Logger
	now     func() time.Time
}

// NewLocalImageStore creates the root directory if needed
func NewLocalImageStore(dir, urlPath string, logger *zap.Logger) (*LocalImageStore, error) {
	if dir == "" {
		return nil, errors.New("local storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalImageStore{
		dir:     dir,
		urlPath: "/" + strings.Trim(urlPath, "/"),
		logger:  logger,
		now:     time.Now,
	}, nil
}

// Upload implements carouselapp.ImageStore
func (s *LocalImageStore) Upload(ctx context.Context, folder string, payload carousel.ImagePayload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(payload.Data) == 0 {
		return "", errors.New("image payload is empty")
	}

	key := objectKey(folder, payload, s.now())
	target := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("failed to create image folder: %w", err)
	}

	// Write to a temp file first so a partial image is never served
	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(payload.Data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	s.logger.Debug("Carousel image stored", zap.String("path", target), zap.Int64("size", payload.Size()))
	return path.Join(s.urlPath, key), nil
}

// Dir returns the root directory served under URLPath
func (s *LocalImageStore) Dir() string {
	return s.dir
}

// URLPath returns the URL prefix images are served under
func (s *LocalImageStore) URLPath() string {
	return s.urlPath
}
