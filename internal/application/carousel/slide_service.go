package carousel

import (
	"context"
	"fmt"

	"github.com/storefront/backend/internal/domain/carousel"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ImageStore turns an image payload into a durable public reference.
// Implemented by the storage layer (S3 or local disk).
type ImageStore interface {
	Upload(ctx context.Context, folder string, payload carousel.ImagePayload) (string, error)
}

// SlideMetrics records carousel activity. Implemented by the telemetry layer.
type SlideMetrics interface {
	RecordUpload(ctx context.Context, bytes int64, err error)
	RecordBatch(ctx context.Context, size int, err error)
}

// SlideServiceConfig holds configuration for the slide service
type SlideServiceConfig struct {
	// ImageFolder is the logical folder images are uploaded to
	ImageFolder string
	// MaxImageSize is the upload ceiling in bytes
	MaxImageSize int64
	// MaxBatchImages caps the new images a single batch update may upload
	MaxBatchImages int
}

// DefaultSlideServiceConfig returns the default configuration
func DefaultSlideServiceConfig() SlideServiceConfig {
	return SlideServiceConfig{
		ImageFolder:    carousel.DefaultImageFolder,
		MaxImageSize:   carousel.DefaultMaxImageSize,
		MaxBatchImages: carousel.DefaultMaxBatchImages,
	}
}

// SlideService validates slide input, uploads images and delegates persistence
type SlideService struct {
	repo    carousel.SlideRepository
	images  ImageStore
	metrics SlideMetrics
	config  SlideServiceConfig
	logger  *zap.Logger
}

// SlideServiceOption configures a SlideService
type SlideServiceOption func(*SlideService)

// WithSlideLogger sets the logger used for server-side diagnostics
func WithSlideLogger(logger *zap.Logger) SlideServiceOption {
	return func(s *SlideService) {
		s.logger = logger
	}
}

// WithSlideMetrics sets the metrics recorder
func WithSlideMetrics(metrics SlideMetrics) SlideServiceOption {
	return func(s *SlideService) {
		s.metrics = metrics
	}
}

// WithSlideConfig overrides the default configuration
func WithSlideConfig(cfg SlideServiceConfig) SlideServiceOption {
	return func(s *SlideService) {
		if cfg.ImageFolder != "" {
			s.config.ImageFolder = cfg.ImageFolder
		}
		if cfg.MaxImageSize > 0 {
			s.config.MaxImageSize = cfg.MaxImageSize
		}
		if cfg.MaxBatchImages > 0 {
			s.config.MaxBatchImages = cfg.MaxBatchImages
		}
	}
}

// NewSlideService creates a new SlideService
func NewSlideService(repo carousel.SlideRepository, images ImageStore, opts ...SlideServiceOption) *SlideService {
	s := &SlideService{
		repo:    repo,
		images:  images,
		metrics: noopMetrics{},
		config:  DefaultSlideServiceConfig(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListSlides returns every slide sorted by order
func (s *SlideService) ListSlides(ctx context.Context) ([]SlideResponse, error) {
	slides, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToSlideResponses(slides), nil
}

// GetSlide returns one slide
func (s *SlideService) GetSlide(ctx context.Context, id int64) (*SlideResponse, error) {
	slide, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if slide == nil {
		return nil, errSlideNotFound()
	}
	resp := ToSlideResponse(slide)
	return &resp, nil
}

// CreateSlide validates input, uploads the image and inserts the slide.
// Nothing is persisted when the upload fails.
func (s *SlideService) CreateSlide(ctx context.Context, input CreateSlideInput, image *carousel.ImagePayload) (*SlideResponse, error) {
	fields := input.fields().Normalize()
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	if image == nil {
		return nil, shared.NewValidationError("Image is required")
	}
	if err := image.Validate(s.config.MaxImageSize); err != nil {
		return nil, err
	}
	if err := validateOrder(input.Order); err != nil {
		return nil, err
	}

	order := 0
	if input.Order != nil {
		order = *input.Order
	} else {
		next, err := s.repo.NextOrder(ctx)
		if err != nil {
			return nil, err
		}
		order = next
	}

	ref, err := s.upload(ctx, *image)
	if err != nil {
		return nil, shared.NewUploadError("Failed to upload carousel image", err)
	}

	slide, err := s.repo.Create(ctx, carousel.SlideData{Order: order, ImageRef: ref, SlideFields: fields})
	if err != nil {
		s.logger.Warn("Carousel slide insert failed after upload, image left unreferenced",
			zap.String("image_ref", ref), zap.Error(err))
		return nil, err
	}

	resp := ToSlideResponse(slide)
	return &resp, nil
}

// UpdateSlide overwrites a slide. The stored image is kept unless image replaces it.
// The replaced image is not removed from the image store.
func (s *SlideService) UpdateSlide(ctx context.Context, id int64, input UpdateSlideInput, image carousel.ImageChange) (*SlideResponse, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errSlideNotFound()
	}

	fields := input.fields().Normalize()
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	if err := validateOrder(input.Order); err != nil {
		return nil, err
	}

	ref := existing.ImageRef
	if payload, ok := image.Payload(); ok {
		if err := payload.Validate(s.config.MaxImageSize); err != nil {
			return nil, err
		}
		ref, err = s.upload(ctx, payload)
		if err != nil {
			return nil, shared.NewUploadError("Failed to upload carousel image", err)
		}
	}

	order := existing.Order
	if input.Order != nil {
		order = *input.Order
	}

	slide, err := s.repo.Update(ctx, id, carousel.SlideData{Order: order, ImageRef: ref, SlideFields: fields})
	if err != nil {
		return nil, err
	}
	if slide == nil {
		return nil, errSlideNotFound()
	}

	resp := ToSlideResponse(slide)
	return &resp, nil
}

// DeleteSlide removes a slide. Its image stays in the image store.
func (s *SlideService) DeleteSlide(ctx context.Context, id int64) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return errSlideNotFound()
	}
	return nil
}

// BatchUpdateSlides saves the full slide list in one transaction.
// Each draft's position in drafts becomes its order (first draft is order 1).
// All drafts are validated before any image is uploaded or any row is written.
func (s *SlideService) BatchUpdateSlides(ctx context.Context, drafts []carousel.SlideDraft) (result []SlideResponse, err error) {
	defer func() { s.metrics.RecordBatch(ctx, len(drafts), err) }()

	items, err := s.validateDrafts(drafts)
	if err != nil {
		return nil, err
	}

	// Existing slides supply the image of drafts that keep theirs
	for i, draft := range drafts {
		if draft.ID == nil {
			continue
		}
		existing, err := s.repo.GetByID(ctx, *draft.ID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, shared.NewNotFoundError(fmt.Sprintf("Carousel slide %d not found", *draft.ID))
		}
		if !draft.Image.IsReplace() {
			items[i].ImageRef = existing.ImageRef
		}
	}

	for i, draft := range drafts {
		payload, ok := draft.Image.Payload()
		if !ok {
			continue
		}
		ref, err := s.upload(ctx, payload)
		if err != nil {
			return nil, shared.NewUploadError(fmt.Sprintf("Failed to upload image for slide %d", i+1), err)
		}
		items[i].ImageRef = ref
	}

	slides, err := s.repo.BatchUpsert(ctx, items)
	if err != nil {
		return nil, err
	}
	return ToSlideResponses(slides), nil
}

// validateDrafts is the up-front pass of a batch update. It touches neither
// the image store nor the database.
func (s *SlideService) validateDrafts(drafts []carousel.SlideDraft) ([]carousel.UpsertItem, error) {
	if len(drafts) == 0 {
		return nil, shared.NewValidationError("Slides array is required")
	}

	items := make([]carousel.UpsertItem, len(drafts))
	seen := make(map[int64]int, len(drafts))
	uploads := 0
	for i, draft := range drafts {
		position := i + 1

		fields := draft.Fields.Normalize()
		if err := fields.Validate(); err != nil {
			return nil, shared.NewValidationError(fmt.Sprintf("Title is required for slide %d", position))
		}

		if draft.ID != nil {
			if first, dup := seen[*draft.ID]; dup {
				return nil, shared.NewValidationError(
					fmt.Sprintf("Slide %d repeats the slide at position %d", position, first))
			}
			seen[*draft.ID] = position
		}

		if err := draft.Image.Err(); err != nil {
			return nil, shared.NewValidationError(fmt.Sprintf("Invalid image for slide %d: %s", position, err.Error()))
		}
		if payload, ok := draft.Image.Payload(); ok {
			if err := payload.Validate(s.config.MaxImageSize); err != nil {
				return nil, shared.NewValidationError(fmt.Sprintf("Invalid image for slide %d: %s", position, err.Error()))
			}
			uploads++
		} else if draft.ID == nil && draft.ImageRef == "" {
			return nil, shared.NewValidationError(fmt.Sprintf("Image is required for slide %d", position))
		}

		items[i] = carousel.UpsertItem{ID: draft.ID, ImageRef: draft.ImageRef, SlideFields: fields}
	}
	if uploads > s.config.MaxBatchImages {
		return nil, shared.NewValidationError(fmt.Sprintf(
			"Too many new images: %d in one save, at most %d allowed", uploads, s.config.MaxBatchImages))
	}
	return items, nil
}

func (s *SlideService) upload(ctx context.Context, payload carousel.ImagePayload) (string, error) {
	ref, err := s.images.Upload(ctx, s.config.ImageFolder, payload)
	s.metrics.RecordUpload(ctx, payload.Size(), err)
	if err != nil {
		s.logger.Error("Carousel image upload failed",
			zap.String("folder", s.config.ImageFolder),
			zap.String("content_type", payload.ContentType),
			zap.Int64("size", payload.Size()),
			zap.Error(err))
		return "", err
	}
	return ref, nil
}

func validateOrder(order *int) error {
	if order != nil && *order <= 0 {
		return shared.NewValidationError("Order must be a positive integer")
	}
	return nil
}

func errSlideNotFound() error {
	return shared.NewNotFoundError("Carousel slide not found")
}

type noopMetrics struct{}

func (noopMetrics) RecordUpload(context.Context, int64, error) {}
func (noopMetrics) RecordBatch(context.Context, int, error)    {}
