package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/storefront/backend/internal/domain/carousel"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSlideRepository implements carousel.SlideRepository using GORM
type GormSlideRepository struct {
	db *gorm.DB
}

// NewGormSlideRepository creates a new GormSlideRepository
func NewGormSlideRepository(db *gorm.DB) *GormSlideRepository {
	return &GormSlideRepository{db: db}
}

// ==================== SlideReader Interface ====================

// ListAll returns every slide sorted by order ascending
func (r *GormSlideRepository) ListAll(ctx context.Context) ([]carousel.Slide, error) {
	var slideModels []models.SlideModel
	if err := r.db.WithContext(ctx).
		Order("slide_order ASC").
		Order("id ASC").
		Find(&slideModels).Error; err != nil {
		return nil, translateError("Failed to load carousel slides", err)
	}

	slides := make([]carousel.Slide, len(slideModels))
	for i, model := range slideModels {
		slides[i] = *model.ToDomain()
	}
	return slides, nil
}

// GetByID returns the slide with the given ID, or nil when there is none
func (r *GormSlideRepository) GetByID(ctx context.Context, id int64) (*carousel.Slide, error) {
	return r.findByID(r.db.WithContext(ctx), id)
}

func (r *GormSlideRepository) findByID(db *gorm.DB, id int64) (*carousel.Slide, error) {
	var model models.SlideModel
	if err := db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translateError("Failed to load carousel slide", err)
	}
	return model.ToDomain(), nil
}

// ==================== SlideOrderer Interface ====================

// NextOrder returns one more than the highest order, or 1 when the table is empty
func (r *GormSlideRepository) NextOrder(ctx context.Context) (int, error) {
	var maxOrder *int
	if err := r.db.WithContext(ctx).
		Model(&models.SlideModel{}).
		Select("MAX(slide_order)").
		Scan(&maxOrder).Error; err != nil {
		return 0, translateError("Failed to compute next slide order", err)
	}
	if maxOrder == nil {
		return 1, nil
	}
	return *maxOrder + 1, nil
}

// ==================== SlideWriter Interface ====================

// Create inserts one slide
func (r *GormSlideRepository) Create(ctx context.Context, data carousel.SlideData) (*carousel.Slide, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	model := models.SlideModelFromData(data)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, translateError("Failed to create carousel slide", err)
	}
	return model.ToDomain(), nil
}

// Update overwrites every mutable field and returns the re-read row
func (r *GormSlideRepository) Update(ctx context.Context, id int64, data carousel.SlideData) (*carousel.Slide, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	db := r.db.WithContext(ctx)
	result := db.Model(&models.SlideModel{}).
		Where("id = ?", id).
		Updates(models.SlideUpdateColumns(data, time.Now()))
	if result.Error != nil {
		return nil, translateError("Failed to update carousel slide", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.findByID(db, id)
}

// Delete removes a slide and reports whether a row was actually removed
func (r *GormSlideRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.SlideModel{}, "id = ?", id)
	if result.Error != nil {
		return false, translateError("Failed to delete carousel slide", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// BatchUpsert applies a mixed list of updates and inserts in one transaction.
// Item i is written with order i+1. Slides that are not part of the batch are
// moved behind it, keeping their relative order, so orders stay 1..total.
// Any failure rolls the whole batch back; an invalid item fails it before
// anything is written.
func (r *GormSlideRepository) BatchUpsert(ctx context.Context, items []carousel.UpsertItem) ([]carousel.Slide, error) {
	if len(items) == 0 {
		return []carousel.Slide{}, nil
	}
	for i, item := range items {
		if err := item.Data(i + 1).Validate(); err != nil {
			return nil, shared.NewValidationError(fmt.Sprintf("Slide %d: %s", i+1, err.Error()))
		}
	}

	slides := make([]carousel.Slide, 0, len(items))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		written := make([]int64, 0, len(items))

		for i, item := range items {
			data := item.Data(i + 1)

			if item.IsNew() {
				model := models.SlideModelFromData(data)
				if err := tx.Create(model).Error; err != nil {
					return fmt.Errorf("insert slide %d: %w", i+1, err)
				}
				slides = append(slides, *model.ToDomain())
				written = append(written, model.ID)
				continue
			}

			result := tx.Model(&models.SlideModel{}).
				Where("id = ?", *item.ID).
				Updates(models.SlideUpdateColumns(data, now))
			if result.Error != nil {
				return fmt.Errorf("update slide %d: %w", i+1, result.Error)
			}
			if result.RowsAffected == 0 {
				return shared.NewNotFoundError(fmt.Sprintf("Carousel slide %d not found", *item.ID))
			}

			slide, err := r.findByID(tx, *item.ID)
			if err != nil {
				return err
			}
			if slide == nil {
				return shared.NewNotFoundError(fmt.Sprintf("Carousel slide %d not found", *item.ID))
			}
			slides = append(slides, *slide)
			written = append(written, *item.ID)
		}

		return r.appendRemaining(tx, written, now)
	})
	if err != nil {
		return nil, translateError("Failed to save carousel slides", err)
	}
	return slides, nil
}

// appendRemaining renumbers slides left out of a batch so they follow it
func (r *GormSlideRepository) appendRemaining(tx *gorm.DB, written []int64, now time.Time) error {
	var remaining []models.SlideModel
	if err := tx.Select("id", "slide_order").
		Where("id NOT IN ?", written).
		Order("slide_order ASC").
		Order("id ASC").
		Find(&remaining).Error; err != nil {
		return fmt.Errorf("load remaining slides: %w", err)
	}

	next := len(written) + 1
	for _, model := range remaining {
		if model.Order != next {
			if err := tx.Model(&models.SlideModel{}).
				Where("id = ?", model.ID).
				Updates(map[string]any{"slide_order": next, "updated_at": now}).Error; err != nil {
				return fmt.Errorf("renumber slide %d: %w", model.ID, err)
			}
		}
		next++
	}
	return nil
}

// Compile-time interface compliance checks
var _ carousel.SlideRepository = (*GormSlideRepository)(nil)
var _ carousel.SlideReader = (*GormSlideRepository)(nil)
var _ carousel.SlideWriter = (*GormSlideRepository)(nil)
var _ carousel.SlideOrderer = (*GormSlideRepository)(nil)
