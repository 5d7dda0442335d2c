package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/storefront/backend/internal/domain/promotion"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPromoRepository implements promotion.PromoRepository using GORM
type GormPromoRepository struct {
	db *gorm.DB
}

// NewGormPromoRepository creates a new GormPromoRepository
func NewGormPromoRepository(db *gorm.DB) *GormPromoRepository {
	return &GormPromoRepository{db: db}
}

// ListActive returns active messages, newest first
func (r *GormPromoRepository) ListActive(ctx context.Context) ([]promotion.PromoMessage, error) {
	return r.list(r.db.WithContext(ctx).Where("is_active = ?", true))
}

// ListAll returns every message, newest first
func (r *GormPromoRepository) ListAll(ctx context.Context) ([]promotion.PromoMessage, error) {
	return r.list(r.db.WithContext(ctx))
}

func (r *GormPromoRepository) list(query *gorm.DB) ([]promotion.PromoMessage, error) {
	var promoModels []models.PromoMessageModel
	if err := query.Order("created_at DESC").Order("id DESC").Find(&promoModels).Error; err != nil {
		return nil, translateError("Failed to load promo messages", err)
	}
	messages := make([]promotion.PromoMessage, len(promoModels))
	for i, model := range promoModels {
		messages[i] = *model.ToDomain()
	}
	return messages, nil
}

// GetByID returns the message, or nil when it does not exist
func (r *GormPromoRepository) GetByID(ctx context.Context, id int64) (*promotion.PromoMessage, error) {
	return r.findByID(r.db.WithContext(ctx), id)
}

func (r *GormPromoRepository) findByID(db *gorm.DB, id int64) (*promotion.PromoMessage, error) {
	var model models.PromoMessageModel
	if err := db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translateError("Failed to load promo message", err)
	}
	return model.ToDomain(), nil
}

// Create inserts a message
func (r *GormPromoRepository) Create(ctx context.Context, data promotion.PromoData) (*promotion.PromoMessage, error) {
	model := models.PromoMessageModelFromData(data)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, translateError("Failed to create promo message", err)
	}
	return model.ToDomain(), nil
}

// Update overwrites every writable field
func (r *GormPromoRepository) Update(ctx context.Context, id int64, data promotion.PromoData) (*promotion.PromoMessage, error) {
	db := r.db.WithContext(ctx)
	result := db.Model(&models.PromoMessageModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"message":    data.Message,
			"theme":      data.Theme,
			"color":      data.Color,
			"is_active":  data.IsActive,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, translateError("Failed to update promo message", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.findByID(db, id)
}

// Delete removes a message and reports whether a row was removed
func (r *GormPromoRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.PromoMessageModel{}, "id = ?", id)
	if result.Error != nil {
		return false, translateError("Failed to delete promo message", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ToggleActive flips is_active in a single statement
func (r *GormPromoRepository) ToggleActive(ctx context.Context, id int64) (*promotion.PromoMessage, error) {
	db := r.db.WithContext(ctx)
	result := db.Model(&models.PromoMessageModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_active":  gorm.Expr("NOT is_active"),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, translateError("Failed to toggle promo message", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.findByID(db, id)
}

var _ promotion.PromoRepository = (*GormPromoRepository)(nil)
