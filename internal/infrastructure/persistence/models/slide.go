package models

import (
	"time"

	"github.com/storefront/backend/internal/domain/carousel"
)

// SlideModel is the persistence model for the carousel Slide entity.
// Column names follow the storefront's original carousel_slides table.
type SlideModel struct {
	BaseModel
	Order     int     `gorm:"column:slide_order;type:integer;not null"`
	ImagePath string  `gorm:"column:image_path;type:varchar(1024);not null"`
	Title     string  `gorm:"column:title;type:varchar(255);not null"`
	Subtitle  *string `gorm:"column:subtitle;type:varchar(500)"`
	AltText   *string `gorm:"column:alt_text;type:varchar(500)"`
}

// TableName returns the table name for GORM
func (SlideModel) TableName() string {
	return "carousel_slides"
}

// ToDomain converts the persistence model to a domain Slide
func (m *SlideModel) ToDomain() *carousel.Slide {
	return &carousel.Slide{
		BaseEntity: m.BaseModel.ToDomain(),
		Order:      m.Order,
		ImageRef:   m.ImagePath,
		Title:      m.Title,
		Subtitle:   m.Subtitle,
		AltText:    m.AltText,
	}
}

// SlideModelFromData builds a new, unsaved model from slide data
func SlideModelFromData(data carousel.SlideData) *SlideModel {
	return &SlideModel{
		Order:     data.Order,
		ImagePath: data.ImageRef,
		Title:     data.Title,
		Subtitle:  data.Subtitle,
		AltText:   data.AltText,
	}
}

// SlideUpdateColumns returns the column map for a full overwrite.
// A map is used so nil optionals are written as NULL.
func SlideUpdateColumns(data carousel.SlideData, now time.Time) map[string]any {
	return map[string]any{
		"slide_order": data.Order,
		"image_path":  data.ImageRef,
		"title":       data.Title,
		"subtitle":    data.Subtitle,
		"alt_text":    data.AltText,
		"updated_at":  now,
	}
}
