package handler

import "github.com/storefront/backend/internal/domain/carousel"

// SlideFormRequest is the multipart (or urlencoded) body of a single-slide create or update.
// The image travels as the file part "image".
type SlideFormRequest struct {
	Title    string  `form:"title" example:"Summer sale"`
	Subtitle *string `form:"subtitle" example:"Up to 50% off"`
	AltText  *string `form:"altText" example:"Beach with sun loungers"`
	// AltTextSnake accepts the snake_case spelling older clients send
	AltTextSnake *string `form:"alt_text" swaggerignore:"true"`
	Order        *int    `form:"order" binding:"omitempty,gt=0" example:"1"`
}

func (r SlideFormRequest) altText() *string {
	if r.AltText != nil {
		return r.AltText
	}
	return r.AltTextSnake
}

// BatchSlidesRequest is the body of PUT /slides.
// The position of each entry becomes its order.
type BatchSlidesRequest struct {
	Slides []BatchSlideRequest `json:"slides" binding:"dive"`
}

// BatchSlideRequest is one entry of a batch save. Entries without id are created.
type BatchSlideRequest struct {
	ID       *int64  `json:"id,omitempty" binding:"omitempty,gt=0" example:"3"`
	Title    string  `json:"title" example:"Summer sale"`
	Subtitle *string `json:"subtitle,omitempty"`
	AltText  *string `json:"altText,omitempty"`
	// ImageRef points a new slide at an image that is already stored
	ImageRef string `json:"imageRef,omitempty"`
	// Image replaces the slide's image; omit it to keep the current one
	Image *ImageUploadRequest `json:"image,omitempty"`
}

// ImageUploadRequest is an inline, base64 encoded image
type ImageUploadRequest struct {
	Data        string `json:"data" binding:"required"`
	ContentType string `json:"contentType" binding:"required" example:"image/jpeg"`
	Filename    string `json:"filename,omitempty" example:"summer.jpg"`
}

func (r BatchSlideRequest) fields() carousel.SlideFields {
	return carousel.SlideFields{Title: r.Title, Subtitle: r.Subtitle, AltText: r.AltText}
}
