package carousel

import (
	"time"

	"github.com/storefront/backend/internal/domain/carousel"
)

// CreateSlideInput holds the fields of a single-slide create.
// The image payload is passed separately.
type CreateSlideInput struct {
	Title    string
	Subtitle *string
	AltText  *string
	Order    *int // nil appends the slide after the current last one
}

// UpdateSlideInput holds the fields of a single-slide update.
type UpdateSlideInput struct {
	Title    string
	Subtitle *string
	AltText  *string
	Order    *int // nil keeps the stored order
}

func (i CreateSlideInput) fields() carousel.SlideFields {
	return carousel.SlideFields{Title: i.Title, Subtitle: i.Subtitle, AltText: i.AltText}
}

func (i UpdateSlideInput) fields() carousel.SlideFields {
	return carousel.SlideFields{Title: i.Title, Subtitle: i.Subtitle, AltText: i.AltText}
}

// SlideResponse represents a slide in API responses
type SlideResponse struct {
	ID        int64     `json:"id"`
	Order     int       `json:"order"`
	ImageRef  string    `json:"imageRef"`
	Title     string    `json:"title"`
	Subtitle  *string   `json:"subtitle"`
	AltText   *string   `json:"altText"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToSlideResponse converts a domain slide to its response form
func ToSlideResponse(s *carousel.Slide) SlideResponse {
	return SlideResponse{
		ID:        s.ID,
		Order:     s.Order,
		ImageRef:  s.ImageRef,
		Title:     s.Title,
		Subtitle:  s.Subtitle,
		AltText:   s.AltText,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ToSlideResponses converts a list of domain slides
func ToSlideResponses(slides []carousel.Slide) []SlideResponse {
	out := make([]SlideResponse, len(slides))
	for i := range slides {
		out[i] = ToSlideResponse(&slides[i])
	}
	return out
}
