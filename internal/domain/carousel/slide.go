package carousel

import (
	"strings"

	"github.com/storefront/backend/internal/domain/shared"
	"golang.org/x/text/unicode/norm"
)

// Slide is one carousel entry: an image with its captions and display position.
type Slide struct {
	shared.BaseEntity
	Order    int     // Display position, 1-based, dense and unique at rest
	ImageRef string  // Public URL returned by the image store
	Title    string  // Required headline
	Subtitle *string // Optional secondary line
	AltText  *string // Optional accessibility description
}

// SlideFields holds the editable text of a slide
type SlideFields struct {
	Title    string
	Subtitle *string
	AltText  *string
}

// Normalize trims every field, applies NFC normalization and turns blank
// optional values into nil.
func (f SlideFields) Normalize() SlideFields {
	return SlideFields{
		Title:    NormalizeText(f.Title),
		Subtitle: normalizeOptional(f.Subtitle),
		AltText:  normalizeOptional(f.AltText),
	}
}

// Validate checks the fields after normalization
func (f SlideFields) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return shared.NewValidationError("Title is required")
	}
	return nil
}

// SlideData is everything the repository writes for a single slide
type SlideData struct {
	Order    int
	ImageRef string
	SlideFields
}

// Validate enforces the invariants of a persisted slide
func (d SlideData) Validate() error {
	if err := d.SlideFields.Validate(); err != nil {
		return err
	}
	if d.ImageRef == "" {
		return shared.NewValidationError("Image is required")
	}
	if d.Order <= 0 {
		return shared.NewValidationError("Order must be a positive integer")
	}
	return nil
}

// UpsertItem is one entry of a batch upsert. The item's position in the batch
// determines its order, so it carries no order of its own.
type UpsertItem struct {
	ID       *int64 // nil for a new slide
	ImageRef string
	SlideFields
}

// Data returns what the item writes when placed at the given order
func (i UpsertItem) Data(order int) SlideData {
	return SlideData{Order: order, ImageRef: i.ImageRef, SlideFields: i.SlideFields}
}

// IsNew reports whether the item creates a slide
func (i UpsertItem) IsNew() bool {
	return i.ID == nil
}

// Fields returns the editable text of the slide
func (s *Slide) Fields() SlideFields {
	return SlideFields{Title: s.Title, Subtitle: s.Subtitle, AltText: s.AltText}
}

// NormalizeText trims surrounding whitespace and normalizes to NFC
func NormalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := NormalizeText(*s)
	if v == "" {
		return nil
	}
	return &v
}
