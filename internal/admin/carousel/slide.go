// Package carousel is the admin side of the homepage carousel: a local working
// copy of the slide list that is edited offline and saved back in one batch.
package carousel

import (
	"fmt"
	"slices"
	"time"

	"github.com/docker/go-units"
)

// Slide is a slide as the server returns it
type Slide struct {
	ID        int64     `json:"id" yaml:"id"`
	Order     int       `json:"order" yaml:"order"`
	ImageRef  string    `json:"imageRef" yaml:"imageRef"`
	Title     string    `json:"title" yaml:"title"`
	Subtitle  *string   `json:"subtitle" yaml:"subtitle,omitempty"`
	AltText   *string   `json:"altText" yaml:"altText,omitempty"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Draft is one entry of the working list. A nil ID marks a slide that does
// not exist on the server yet. Image is set only when the image is replaced.
type Draft struct {
	ID       *int64       `yaml:"id,omitempty"`
	Title    string       `yaml:"title"`
	Subtitle *string      `yaml:"subtitle,omitempty"`
	AltText  *string      `yaml:"altText,omitempty"`
	ImageRef string       `yaml:"imageRef,omitempty"`
	Image    *StagedImage `yaml:"image,omitempty"`
}

// DraftFromSlide starts a draft from the stored state of s
func DraftFromSlide(s Slide) Draft {
	id := s.ID
	return Draft{
		ID:       &id,
		Title:    s.Title,
		Subtitle: cloneString(s.Subtitle),
		AltText:  cloneString(s.AltText),
		ImageRef: s.ImageRef,
	}
}

// IsNew reports whether the draft has never been saved
func (d Draft) IsNew() bool {
	return d.ID == nil
}

func (d Draft) clone() Draft {
	out := d
	if d.ID != nil {
		id := *d.ID
		out.ID = &id
	}
	out.Subtitle = cloneString(d.Subtitle)
	out.AltText = cloneString(d.AltText)
	if d.Image != nil {
		img := *d.Image
		out.Image = &img
	}
	return out
}

// StagedImage is an image read from disk and waiting for the next save
type StagedImage struct {
	Data        string  `yaml:"data"` // base64, standard encoding
	ContentType string  `yaml:"contentType"`
	Filename    string  `yaml:"filename,omitempty"`
	Preview     Preview `yaml:"preview"`
}

// Preview describes a staged image without its bytes
type Preview struct {
	Filename    string `yaml:"filename"`
	ContentType string `yaml:"contentType"`
	Size        int64  `yaml:"size"`
	Width       int    `yaml:"width,omitempty"`
	Height      int    `yaml:"height,omitempty"`
}

func (p Preview) String() string {
	size := units.BytesSize(float64(p.Size))
	if p.Width > 0 && p.Height > 0 {
		return fmt.Sprintf("%s (%s, %dx%d, %s)", p.Filename, p.ContentType, p.Width, p.Height, size)
	}
	return fmt.Sprintf("%s (%s, %s)", p.Filename, p.ContentType, size)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneDrafts(in []Draft) []Draft {
	out := make([]Draft, len(in))
	for i, d := range in {
		out[i] = d.clone()
	}
	return out
}

func draftsFromSlides(slides []Slide) []Draft {
	out := make([]Draft, len(slides))
	for i, s := range slides {
		out[i] = DraftFromSlide(s)
	}
	return out
}

func sortedSlides(in []Slide) []Slide {
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b Slide) int { return a.Order - b.Order })
	return out
}
