package carousel

import (
	"fmt"
	"strings"

	"github.com/docker/go-units"
	"github.com/storefront/backend/internal/domain/shared"
)

// DefaultMaxImageSize is the default upload ceiling (5 MiB)
const DefaultMaxImageSize int64 = 5 * units.MiB

// DefaultMaxBatchImages is how many new images one batch save may upload
const DefaultMaxBatchImages = 10

// DefaultImageFolder is the logical folder slide images are uploaded to
const DefaultImageFolder = "storefront-carousel"

// ImagePayload is raw image content waiting to be uploaded
type ImagePayload struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Size returns the payload size in bytes
func (p ImagePayload) Size() int64 {
	return int64(len(p.Data))
}

// IsImage reports whether the payload declares an image media type
func (p ImagePayload) IsImage() bool {
	return strings.HasPrefix(strings.ToLower(p.ContentType), "image/")
}

// Validate checks that the payload is a non-empty image within maxSize bytes
func (p ImagePayload) Validate(maxSize int64) error {
	if len(p.Data) == 0 {
		return shared.NewValidationError("Image is required")
	}
	if !p.IsImage() {
		return shared.NewValidationError("Only image files are allowed")
	}
	if maxSize > 0 && p.Size() > maxSize {
		return shared.NewValidationError(fmt.Sprintf("File too large. Maximum size is %s.", units.BytesSize(float64(maxSize))))
	}
	return nil
}

// ImageChange says what should happen to a slide's image.
// The zero value keeps the current image. A rejected change carries the
// reason a submitted image could not be read, so it is reported in position
// order with the other problems of its slide.
type ImageChange struct {
	payload  *ImagePayload
	rejected error
}

// KeepImage leaves the stored image untouched
func KeepImage() ImageChange {
	return ImageChange{}
}

// ReplaceImage uploads payload and points the slide at the new reference
func ReplaceImage(payload ImagePayload) ImageChange {
	return ImageChange{payload: &payload}
}

// RejectImage records a submitted image that could not be decoded
func RejectImage(err error) ImageChange {
	return ImageChange{rejected: err}
}

// Err returns why the submitted image was rejected, or nil
func (c ImageChange) Err() error {
	return c.rejected
}

// IsReplace reports whether a new image was supplied
func (c ImageChange) IsReplace() bool {
	return c.payload != nil
}

// Payload returns the replacement payload, if any
func (c ImageChange) Payload() (ImagePayload, bool) {
	if c.payload == nil {
		return ImagePayload{}, false
	}
	return *c.payload, true
}

// String implements fmt.Stringer
func (c ImageChange) String() string {
	if c.rejected != nil {
		return "rejected(" + c.rejected.Error() + ")"
	}
	if c.payload == nil {
		return "unchanged"
	}
	return fmt.Sprintf("replace(%s, %d bytes)", c.payload.ContentType, len(c.payload.Data))
}

// SlideDraft is one entry submitted to a batch update.
// ImageRef is only consulted for new slides that reference an already stored image.
type SlideDraft struct {
	ID       *int64
	Fields   SlideFields
	ImageRef string
	Image    ImageChange
}
