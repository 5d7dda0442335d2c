package handler

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/docker/go-units"
	"github.com/storefront/backend/internal/domain/carousel"
	"github.com/storefront/backend/internal/domain/shared"
)

// sniffLen is how much of the payload http.DetectContentType looks at
const sniffLen = 512

// imageRules enforces the upload limits at the HTTP boundary, before a payload
// reaches the service. The declared content type is not trusted.
type imageRules struct {
	maxBytes int64
}

func (r imageRules) tooLarge() error {
	return shared.NewValidationError(fmt.Sprintf("File too large. Maximum size is %s.", units.BytesSize(float64(r.maxBytes))))
}

// fromFile reads a multipart file part
func (r imageRules) fromFile(fh *multipart.FileHeader) (*carousel.ImagePayload, error) {
	if r.maxBytes > 0 && fh.Size > r.maxBytes {
		return nil, r.tooLarge()
	}
	f, err := fh.Open()
	if err != nil {
		return nil, shared.NewValidationError("Unable to read uploaded image")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, r.maxBytes+1))
	if err != nil {
		return nil, shared.NewValidationError("Unable to read uploaded image")
	}
	return r.check(data, fh.Header.Get("Content-Type"), fh.Filename)
}

// fromBase64 decodes an inline image of a batch entry
func (r imageRules) fromBase64(in ImageUploadRequest) (*carousel.ImagePayload, error) {
	// Tolerate data URLs ("data:image/png;base64,....")
	encoded := in.Data
	if i := strings.Index(encoded, ","); strings.HasPrefix(encoded, "data:") && i > 0 {
		encoded = encoded[i+1:]
	}
	if r.maxBytes > 0 && int64(base64.StdEncoding.DecodedLen(len(encoded))) > r.maxBytes+2 {
		return nil, r.tooLarge()
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, shared.NewValidationError("Image data must be base64 encoded")
	}
	return r.check(data, in.ContentType, in.Filename)
}

func (r imageRules) check(data []byte, declared, filename string) (*carousel.ImagePayload, error) {
	if len(data) == 0 {
		return nil, shared.NewValidationError("Image is required")
	}
	if r.maxBytes > 0 && int64(len(data)) > r.maxBytes {
		return nil, r.tooLarge()
	}

	sniffed := http.DetectContentType(data[:min(len(data), sniffLen)])
	contentType, ok := resolveImageType(sniffed, declared)
	if !ok {
		return nil, shared.NewValidationError("Only image files are allowed")
	}
	return &carousel.ImagePayload{Data: data, ContentType: contentType, Filename: filename}, nil
}

// resolveImageType prefers the sniffed type. SVG sniffs as text, so a declared
// image/svg+xml is accepted when the content looks like XML.
func resolveImageType(sniffed, declared string) (string, bool) {
	sniffed, _, _ = strings.Cut(sniffed, ";")
	if strings.HasPrefix(sniffed, "image/") {
		return sniffed, true
	}
	declared = strings.ToLower(strings.TrimSpace(declared))
	if declared == "image/svg+xml" && (sniffed == "text/xml" || sniffed == "text/plain") {
		return declared, true
	}
	return "", false
}
