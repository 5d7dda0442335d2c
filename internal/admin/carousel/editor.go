package carousel

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/docker/go-units"
	"github.com/storefront/backend/internal/domain/shared"
)

// SlideEditor holds a working copy of one slide. Every edit is reported to
// the owner through onChange; an edit the owner rejects is not applied.
// Nothing here talks to the server.
type SlideEditor struct {
	draft         Draft
	onChange      func(Draft) error
	maxImageBytes int64
}

// NewSlideEditor starts an editor on a copy of d
func NewSlideEditor(d Draft, onChange func(Draft) error, maxImageBytes int64) *SlideEditor {
	return &SlideEditor{draft: d.clone(), onChange: onChange, maxImageBytes: maxImageBytes}
}

// Draft returns the editor's current working copy
func (e *SlideEditor) Draft() Draft {
	return e.draft.clone()
}

func (e *SlideEditor) SetTitle(title string) error {
	next := e.draft.clone()
	next.Title = title
	return e.emit(next)
}

// SetSubtitle sets the subtitle; an empty string clears it
func (e *SlideEditor) SetSubtitle(subtitle string) error {
	next := e.draft.clone()
	next.Subtitle = optional(subtitle)
	return e.emit(next)
}

// SetAltText sets the alternative text; an empty string clears it
func (e *SlideEditor) SetAltText(alt string) error {
	next := e.draft.clone()
	next.AltText = optional(alt)
	return e.emit(next)
}

// SetImageRef points a new slide at an image that is already stored
func (e *SlideEditor) SetImageRef(ref string) error {
	next := e.draft.clone()
	next.ImageRef = strings.TrimSpace(ref)
	return e.emit(next)
}

// SetImageFromFile reads a local image and stages it as the slide's new image.
// The file is checked for size and type the way the server checks uploads.
func (e *SlideEditor) SetImageFromFile(path string) error {
	staged, err := e.readImage(path)
	if err != nil {
		return err
	}
	next := e.draft.clone()
	next.Image = staged
	return e.emit(next)
}

func (e *SlideEditor) emit(next Draft) error {
	if e.onChange != nil {
		if err := e.onChange(next.clone()); err != nil {
			return err
		}
	}
	e.draft = next
	return nil
}

func (e *SlideEditor) readImage(path string) (*StagedImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat image: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if e.maxImageBytes > 0 && info.Size() > e.maxImageBytes {
		return nil, e.tooLarge()
	}

	limit := info.Size() + 1
	if e.maxImageBytes > 0 {
		limit = e.maxImageBytes + 1
	}
	data, err := io.ReadAll(io.LimitReader(f, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 {
		return nil, shared.NewValidationError("Image is required")
	}
	if e.maxImageBytes > 0 && int64(len(data)) > e.maxImageBytes {
		return nil, e.tooLarge()
	}

	contentType, ok := detectImageType(data, filepath.Ext(path))
	if !ok {
		return nil, shared.NewValidationError("Only image files are allowed")
	}

	name := filepath.Base(path)
	preview := Preview{Filename: name, ContentType: contentType, Size: int64(len(data))}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		preview.Width, preview.Height = cfg.Width, cfg.Height
	}

	return &StagedImage{
		Data:        base64.StdEncoding.EncodeToString(data),
		ContentType: contentType,
		Filename:    name,
		Preview:     preview,
	}, nil
}

func (e *SlideEditor) tooLarge() error {
	return shared.NewValidationError(fmt.Sprintf("File too large. Maximum size is %s.", units.BytesSize(float64(e.maxImageBytes))))
}

// detectImageType sniffs the content. SVG sniffs as text and is recognised by
// its extension.
func detectImageType(data []byte, ext string) (string, bool) {
	sniffed := http.DetectContentType(data[:min(len(data), 512)])
	sniffed, _, _ = strings.Cut(sniffed, ";")
	if strings.HasPrefix(sniffed, "image/") {
		return sniffed, true
	}
	byExt, _, _ := strings.Cut(mime.TypeByExtension(strings.ToLower(ext)), ";")
	if byExt == "image/svg+xml" && (sniffed == "text/xml" || sniffed == "text/plain") {
		return byExt, true
	}
	return "", false
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
