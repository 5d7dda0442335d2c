package carousel

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func pngFile(t *testing.T, w, h int) (string, []byte) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return writeFile(t, "banner.png", buf.Bytes()), buf.Bytes()
}

func TestSlideEditor_EmitsEveryChange(t *testing.T) {
	var emitted []Draft
	ed := NewSlideEditor(Draft{Title: "A"}, func(d Draft) error {
		emitted = append(emitted, d)
		return nil
	}, 0)

	require.NoError(t, ed.SetTitle("A2"))
	require.NoError(t, ed.SetSubtitle("  sub  "))
	require.NoError(t, ed.SetAltText(""))

	require.Len(t, emitted, 3)
	assert.Equal(t, "A2", emitted[0].Title)
	assert.Nil(t, emitted[0].Subtitle)
	assert.Equal(t, "sub", *emitted[1].Subtitle)
	assert.Nil(t, emitted[2].AltText)
	assert.Equal(t, emitted[2], ed.Draft())
}

func TestSlideEditor_RejectedChangeIsNotApplied(t *testing.T) {
	ed := NewSlideEditor(Draft{Title: "A"}, func(Draft) error {
		return ErrInvalidTransition
	}, 0)

	err := ed.SetTitle("B")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, "A", ed.Draft().Title)
}

func TestSlideEditor_DraftIsACopy(t *testing.T) {
	sub := "original"
	ed := NewSlideEditor(Draft{Title: "A", Subtitle: &sub}, nil, 0)

	d := ed.Draft()
	*d.Subtitle = "changed"
	assert.Equal(t, "original", *ed.Draft().Subtitle)
	sub = "mutated"
	assert.Equal(t, "original", *ed.Draft().Subtitle)
}

func TestSlideEditor_SetImageFromFile(t *testing.T) {
	t.Run("stages a base64 payload with a preview", func(t *testing.T) {
		path, raw := pngFile(t, 12, 4)
		ed := NewSlideEditor(Draft{Title: "A"}, nil, 1<<20)

		require.NoError(t, ed.SetImageFromFile(path))

		img := ed.Draft().Image
		require.NotNil(t, img)
		assert.Equal(t, "image/png", img.ContentType)
		assert.Equal(t, "banner.png", img.Filename)
		decoded, err := base64.StdEncoding.DecodeString(img.Data)
		require.NoError(t, err)
		assert.Equal(t, raw, decoded)

		assert.Equal(t, 12, img.Preview.Width)
		assert.Equal(t, 4, img.Preview.Height)
		assert.Equal(t, int64(len(raw)), img.Preview.Size)
		assert.Contains(t, img.Preview.String(), "banner.png (image/png, 12x4,")
	})

	t.Run("svg is recognised by extension", func(t *testing.T) {
		path := writeFile(t, "logo.svg", []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"></svg>`))
		ed := NewSlideEditor(Draft{}, nil, 1<<20)

		require.NoError(t, ed.SetImageFromFile(path))
		assert.Equal(t, "image/svg+xml", ed.Draft().Image.ContentType)
		assert.Equal(t, "logo.svg (image/svg+xml, 67B)", ed.Draft().Image.Preview.String())
	})

	t.Run("rejects non-images", func(t *testing.T) {
		path := writeFile(t, "notes.png", []byte("just some text"))
		ed := NewSlideEditor(Draft{}, nil, 1<<20)

		err := ed.SetImageFromFile(path)
		assert.EqualError(t, err, "Only image files are allowed")
		assert.Nil(t, ed.Draft().Image)
	})

	t.Run("rejects files over the limit", func(t *testing.T) {
		path, _ := pngFile(t, 64, 64)
		ed := NewSlideEditor(Draft{}, nil, 16)

		err := ed.SetImageFromFile(path)
		assert.EqualError(t, err, "File too large. Maximum size is 16B.")
	})

	t.Run("rejects empty files", func(t *testing.T) {
		path := writeFile(t, "empty.png", nil)
		ed := NewSlideEditor(Draft{}, nil, 1<<20)
		assert.EqualError(t, ed.SetImageFromFile(path), "Image is required")
	})

	t.Run("missing file", func(t *testing.T) {
		ed := NewSlideEditor(Draft{}, nil, 1<<20)
		err := ed.SetImageFromFile(filepath.Join(t.TempDir(), "nope.png"))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}
