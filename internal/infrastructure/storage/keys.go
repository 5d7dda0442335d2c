// Package storage stores carousel images in S3-compatible object storage
// or on the local disk.
package storage

import (
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/carousel"
)

// objectKey builds a collision-free key such as
// storefront-carousel/2026/10/3f2a...e1.png
func objectKey(folder string, payload carousel.ImagePayload, now time.Time) string {
	name := uuid.NewString() + imageExtension(payload)
	return path.Join(strings.Trim(folder, "/"), now.UTC().Format("2006/01"), name)
}

func imageExtension(payload carousel.ImagePayload) string {
	if ext := strings.ToLower(filepath.Ext(payload.Filename)); ext != "" && len(ext) <= 6 {
		return ext
	}
	switch payload.ContentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	}
	if exts, _ := mime.ExtensionsByType(payload.ContentType); len(exts) > 0 {
		return exts[0]
	}
	return ""
}
