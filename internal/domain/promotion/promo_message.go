package promotion

import (
	"context"
	"regexp"
	"strings"

	"github.com/storefront/backend/internal/domain/carousel"
	"github.com/storefront/backend/internal/domain/shared"
)

// Theme is the visual style of a promo banner
type Theme string

const (
	ThemePrimary   Theme = "primary"
	ThemeSecondary Theme = "secondary"
	ThemeSuccess   Theme = "success"
	ThemeWarning   Theme = "warning"
	ThemeDanger    Theme = "danger"
	ThemeInfo      Theme = "info"
)

// Defaults applied when a message is created without styling
const (
	DefaultTheme = ThemePrimary
	DefaultColor = "#ef4444"
)

var colorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// IsValid checks if the theme is known
func (t Theme) IsValid() bool {
	switch t {
	case ThemePrimary, ThemeSecondary, ThemeSuccess, ThemeWarning, ThemeDanger, ThemeInfo:
		return true
	default:
		return false
	}
}

// PromoMessage is a short promotional banner shown above product listings
type PromoMessage struct {
	shared.BaseEntity
	Message  string
	Theme    Theme
	Color    string
	IsActive bool
}

// PromoData holds the writable fields of a promo message
type PromoData struct {
	Message  string
	Theme    Theme
	Color    string
	IsActive bool
}

// Normalize trims the message and fills in default styling
func (d PromoData) Normalize() PromoData {
	d.Message = carousel.NormalizeText(d.Message)
	d.Color = strings.TrimSpace(d.Color)
	if d.Theme == "" {
		d.Theme = DefaultTheme
	}
	if d.Color == "" {
		d.Color = DefaultColor
	}
	return d
}

// Validate checks the data after normalization
func (d PromoData) Validate() error {
	if d.Message == "" {
		return shared.NewValidationError("Message is required")
	}
	if !d.Theme.IsValid() {
		return shared.NewValidationError("Invalid theme")
	}
	if !colorPattern.MatchString(d.Color) {
		return shared.NewValidationError("Color must be a hex color such as #ef4444")
	}
	return nil
}

// PromoRepository defines promo message persistence
type PromoRepository interface {
	// ListActive returns active messages, newest first
	ListActive(ctx context.Context) ([]PromoMessage, error)
	// ListAll returns every message, newest first
	ListAll(ctx context.Context) ([]PromoMessage, error)
	// GetByID returns nil with no error when the message does not exist
	GetByID(ctx context.Context, id int64) (*PromoMessage, error)
	Create(ctx context.Context, data PromoData) (*PromoMessage, error)
	// Update returns nil with no error when the message does not exist
	Update(ctx context.Context, id int64, data PromoData) (*PromoMessage, error)
	Delete(ctx context.Context, id int64) (bool, error)
	// ToggleActive flips is_active and returns the refreshed message, or nil when absent
	ToggleActive(ctx context.Context, id int64) (*PromoMessage, error)
}
