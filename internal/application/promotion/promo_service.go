package promotion

import (
	"context"
	"time"

	"github.com/storefront/backend/internal/domain/promotion"
	"github.com/storefront/backend/internal/domain/shared"
)

// PromoInput holds the writable fields of a promo message
type PromoInput struct {
	Message  string
	Theme    string
	Color    string
	IsActive *bool // nil means active on create and unchanged on update
}

// PromoResponse represents a promo message in API responses
type PromoResponse struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	Theme     string    `json:"theme"`
	Color     string    `json:"color"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToPromoResponse converts a domain promo message
func ToPromoResponse(m *promotion.PromoMessage) PromoResponse {
	return PromoResponse{
		ID:        m.ID,
		Message:   m.Message,
		Theme:     string(m.Theme),
		Color:     m.Color,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toPromoResponses(messages []promotion.PromoMessage) []PromoResponse {
	out := make([]PromoResponse, len(messages))
	for i := range messages {
		out[i] = ToPromoResponse(&messages[i])
	}
	return out
}

// PromoService manages promotional banner messages
type PromoService struct {
	repo promotion.PromoRepository
}

// NewPromoService creates a new PromoService
func NewPromoService(repo promotion.PromoRepository) *PromoService {
	return &PromoService{repo: repo}
}

// ListActive returns the messages currently shown on the storefront
func (s *PromoService) ListActive(ctx context.Context) ([]PromoResponse, error) {
	messages, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return toPromoResponses(messages), nil
}

// ListAll returns every message for the admin console
func (s *PromoService) ListAll(ctx context.Context) ([]PromoResponse, error) {
	messages, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toPromoResponses(messages), nil
}

// Get returns one message
func (s *PromoService) Get(ctx context.Context, id int64) (*PromoResponse, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return found(m)
}

// Create adds a message
func (s *PromoService) Create(ctx context.Context, input PromoInput) (*PromoResponse, error) {
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}
	data, err := normalize(input, active)
	if err != nil {
		return nil, err
	}
	m, err := s.repo.Create(ctx, data)
	if err != nil {
		return nil, err
	}
	resp := ToPromoResponse(m)
	return &resp, nil
}

// Update overwrites a message
func (s *PromoService) Update(ctx context.Context, id int64, input PromoInput) (*PromoResponse, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errPromoNotFound()
	}
	active := existing.IsActive
	if input.IsActive != nil {
		active = *input.IsActive
	}
	data, err := normalize(input, active)
	if err != nil {
		return nil, err
	}
	m, err := s.repo.Update(ctx, id, data)
	if err != nil {
		return nil, err
	}
	return found(m)
}

// Delete removes a message
func (s *PromoService) Delete(ctx context.Context, id int64) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return errPromoNotFound()
	}
	return nil
}

// ToggleActive flips a message between shown and hidden
func (s *PromoService) ToggleActive(ctx context.Context, id int64) (*PromoResponse, error) {
	m, err := s.repo.ToggleActive(ctx, id)
	if err != nil {
		return nil, err
	}
	return found(m)
}

func normalize(input PromoInput, active bool) (promotion.PromoData, error) {
	data := promotion.PromoData{
		Message:  input.Message,
		Theme:    promotion.Theme(input.Theme),
		Color:    input.Color,
		IsActive: active,
	}.Normalize()
	if err := data.Validate(); err != nil {
		return promotion.PromoData{}, err
	}
	return data, nil
}

func found(m *promotion.PromoMessage) (*PromoResponse, error) {
	if m == nil {
		return nil, errPromoNotFound()
	}
	resp := ToPromoResponse(m)
	return &resp, nil
}

func errPromoNotFound() error {
	return shared.NewNotFoundError("Promo message not found")
}
