package promotion

import (
	"context"
	"errors"
	"testing"

	"github.com/storefront/backend/internal/domain/promotion"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPromoRepository is a mock implementation of promotion.PromoRepository
type MockPromoRepository struct {
	mock.Mock
}

func (m *MockPromoRepository) ListActive(ctx context.Context) ([]promotion.PromoMessage, error) {
	args := m.Called(ctx)
	return args.Get(0).([]promotion.PromoMessage), args.Error(1)
}

func (m *MockPromoRepository) ListAll(ctx context.Context) ([]promotion.PromoMessage, error) {
	args := m.Called(ctx)
	return args.Get(0).([]promotion.PromoMessage), args.Error(1)
}

func (m *MockPromoRepository) GetByID(ctx context.Context, id int64) (*promotion.PromoMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*promotion.PromoMessage), args.Error(1)
}

func (m *MockPromoRepository) Create(ctx context.Context, data promotion.PromoData) (*promotion.PromoMessage, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*promotion.PromoMessage), args.Error(1)
}

func (m *MockPromoRepository) Update(ctx context.Context, id int64, data promotion.PromoData) (*promotion.PromoMessage, error) {
	args := m.Called(ctx, id, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*promotion.PromoMessage), args.Error(1)
}

func (m *MockPromoRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPromoRepository) ToggleActive(ctx context.Context, id int64) (*promotion.PromoMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*promotion.PromoMessage), args.Error(1)
}

func TestPromoService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to active with default styling", func(t *testing.T) {
		repo := new(MockPromoRepository)
		svc := NewPromoService(repo)

		expected := promotion.PromoData{Message: "Free shipping", Theme: promotion.ThemePrimary, Color: promotion.DefaultColor, IsActive: true}
		repo.On("Create", ctx, expected).Return(&promotion.PromoMessage{Message: "Free shipping", Theme: promotion.ThemePrimary, Color: promotion.DefaultColor, IsActive: true}, nil)

		resp, err := svc.Create(ctx, PromoInput{Message: " Free shipping "})

		require.NoError(t, err)
		assert.True(t, resp.IsActive)
		repo.AssertExpectations(t)
	})

	t.Run("rejects invalid color before writing", func(t *testing.T) {
		repo := new(MockPromoRepository)
		svc := NewPromoService(repo)

		_, err := svc.Create(ctx, PromoInput{Message: "x", Color: "red"})

		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestPromoService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps active flag when omitted", func(t *testing.T) {
		repo := new(MockPromoRepository)
		svc := NewPromoService(repo)

		repo.On("GetByID", ctx, int64(1)).Return(&promotion.PromoMessage{IsActive: false}, nil)
		repo.On("Update", ctx, int64(1), mock.MatchedBy(func(d promotion.PromoData) bool { return !d.IsActive })).
			Return(&promotion.PromoMessage{Message: "y"}, nil)

		_, err := svc.Update(ctx, 1, PromoInput{Message: "y"})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("missing message is not found", func(t *testing.T) {
		repo := new(MockPromoRepository)
		svc := NewPromoService(repo)
		repo.On("GetByID", ctx, int64(1)).Return(nil, nil)

		_, err := svc.Update(ctx, 1, PromoInput{Message: "y"})

		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestPromoService_ToggleAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPromoRepository)
	svc := NewPromoService(repo)

	repo.On("ToggleActive", ctx, int64(2)).Return(nil, nil)
	repo.On("Delete", ctx, int64(3)).Return(false, nil)

	_, err := svc.ToggleActive(ctx, 2)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
	assert.True(t, errors.Is(svc.Delete(ctx, 3), shared.ErrNotFound))
}
