package handler

import (
	carouselapp "github.com/storefront/backend/internal/application/carousel"
	promotionapp "github.com/storefront/backend/internal/application/promotion"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// APIResponse represents a generic API response for OpenAPI documentation
// @Description Standard API response wrapper with typed data field
type APIResponse[T any] struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Carousel slides retrieved successfully"`
	Data    T      `json:"data,omitempty"`
}

// ErrorResponse represents an error API response for OpenAPI documentation
// @Description Standard error response
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Message string         `json:"message" example:"Carousel slide not found"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

// MessageResponse represents a success response without data
// @Description Success response without data
type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Carousel slide deleted successfully"`
}

// Swagger aliases for the generic wrappers
type (
	SlideResponse     = carouselapp.SlideResponse
	PromoResponse     = promotionapp.PromoResponse
	SlideListResponse = APIResponse[[]carouselapp.SlideResponse]
	SlideItemResponse = APIResponse[carouselapp.SlideResponse]
	PromoListResponse = APIResponse[[]promotionapp.PromoResponse]
	PromoItemResponse = APIResponse[promotionapp.PromoResponse]
)
