package dto

import (
	"net/http"

	"github.com/storefront/backend/internal/domain/shared"
)

// Error codes. The domain codes are reused verbatim so clients see one vocabulary.
const (
	ErrCodeValidation   = shared.CodeValidation
	ErrCodeNotFound     = shared.CodeNotFound
	ErrCodeUpload       = shared.CodeUpload
	ErrCodePersistence  = shared.CodePersistence
	ErrCodeUnauthorized = shared.CodeUnauthorized
	ErrCodeForbidden    = shared.CodeForbidden

	// ErrCodeBadRequest is used for malformed requests (bad JSON, bad multipart)
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeTooLarge is used when the request body exceeds the configured limit
	ErrCodeTooLarge = "PAYLOAD_TOO_LARGE"
	// ErrCodeRateLimited is used when a client exceeds its request budget
	ErrCodeRateLimited = "RATE_LIMITED"
	// ErrCodeConflict is used while another request holds the same Idempotency-Key
	ErrCodeConflict = "CONFLICT"
	// ErrCodeIdempotencyMismatch is used when an Idempotency-Key is reused for a different body
	ErrCodeIdempotencyMismatch = "IDEMPOTENCY_KEY_REUSED"
	// ErrCodeInternal is used for anything not classified as a domain error
	ErrCodeInternal = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTooLarge:     http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:  http.StatusTooManyRequests,

	ErrCodeConflict:            http.StatusConflict,
	ErrCodeIdempotencyMismatch: http.StatusUnprocessableEntity,

	// The image store is an upstream dependency
	ErrCodeUpload: http.StatusBadGateway,

	ErrCodePersistence: http.StatusInternalServerError,
	ErrCodeInternal:    http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the message safe to show a client.
// Upload failures keep their message since it names the slide position;
// the store's own error is only ever a cause and never reaches this point.
func PublicMessage(code, message string) string {
	switch code {
	case ErrCodePersistence:
		return "Server error. Please try again later."
	case ErrCodeInternal:
		return "An unexpected error occurred"
	}
	return message
}
