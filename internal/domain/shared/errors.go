package shared

// Error codes shared by every layer. The HTTP layer maps them to status codes.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeUpload       = "UPLOAD_FAILED"
	CodePersistence  = "PERSISTENCE_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	cause   error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause, if any
func (e *DomainError) Unwrap() error {
	return e.cause
}

// Is reports whether target is a DomainError with the same code.
// This lets callers write errors.Is(err, shared.ErrNotFound) regardless of message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Cause returns the wrapped error, which is only meant for server-side logs
func (e *DomainError) Cause() error {
	return e.cause
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a validation error with the given message
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewNotFoundError creates a not-found error with the given message
func NewNotFoundError(message string) *DomainError {
	return NewDomainError(CodeNotFound, message)
}

// NewUploadError creates an upload error wrapping the image store failure
func NewUploadError(message string, cause error) *DomainError {
	return &DomainError{Code: CodeUpload, Message: message, cause: cause}
}

// NewPersistenceError creates a persistence error wrapping the driver failure
func NewPersistenceError(message string, cause error) *DomainError {
	return &DomainError{Code: CodePersistence, Message: message, cause: cause}
}

// Common domain errors
var (
	ErrNotFound     = NewNotFoundError("Resource not found")
	ErrInvalidInput = NewValidationError("Invalid input provided")
	ErrUpload       = NewUploadError("Failed to upload image", nil)
	ErrPersistence  = NewPersistenceError("Failed to persist changes", nil)
	ErrUnauthorized = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
	ErrForbidden    = NewDomainError(CodeForbidden, "Access to this resource is forbidden")
)
