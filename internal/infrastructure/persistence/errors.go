package persistence

import (
	"errors"

	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError classifies a gorm error. Domain errors pass through untouched,
// constraint violations become validation errors and everything else is a
// persistence failure carrying the driver error as its cause.
func translateError(message string, err error) error {
	if err == nil {
		return nil
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.NewValidationError("Duplicate value violates a unique constraint")
	case errors.Is(err, gorm.ErrCheckConstraintViolated), errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.NewValidationError("Value violates a table constraint")
	}
	return shared.NewPersistenceError(message, err)
}
