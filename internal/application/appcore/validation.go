package appcore

import (
	"fmt"

	"github.com/secretnick/secretnick/internal/domain/errs"
	"github.com/secretnick/secretnick/internal/domain/uuid"
)

// ValidateRequired checks that a string field is not empty.
func ValidateRequired(field, value string) error {
	if value == "" {
		return errs.NewBadRequest(field, "is required")
	}
	return nil
}

// ValidateUUID checks that a UUID field is set.
func ValidateUUID(field string, id uuid.UUID) error {
	if id.IsZero() {
		return errs.NewBadRequest(field, "must be a valid UUID")
	}
	return nil
}

// ValidateMaxLength checks the maximum length of a string field.
func ValidateMaxLength(field, value string, maxLength int) error {
	if len(value) > maxLength {
		return errs.NewBadRequest(field, fmt.Sprintf("must be at most %d characters", maxLength))
	}
	return nil
}
