package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a request-level failure.
type Kind string

const (
	// KindNotFound means a resource lookup failed.
	KindNotFound Kind = "not_found"
	// KindBadRequest means a business rule was violated.
	KindBadRequest Kind = "bad_request"
	// KindConflict means a concurrent modification was detected.
	KindConflict Kind = "conflict"
)

// FieldError is a single (field, message) pair of a Validation error.
type FieldError struct {
	Field   string
	Message string
}

func (f FieldError) String() string {
	return fmt.Sprintf("%s: %s", f.Field, f.Message)
}

// Validation is a typed request-level failure carrying one or more
// field/message pairs. A pipeline stops at its first failing step, so the
// pairs always describe a single step; pairs from different steps are never
// combined.
type Validation struct {
	Kind   Kind
	Fields []FieldError
}

func (v *Validation) Error() string {
	parts := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		parts = append(parts, f.String())
	}
	return fmt.Sprintf("%s: %s", v.Kind, strings.Join(parts, "; "))
}

// Is lets errors.Is match a Validation against the package sentinels, so
// callers that only care about the class can keep using ErrNotFound and
// friends.
func (v *Validation) Is(target error) bool {
	switch v.Kind {
	case KindNotFound:
		return target == ErrNotFound
	case KindConflict:
		return target == ErrConcurrentModification
	case KindBadRequest:
		return target == ErrInvalidInput
	default:
		return false
	}
}

// NewNotFound builds a NotFound validation error.
func NewNotFound(field, message string) *Validation {
	return &Validation{Kind: KindNotFound, Fields: []FieldError{{Field: field, Message: message}}}
}

// NewBadRequest builds a BadRequest validation error.
func NewBadRequest(field, message string) *Validation {
	return &Validation{Kind: KindBadRequest, Fields: []FieldError{{Field: field, Message: message}}}
}

// NewConflict builds a Conflict validation error.
func NewConflict(field, message string) *Validation {
	return &Validation{Kind: KindConflict, Fields: []FieldError{{Field: field, Message: message}}}
}

// AsValidation extracts a *Validation from an error chain.
func AsValidation(err error) (*Validation, bool) {
	var v *Validation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// IsNotFound reports whether err is a NotFound validation error.
func IsNotFound(err error) bool {
	v, ok := AsValidation(err)
	return ok && v.Kind == KindNotFound
}

// IsBadRequest reports whether err is a BadRequest validation error.
func IsBadRequest(err error) bool {
	v, ok := AsValidation(err)
	return ok && v.Kind == KindBadRequest
}

// IsConflict reports whether err is a Conflict validation error.
func IsConflict(err error) bool {
	v, ok := AsValidation(err)
	return ok && v.Kind == KindConflict
}
