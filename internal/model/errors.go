package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an entity does not exist, or when the
	// requesting user is not allowed to see it. The two cases are
	// deliberately indistinguishable so private nodes do not leak.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized covers bad credentials and missing/invalid/expired
	// session tokens alike.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrEmailTaken is returned on registration with an existing email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrParentNotFound is returned when a referenced parent node does
	// not exist.
	ErrParentNotFound = errors.New("parent not found")

	// ErrParentNotFolder is returned when a referenced parent node exists
	// but is not a folder.
	ErrParentNotFolder = errors.New("parent is not a folder")

	// ErrFolderNoContent is returned when content is requested for a
	// folder node.
	ErrFolderNoContent = errors.New("folder has no content")

	// ErrInvalidSize is returned when a requested derivative size is not
	// one of ThumbnailSizes.
	ErrInvalidSize = errors.New("invalid derivative size")
)

// ValidationError marks a malformed or missing request field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field: %s", e.Field)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field string) *ValidationError {
	return &ValidationError{Field: field}
}
