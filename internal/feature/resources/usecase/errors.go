// Package usecase implements the business logic for the resources feature.
package usecase

import "errors"

var (
	// ErrResourceNotFound is returned when the resource does not exist or belongs to another user.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrCategoryNotFound is returned by category stores when no owned category matches.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrInvalidCategory is returned when a resource references a category the caller does not own.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrCategoryExists is returned when the caller already has a category with the same name.
	ErrCategoryExists = errors.New("category already exists")
)

// ValidationError reports caller input that failed a business rule.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
