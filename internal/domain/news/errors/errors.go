package errors

import (
	pkgerrors "github.com/pressroom/pressroom/pkg/errors"
)

var (
	// ErrNewsNotFound is returned when the article does not exist
	ErrNewsNotFound = pkgerrors.NewNotFoundError("news not found")

	// ErrSlugTaken is returned when another article already uses the slug
	ErrSlugTaken = pkgerrors.NewConflictError("slug already in use")

	// ErrInvalidTitle is returned when the title is empty
	ErrInvalidTitle = pkgerrors.NewValidationError("title is required")

	// ErrInvalidSlug is returned when the slug is empty
	ErrInvalidSlug = pkgerrors.NewValidationError("slug is required")

	// ErrEmptyComment is returned when a comment has no body
	ErrEmptyComment = pkgerrors.NewValidationError("comment body is required")

	// ErrDatabaseOperation is returned when a database operation fails
	ErrDatabaseOperation = pkgerrors.NewDatabaseError("database operation failed")
)
