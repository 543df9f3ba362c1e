package errors

import (
	pkgerrors "github.com/pressroom/pressroom/pkg/errors"
)

var (
	// ErrPollNotFound is returned when the poll does not exist
	ErrPollNotFound = pkgerrors.NewNotFoundError("poll not found")

	// ErrOptionNotFound is returned when the option does not belong to the poll
	ErrOptionNotFound = pkgerrors.NewNotFoundError("option does not belong to poll")

	// ErrInvalidTitle is returned when the poll title is empty
	ErrInvalidTitle = pkgerrors.NewValidationError("poll title is required")

	// ErrTooFewOptions is returned when fewer than two options are supplied
	ErrTooFewOptions = pkgerrors.NewValidationError("poll needs at least two options")

	// ErrEmptyOptionLabel is returned when an option label is blank
	ErrEmptyOptionLabel = pkgerrors.NewValidationError("option label is required")

	// ErrInvalidWindow is returned when the end date precedes the start date
	ErrInvalidWindow = pkgerrors.NewValidationError("poll end date precedes start date")

	// ErrPollClosed is returned when voting on an inactive or out-of-window poll
	ErrPollClosed = pkgerrors.NewValidationError("poll is not open for voting")

	// ErrNotAuthenticated is returned when the vote has no stable user identity
	ErrNotAuthenticated = pkgerrors.NewUnauthorizedError("authentication required")

	// ErrVoteRejected is returned when the store refuses the vote write
	ErrVoteRejected = pkgerrors.NewStorageError("vote rejected by store")

	// ErrDatabaseOperation is returned when a database operation fails
	ErrDatabaseOperation = pkgerrors.NewDatabaseError("database operation failed")
)
