package deps

import (
	"context"
	"time"

	"github.com/pressroom/pressroom/internal/domain/poll/entities"
)

// PollRepository defines the interface for poll data access
type PollRepository interface {
	// Create persists a poll together with its options, atomically
	Create(ctx context.Context, poll *entities.Poll) error

	// GetByID retrieves a poll with its options
	GetByID(ctx context.Context, id uint) (*entities.Poll, error)

	// Update saves changed fields of an existing poll
	Update(ctx context.Context, poll *entities.Poll) error

	// Delete removes a poll, its options and its votes, atomically
	Delete(ctx context.Context, id uint) error

	// ListActive returns polls whose voting window contains now, with options
	ListActive(ctx context.Context, now time.Time) ([]entities.Poll, error)

	// ListAll returns every poll regardless of window, with options
	ListAll(ctx context.Context) ([]entities.Poll, error)
}

// VoteRepository defines the interface for vote data access
type VoteRepository interface {
	// Upsert records the user's vote, replacing any prior vote on the same
	// poll. The store's unique index resolves concurrent writers.
	Upsert(ctx context.Context, vote *entities.PollVote) error

	// Delete removes the user's vote if present; absent is not an error
	Delete(ctx context.Context, pollID uint, userID string) error

	// CountByOption returns vote counts per option id for a poll
	CountByOption(ctx context.Context, pollID uint) (map[uint]int64, error)

	// UserChoice returns the option the user voted for, 0 when none
	UserChoice(ctx context.Context, pollID uint, userID string) (uint, error)
}
