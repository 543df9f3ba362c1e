package deps

import (
	"context"

	"github.com/pressroom/pressroom/internal/domain/news/dto"
	"github.com/pressroom/pressroom/internal/domain/news/entities"
)

// NewsRepository defines the interface for article data access
type NewsRepository interface {
	// Create persists a new article
	Create(ctx context.Context, news *entities.News) error

	// GetByID retrieves an article by ID
	GetByID(ctx context.Context, id uint) (*entities.News, error)

	// Update saves changed fields of an existing article
	Update(ctx context.Context, news *entities.News) error

	// Delete removes an article
	Delete(ctx context.Context, id uint) error

	// ListPublished returns published articles with filters applied,
	// newest first, plus the total count before pagination
	ListPublished(ctx context.Context, filter dto.ListNewsRequest) ([]entities.News, int64, error)

	// IncrementViews atomically bumps the per-article view counter
	IncrementViews(ctx context.Context, id uint, delta int64) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create persists a new comment
	Create(ctx context.Context, comment *entities.Comment) error

	// ListByNews returns comments for an article, newest first
	ListByNews(ctx context.Context, newsID uint) ([]entities.Comment, error)
}

// MetricsProducer publishes view metric events for asynchronous processing
type MetricsProducer interface {
	// SendViewRecorded publishes a view event for the article
	SendViewRecorded(ctx context.Context, newsID uint) error

	// Close closes the producer
	Close() error
}

// SummaryInvalidator drops the cached analytics summary after a mutation
// that changes the underlying counts
type SummaryInvalidator interface {
	Invalidate(ctx context.Context) error
}
