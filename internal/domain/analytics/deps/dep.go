package deps

import "context"

// StatsRepository exposes the four aggregates behind the analytics summary.
// The queries are independent and read-only; callers may run them
// concurrently.
type StatsRepository interface {
	// CountNews returns the total number of articles
	CountNews(ctx context.Context) (int64, error)

	// CountPublishedNews returns the number of published articles
	CountPublishedNews(ctx context.Context) (int64, error)

	// SumNewsViews returns the sum of per-article view counters
	SumNewsViews(ctx context.Context) (int64, error)

	// CountComments returns the total number of comments
	CountComments(ctx context.Context) (int64, error)
}
