package summary

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pressroom/pressroom/config"
	"github.com/pressroom/pressroom/internal/domain/analytics/deps"
	"github.com/pressroom/pressroom/internal/domain/analytics/dto"
	"github.com/pressroom/pressroom/pkg/cache"
)

// summaryCacheKey is the single well-known key the summary lives under.
// Only this component writes it; mutating pathways call Invalidate.
const summaryCacheKey = "analytics:summary"

// UseCase serves the analytics summary through a TTL cache. On a miss the
// four aggregates are computed concurrently and the joined result is cached
// before being returned; no partial summary is ever exposed.
type UseCase struct {
	stats  deps.StatsRepository
	cached *cache.ReadThrough[dto.Summary]
	logger zerolog.Logger
}

// NewUseCase creates a new analytics summary use case
func NewUseCase(
	stats deps.StatsRepository,
	store cache.Store,
	cfg *config.AnalyticsConfig,
	logger zerolog.Logger,
) *UseCase {
	uc := &UseCase{
		stats:  stats,
		logger: logger,
	}

	uc.cached = cache.NewReadThrough(
		store,
		summaryCacheKey,
		cfg.SummaryTTL,
		uc.compute,
		logger,
	)

	return uc
}

// GetSummary returns the cached summary, recomputing it when the cache has
// no valid entry or is unavailable
func (u *UseCase) GetSummary(ctx context.Context) (dto.Summary, error) {
	return u.cached.Get(ctx)
}

// Invalidate drops the cached summary. Write pathways that change the
// underlying counts call this so the next read recomputes.
func (u *UseCase) Invalidate(ctx context.Context) error {
	return u.cached.Invalidate(ctx)
}

// compute fans out the four independent aggregates and joins the results.
// Any failure aborts the whole computation.
func (u *UseCase) compute(ctx context.Context) (dto.Summary, error) {
	var s dto.Summary

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := u.stats.CountNews(gctx)
		s.TotalNews = n
		return err
	})
	g.Go(func() error {
		n, err := u.stats.CountPublishedNews(gctx)
		s.TotalNewsPublished = n
		return err
	})
	g.Go(func() error {
		n, err := u.stats.SumNewsViews(gctx)
		s.TotalViews = n
		return err
	})
	g.Go(func() error {
		n, err := u.stats.CountComments(gctx)
		s.TotalComments = n
		return err
	})

	if err := g.Wait(); err != nil {
		u.logger.Error().Err(err).Msg("Failed to compute analytics summary")
		return dto.Summary{}, err
	}

	u.logger.Debug().
		Int64("total_news", s.TotalNews).
		Int64("total_views", s.TotalViews).
		Msg("Analytics summary computed")

	return s, nil
}
