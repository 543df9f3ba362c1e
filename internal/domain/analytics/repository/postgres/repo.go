package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/pressroom/pressroom/internal/domain/analytics/deps"
	newsentities "github.com/pressroom/pressroom/internal/domain/news/entities"
	pkgerrors "github.com/pressroom/pressroom/pkg/errors"
)

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *gorm.DB) deps.StatsRepository {
	return &statsRepository{
		db: db,
	}
}

// CountNews returns the total number of articles
func (r *statsRepository) CountNews(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&newsentities.News{}).
		Count(&count)

	if result.Error != nil {
		return 0, pkgerrors.NewDatabaseError("failed to count news")
	}
	return count, nil
}

// CountPublishedNews returns the number of published articles
func (r *statsRepository) CountPublishedNews(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&newsentities.News{}).
		Where("published = ?", true).
		Count(&count)

	if result.Error != nil {
		return 0, pkgerrors.NewDatabaseError("failed to count published news")
	}
	return count, nil
}

// SumNewsViews returns the sum of per-article view counters
func (r *statsRepository) SumNewsViews(ctx context.Context) (int64, error) {
	var total int64
	result := r.db.WithContext(ctx).
		Model(&newsentities.News{}).
		Select("COALESCE(SUM(views), 0)").
		Scan(&total)

	if result.Error != nil {
		return 0, pkgerrors.NewDatabaseError("failed to sum views")
	}
	return total, nil
}

// CountComments returns the total number of comments
func (r *statsRepository) CountComments(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&newsentities.Comment{}).
		Count(&count)

	if result.Error != nil {
		return 0, pkgerrors.NewDatabaseError("failed to count comments")
	}
	return count, nil
}
