package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pressroom/pressroom/internal/domain/news/deps"
	"github.com/pressroom/pressroom/internal/domain/news/dto"
	"github.com/pressroom/pressroom/internal/domain/news/entities"
	domainerrors "github.com/pressroom/pressroom/internal/domain/news/errors"
)

type newsRepository struct {
	db *gorm.DB
}

// NewNewsRepository creates a new article repository
func NewNewsRepository(db *gorm.DB) deps.NewsRepository {
	return &newsRepository{
		db: db,
	}
}

// Create persists a new article
func (r *newsRepository) Create(ctx context.Context, news *entities.News) error {
	result := r.db.WithContext(ctx).Create(news)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrSlugTaken
		}
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// GetByID retrieves an article by ID
func (r *newsRepository) GetByID(ctx context.Context, id uint) (*entities.News, error) {
	var news entities.News
	result := r.db.WithContext(ctx).First(&news, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNewsNotFound
		}
		return nil, domainerrors.ErrDatabaseOperation
	}
	return &news, nil
}

// Update saves changed fields of an existing article
func (r *newsRepository) Update(ctx context.Context, news *entities.News) error {
	result := r.db.WithContext(ctx).Save(news)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrSlugTaken
		}
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// Delete removes an article and its comments
func (r *newsRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("news_id = ?", id).Delete(&entities.Comment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entities.News{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerrors.ErrNewsNotFound
		}
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// ListPublished returns published articles with filters applied, newest
// first, plus the total count before pagination
func (r *newsRepository) ListPublished(ctx context.Context, filter dto.ListNewsRequest) ([]entities.News, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&entities.News{}).
		Where("published = ?", true)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, domainerrors.ErrDatabaseOperation
	}

	query = query.Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var news []entities.News
	if err := query.Find(&news).Error; err != nil {
		return nil, 0, domainerrors.ErrDatabaseOperation
	}

	return news, total, nil
}

// IncrementViews atomically bumps the per-article view counter
func (r *newsRepository) IncrementViews(ctx context.Context, id uint, delta int64) error {
	result := r.db.WithContext(ctx).
		Model(&entities.News{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", delta))

	if result.Error != nil {
		return domainerrors.ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNewsNotFound
	}
	return nil
}

// commentRepository implements deps.CommentRepository
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) deps.CommentRepository {
	return &commentRepository{
		db: db,
	}
}

// Create persists a new comment
func (r *commentRepository) Create(ctx context.Context, comment *entities.Comment) error {
	result := r.db.WithContext(ctx).Create(comment)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
			return domainerrors.ErrNewsNotFound
		}
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// ListByNews returns comments for an article, newest first
func (r *commentRepository) ListByNews(ctx context.Context, newsID uint) ([]entities.Comment, error) {
	var comments []entities.Comment
	result := r.db.WithContext(ctx).
		Where("news_id = ?", newsID).
		Order("created_at DESC").
		Find(&comments)

	if result.Error != nil {
		return nil, domainerrors.ErrDatabaseOperation
	}

	return comments, nil
}
