package content

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pressroom/pressroom/internal/domain/news/deps"
	"github.com/pressroom/pressroom/internal/domain/news/dto"
	"github.com/pressroom/pressroom/internal/domain/news/entities"
	domainerrors "github.com/pressroom/pressroom/internal/domain/news/errors"
	pkgerrors "github.com/pressroom/pressroom/pkg/errors"
	"github.com/pressroom/pressroom/pkg/mapfn"
)

const defaultListLimit = 20

// UseCase implements article and comment business logic
type UseCase struct {
	newsRepo    deps.NewsRepository
	commentRepo deps.CommentRepository
	producer    deps.MetricsProducer
	invalidator deps.SummaryInvalidator
	logger      zerolog.Logger
}

// NewUseCase creates a new content use case
func NewUseCase(
	newsRepo deps.NewsRepository,
	commentRepo deps.CommentRepository,
	producer deps.MetricsProducer,
	invalidator deps.SummaryInvalidator,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		newsRepo:    newsRepo,
		commentRepo: commentRepo,
		producer:    producer,
		invalidator: invalidator,
		logger:      logger,
	}
}

// List returns published articles matching the filters
func (u *UseCase) List(ctx context.Context, filter dto.ListNewsRequest) (*dto.ListNewsResponse, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = defaultListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	news, total, err := u.newsRepo.ListPublished(ctx, filter)
	if err != nil {
		u.logger.Error().Err(err).
			Str("category", filter.Category).
			Str("query", filter.Query).
			Msg("Failed to list news")
		return nil, err
	}

	return &dto.ListNewsResponse{
		News:  mapfn.ConvertSlice(news, toNewsItem),
		Total: total,
	}, nil
}

// Get returns a single article by ID
func (u *UseCase) Get(ctx context.Context, id uint) (*dto.NewsItem, error) {
	news, err := u.newsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item := toNewsItem(*news)
	return &item, nil
}

// Create persists a new article and drops the cached analytics summary
func (u *UseCase) Create(ctx context.Context, req *dto.CreateNewsRequest) (*dto.NewsItem, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, domainerrors.ErrInvalidTitle
	}
	if strings.TrimSpace(req.Slug) == "" {
		return nil, domainerrors.ErrInvalidSlug
	}

	news := &entities.News{
		Title:     req.Title,
		Slug:      req.Slug,
		Category:  req.Category,
		Content:   req.Content,
		Published: req.Published,
	}

	if err := u.newsRepo.Create(ctx, news); err != nil {
		u.logger.Error().Err(err).
			Str("slug", req.Slug).
			Msg("Failed to create news")
		return nil, err
	}

	u.logger.Info().
		Uint("news_id", news.ID).
		Str("slug", news.Slug).
		Msg("News created")

	u.invalidateSummary(ctx)

	item := toNewsItem(*news)
	return &item, nil
}

// Update applies a partial update to an article
func (u *UseCase) Update(ctx context.Context, id uint, req *dto.UpdateNewsRequest) (*dto.NewsItem, error) {
	news, err := u.newsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, domainerrors.ErrInvalidTitle
		}
		news.Title = *req.Title
	}
	if req.Slug != nil {
		if strings.TrimSpace(*req.Slug) == "" {
			return nil, domainerrors.ErrInvalidSlug
		}
		news.Slug = *req.Slug
	}
	if req.Category != nil {
		news.Category = *req.Category
	}
	if req.Content != nil {
		news.Content = *req.Content
	}
	if req.Published != nil {
		news.Published = *req.Published
	}

	if err := u.newsRepo.Update(ctx, news); err != nil {
		u.logger.Error().Err(err).
			Uint("news_id", id).
			Msg("Failed to update news")
		return nil, err
	}

	u.logger.Info().Uint("news_id", id).Msg("News updated")

	u.invalidateSummary(ctx)

	item := toNewsItem(*news)
	return &item, nil
}

// Delete removes an article and its comments
func (u *UseCase) Delete(ctx context.Context, id uint) error {
	if err := u.newsRepo.Delete(ctx, id); err != nil {
		if !pkgerrors.IsNotFoundError(err) {
			u.logger.Error().Err(err).
				Uint("news_id", id).
				Msg("Failed to delete news")
		}
		return err
	}

	u.logger.Info().Uint("news_id", id).Msg("News deleted")

	u.invalidateSummary(ctx)
	return nil
}

// RecordView publishes a view metric event for asynchronous processing.
// When the broker is unavailable the increment is applied synchronously so
// the view is not lost.
func (u *UseCase) RecordView(ctx context.Context, id uint) error {
	if _, err := u.newsRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := u.producer.SendViewRecorded(ctx, id); err != nil {
		u.logger.Warn().Err(err).
			Uint("news_id", id).
			Msg("View event publish failed, applying increment directly")
		return u.ApplyViewIncrement(ctx, id)
	}

	return nil
}

// ApplyViewIncrement bumps the view counter and drops the cached analytics
// summary. Called by the metrics consumer, or directly as a fallback.
func (u *UseCase) ApplyViewIncrement(ctx context.Context, id uint) error {
	if err := u.newsRepo.IncrementViews(ctx, id, 1); err != nil {
		u.logger.Error().Err(err).
			Uint("news_id", id).
			Msg("Failed to increment views")
		return err
	}

	u.invalidateSummary(ctx)
	return nil
}

// AddComment attaches a comment to an article
func (u *UseCase) AddComment(ctx context.Context, newsID uint, userID, body string) (*dto.CommentItem, error) {
	if strings.TrimSpace(body) == "" {
		return nil, domainerrors.ErrEmptyComment
	}

	if _, err := u.newsRepo.GetByID(ctx, newsID); err != nil {
		return nil, err
	}

	comment := &entities.Comment{
		NewsID: newsID,
		UserID: userID,
		Body:   body,
	}

	if err := u.commentRepo.Create(ctx, comment); err != nil {
		u.logger.Error().Err(err).
			Uint("news_id", newsID).
			Msg("Failed to create comment")
		return nil, err
	}

	u.logger.Info().
		Uint("news_id", newsID).
		Uint("comment_id", comment.ID).
		Msg("Comment created")

	u.invalidateSummary(ctx)

	item := toCommentItem(*comment)
	return &item, nil
}

// ListComments returns the comments for an article
func (u *UseCase) ListComments(ctx context.Context, newsID uint) ([]dto.CommentItem, error) {
	if _, err := u.newsRepo.GetByID(ctx, newsID); err != nil {
		return nil, err
	}

	comments, err := u.commentRepo.ListByNews(ctx, newsID)
	if err != nil {
		u.logger.Error().Err(err).
			Uint("news_id", newsID).
			Msg("Failed to list comments")
		return nil, err
	}

	return mapfn.ConvertSlice(comments, toCommentItem), nil
}

// invalidateSummary is best-effort: a stale summary self-heals via TTL
func (u *UseCase) invalidateSummary(ctx context.Context) {
	if err := u.invalidator.Invalidate(ctx); err != nil {
		u.logger.Warn().Err(err).Msg("Failed to invalidate analytics summary")
	}
}

func toNewsItem(n entities.News) dto.NewsItem {
	return dto.NewsItem{
		ID:        n.ID,
		Title:     n.Title,
		Slug:      n.Slug,
		Category:  n.Category,
		Content:   n.Content,
		Published: n.Published,
		Views:     n.Views,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func toCommentItem(c entities.Comment) dto.CommentItem {
	return dto.CommentItem{
		ID:        c.ID,
		NewsID:    c.NewsID,
		UserID:    c.UserID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
	}
}
