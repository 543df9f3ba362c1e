package dto

import "time"

// ListNewsRequest carries the public listing filters
type ListNewsRequest struct {
	Category string
	Query    string
	Limit    int
	Offset   int
}

// CreateNewsRequest is the admin payload for a new article
type CreateNewsRequest struct {
	Title     string `json:"title" binding:"required"`
	Slug      string `json:"slug" binding:"required"`
	Category  string `json:"category"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

// UpdateNewsRequest is a partial update; nil fields are left untouched
type UpdateNewsRequest struct {
	Title     *string `json:"title"`
	Slug      *string `json:"slug"`
	Category  *string `json:"category"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
}

// NewsItem is a single article in API responses
type NewsItem struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Category  string    `json:"category"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	Views     int64     `json:"views"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListNewsResponse is the paginated listing payload
type ListNewsResponse struct {
	News  []NewsItem `json:"news"`
	Total int64      `json:"total"`
}

// AddCommentRequest is the payload for a new comment
type AddCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

// CommentItem is a single comment in API responses
type CommentItem struct {
	ID        uint      `json:"id"`
	NewsID    uint      `json:"newsId"`
	UserID    string    `json:"userId"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// ViewRecordedEvent is the metric event published when an article is viewed
type ViewRecordedEvent struct {
	NewsID    uint  `json:"news_id"`
	Timestamp int64 `json:"timestamp"`
}
