package entities

import (
	"time"

	"gorm.io/gorm"
)

// News represents a single article on the platform
type News struct {
	ID        uint           `gorm:"primaryKey"`
	Title     string         `gorm:"not null"`
	Slug      string         `gorm:"not null;uniqueIndex:idx_news_slug"`
	Category  string         `gorm:"index:idx_news_category"`
	Content   string         `gorm:"type:text"`
	Published bool           `gorm:"not null;default:false;index:idx_news_published"`
	Views     int64          `gorm:"not null;default:0"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for News
func (News) TableName() string {
	return "news"
}

// Comment is a reader comment attached to an article
type Comment struct {
	ID        uint           `gorm:"primaryKey"`
	NewsID    uint           `gorm:"not null;index:idx_comments_news"`
	UserID    string         `gorm:"not null"`
	Body      string         `gorm:"type:text;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// Relations
	News News `gorm:"foreignKey:NewsID"`
}

// TableName returns the table name for Comment
func (Comment) TableName() string {
	return "comments"
}
