package entities

import (
	"time"
)

// Poll is a question put to readers, owning its options. StartDate and
// EndDate are optional; an unset bound leaves that side of the voting
// window open.
type Poll struct {
	ID        uint       `gorm:"primaryKey"`
	Title     string     `gorm:"not null"`
	StartDate *time.Time `gorm:"index"`
	EndDate   *time.Time `gorm:"index"`
	Active    bool       `gorm:"not null;default:true"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`

	// Relations
	Options []PollOption `gorm:"foreignKey:PollID"`
}

// TableName returns the table name for Poll
func (Poll) TableName() string {
	return "polls"
}

// IsOpen reports whether the poll accepts votes at the given instant.
func (p *Poll) IsOpen(now time.Time) bool {
	if !p.Active {
		return false
	}
	if p.StartDate != nil && now.Before(*p.StartDate) {
		return false
	}
	if p.EndDate != nil && now.After(*p.EndDate) {
		return false
	}
	return true
}

// HasOption reports whether the option belongs to this poll.
func (p *Poll) HasOption(optionID uint) bool {
	for _, opt := range p.Options {
		if opt.ID == optionID {
			return true
		}
	}
	return false
}

// PollOption is one selectable answer of a poll
type PollOption struct {
	ID        uint      `gorm:"primaryKey"`
	PollID    uint      `gorm:"not null;index:idx_options_poll"`
	Label     string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for PollOption
func (PollOption) TableName() string {
	return "poll_options"
}

// PollVote records one user's choice on one poll. The unique index on
// (poll_id, user_id) is what guarantees at most one vote per user per poll
// under concurrent writers; the application never takes a lock for this.
type PollVote struct {
	ID        uint      `gorm:"primaryKey"`
	PollID    uint      `gorm:"not null;index:idx_votes_poll_user,unique"`
	UserID    string    `gorm:"not null;index:idx_votes_poll_user,unique"`
	OptionID  uint      `gorm:"not null;index:idx_votes_option"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for PollVote
func (PollVote) TableName() string {
	return "poll_votes"
}
