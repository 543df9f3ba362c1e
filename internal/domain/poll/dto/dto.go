package dto

import "time"

// CreatePollRequest is the payload for a new poll
type CreatePollRequest struct {
	Title     string     `json:"title" binding:"required"`
	Options   []string   `json:"options" binding:"required"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

// UpdatePollRequest is a partial update; nil fields are left untouched
type UpdatePollRequest struct {
	Title     *string    `json:"title"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Active    *bool      `json:"active"`
}

// VoteRequest is the payload for casting a vote
type VoteRequest struct {
	OptionID uint `json:"optionId" binding:"required"`
}

// OptionResult is one option with its aggregate vote count
type OptionResult struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
	Votes int64  `json:"votes"`
}

// PollResponse is a poll with aggregated vote counts. UserVote carries the
// requesting user's chosen option id when known, zero otherwise.
type PollResponse struct {
	ID        uint           `json:"id"`
	Title     string         `json:"title"`
	StartDate *time.Time     `json:"startDate,omitempty"`
	EndDate   *time.Time     `json:"endDate,omitempty"`
	Active    bool           `json:"active"`
	Options   []OptionResult `json:"options"`
	UserVote  uint           `json:"userVote,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// WinnerResponse is the winning option of a poll
type WinnerResponse struct {
	PollID uint   `json:"pollId"`
	ID     uint   `json:"id"`
	Label  string `json:"label"`
	Votes  int64  `json:"votes"`
}
