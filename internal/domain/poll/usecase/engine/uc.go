package engine

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pressroom/pressroom/internal/domain/poll/deps"
	"github.com/pressroom/pressroom/internal/domain/poll/dto"
	"github.com/pressroom/pressroom/internal/domain/poll/entities"
	domainerrors "github.com/pressroom/pressroom/internal/domain/poll/errors"
)

// UseCase implements poll CRUD, vote recording and winner computation
type UseCase struct {
	pollRepo deps.PollRepository
	voteRepo deps.VoteRepository
	logger   zerolog.Logger
}

// NewUseCase creates a new poll engine use case
func NewUseCase(
	pollRepo deps.PollRepository,
	voteRepo deps.VoteRepository,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		pollRepo: pollRepo,
		voteRepo: voteRepo,
		logger:   logger,
	}
}

// Create validates and persists a new poll with its options
func (u *UseCase) Create(ctx context.Context, req *dto.CreatePollRequest) (*dto.PollResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, domainerrors.ErrInvalidTitle
	}
	if len(req.Options) < 2 {
		return nil, domainerrors.ErrTooFewOptions
	}
	for _, label := range req.Options {
		if strings.TrimSpace(label) == "" {
			return nil, domainerrors.ErrEmptyOptionLabel
		}
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, domainerrors.ErrInvalidWindow
	}

	poll := &entities.Poll{
		Title:     req.Title,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Active:    true,
	}
	for _, label := range req.Options {
		poll.Options = append(poll.Options, entities.PollOption{Label: label})
	}

	if err := u.pollRepo.Create(ctx, poll); err != nil {
		u.logger.Error().Err(err).
			Str("title", req.Title).
			Msg("Failed to create poll")
		return nil, err
	}

	u.logger.Info().
		Uint("poll_id", poll.ID).
		Int("options", len(poll.Options)).
		Msg("Poll created")

	return u.pollResponse(ctx, poll, "")
}

// Modify applies a partial update to a poll
func (u *UseCase) Modify(ctx context.Context, id uint, req *dto.UpdatePollRequest) (*dto.PollResponse, error) {
	poll, err := u.pollRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, domainerrors.ErrInvalidTitle
		}
		poll.Title = *req.Title
	}
	if req.StartDate != nil {
		poll.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		poll.EndDate = req.EndDate
	}
	if req.Active != nil {
		poll.Active = *req.Active
	}
	if poll.StartDate != nil && poll.EndDate != nil && poll.EndDate.Before(*poll.StartDate) {
		return nil, domainerrors.ErrInvalidWindow
	}

	if err := u.pollRepo.Update(ctx, poll); err != nil {
		u.logger.Error().Err(err).
			Uint("poll_id", id).
			Msg("Failed to update poll")
		return nil, err
	}

	u.logger.Info().Uint("poll_id", id).Msg("Poll updated")

	return u.pollResponse(ctx, poll, "")
}

// Delete removes a poll with its options and votes
func (u *UseCase) Delete(ctx context.Context, id uint) error {
	if err := u.pollRepo.Delete(ctx, id); err != nil {
		return err
	}

	u.logger.Info().Uint("poll_id", id).Msg("Poll deleted")
	return nil
}

// Vote records the user's choice on an open poll, replacing any prior vote
// by the same user. Returns the poll with fresh per-option counts.
func (u *UseCase) Vote(ctx context.Context, pollID, optionID uint, userID string) (*dto.PollResponse, error) {
	if userID == "" {
		return nil, domainerrors.ErrNotAuthenticated
	}

	poll, err := u.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	if !poll.IsOpen(time.Now()) {
		return nil, domainerrors.ErrPollClosed
	}
	if !poll.HasOption(optionID) {
		return nil, domainerrors.ErrOptionNotFound
	}

	vote := &entities.PollVote{
		PollID:   pollID,
		UserID:   userID,
		OptionID: optionID,
	}

	if err := u.voteRepo.Upsert(ctx, vote); err != nil {
		u.logger.Error().Err(err).
			Uint("poll_id", pollID).
			Uint("option_id", optionID).
			Msg("Failed to record vote")
		return nil, err
	}

	u.logger.Info().
		Uint("poll_id", pollID).
		Uint("option_id", optionID).
		Msg("Vote recorded")

	return u.pollResponse(ctx, poll, userID)
}

// RemoveVote deletes the user's vote on a poll. Removing an absent vote is
// not an error.
func (u *UseCase) RemoveVote(ctx context.Context, pollID uint, userID string) (*dto.PollResponse, error) {
	if userID == "" {
		return nil, domainerrors.ErrNotAuthenticated
	}

	poll, err := u.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	if err := u.voteRepo.Delete(ctx, pollID, userID); err != nil {
		u.logger.Error().Err(err).
			Uint("poll_id", pollID).
			Msg("Failed to remove vote")
		return nil, err
	}

	u.logger.Info().Uint("poll_id", pollID).Msg("Vote removed")

	return u.pollResponse(ctx, poll, userID)
}

// Winner returns the option with the most votes. Ties resolve to the
// lowest option id, so repeated calls always agree.
func (u *UseCase) Winner(ctx context.Context, pollID uint) (*dto.WinnerResponse, error) {
	poll, err := u.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	counts, err := u.voteRepo.CountByOption(ctx, pollID)
	if err != nil {
		u.logger.Error().Err(err).
			Uint("poll_id", pollID).
			Msg("Failed to count votes")
		return nil, err
	}

	var winner *entities.PollOption
	var best int64 = -1
	for i := range poll.Options {
		opt := &poll.Options[i]
		votes := counts[opt.ID]
		if votes > best || (votes == best && winner != nil && opt.ID < winner.ID) {
			winner = opt
			best = votes
		}
	}

	if winner == nil {
		return nil, domainerrors.ErrOptionNotFound
	}

	return &dto.WinnerResponse{
		PollID: pollID,
		ID:     winner.ID,
		Label:  winner.Label,
		Votes:  best,
	}, nil
}

// ListActive returns the polls currently open for voting, annotated with
// the caller's own vote when a user id is supplied
func (u *UseCase) ListActive(ctx context.Context, userID string) ([]dto.PollResponse, error) {
	polls, err := u.pollRepo.ListActive(ctx, time.Now())
	if err != nil {
		u.logger.Error().Err(err).Msg("Failed to list active polls")
		return nil, err
	}

	return u.pollResponses(ctx, polls, userID)
}

// ListAll returns every poll for administrative listing
func (u *UseCase) ListAll(ctx context.Context) ([]dto.PollResponse, error) {
	polls, err := u.pollRepo.ListAll(ctx)
	if err != nil {
		u.logger.Error().Err(err).Msg("Failed to list polls")
		return nil, err
	}

	return u.pollResponses(ctx, polls, "")
}

func (u *UseCase) pollResponses(ctx context.Context, polls []entities.Poll, userID string) ([]dto.PollResponse, error) {
	responses := make([]dto.PollResponse, 0, len(polls))
	for i := range polls {
		resp, err := u.pollResponse(ctx, &polls[i], userID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

func (u *UseCase) pollResponse(ctx context.Context, poll *entities.Poll, userID string) (*dto.PollResponse, error) {
	counts, err := u.voteRepo.CountByOption(ctx, poll.ID)
	if err != nil {
		return nil, err
	}

	options := make([]dto.OptionResult, 0, len(poll.Options))
	for _, opt := range poll.Options {
		options = append(options, dto.OptionResult{
			ID:    opt.ID,
			Label: opt.Label,
			Votes: counts[opt.ID],
		})
	}

	resp := &dto.PollResponse{
		ID:        poll.ID,
		Title:     poll.Title,
		StartDate: poll.StartDate,
		EndDate:   poll.EndDate,
		Active:    poll.Active,
		Options:   options,
		CreatedAt: poll.CreatedAt,
	}

	if userID != "" {
		choice, err := u.voteRepo.UserChoice(ctx, poll.ID, userID)
		if err != nil {
			return nil, err
		}
		resp.UserVote = choice
	}

	return resp, nil
}
