package engine

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressroom/pressroom/internal/domain/poll/dto"
	"github.com/pressroom/pressroom/internal/domain/poll/entities"
	domainerrors "github.com/pressroom/pressroom/internal/domain/poll/errors"
	pkgerrors "github.com/pressroom/pressroom/pkg/errors"
)

// fakePollRepo is an in-memory PollRepository
type fakePollRepo struct {
	polls  map[uint]*entities.Poll
	nextID uint
	votes  *fakeVoteRepo
}

func newFakePollRepo(votes *fakeVoteRepo) *fakePollRepo {
	return &fakePollRepo{
		polls:  make(map[uint]*entities.Poll),
		nextID: 1,
		votes:  votes,
	}
}

func (r *fakePollRepo) Create(_ context.Context, poll *entities.Poll) error {
	poll.ID = r.nextID
	r.nextID++
	for i := range poll.Options {
		poll.Options[i].ID = r.nextID
		poll.Options[i].PollID = poll.ID
		r.nextID++
	}
	copied := *poll
	r.polls[poll.ID] = &copied
	return nil
}

func (r *fakePollRepo) GetByID(_ context.Context, id uint) (*entities.Poll, error) {
	poll, ok := r.polls[id]
	if !ok {
		return nil, domainerrors.ErrPollNotFound
	}
	copied := *poll
	return &copied, nil
}

func (r *fakePollRepo) Update(_ context.Context, poll *entities.Poll) error {
	if _, ok := r.polls[poll.ID]; !ok {
		return domainerrors.ErrPollNotFound
	}
	copied := *poll
	r.polls[poll.ID] = &copied
	return nil
}

func (r *fakePollRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.polls[id]; !ok {
		return domainerrors.ErrPollNotFound
	}
	delete(r.polls, id)
	for key := range r.votes.votes {
		if key.pollID == id {
			delete(r.votes.votes, key)
		}
	}
	return nil
}

func (r *fakePollRepo) ListActive(_ context.Context, now time.Time) ([]entities.Poll, error) {
	var out []entities.Poll
	for _, p := range r.polls {
		if p.IsOpen(now) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePollRepo) ListAll(_ context.Context) ([]entities.Poll, error) {
	var out []entities.Poll
	for _, p := range r.polls {
		out = append(out, *p)
	}
	return out, nil
}

type voteKey struct {
	pollID uint
	userID string
}

// fakeVoteRepo is an in-memory VoteRepository keyed the way the store's
// unique index keys real votes
type fakeVoteRepo struct {
	votes map[voteKey]uint
}

func newFakeVoteRepo() *fakeVoteRepo {
	return &fakeVoteRepo{votes: make(map[voteKey]uint)}
}

func (r *fakeVoteRepo) Upsert(_ context.Context, vote *entities.PollVote) error {
	r.votes[voteKey{vote.PollID, vote.UserID}] = vote.OptionID
	return nil
}

func (r *fakeVoteRepo) Delete(_ context.Context, pollID uint, userID string) error {
	delete(r.votes, voteKey{pollID, userID})
	return nil
}

func (r *fakeVoteRepo) CountByOption(_ context.Context, pollID uint) (map[uint]int64, error) {
	counts := make(map[uint]int64)
	for key, optionID := range r.votes {
		if key.pollID == pollID {
			counts[optionID]++
		}
	}
	return counts, nil
}

func (r *fakeVoteRepo) UserChoice(_ context.Context, pollID uint, userID string) (uint, error) {
	return r.votes[voteKey{pollID, userID}], nil
}

func newTestUseCase() (*UseCase, *fakePollRepo, *fakeVoteRepo) {
	votes := newFakeVoteRepo()
	polls := newFakePollRepo(votes)
	uc := NewUseCase(polls, votes, zerolog.Nop())
	return uc, polls, votes
}

func createPoll(t *testing.T, uc *UseCase, options ...string) *dto.PollResponse {
	t.Helper()
	resp, err := uc.Create(context.Background(), &dto.CreatePollRequest{
		Title:   "Best color",
		Options: options,
	})
	require.NoError(t, err)
	return resp
}

func TestCreateRequiresTwoOptions(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.Create(context.Background(), &dto.CreatePollRequest{
		Title:   "Best color",
		Options: []string{"Red"},
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestCreateRejectsEmptyTitle(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.Create(context.Background(), &dto.CreatePollRequest{
		Title:   "  ",
		Options: []string{"Red", "Blue"},
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestCreateRejectsInvertedWindow(t *testing.T) {
	uc, _, _ := newTestUseCase()

	start := time.Now()
	end := start.Add(-time.Hour)
	_, err := uc.Create(context.Background(), &dto.CreatePollRequest{
		Title:     "Best color",
		Options:   []string{"Red", "Blue"},
		StartDate: &start,
		EndDate:   &end,
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestModifyMissingPoll(t *testing.T) {
	uc, _, _ := newTestUseCase()

	title := "Renamed"
	_, err := uc.Modify(context.Background(), 42, &dto.UpdatePollRequest{Title: &title})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFoundError(err))
}

func TestVoteReplacesPriorVote(t *testing.T) {
	uc, _, votes := newTestUseCase()
	poll := createPoll(t, uc, "Red", "Blue")
	red, blue := poll.Options[0].ID, poll.Options[1].ID

	resp, err := uc.Vote(context.Background(), poll.ID, red, "userA")
	require.NoError(t, err)
	assert.Equal(t, int64(1), optionVotes(resp, red))
	assert.Equal(t, int64(0), optionVotes(resp, blue))
	assert.Equal(t, red, resp.UserVote)

	// Re-vote moves the single vote, it does not add a second one
	resp, err = uc.Vote(context.Background(), poll.ID, blue, "userA")
	require.NoError(t, err)
	assert.Equal(t, int64(0), optionVotes(resp, red))
	assert.Equal(t, int64(1), optionVotes(resp, blue))
	assert.Equal(t, blue, resp.UserVote)

	assert.Len(t, votes.votes, 1)

	winner, err := uc.Winner(context.Background(), poll.ID)
	require.NoError(t, err)
	assert.Equal(t, blue, winner.ID)
	assert.Equal(t, "Blue", winner.Label)
}

func TestVoteRequiresAuthentication(t *testing.T) {
	uc, _, _ := newTestUseCase()
	poll := createPoll(t, uc, "Red", "Blue")

	_, err := uc.Vote(context.Background(), poll.ID, poll.Options[0].ID, "")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsUnauthorizedError(err))
}

func TestVoteRejectsForeignOption(t *testing.T) {
	uc, _, votes := newTestUseCase()
	poll := createPoll(t, uc, "Red", "Blue")

	_, err := uc.Vote(context.Background(), poll.ID, 9999, "userA")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFoundError(err))
	assert.Empty(t, votes.votes)
}

func TestVoteRejectsClosedWindow(t *testing.T) {
	uc, _, votes := newTestUseCase()

	end := time.Now().Add(-time.Hour)
	resp, err := uc.Create(context.Background(), &dto.CreatePollRequest{
		Title:   "Ended poll",
		Options: []string{"Red", "Blue"},
		EndDate: &end,
	})
	require.NoError(t, err)

	_, err = uc.Vote(context.Background(), resp.ID, resp.Options[0].ID, "userA")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidationError(err))
	assert.Empty(t, votes.votes, "no vote row may exist after a rejected vote")
}

func TestVoteRejectsInactivePoll(t *testing.T) {
	uc, _, _ := newTestUseCase()
	poll := createPoll(t, uc, "Red", "Blue")

	inactive := false
	_, err := uc.Modify(context.Background(), poll.ID, &dto.UpdatePollRequest{Active: &inactive})
	require.NoError(t, err)

	_, err = uc.Vote(context.Background(), poll.ID, poll.Options[0].ID, "userA")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestRemoveVoteIsIdempotent(t *testing.T) {
	uc, _, votes := newTestUseCase()
	poll := createPoll(t, uc, "Red", "Blue")

	_, err := uc.Vote(context.Background(), poll.ID, poll.Options[0].ID, "userA")
	require.NoError(t, err)

	resp, err := uc.RemoveVote(context.Background(), poll.ID, "userA")
	require.NoError(t, err)
	assert.Equal(t, int64(0), optionVotes(resp, poll.Options[0].ID))

	// Second removal of the same vote is not an error
	_, err = uc.RemoveVote(context.Background(), poll.ID, "userA")
	require.NoError(t, err)
	assert.Empty(t, votes.votes)
}

func TestWinnerTieBreaksToLowestOptionID(t *testing.T) {
	uc, _, _ := newTestUseCase()
	poll := createPoll(t, uc, "Red", "Blue")
	red, blue := poll.Options[0].ID, poll.Options[1].ID
	require.Less(t, red, blue)

	ctx := context.Background()
	for _, user := range []string{"u1", "u2", "u3"} {
		_, err := uc.Vote(ctx, poll.ID, red, user)
		require.NoError(t, err)
	}
	for _, user := range []string{"u4", "u5", "u6"} {
		_, err := uc.Vote(ctx, poll.ID, blue, user)
		require.NoError(t, err)
	}

	// 3:3 tie resolves to the lower option id, on every call
	for i := 0; i < 5; i++ {
		winner, err := uc.Winner(ctx, poll.ID)
		require.NoError(t, err)
		assert.Equal(t, red, winner.ID)
		assert.Equal(t, int64(3), winner.Votes)
	}
}

func TestWinnerMissingPoll(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.Winner(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFoundError(err))
}

func TestDeleteCascadesVotes(t *testing.T) {
	uc, polls, votes := newTestUseCase()
	poll := createPoll(t, uc, "Red", "Blue")

	_, err := uc.Vote(context.Background(), poll.ID, poll.Options[0].ID, "userA")
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), poll.ID))
	assert.Empty(t, polls.polls)
	assert.Empty(t, votes.votes)

	err = uc.Delete(context.Background(), poll.ID)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFoundError(err))
}

func TestListActiveAnnotatesUserVote(t *testing.T) {
	uc, _, _ := newTestUseCase()
	poll := createPoll(t, uc, "Red", "Blue")
	red := poll.Options[0].ID

	_, err := uc.Vote(context.Background(), poll.ID, red, "userA")
	require.NoError(t, err)

	active, err := uc.ListActive(context.Background(), "userA")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, red, active[0].UserVote)
	assert.Equal(t, int64(1), optionVotes(&active[0], red))

	// Anonymous listing carries no annotation
	anon, err := uc.ListActive(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, anon, 1)
	assert.Zero(t, anon[0].UserVote)
}

func TestListActiveExcludesClosedPolls(t *testing.T) {
	uc, _, _ := newTestUseCase()
	createPoll(t, uc, "Red", "Blue")

	end := time.Now().Add(-time.Minute)
	_, err := uc.Create(context.Background(), &dto.CreatePollRequest{
		Title:   "Old poll",
		Options: []string{"Yes", "No"},
		EndDate: &end,
	})
	require.NoError(t, err)

	active, err := uc.ListActive(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := uc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func optionVotes(resp *dto.PollResponse, optionID uint) int64 {
	for _, opt := range resp.Options {
		if opt.ID == optionID {
			return opt.Votes
		}
	}
	return -1
}
