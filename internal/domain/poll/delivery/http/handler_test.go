package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressroom/pressroom/config"
	"github.com/pressroom/pressroom/internal/domain/poll/dto"
	"github.com/pressroom/pressroom/internal/domain/poll/entities"
	domainerrors "github.com/pressroom/pressroom/internal/domain/poll/errors"
	"github.com/pressroom/pressroom/internal/domain/poll/usecase/engine"
	"github.com/pressroom/pressroom/internal/middleware"
)

const testSecret = "handler-test-secret"

// stubPollRepo serves a single fixed poll
type stubPollRepo struct {
	poll *entities.Poll
}

func (r *stubPollRepo) Create(_ context.Context, poll *entities.Poll) error {
	poll.ID = r.poll.ID
	return nil
}

func (r *stubPollRepo) GetByID(_ context.Context, id uint) (*entities.Poll, error) {
	if r.poll == nil || r.poll.ID != id {
		return nil, domainerrors.ErrPollNotFound
	}
	return r.poll, nil
}

func (r *stubPollRepo) Update(_ context.Context, _ *entities.Poll) error { return nil }
func (r *stubPollRepo) Delete(_ context.Context, id uint) error {
	if r.poll == nil || r.poll.ID != id {
		return domainerrors.ErrPollNotFound
	}
	return nil
}

func (r *stubPollRepo) ListActive(_ context.Context, _ time.Time) ([]entities.Poll, error) {
	return []entities.Poll{*r.poll}, nil
}

func (r *stubPollRepo) ListAll(_ context.Context) ([]entities.Poll, error) {
	return []entities.Poll{*r.poll}, nil
}

// stubVoteRepo records upserts
type stubVoteRepo struct {
	upserts int
}

func (r *stubVoteRepo) Upsert(_ context.Context, _ *entities.PollVote) error {
	r.upserts++
	return nil
}

func (r *stubVoteRepo) Delete(_ context.Context, _ uint, _ string) error { return nil }

func (r *stubVoteRepo) CountByOption(_ context.Context, _ uint) (map[uint]int64, error) {
	return map[uint]int64{}, nil
}

func (r *stubVoteRepo) UserChoice(_ context.Context, _ uint, _ string) (uint, error) {
	return 0, nil
}

func testServer() (*gin.Engine, *stubVoteRepo) {
	gin.SetMode(gin.TestMode)

	poll := &entities.Poll{
		ID:     1,
		Title:  "Best color",
		Active: true,
		Options: []entities.PollOption{
			{ID: 10, PollID: 1, Label: "Red"},
			{ID: 11, PollID: 1, Label: "Blue"},
		},
	}

	votes := &stubVoteRepo{}
	uc := engine.NewUseCase(&stubPollRepo{poll: poll}, votes, zerolog.Nop())
	handler := NewHandler(uc, zerolog.Nop())
	auth := middleware.NewAuth(&config.AuthConfig{JWTSecret: testSecret})

	r := gin.New()
	handler.Register(r, auth)
	return r, votes
}

func token(t *testing.T, sub, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func perform(r *gin.Engine, method, path, bearer string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWinnerRejectsNonIntegerID(t *testing.T) {
	r, _ := testServer()

	w := perform(r, http.MethodGet, "/polls/abc/winner", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid poll id")
}

func TestWinnerMissingPollIs404(t *testing.T) {
	r, _ := testServer()

	w := perform(r, http.MethodGet, "/polls/9/winner", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVoteRequiresToken(t *testing.T) {
	r, votes := testServer()

	w := perform(r, http.MethodPost, "/polls/1/vote", "", dto.VoteRequest{OptionID: 10})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, votes.upserts)
}

func TestVoteHappyPath(t *testing.T) {
	r, votes := testServer()

	w := perform(r, http.MethodPost, "/polls/1/vote", token(t, "userA", ""), dto.VoteRequest{OptionID: 10})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, votes.upserts)

	var resp dto.PollResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint(1), resp.ID)
	assert.Len(t, resp.Options, 2)
}

func TestVoteRejectsMalformedPayload(t *testing.T) {
	r, votes := testServer()

	w := perform(r, http.MethodPost, "/polls/1/vote", token(t, "userA", ""), gin.H{"optionId": "ten"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, votes.upserts)
}

func TestListAllRequiresAdmin(t *testing.T) {
	r, _ := testServer()

	w := perform(r, http.MethodGet, "/polls/all", token(t, "userA", ""), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = perform(r, http.MethodGet, "/polls/all", token(t, "userA", "admin"), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListActiveIsPublic(t *testing.T) {
	r, _ := testServer()

	w := perform(r, http.MethodGet, "/polls", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Best color")
}
