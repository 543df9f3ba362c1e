package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pressroom/pressroom/internal/domain/poll/dto"
	"github.com/pressroom/pressroom/internal/domain/poll/usecase/engine"
	"github.com/pressroom/pressroom/internal/middleware"
	pkgerrors "github.com/pressroom/pressroom/pkg/errors"
)

// Handler exposes poll and voting endpoints
type Handler struct {
	uc     *engine.UseCase
	mapper *pkgerrors.Mapper
	logger zerolog.Logger
}

// NewHandler creates a new poll HTTP handler
func NewHandler(uc *engine.UseCase, logger zerolog.Logger) *Handler {
	return &Handler{
		uc:     uc,
		mapper: pkgerrors.NewMapper(),
		logger: logger,
	}
}

// Register wires the poll routes into the router
func (h *Handler) Register(r *gin.Engine, auth *middleware.Auth) {
	polls := r.Group("/polls")
	{
		polls.GET("", auth.OptionalAuth(), h.ListActive)
		polls.GET("/all", auth.RequireAuth(), auth.RequireAdmin(), h.ListAll)
		polls.GET("/:id/winner", h.Winner)

		authed := polls.Group("", auth.RequireAuth())
		{
			authed.POST("", h.Create)
			authed.PATCH("/:id", h.Modify)
			authed.DELETE("/:id", h.Delete)
			authed.POST("/:id/vote", h.Vote)
			authed.DELETE("/:id/vote", h.RemoveVote)
		}
	}
}

// ListActive returns the polls currently open for voting
func (h *Handler) ListActive(c *gin.Context) {
	polls, err := h.uc.ListActive(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"polls": polls})
}

// ListAll returns every poll (admin only)
func (h *Handler) ListAll(c *gin.Context) {
	polls, err := h.uc.ListAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"polls": polls})
}

// Create adds a new poll
func (h *Handler) Create(c *gin.Context) {
	var req dto.CreatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	poll, err := h.uc.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, poll)
}

// Modify applies a partial update to a poll
func (h *Handler) Modify(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req dto.UpdatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	poll, err := h.uc.Modify(c.Request.Context(), id, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, poll)
}

// Delete removes a poll
func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "poll deleted"})
}

// Vote casts or replaces the caller's vote
func (h *Handler) Vote(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req dto.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vote payload"})
		return
	}

	poll, err := h.uc.Vote(c.Request.Context(), id, req.OptionID, middleware.UserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, poll)
}

// RemoveVote withdraws the caller's vote
func (h *Handler) RemoveVote(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	poll, err := h.uc.RemoveVote(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, poll)
}

// Winner returns the winning option of a poll
func (h *Handler) Winner(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	winner, err := h.uc.Winner(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, winner)
}

func (h *Handler) pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid poll id"})
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status, msg := h.mapper.MapErrorToHTTP(err)
	if status == http.StatusInternalServerError {
		h.logger.Error().Err(err).
			Str("path", c.FullPath()).
			Msg("Request failed")
	}
	c.JSON(status, gin.H{"error": msg})
}
