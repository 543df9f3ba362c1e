package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pressroom/pressroom/internal/domain/news/dto"
	"github.com/pressroom/pressroom/internal/domain/news/usecase/content"
	"github.com/pressroom/pressroom/internal/middleware"
	pkgerrors "github.com/pressroom/pressroom/pkg/errors"
)

// Handler exposes article and comment endpoints
type Handler struct {
	uc     *content.UseCase
	mapper *pkgerrors.Mapper
	logger zerolog.Logger
}

// NewHandler creates a new news HTTP handler
func NewHandler(uc *content.UseCase, logger zerolog.Logger) *Handler {
	return &Handler{
		uc:     uc,
		mapper: pkgerrors.NewMapper(),
		logger: logger,
	}
}

// Register wires the news routes into the router
func (h *Handler) Register(r *gin.Engine, auth *middleware.Auth) {
	news := r.Group("/news")
	{
		news.GET("", h.List)
		news.GET("/:id", h.Get)
		news.POST("/:id/view", h.RecordView)
		news.GET("/:id/comments", h.ListComments)
		news.POST("/:id/comments", auth.RequireAuth(), h.AddComment)

		admin := news.Group("", auth.RequireAuth(), auth.RequireAdmin())
		{
			admin.POST("", h.Create)
			admin.PATCH("/:id", h.Update)
			admin.DELETE("/:id", h.Delete)
		}
	}
}

// List returns published articles, filtered and paginated
func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	resp, err := h.uc.List(c.Request.Context(), dto.ListNewsRequest{
		Category: c.Query("category"),
		Query:    c.Query("q"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Get returns a single article
func (h *Handler) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	item, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// Create adds a new article (admin only)
func (h *Handler) Create(c *gin.Context) {
	var req dto.CreateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.uc.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// Update applies a partial update to an article (admin only)
func (h *Handler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.uc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// Delete removes an article (admin only)
func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "news deleted"})
}

// RecordView registers one view of an article
func (h *Handler) RecordView(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.uc.RecordView(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "view recorded"})
}

// AddComment attaches a comment to an article
func (h *Handler) AddComment(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req dto.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.uc.AddComment(c.Request.Context(), id, middleware.UserID(c), req.Body)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// ListComments returns the comments for an article
func (h *Handler) ListComments(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	comments, err := h.uc.ListComments(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (h *Handler) pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid news id"})
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
