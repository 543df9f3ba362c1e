package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pressroom/pressroom/internal/domain/analytics/usecase/summary"
	"github.com/pressroom/pressroom/internal/middleware"
	pkgerrors "github.com/pressroom/pressroom/pkg/errors"
)

// Handler exposes the analytics summary endpoint
type Handler struct {
	uc     *summary.UseCase
	mapper *pkgerrors.Mapper
	logger zerolog.Logger
}

// NewHandler creates a new analytics HTTP handler
func NewHandler(uc *summary.UseCase, logger zerolog.Logger) *Handler {
	return &Handler{
		uc:     uc,
		mapper: pkgerrors.NewMapper(),
		logger: logger,
	}
}

// Register wires the analytics routes into the router
func (h *Handler) Register(r *gin.Engine, auth *middleware.Auth) {
	analytics := r.Group("/analytics", auth.RequireAuth())
	{
		analytics.GET("/summary", h.GetSummary)
	}
}

// GetSummary returns the platform-wide aggregate counts
func (h *Handler) GetSummary(c *gin.Context) {
	s, err := h.uc.GetSummary(c.Request.Context())
	if err != nil {
		status, msg := h.mapper.MapErrorToHTTP(err)
		if status == http.StatusInternalServerError {
			h.logger.Error().Err(err).Msg("Failed to get analytics summary")
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, s)
}
