package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/pressroom/pressroom/config"
	analyticshttp "github.com/pressroom/pressroom/internal/domain/analytics/delivery/http"
	newshttp "github.com/pressroom/pressroom/internal/domain/news/delivery/http"
	pollhttp "github.com/pressroom/pressroom/internal/domain/poll/delivery/http"
	"github.com/pressroom/pressroom/internal/middleware"
)

// Module wires the gin engine, routes and server lifecycle
var Module = fx.Module("httpserver",
	fx.Provide(
		middleware.NewAuth,
		NewEngine,
	),
	fx.Invoke(RegisterRoutes),
	fx.Invoke(registerServerLifecycle),
)

// NewEngine creates the gin engine with ambient middleware
func NewEngine(logger zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger.With().Str("component", "http").Logger()))

	return r
}

// RegisterRoutes attaches all domain handlers to the engine
func RegisterRoutes(
	r *gin.Engine,
	auth *middleware.Auth,
	newsHandler *newshttp.Handler,
	pollHandler *pollhttp.Handler,
	analyticsHandler *analyticshttp.Handler,
) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	newsHandler.Register(r, auth)
	pollHandler.Register(r, auth)
	analyticsHandler.Register(r, auth)
}

func registerServerLifecycle(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.ServiceConfig,
	logger zerolog.Logger,
) {
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				logger.Info().
					Str("addr", srv.Addr).
					Msg("HTTP server listening")

				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal().Err(err).Msg("HTTP server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
