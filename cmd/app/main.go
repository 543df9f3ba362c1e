package main

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/pressroom/pressroom/config"
	"github.com/pressroom/pressroom/internal/app"
)

func main() {
	fx.New(
		app.CreateApp(),
		fx.Invoke(run),
	).Run()
}

func run(
	lc fx.Lifecycle,
	cfg *config.Config,
	db *gorm.DB,
	logger zerolog.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info().
				Str("service", cfg.Service.Name).
				Str("port", cfg.Service.Port).
				Msg("Starting pressroom backend")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("Shutting down pressroom backend...")

			sqlDB, _ := db.DB()
			if sqlDB != nil {
				sqlDB.Close()
			}

			logger.Info().Msg("Pressroom backend stopped")
			return nil
		},
	})
}
