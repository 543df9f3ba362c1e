package app

import (
	"go.uber.org/fx"

	"github.com/pressroom/pressroom/config"
	"github.com/pressroom/pressroom/internal/domain"
	"github.com/pressroom/pressroom/internal/infrastructure/database"
	"github.com/pressroom/pressroom/internal/infrastructure/httpserver"
	"github.com/pressroom/pressroom/internal/infrastructure/kafka"
	"github.com/pressroom/pressroom/internal/infrastructure/logger"
	"github.com/pressroom/pressroom/internal/infrastructure/redisstore"
)

// CreateApp creates the fx application with all dependencies
func CreateApp() fx.Option {
	return fx.Options(
		fx.Provide(config.Out),
		fx.Provide(logger.NewLogger),
		fx.Provide(database.NewPostgresDB),
		fx.Provide(redisstore.NewStore),
		kafka.Module,
		domain.Module,
		httpserver.Module,
	)
}
