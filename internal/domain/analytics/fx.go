package analytics

import (
	"go.uber.org/fx"

	analyticshttp "github.com/pressroom/pressroom/internal/domain/analytics/delivery/http"
	"github.com/pressroom/pressroom/internal/domain/analytics/repository/postgres"
	"github.com/pressroom/pressroom/internal/domain/analytics/usecase/summary"
	newsdeps "github.com/pressroom/pressroom/internal/domain/news/deps"
)

// Module provides analytics domain dependencies
var Module = fx.Module(
	"analytics",
	fx.Provide(
		postgres.NewStatsRepository,
		summary.NewUseCase,
		analyticshttp.NewHandler,
		func(uc *summary.UseCase) newsdeps.SummaryInvalidator { return uc },
	),
)
