package poll

import (
	"go.uber.org/fx"

	pollhttp "github.com/pressroom/pressroom/internal/domain/poll/delivery/http"
	"github.com/pressroom/pressroom/internal/domain/poll/repository/postgres"
	"github.com/pressroom/pressroom/internal/domain/poll/usecase/engine"
)

// Module provides poll domain dependencies
var Module = fx.Module(
	"poll",
	fx.Provide(
		postgres.NewPollRepository,
		postgres.NewVoteRepository,
		engine.NewUseCase,
		pollhttp.NewHandler,
	),
)
