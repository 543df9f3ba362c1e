package news

import (
	"go.uber.org/fx"

	newshttp "github.com/pressroom/pressroom/internal/domain/news/delivery/http"
	"github.com/pressroom/pressroom/internal/domain/news/delivery/kafka"
	"github.com/pressroom/pressroom/internal/domain/news/repository/postgres"
	"github.com/pressroom/pressroom/internal/domain/news/usecase/content"
)

// Module provides news domain dependencies
var Module = fx.Module(
	"news",
	fx.Provide(
		postgres.NewNewsRepository,
		postgres.NewCommentRepository,
		content.NewUseCase,
		kafka.NewHandlers,
		newshttp.NewHandler,
	),
)
