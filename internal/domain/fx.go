package domain

import (
	"go.uber.org/fx"

	"github.com/pressroom/pressroom/internal/domain/analytics"
	"github.com/pressroom/pressroom/internal/domain/news"
	"github.com/pressroom/pressroom/internal/domain/poll"
)

// Module aggregates all domain modules
var Module = fx.Module(
	"domain",
	news.Module,
	poll.Module,
	analytics.Module,
)
