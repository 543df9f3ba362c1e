package kafka

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/pressroom/pressroom/internal/domain/news/dto"
	"github.com/pressroom/pressroom/internal/domain/news/usecase/content"
)

// Handlers handles Kafka messages for the news domain
type Handlers struct {
	uc     *content.UseCase
	logger zerolog.Logger
}

// NewHandlers creates new Kafka handlers
func NewHandlers(uc *content.UseCase, logger zerolog.Logger) *Handlers {
	return &Handlers{
		uc:     uc,
		logger: logger,
	}
}

// HandleViewRecorded applies a view metric event to the store
func (h *Handlers) HandleViewRecorded(ctx context.Context, message []byte) error {
	var event dto.ViewRecordedEvent
	if err := json.Unmarshal(message, &event); err != nil {
		h.logger.Error().Err(err).
			Str("raw_message", string(message)).
			Msg("Failed to unmarshal view recorded event")
		return err
	}

	if err := h.uc.ApplyViewIncrement(ctx, event.NewsID); err != nil {
		h.logger.Error().Err(err).
			Uint("news_id", event.NewsID).
			Msg("Failed to apply view increment")
		return err
	}

	h.logger.Debug().
		Uint("news_id", event.NewsID).
		Msg("View increment applied")

	return nil
}
