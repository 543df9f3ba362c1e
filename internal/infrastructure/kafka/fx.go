package kafka

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/pressroom/pressroom/config"
	kafkaHandlers "github.com/pressroom/pressroom/internal/domain/news/delivery/kafka"
	"github.com/pressroom/pressroom/internal/domain/news/deps"
)

// Module wires the Kafka producer and the view metrics consumer
var Module = fx.Module("kafka",
	fx.Provide(NewProducerFx),
	fx.Invoke(registerConsumerLifecycle),
)

// NewProducerFx provides the producer with a shutdown hook
func NewProducerFx(
	lc fx.Lifecycle,
	cfg *config.KafkaConfig,
	logger zerolog.Logger,
) (deps.MetricsProducer, error) {
	producer, err := NewProducer(cfg, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return producer.Close()
		},
	})

	return producer, nil
}

func registerConsumerLifecycle(
	lc fx.Lifecycle,
	cfg *config.KafkaConfig,
	handlers *kafkaHandlers.Handlers,
	logger zerolog.Logger,
) {
	consumer := NewConsumer(cfg, handlers, logger.With().Str("component", "kafka-consumer").Logger())

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			consumer.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			return consumer.Stop()
		},
	})
}
