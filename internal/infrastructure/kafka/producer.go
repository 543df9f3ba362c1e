package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/pressroom/pressroom/config"
	"github.com/pressroom/pressroom/internal/domain/news/deps"
	"github.com/pressroom/pressroom/internal/domain/news/dto"
)

// Producer publishes view metric events
type Producer struct {
	writer *kafka.Writer
	topic  string
	logger zerolog.Logger
}

// NewProducer creates a Kafka producer for the view metrics topic
func NewProducer(cfg *config.KafkaConfig, logger zerolog.Logger) (deps.MetricsProducer, error) {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logger.Info().
		Strs("brokers", cfg.Brokers).
		Str("topic", cfg.TopicNewsViews).
		Msg("Kafka producer initialized")

	return &Producer{
		writer: writer,
		topic:  cfg.TopicNewsViews,
		logger: logger,
	}, nil
}

// SendViewRecorded publishes a view event for the article. Events for the
// same article share a key so increments stay ordered per article.
func (p *Producer) SendViewRecorded(ctx context.Context, newsID uint) error {
	msg := dto.ViewRecordedEvent{
		NewsID:    newsID,
		Timestamp: time.Now().Unix(),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	key := fmt.Sprintf("news-%d", newsID)

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: p.topic,
		Key:   []byte(key),
		Value: data,
	})
	if err != nil {
		p.logger.Error().Err(err).
			Uint("news_id", newsID).
			Msg("Failed to send view recorded message")
		return fmt.Errorf("failed to send message: %w", err)
	}

	p.logger.Debug().
		Uint("news_id", newsID).
		Msg("View recorded message sent")

	return nil
}

// Close closes the producer
func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
