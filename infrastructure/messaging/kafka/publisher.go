// Package kafka publishes outbox events to a Kafka topic.
package kafka

import (
	"context"
	"fmt"

	"storefront/config"

	kafkaGo "github.com/segmentio/kafka-go"
)

// Publisher writes outbox events to one topic, keyed by event type so
// consumers see per-type ordering.
type Publisher struct {
	writer *kafkaGo.Writer
}

func NewPublisher(cfg config.KafkaConfig) *Publisher {
	return &Publisher{
		writer: &kafkaGo.Writer{
			Addr:     kafkaGo.TCP(cfg.Brokers...),
			Topic:    cfg.Topic,
			Balancer: &kafkaGo.LeastBytes{},
		},
	}
}

// Publish implements the outbox publisher contract. The payload is the
// already-serialized event JSON from the outbox table.
func (p *Publisher) Publish(ctx context.Context, eventType, payload string) error {
	err := p.writer.WriteMessages(ctx, kafkaGo.Message{
		Key:   []byte(eventType),
		Value: []byte(payload),
		Headers: []kafkaGo.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
