// Package kafka publishes box change events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/SscSPs/class_fund_app/internal/core/domain"
	portssvc "github.com/SscSPs/class_fund_app/internal/core/ports/services"
)

// Publisher writes one message per BoxEvent, keyed by box id so that events
// for the same box stay ordered within a partition.
type Publisher struct {
	writer *kafka.Writer
}

// batchTimeout caps how long a single-message write waits for its batch to fill.
const batchTimeout = 10 * time.Millisecond

// NewPublisher creates a publisher for topic on the given brokers.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: batchTimeout,
		},
	}
}

// Publish encodes event as JSON and writes it.
func (p *Publisher) Publish(ctx context.Context, event domain.BoxEvent) error {
	data, err := json.Marshal(newMessage(event))
	if err != nil {
		return fmt.Errorf("encode box event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Box.ID),
		Value: data,
	})
	if err != nil {
		return fmt.Errorf("write box event: %w", err)
	}
	return nil
}

// Close flushes pending writes and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

var _ portssvc.EventPublisher = (*Publisher)(nil)
