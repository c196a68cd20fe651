// Package kafka publishes persisted reading events to a sink topic for
// downstream reporting and forecasting consumers.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/sincov/airq-ingest-service/internal/domain"
)

// Publisher produces reading events to a Kafka topic.
// It implements pipeline.ReadingPublisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured sink topic.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// PublishReadings serializes and publishes a batch of reading events in a
// single WriteMessages call. Delivery is at-least-once: a retried station
// window may republish events for readings that were already persisted, so
// consumers must key on (channel_id, taken_at).
func (p *Publisher) PublishReadings(ctx context.Context, events []domain.ReadingEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(events))
	for i := range events {
		msg, err := serializeToMessage(events[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return p.writer.WriteMessages(ctx, msgs...)
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a ReadingEvent into a Kafka message keyed by
// channel code so one channel's readings stay in partition order.
func serializeToMessage(event domain.ReadingEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize reading event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.ChannelCode),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "station_id", Value: []byte(strconv.FormatInt(event.StationID, 10))},
			{Key: "kind", Value: []byte(event.Kind)},
			{Key: "taken_at", Value: []byte(event.TakenAt.Format(time.RFC3339))},
		},
	}, nil
}
