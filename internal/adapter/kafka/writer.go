// Package kafka publishes persisted canonical documents to an optional
// change-feed topic for downstream consumers.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces change-feed messages. It implements pipeline.ChangeFeed.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the change-feed topic.
func NewWriter(brokers []string, topic string, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes one persisted document, keyed by its store path so
// consumers can compact per domain.
func (w *Writer) Publish(ctx context.Context, path string, doc any) error {
	msg, err := buildMessage(path, doc, time.Now())
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func buildMessage(path string, doc any, at time.Time) (kafkago.Message, error) {
	value, err := json.Marshal(doc)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize change for %q: %w", path, err)
	}
	return kafkago.Message{
		Key:   []byte(path),
		Value: value,
		Headers: []kafkago.Header{
			{Key: "path", Value: []byte(path)},
			{Key: "published_at", Value: []byte(at.UTC().Format(time.RFC3339))},
		},
	}, nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}
