// Package kafka publishes prepared records to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/Moustapha00864/Kaikai-dashbaord-app/internal/config"
	"github.com/Moustapha00864/Kaikai-dashbaord-app/internal/domain"
)

// Writer produces messages to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured export topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaExportTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes and publishes prepared records in a single
// WriteMessages call. Records are keyed by station so each station's
// readings stay on one partition.
func (w *Writer) LoadBatch(ctx context.Context, meta domain.TableMeta, records []domain.PreparedRecord) error {
	if len(records) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(records))
	for i := range records {
		msg, err := serializeToMessage(meta, records[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d messages: %w", len(msgs), err)
	}
	w.logger.Debug("batch published", "topic", w.writer.Topic, "messages", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a PreparedRecord into a Kafka message.
func serializeToMessage(meta domain.TableMeta, rec domain.PreparedRecord) (kafkago.Message, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize prepared record: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(rec.Station),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "month", Value: []byte(strconv.Itoa(rec.Month))},
			{Key: "loaded_at", Value: []byte(meta.LoadedAt.Format(time.RFC3339))},
		},
	}, nil
}
