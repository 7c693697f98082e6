package kafkaadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"mesa-campaigns/internal/core/domain"
	"mesa-campaigns/internal/core/port"
)

// MessageWriter is the part of *kafka.Writer used by the publisher.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ActivityPublisher streams activity events to a Kafka topic, keyed by
// campaign id so events of one campaign stay ordered.
type ActivityPublisher struct {
	writer  MessageWriter
	timeout time.Duration
}

var _ port.ActivityLog = (*ActivityPublisher)(nil)

// NewWriter builds a writer for topic on the comma separated broker list.
func NewWriter(brokersCSV, topic string) (*kafka.Writer, error) {
	brokers := splitCSV(brokersCSV)
	if len(brokers) == 0 {
		return nil, errors.New("kafka publisher requires at least one broker")
	}
	if topic == "" {
		return nil, errors.New("kafka publisher requires a topic")
	}
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireAll,
		Balancer:     &kafka.Hash{},
	}, nil
}

// NewActivityPublisher wraps w. Each Record call is bounded by timeout.
func NewActivityPublisher(w MessageWriter, timeout time.Duration) *ActivityPublisher {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &ActivityPublisher{writer: w, timeout: timeout}
}

// Record publishes every event as one JSON message.
func (p *ActivityPublisher) Record(ctx context.Context, events []domain.ActivityEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		b, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encode activity event: %w", err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(e.CampaignID),
			Value: b,
			Time:  e.OccurredAt,
			Headers: []kafka.Header{
				{Key: "action", Value: []byte(e.Action)},
				{Key: "source", Value: []byte(e.Source)},
			},
		})
	}

	cctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.writer.WriteMessages(cctx, msgs...); err != nil {
		return fmt.Errorf("publish activity: %w", err)
	}
	return nil
}

// Close flushes and closes the writer.
func (p *ActivityPublisher) Close() error {
	return p.writer.Close()
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
