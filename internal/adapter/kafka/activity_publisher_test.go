package kafkaadapter

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesa-campaigns/internal/core/domain"
)

type fakeWriter struct {
	msgs     []kafka.Message
	err      error
	deadline bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	_, f.deadline = ctx.Deadline()
	f.msgs = append(f.msgs, msgs...)
	return f.err
}

func (f *fakeWriter) Close() error { return nil }

func TestActivityPublisherRecord(t *testing.T) {
	w := &fakeWriter{}
	p := NewActivityPublisher(w, time.Second)
	at := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)

	err := p.Record(context.Background(), []domain.ActivityEvent{
		{CampaignID: "c1", Variant: domain.LabelA, Email: "a@example.com", Action: domain.ActionOpen, Source: domain.SourceProvider, OccurredAt: at},
		{CampaignID: "c1", Variant: domain.LabelB, Email: "b@example.com", Action: domain.ActionClick, Source: domain.SourceAttributed, OccurredAt: at},
	})
	require.NoError(t, err)

	require.Len(t, w.msgs, 2)
	assert.True(t, w.deadline)
	assert.Equal(t, "c1", string(w.msgs[0].Key))
	assert.Equal(t, at, w.msgs[0].Time)

	var decoded domain.ActivityEvent
	require.NoError(t, json.Unmarshal(w.msgs[1].Value, &decoded))
	assert.Equal(t, domain.ActionClick, decoded.Action)
	assert.Equal(t, domain.LabelB, decoded.Variant)
}

func TestActivityPublisherWrapsWriteError(t *testing.T) {
	boom := errors.New("leader not available")
	p := NewActivityPublisher(&fakeWriter{err: boom}, 0)

	err := p.Record(context.Background(), []domain.ActivityEvent{{CampaignID: "c1", Action: domain.ActionOpen}})

	assert.ErrorIs(t, err, boom)
}

func TestNewWriterValidation(t *testing.T) {
	_, err := NewWriter(" , ", "activity")
	assert.Error(t, err)
	_, err = NewWriter("localhost:9092", "")
	assert.Error(t, err)

	w, err := NewWriter("localhost:9092, localhost:9093", "activity")
	require.NoError(t, err)
	assert.Equal(t, "activity", w.Topic)
}
