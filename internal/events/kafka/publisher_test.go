package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IlyasAtabaev731/retail-ledger/internal/domain/models"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublishWritesKeyedJSON(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{writer: w}

	event := models.LedgerEvent{
		ID:               uuid.New(),
		Kind:             models.EventTransfer,
		Customer:         "Alice",
		AccountID:        1001,
		Counterparty:     "Bob",
		CounterAccountID: 1002,
		Amount:           decimal.NewFromInt(40),
		OccurredAt:       time.Now().UTC(),
	}
	require.NoError(t, p.Publish(context.Background(), event))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "Alice", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "transfer", string(msg.Headers[0].Value))

	var decoded models.LedgerEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event.ID, decoded.ID)
	assert.Equal(t, "Bob", decoded.Counterparty)
	assert.True(t, event.Amount.Equal(decoded.Amount))
}

func TestPublishWrapsWriterError(t *testing.T) {
	boom := errors.New("broker down")
	p := &Publisher{writer: &fakeWriter{err: boom}}

	err := p.Publish(context.Background(), models.LedgerEvent{Kind: models.EventDeposit})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "events.kafka.Publish")
}

func TestClose(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, (&Publisher{writer: w}).Close())
	assert.True(t, w.closed)
}

func TestNewPublisherFlushesImmediately(t *testing.T) {
	p := NewPublisher([]string{"localhost:9092"}, "ledger_events")

	w, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "ledger_events", w.Topic)
	assert.Equal(t, 1, w.BatchSize)
	assert.LessOrEqual(t, w.BatchTimeout, 10*time.Millisecond)
	assert.Equal(t, kafka.RequireOne, w.RequiredAcks)
	assert.False(t, w.Async)
	assert.IsType(t, &kafka.Hash{}, w.Balancer)
}
