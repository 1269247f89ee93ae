package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DanielPopoola/payment-records/internal/core/domain"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

type countingPublisher struct {
	calls int
	err   error
}

func (c *countingPublisher) PaymentCreated(context.Context, *domain.Payment) error {
	c.calls++
	return c.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestKafkaPublisher_PaymentCreated(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, testLogger())
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	payment := &domain.Payment{PaymentID: "p-1", Amount: 12.5, Currency: "USD"}
	require.NoError(t, p.PaymentCreated(context.Background(), payment))

	require.Len(t, w.messages, 1)
	msg := w.messages[0]
	assert.Equal(t, []byte("p-1"), msg.Key)
	assert.Equal(t, fixed, msg.Time)
	assert.Equal(t, []kafka.Header{{Key: "type", Value: []byte(PaymentCreatedType)}}, msg.Headers)

	var event PaymentCreatedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, PaymentCreatedType, event.Type)
	assert.True(t, fixed.Equal(event.OccurredAt))
	assert.Equal(t, payment, event.Payment)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	p := newKafkaPublisher(w, testLogger())

	err := p.PaymentCreated(context.Background(), &domain.Payment{PaymentID: "p-1", Amount: 1, Currency: "USD"})

	assert.ErrorIs(t, err, w.err)
}

func TestKafkaPublisher_Close(t *testing.T) {
	w := &fakeWriter{}

	require.NoError(t, newKafkaPublisher(w, testLogger()).Close())
	assert.True(t, w.closed)
}

func TestFanout(t *testing.T) {
	first := &countingPublisher{}
	failing := &countingPublisher{err: errors.New("down")}
	last := &countingPublisher{}

	err := Fanout{first, failing, last}.PaymentCreated(context.Background(), &domain.Payment{PaymentID: "p-1"})

	assert.ErrorIs(t, err, failing.err)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, last.calls)
}

func TestFanout_Empty(t *testing.T) {
	assert.NoError(t, Fanout{}.PaymentCreated(context.Background(), &domain.Payment{}))
}
