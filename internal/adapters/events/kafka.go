// Package events publishes payment lifecycle events.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DanielPopoola/payment-records/internal/core/domain"
	"github.com/DanielPopoola/payment-records/internal/core/ports"
	"github.com/segmentio/kafka-go"
)

const PaymentCreatedType = "payment.created"

// PaymentCreatedEvent is the message value written for every verified payment.
type PaymentCreatedEvent struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payment    *domain.Payment `json:"payment"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
	logger *slog.Logger
	now    func() time.Time
}

// NewKafkaPublisher writes to topic on brokers. Messages are keyed by payment
// ID so every event for a payment lands on the same partition.
func NewKafkaPublisher(brokers []string, topic string, writeTimeout time.Duration, logger *slog.Logger) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           writeTimeout,
		AllowAutoTopicCreation: true,
	}
	return newKafkaPublisher(w, logger)
}

func newKafkaPublisher(w messageWriter, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: w, logger: logger, now: time.Now}
}

var _ ports.EventPublisher = (*KafkaPublisher)(nil)

func (p *KafkaPublisher) PaymentCreated(ctx context.Context, payment *domain.Payment) error {
	now := p.now().UTC()
	value, err := json.Marshal(PaymentCreatedEvent{
		Type:       PaymentCreatedType,
		OccurredAt: now,
		Payment:    payment,
	})
	if err != nil {
		return fmt.Errorf("encode %s event: %w", PaymentCreatedType, err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payment.PaymentID),
		Value: value,
		Time:  now,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(PaymentCreatedType)},
		},
	})
	if err != nil {
		return fmt.Errorf("publish %s event: %w", PaymentCreatedType, err)
	}

	p.logger.Debug("published event", "type", PaymentCreatedType, "payment_id", payment.PaymentID)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Fanout delivers each event to every publisher and joins their errors.
type Fanout []ports.EventPublisher

func (f Fanout) PaymentCreated(ctx context.Context, payment *domain.Payment) error {
	var errs []error
	for _, publisher := range f {
		if err := publisher.PaymentCreated(ctx, payment); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
