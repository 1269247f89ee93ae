package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/DanielPopoola/payment-records/internal/core/domain"
	"github.com/DanielPopoola/payment-records/internal/core/ports"
	"github.com/google/uuid"
)

const defaultPublishTimeout = 5 * time.Second

type PaymentService struct {
	repo           ports.PaymentRepository
	publisher      ports.EventPublisher
	publishTimeout time.Duration
	publishing     sync.WaitGroup
	currencies     domain.CurrencySet
	newID          func() string
	logger         *slog.Logger
}

type Option func(*PaymentService)

// WithIDGenerator replaces the random UUID source.
func WithIDGenerator(fn func() string) Option {
	return func(s *PaymentService) {
		s.newID = fn
	}
}

// WithEventPublisher announces verified payments. Without it nothing is published.
func WithEventPublisher(publisher ports.EventPublisher) Option {
	return func(s *PaymentService) {
		s.publisher = publisher
	}
}

// WithPublishTimeout bounds each background publish. Non-positive values keep
// the default.
func WithPublishTimeout(timeout time.Duration) Option {
	return func(s *PaymentService) {
		if timeout > 0 {
			s.publishTimeout = timeout
		}
	}
}

func NewPaymentService(
	repo ports.PaymentRepository,
	currencies domain.CurrencySet,
	logger *slog.Logger,
	opts ...Option,
) *PaymentService {
	s := &PaymentService{
		repo:           repo,
		publishTimeout: defaultPublishTimeout,
		currencies:     currencies,
		newID:          uuid.NewString,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreatePayment validates input, writes a new record under a generated ID and
// reads it back before reporting success. A record that cannot be read back is
// left in place and reported as a verification failure. The created event is
// published in the background and never affects the result.
func (s *PaymentService) CreatePayment(ctx context.Context, input map[string]any) (*domain.Payment, error) {
	validated, err := domain.ValidateCreateInput(input, s.currencies)
	if err != nil {
		s.logger.Warn("invalid create payment request",
			"code", domain.ErrorCode(err),
			"reason", err.Error(),
		)
		return nil, err
	}

	paymentID := s.newID()
	payment, err := domain.NewPayment(paymentID, validated)
	if err != nil {
		return nil, err
	}

	s.logger.Info("creating payment", "payment_id", paymentID)

	if err := s.repo.CreatePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment %s: %w", paymentID, err)
	}

	stored, err := s.repo.FindByID(ctx, paymentID)
	if err != nil && !domain.IsNotFound(err) {
		return nil, fmt.Errorf("read back payment %s: %w", paymentID, err)
	}
	if stored == nil {
		s.logger.Error("payment was not found after creation", "payment_id", paymentID)
		return nil, domain.NewVerificationFailedError(paymentID)
	}

	s.logger.Info("created and verified payment", "payment_id", paymentID)

	s.publishCreated(ctx, stored)

	return stored, nil
}

// publishCreated never blocks the caller. Each publish gets its own deadline,
// detached from the request context.
func (s *PaymentService) publishCreated(ctx context.Context, payment *domain.Payment) {
	if s.publisher == nil {
		return
	}

	s.publishing.Add(1)
	go func() {
		defer s.publishing.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
		defer cancel()

		if err := s.publisher.PaymentCreated(ctx, payment); err != nil {
			s.logger.Warn("failed to publish payment created event",
				"payment_id", payment.PaymentID,
				"error", err,
			)
		}
	}()
}

// Wait blocks until every in-flight publish has finished or timed out.
func (s *PaymentService) Wait() {
	s.publishing.Wait()
}

func (s *PaymentService) GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if paymentID == "" {
		return nil, domain.NewMissingRequiredFieldError("payment ID")
	}
	return s.repo.FindByID(ctx, paymentID)
}

// ListPayments passes currency to the store unchanged; "" lists everything.
func (s *PaymentService) ListPayments(ctx context.Context, currency string) ([]*domain.Payment, error) {
	payments, err := s.repo.ListPayments(ctx, currency)
	if err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []*domain.Payment{}
	}
	return payments, nil
}
