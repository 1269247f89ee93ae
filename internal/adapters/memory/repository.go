// Package memory is a process-local PaymentRepository for local runs and tests.
package memory

import (
	"context"
	"sync"

	"github.com/DanielPopoola/payment-records/internal/core/domain"
	"github.com/DanielPopoola/payment-records/internal/core/ports"
)

type PaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]domain.Payment
	order    []string
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{
		payments: make(map[string]domain.Payment),
	}
}

var _ ports.PaymentRepository = (*PaymentRepository)(nil)

// CreatePayment stores a copy of payment, replacing any record with the same ID.
func (r *PaymentRepository) CreatePayment(ctx context.Context, payment *domain.Payment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.payments[payment.PaymentID]; !exists {
		r.order = append(r.order, payment.PaymentID)
	}
	r.payments[payment.PaymentID] = *payment
	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.payments[paymentID]
	if !ok {
		return nil, domain.NewPaymentNotFoundError(paymentID)
	}
	return &p, nil
}

// ListPayments returns records in insertion order.
func (r *PaymentRepository) ListPayments(ctx context.Context, currency string) ([]*domain.Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]*domain.Payment, 0, len(r.order))
	for _, id := range r.order {
		p := r.payments[id]
		if currency != "" && p.Currency != currency {
			continue
		}
		results = append(results, &p)
	}
	return results, nil
}
