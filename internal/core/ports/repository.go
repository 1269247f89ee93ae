package ports

import (
	"context"

	"github.com/DanielPopoola/payment-records/internal/core/domain"
)

// PaymentRepository is the single-table store behind the payment handlers.
type PaymentRepository interface {
	// CreatePayment writes the full record.
	CreatePayment(ctx context.Context, payment *domain.Payment) error

	// FindByID returns a PAYMENT_NOT_FOUND domain error when no record exists.
	FindByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPayments returns every record, or only those whose currency equals
	// currency exactly when it is not empty.
	ListPayments(ctx context.Context, currency string) ([]*domain.Payment, error)
}
