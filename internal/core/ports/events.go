package ports

import (
	"context"

	"github.com/DanielPopoola/payment-records/internal/core/domain"
)

// EventPublisher announces payments whose creation has been verified.
type EventPublisher interface {
	PaymentCreated(ctx context.Context, payment *domain.Payment) error
}
