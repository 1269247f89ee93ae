package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielPopoola/payment-records/internal/core/domain"
	"github.com/DanielPopoola/payment-records/internal/core/ports"
	"github.com/jackc/pgx/v5"
)

type PaymentRepository struct {
	q Executor
}

func NewPaymentRepository(db *DB) *PaymentRepository {
	return &PaymentRepository{q: db.Pool}
}

var _ ports.PaymentRepository = (*PaymentRepository)(nil)

// CreatePayment inserts a new row. Identifiers are never reused, so a
// duplicate key is reported as an error rather than overwritten.
func (r *PaymentRepository) CreatePayment(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (payment_id, amount, currency) VALUES ($1, $2, $3)`

	_, err := r.q.Exec(ctx, query, p.PaymentID, p.Amount, p.Currency)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("payment %s already exists: %w", p.PaymentID, err)
		}
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// FindByID retrieves a payment by its identifier
func (r *PaymentRepository) FindByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT payment_id, amount, currency FROM payments WHERE payment_id = $1`

	var p domain.Payment
	err := r.q.QueryRow(ctx, query, paymentID).Scan(&p.PaymentID, &p.Amount, &p.Currency)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewPaymentNotFoundError(paymentID)
		}
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}
	return &p, nil
}

// ListPayments returns matching rows oldest first. An empty currency matches every row.
func (r *PaymentRepository) ListPayments(ctx context.Context, currency string) ([]*domain.Payment, error) {
	query := `SELECT payment_id, amount, currency FROM payments`
	var args []any
	if currency != "" {
		query += ` WHERE currency = $1`
		args = append(args, currency)
	}
	query += ` ORDER BY created_at, payment_id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	payments, err := pgx.CollectRows(rows, scanPayment)
	if err != nil {
		return nil, fmt.Errorf("failed to scan payments: %w", err)
	}
	if payments == nil {
		payments = []*domain.Payment{}
	}
	return payments, nil
}

func scanPayment(row pgx.CollectableRow) (*domain.Payment, error) {
	var p domain.Payment
	if err := row.Scan(&p.PaymentID, &p.Amount, &p.Currency); err != nil {
		return nil, err
	}
	return &p, nil
}
