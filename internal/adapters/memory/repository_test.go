package memory_test

import (
	"context"
	"testing"

	"github.com/DanielPopoola/payment-records/internal/adapters/memory"
	"github.com/DanielPopoola/payment-records/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, repo *memory.PaymentRepository, payments ...domain.Payment) {
	t.Helper()
	for i := range payments {
		require.NoError(t, repo.CreatePayment(context.Background(), &payments[i]))
	}
}

func TestPaymentRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewPaymentRepository()
	seed(t, repo, domain.Payment{PaymentID: "p-1", Amount: 1000, Currency: "USD"})

	t.Run("returns the payment when found", func(t *testing.T) {
		p, err := repo.FindByID(ctx, "p-1")

		require.NoError(t, err)
		assert.Equal(t, &domain.Payment{PaymentID: "p-1", Amount: 1000, Currency: "USD"}, p)
	})

	t.Run("returns not found when missing", func(t *testing.T) {
		p, err := repo.FindByID(ctx, "missing")

		assert.Nil(t, p)
		assert.True(t, domain.IsNotFound(err))
		assert.Contains(t, err.Error(), "missing")
	})

	t.Run("returned records are copies", func(t *testing.T) {
		p, err := repo.FindByID(ctx, "p-1")
		require.NoError(t, err)
		p.Amount = 1

		again, err := repo.FindByID(ctx, "p-1")
		require.NoError(t, err)
		assert.Equal(t, 1000.0, again.Amount)
	})

	t.Run("honours a cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := repo.FindByID(cancelled, "p-1")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestPaymentRepository_ListPayments(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewPaymentRepository()
	seed(t, repo,
		domain.Payment{PaymentID: "p-1", Amount: 100, Currency: "USD"},
		domain.Payment{PaymentID: "p-2", Amount: 200, Currency: "EUR"},
		domain.Payment{PaymentID: "p-3", Amount: 300, Currency: "USD"},
		domain.Payment{PaymentID: "p-4", Amount: 400, Currency: "usd"},
	)

	t.Run("returns everything without a filter", func(t *testing.T) {
		all, err := repo.ListPayments(ctx, "")

		require.NoError(t, err)
		require.Len(t, all, 4)
		assert.Equal(t, "p-1", all[0].PaymentID)
		assert.Equal(t, "p-4", all[3].PaymentID)
	})

	t.Run("filters by exact currency", func(t *testing.T) {
		usd, err := repo.ListPayments(ctx, "USD")

		require.NoError(t, err)
		require.Len(t, usd, 2)
		assert.Equal(t, "p-1", usd[0].PaymentID)
		assert.Equal(t, "p-3", usd[1].PaymentID)
	})

	t.Run("filter is case sensitive", func(t *testing.T) {
		lower, err := repo.ListPayments(ctx, "usd")

		require.NoError(t, err)
		require.Len(t, lower, 1)
		assert.Equal(t, "p-4", lower[0].PaymentID)
	})

	t.Run("returns an empty slice when nothing matches", func(t *testing.T) {
		none, err := repo.ListPayments(ctx, "JPY")

		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})
}
