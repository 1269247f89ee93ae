package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DanielPopoola/payment-records/internal/core/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest("POST /payments", http.MethodPost, http.StatusCreated, 20*time.Millisecond)
	m.ObserveRequest("POST /payments", http.MethodPost, http.StatusCreated, 30*time.Millisecond)
	m.ObserveRequest("", http.MethodGet, http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("POST /payments", "POST", "201")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("unmatched", "GET", "404")))
}

func TestPaymentCreated(t *testing.T) {
	m := New()

	require.NoError(t, m.PaymentCreated(context.Background(), &domain.Payment{PaymentID: "a", Amount: 1, Currency: "USD"}))
	require.NoError(t, m.PaymentCreated(context.Background(), &domain.Payment{PaymentID: "b", Amount: 1, Currency: "USD"}))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.paymentsCreated.WithLabelValues("USD")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveRequest("GET /payments", http.MethodGet, http.StatusOK, time.Millisecond)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "payments_requests_total")
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
