// Package metrics holds the Prometheus collectors for the payments API.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/DanielPopoola/payment-records/internal/core/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	paymentsCreated *prometheus.CounterVec
}

// New registers the collectors on a private registry so tests can build as
// many instances as they like.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "payments",
				Name:      "requests_total",
				Help:      "HTTP requests served, by route and status.",
			},
			[]string{"route", "method", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "payments",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency, by route.",
				Buckets: []float64{
					0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1, 2, 5,
				},
			},
			[]string{"route", "method"},
		),
		paymentsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "payments",
				Name:      "created_total",
				Help:      "Payments created and verified, by currency.",
			},
			[]string{"currency"},
		),
	}

	m.registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.paymentsCreated,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.requestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// PaymentCreated counts a verified payment. It satisfies ports.EventPublisher so
// it can sit alongside the broker publisher.
func (m *Metrics) PaymentCreated(_ context.Context, payment *domain.Payment) error {
	m.paymentsCreated.WithLabelValues(payment.Currency).Inc()
	return nil
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
