package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/payment-records/internal/core/domain"
)

const defaultMaxBodyBytes int64 = 1 << 20

type PaymentService interface {
	CreatePayment(ctx context.Context, input map[string]any) (*domain.Payment, error)
	GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error)
	ListPayments(ctx context.Context, currency string) ([]*domain.Payment, error)
}

type PaymentHandler struct {
	service      PaymentService
	logger       *slog.Logger
	maxBodyBytes int64
}

type Option func(*PaymentHandler)

// WithMaxBodyBytes caps the size of request bodies read by the HTTP routes.
func WithMaxBodyBytes(n int64) Option {
	return func(h *PaymentHandler) {
		if n > 0 {
			h.maxBodyBytes = n
		}
	}
}

func NewPaymentHandler(service PaymentService, logger *slog.Logger, opts ...Option) *PaymentHandler {
	h := &PaymentHandler{
		service:      service,
		logger:       logger,
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *PaymentHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /payments", h.CreatePayment)
	mux.HandleFunc("GET /payments", h.ListPayments)
	mux.HandleFunc("GET /payments/{$}", h.GetPayment)
	mux.HandleFunc("GET /payments/{id}", h.GetPayment)
}

// CreatePayment records a new payment
// @Summary      Create a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Success      201  {object}  domain.Payment
// @Failure      422  {object}  ErrorBody  "Validation failed"
// @Failure      500  {object}  ErrorBody  "Internal server error"
// @Router       /payments [post]
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeResponse(w, errorResponse(http.StatusRequestEntityTooLarge, "Request body too large"))
			return
		}
		h.logger.Error("failed to read request body", "error", err)
		writeResponse(w, errorResponse(http.StatusBadRequest, "Request body could not be read"))
		return
	}

	writeResponse(w, h.HandleCreatePayment(r.Context(), string(body)))
}

// GetPayment fetches one payment
// @Summary      Get a payment by ID
// @Tags         payments
// @Produce      json
// @Param        id   path      string  true  "Payment ID"
// @Success      200  {object}  domain.Payment
// @Failure      400  {object}  ErrorBody  "Payment ID not provided"
// @Failure      404  {object}  ErrorBody  "Payment not found"
// @Router       /payments/{id} [get]
func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, h.HandleGetPayment(r.Context(), r.PathValue("id")))
}

// ListPayments lists payments, optionally filtered by currency
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Param        currency  query     string  false  "Exact currency code"
// @Success      200       {object}  ListBody
// @Router       /payments [get]
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	query := make(map[string]string)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			query[key] = values[0]
		}
	}

	writeResponse(w, h.HandleListPayments(r.Context(), query))
}

func writeResponse(w http.ResponseWriter, resp Response) {
	for key, value := range resp.Headers {
		w.Header().Set(key, value)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	_, _ = io.WriteString(w, resp.Body)
}

// WriteError renders the standard error envelope outside the payment routes.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	writeResponse(w, errorResponse(statusCode, message))
}
