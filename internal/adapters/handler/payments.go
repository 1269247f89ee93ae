package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/DanielPopoola/payment-records/internal/core/domain"
)

const (
	msgCreateFailed       = "An error occurred while creating the payment"
	msgVerificationFailed = "Payment creation verification failed"
	msgRetrieveFailed     = "An error occurred while retrieving payment."
	msgListFailed         = "An error occurred while listing payments"
	msgMissingPaymentID   = "Payment ID not provided"
)

// ListBody wraps the list result. Data is never null.
type ListBody struct {
	Data []*domain.Payment `json:"data"`
}

// HandleCreatePayment validates and stores the payment described by body.
func (h *PaymentHandler) HandleCreatePayment(ctx context.Context, body string) Response {
	input := ParseInput(body, h.logger)

	payment, err := h.service.CreatePayment(ctx, input)
	if err != nil {
		switch {
		case domain.IsValidation(err):
			message := err.Error()
			var domainErr *domain.DomainError
			if errors.As(err, &domainErr) {
				message = domainErr.Message
			}
			h.logger.Warn("payment validation failed", "error", message)
			return errorResponse(http.StatusUnprocessableEntity, message)
		case domain.IsVerificationFailed(err):
			h.logger.Error("payment creation verification failed", "error", err)
			return errorResponse(http.StatusInternalServerError, msgVerificationFailed)
		default:
			h.logger.Error("error creating payment", "error", err)
			return errorResponse(http.StatusInternalServerError, msgCreateFailed)
		}
	}

	return BuildResponse(http.StatusCreated, payment)
}

// HandleGetPayment looks up a single payment by its path identifier.
func (h *PaymentHandler) HandleGetPayment(ctx context.Context, paymentID string) Response {
	if paymentID == "" {
		h.logger.Warn("payment ID missing in get payment request")
		return errorResponse(http.StatusBadRequest, msgMissingPaymentID)
	}

	h.logger.Info("fetching payment", "payment_id", paymentID)

	payment, err := h.service.GetPayment(ctx, paymentID)
	if err != nil {
		if domain.IsNotFound(err) {
			h.logger.Warn("payment not found", "payment_id", paymentID)
			return errorResponse(http.StatusNotFound, domain.NewPaymentNotFoundError(paymentID).Message)
		}
		h.logger.Error("error retrieving payment", "payment_id", paymentID, "error", err)
		return errorResponse(http.StatusInternalServerError, msgRetrieveFailed)
	}

	return BuildResponse(http.StatusOK, payment)
}

// HandleListPayments lists payments, filtered by the raw "currency" query value
// when one is present. Other query parameters are ignored.
func (h *PaymentHandler) HandleListPayments(ctx context.Context, query map[string]string) Response {
	currency := query["currency"]
	if currency != "" {
		h.logger.Info("filtering payments by currency", "currency", currency)
	} else {
		h.logger.Info("fetching all payments")
	}

	payments, err := h.service.ListPayments(ctx, currency)
	if err != nil {
		h.logger.Error("error listing payments", "error", err)
		return errorResponse(http.StatusInternalServerError, msgListFailed)
	}
	if payments == nil {
		payments = []*domain.Payment{}
	}

	return BuildResponse(http.StatusOK, ListBody{Data: payments})
}
