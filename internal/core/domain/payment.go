// Package domain defines the payment record and the rules applied when one is created.
package domain

import "strings"

// Payment is the only persisted entity. It is written once and never mutated.
type Payment struct {
	PaymentID string  `json:"paymentId"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
}

// NewPayment builds a payment from already validated input.
func NewPayment(id string, input CreatePaymentInput) (*Payment, error) {
	if strings.TrimSpace(id) == "" {
		return nil, NewMissingRequiredFieldError("payment ID")
	}

	return &Payment{
		PaymentID: id,
		Amount:    input.Amount,
		Currency:  input.Currency,
	}, nil
}
