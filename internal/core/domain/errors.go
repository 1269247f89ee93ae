package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business logic error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Create validation errors, one code per rule
const (
	ErrCodeAmountRequired        = "AMOUNT_REQUIRED"
	ErrCodeAmountNotNumber       = "AMOUNT_NOT_NUMBER"
	ErrCodeAmountNotFinite       = "AMOUNT_NOT_FINITE"
	ErrCodeAmountNotPositive     = "AMOUNT_NOT_POSITIVE"
	ErrCodeCurrencyRequired      = "CURRENCY_REQUIRED"
	ErrCodeCurrencyNotString     = "CURRENCY_NOT_STRING"
	ErrCodeCurrencyInvalidFormat = "CURRENCY_INVALID_FORMAT"
	ErrCodeCurrencyNotSupported  = "CURRENCY_NOT_SUPPORTED"
)

const (
	ErrCodePaymentNotFound      = "PAYMENT_NOT_FOUND"
	ErrCodeVerificationFailed   = "VERIFICATION_FAILED"
	ErrCodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
)

var validationCodes = map[string]struct{}{
	ErrCodeAmountRequired:        {},
	ErrCodeAmountNotNumber:       {},
	ErrCodeAmountNotFinite:       {},
	ErrCodeAmountNotPositive:     {},
	ErrCodeCurrencyRequired:      {},
	ErrCodeCurrencyNotString:     {},
	ErrCodeCurrencyInvalidFormat: {},
	ErrCodeCurrencyNotSupported:  {},
}

func newValidationError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

func NewPaymentNotFoundError(paymentID string) *DomainError {
	return &DomainError{
		Code:    ErrCodePaymentNotFound,
		Message: fmt.Sprintf("Payment not found for ID: %s", paymentID),
	}
}

// NewVerificationFailedError reports a write that could not be read back.
func NewVerificationFailedError(paymentID string) *DomainError {
	return &DomainError{
		Code:    ErrCodeVerificationFailed,
		Message: fmt.Sprintf("payment %s was not found after creation", paymentID),
	}
}

func NewMissingRequiredFieldError(field string) *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingRequiredField,
		Message: fmt.Sprintf("%s is required", field),
	}
}

// ErrorCode returns the DomainError code in err's chain, or "".
func ErrorCode(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

// IsValidation reports whether err is one of the create validation failures.
func IsValidation(err error) bool {
	_, ok := validationCodes[ErrorCode(err)]
	return ok
}

func IsNotFound(err error) bool {
	return ErrorCode(err) == ErrCodePaymentNotFound
}

func IsVerificationFailed(err error) bool {
	return ErrorCode(err) == ErrCodeVerificationFailed
}
