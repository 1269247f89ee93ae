package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// CreatePaymentInput is the validated subset of a create request.
type CreatePaymentInput struct {
	Amount   float64
	Currency string
}

// ValidateCreateInput checks a decoded request body in a fixed order and stops at
// the first failure. Any caller supplied identifier is ignored.
func ValidateCreateInput(input map[string]any, currencies CurrencySet) (CreatePaymentInput, error) {
	rawAmount, ok := input["amount"]
	if !ok || rawAmount == nil {
		return CreatePaymentInput{}, newValidationError(ErrCodeAmountRequired, "Amount is required")
	}

	amount, ok := toFloat(rawAmount)
	if !ok {
		return CreatePaymentInput{}, newValidationError(ErrCodeAmountNotNumber, "Amount must be a number")
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return CreatePaymentInput{}, newValidationError(ErrCodeAmountNotFinite, "Amount must be a finite number")
	}
	if amount <= 0 {
		return CreatePaymentInput{}, newValidationError(ErrCodeAmountNotPositive, "Amount must be greater than zero")
	}

	rawCurrency := input["currency"]
	if isBlank(rawCurrency) {
		return CreatePaymentInput{}, newValidationError(ErrCodeCurrencyRequired, "Currency is required")
	}

	currency, ok := rawCurrency.(string)
	if !ok {
		return CreatePaymentInput{}, newValidationError(ErrCodeCurrencyNotString, "Currency must be a string")
	}
	if !IsCurrencyCode(currency) {
		return CreatePaymentInput{}, newValidationError(ErrCodeCurrencyInvalidFormat,
			"Currency must be a 3-letter uppercase ISO code (e.g., USD, EUR)")
	}
	if !currencies.Contains(currency) {
		return CreatePaymentInput{}, newValidationError(ErrCodeCurrencyNotSupported,
			fmt.Sprintf("Currency %s is not supported. Supported currencies: %s", currency, currencies))
	}

	return CreatePaymentInput{Amount: amount, Currency: currency}, nil
}

// isBlank reports values a JSON client would treat as falsy: absent, null,
// false, "" and any zero number.
func isBlank(v any) bool {
	switch b := v.(type) {
	case nil:
		return true
	case bool:
		return !b
	case string:
		return b == ""
	}
	f, ok := toFloat(v)
	return ok && f == 0
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, false
		}
		// out-of-range literals come back as ±Inf
		return f, true
	default:
		return 0, false
	}
}
