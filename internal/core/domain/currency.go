package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// DefaultCurrencies returns the allow-list used when none is configured.
func DefaultCurrencies() []string {
	return []string{"USD", "EUR", "GBP", "AUD", "CAD", "SGD", "JPY", "CNY", "NZD", "CHF"}
}

// IsCurrencyCode reports whether code is three uppercase ASCII letters.
func IsCurrencyCode(code string) bool {
	return currencyCodePattern.MatchString(code)
}

// CurrencySet is the immutable allow-list of currencies accepted on create.
// It keeps the configured order so error messages are stable.
type CurrencySet struct {
	codes []string
	index map[string]struct{}
}

// NewCurrencySet validates codes and builds the allow-list. Duplicates are dropped.
func NewCurrencySet(codes []string) (CurrencySet, error) {
	if len(codes) == 0 {
		return CurrencySet{}, fmt.Errorf("currency allow-list is empty")
	}

	set := CurrencySet{
		codes: make([]string, 0, len(codes)),
		index: make(map[string]struct{}, len(codes)),
	}
	for _, code := range codes {
		if !IsCurrencyCode(code) {
			return CurrencySet{}, fmt.Errorf("invalid currency code %q in allow-list", code)
		}
		if _, dup := set.index[code]; dup {
			continue
		}
		set.index[code] = struct{}{}
		set.codes = append(set.codes, code)
	}

	return set, nil
}

// MustCurrencySet is NewCurrencySet for static lists.
func MustCurrencySet(codes []string) CurrencySet {
	set, err := NewCurrencySet(codes)
	if err != nil {
		panic(err)
	}
	return set
}

func (s CurrencySet) Contains(code string) bool {
	_, ok := s.index[code]
	return ok
}

// Codes returns a copy of the allow-list in configured order.
func (s CurrencySet) Codes() []string {
	out := make([]string, len(s.codes))
	copy(out, s.codes)
	return out
}

func (s CurrencySet) String() string {
	return strings.Join(s.codes, ", ")
}
