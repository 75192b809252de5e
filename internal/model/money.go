package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrCurrencyMismatch is returned when two Money values with different
// currency codes are combined.  Arithmetic is only defined within a single
// currency; the caller decides whether this is a data error or a bug.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// Money is an amount of currency stored as cents to avoid floating-point
// rounding.  Amounts are always rounded to two decimal places; parsing
// rounds half away from zero, the same way the fare files are produced.
//
// Fields:
//  AmountCents – the amount in hundredths of the currency unit.
//  Currency    – ISO 4217 currency code, e.g. "EUR".
type Money struct {
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

// NewMoney builds a Money value from a cent amount and a currency code.
func NewMoney(cents int64, currency string) Money {
	return Money{AmountCents: cents, Currency: currency}
}

// ParseMoney parses a decimal amount such as "49.90" into a Money value in
// the given currency.  More than two decimal places are rounded half away
// from zero.  The digits are read directly; a float64 round-trip would
// misround ties like "0.285".
func ParseMoney(amount, currency string) (Money, error) {
	s := strings.TrimSpace(amount)
	if s == "" {
		return Money{}, fmt.Errorf("empty amount")
	}

	neg := false
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		neg = true
		s = s[1:]
	}

	intPart, frac, _ := strings.Cut(s, ".")
	if intPart == "" && frac == "" {
		return Money{}, fmt.Errorf("invalid amount %q", amount)
	}
	if intPart == "" {
		intPart = "0"
	}

	units, err := strconv.ParseUint(intPart, 10, 63)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	cents := int64(units) * 100

	if frac != "" {
		for _, r := range frac {
			if r < '0' || r > '9' {
				return Money{}, fmt.Errorf("invalid amount %q", amount)
			}
		}
		padded := frac + "00"
		cents += int64(padded[0]-'0')*10 + int64(padded[1]-'0')
		if len(frac) > 2 && frac[2] >= '5' {
			cents++
		}
	}

	if neg {
		cents = -cents
	}
	return Money{AmountCents: cents, Currency: currency}, nil
}

// Add returns the sum of m and other.  Both values must carry the same
// currency code or ErrCurrencyMismatch is returned.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("cannot add %s to %s: %w", other.Currency, m.Currency, ErrCurrencyMismatch)
	}
	return Money{AmountCents: m.AmountCents + other.AmountCents, Currency: m.Currency}, nil
}

// Sub returns m minus other, with the same currency rule as Add.
func (m Money) Sub(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("cannot subtract %s from %s: %w", other.Currency, m.Currency, ErrCurrencyMismatch)
	}
	return Money{AmountCents: m.AmountCents - other.AmountCents, Currency: m.Currency}, nil
}

// String renders the amount with two decimals followed by the currency,
// e.g. "49.90 EUR".
func (m Money) String() string {
	sign := ""
	cents := m.AmountCents
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, cents/100, cents%100, m.Currency)
}
