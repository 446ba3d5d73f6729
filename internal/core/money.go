// Package core holds the domain model of the ledger: accounts, categories,
// transactions, budgets, fixed-point money and the error taxonomy shared by
// the services built on top.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Money is a fixed-point currency amount stored as integer cents.
// All arithmetic in the ledger happens on cents; floats appear only at the
// display edge.
type Money struct {
	Cents int64
}

// ParseAmountToCents converts a decimal string to cents. It accepts an
// optional leading currency sign ("$") followed by digits and at most two
// decimal places, dot-separated. Anything else is a validation error: no
// commas, no signs, no bare fractions. Unlike rounding parsers, a third
// decimal digit is an error: the ledger stores exactly what the user typed.
//
// Examples:
//
//	ParseAmountToCents("12.34")  -> 1234, nil
//	ParseAmountToCents("$12.3")  -> 1230, nil
//	ParseAmountToCents("12.345") -> 0, ValidationError
//	ParseAmountToCents("-5")     -> 0, ValidationError
func ParseAmountToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		return 0, Validationf("amount is required")
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, Validationf("amount must not carry a sign: %q", s)
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, Validationf("invalid amount %q", s)
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		return 0, Validationf("invalid amount %q", s)
	}
	if len(fracPart) > 2 {
		return 0, Validationf("amount %q has more than two decimal places", s)
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, Validationf("invalid amount %q", s)
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, Validationf("invalid amount %q", s)
	}
	// Prevent overflow when scaling to cents
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, Validationf("amount %q out of range", s)
	}
	var fracCents int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCents = d1 * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
		}
	}
	return iv*100 + fracCents, nil
}

// String renders the amount as a plain decimal with two places, e.g. "12.30"
// or "-0.05". Formatting for display lives at the presentation edge; this is
// the wire form.
func (m Money) String() string {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := fmt.Sprintf("%d.%02d", cents/100, cents%100)
	if neg {
		return "-" + s
	}
	return s
}

// Add returns m + o.
func (m Money) Add(o Money) Money { return Money{Cents: m.Cents + o.Cents} }

// Sub returns m - o.
func (m Money) Sub(o Money) Money { return Money{Cents: m.Cents - o.Cents} }

// Neg returns the amount with its sign flipped.
func (m Money) Neg() Money { return Money{Cents: -m.Cents} }

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool { return m.Cents < 0 }
