// Package core holds the domain model of the finance tracker.
//
// Money is stored as integer cents everywhere. Amounts cross the wire
// as decimal strings ("12.34") so aggregation never touches binary
// floating point.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// Money is an exact monetary amount in cents.
type Money struct {
	Cents int64
}

// ParseCents converts a decimal string to cents with half-up rounding
// on the third decimal place. Both dot (12.34) and comma (12,34)
// separators are accepted; a single leading minus sign is allowed so
// the same parser serves balances.
//
// Returns ErrInvalidAmount for malformed input. A failed parse is an
// error, never a silent zero; zero-defaulting exists only in display
// helpers.
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	// A separator with nothing after it ("5.", "0.") is malformed.
	if len(parts) == 2 && fracPart == "" {
		return 0, ErrInvalidAmount
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}

	// First two fractional digits are cents; half-up on the third.
	var fracCents int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCents = d1 * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}

	cents := iv*100 + fracCents
	if neg {
		cents = -cents
	}
	return cents, nil
}

// ParseMoney wraps ParseCents into a Money value.
func ParseMoney(s string) (Money, error) {
	cents, err := ParseCents(s)
	if err != nil {
		return Money{}, err
	}
	return Money{Cents: cents}, nil
}

// MustMoney is a test helper; it panics on malformed input.
func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic("core: bad money literal " + strconv.Quote(s))
	}
	return m
}

// String renders the amount as a decimal string with two places and a
// dot separator, e.g. "33.34" or "-0.05".
func (m Money) String() string {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := strconv.FormatInt(cents/100, 10) + "." + pad2(cents%100)
	if neg {
		return "-" + s
	}
	return s
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{Cents: m.Cents - other.Cents}
}

// IsPositive reports whether the amount is strictly above zero.
func (m Money) IsPositive() bool { return m.Cents > 0 }

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// MarshalJSON renders the amount as a decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON parses a decimal string; bare JSON numbers are also
// accepted since some clients send them.
func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		m.Cents = 0
		return nil
	}
	cents, err := ParseCents(s)
	if err != nil {
		return err
	}
	m.Cents = cents
	return nil
}

// DisplayCents formats cents for dashboards, defaulting unparseable
// stored values to "0.00". Display only; persistence always validates.
func DisplayCents(s string) string {
	cents, err := ParseCents(s)
	if err != nil {
		return "0.00"
	}
	return Money{Cents: cents}.String()
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
