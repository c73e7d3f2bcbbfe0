package model

import (
	"fmt"
	"math"
	"strings"
)

// maxWhole guards the cents multiplication against int64 overflow.
const maxWhole = math.MaxInt64 / 100

// Money is an amount in integer cents. All arithmetic stays in integers;
// float64 appears only at the database boundary.
type Money struct {
	Cents int64
}

// ParseAmount converts user input like "120.50" to Money. Comma is accepted as
// the decimal separator. Digits beyond the second decimal place round half-up,
// so "12.345" becomes 12.35 and "12.344" becomes 12.34. Zero and negative
// amounts are rejected; direction lives in the transaction kind, not the sign.
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" || s == "." {
		return Money{}, fmt.Errorf("%w: empty amount", ErrInvalidAmount)
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	whole := parts[0]
	frac := ""
	if len(parts) == 2 {
		frac = parts[1]
	}

	var wholeVal int64
	for _, r := range whole {
		if r < '0' || r > '9' {
			return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
		if wholeVal > maxWhole/10 {
			return Money{}, fmt.Errorf("%w: %q is too large", ErrInvalidAmount, s)
		}
		wholeVal = wholeVal*10 + int64(r-'0')
	}
	if wholeVal > maxWhole {
		return Money{}, fmt.Errorf("%w: %q is too large", ErrInvalidAmount, s)
	}

	for _, r := range frac {
		if r < '0' || r > '9' {
			return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
	}

	var fracVal int64
	switch {
	case len(frac) == 0:
	case len(frac) == 1:
		fracVal = int64(frac[0]-'0') * 10
	default:
		fracVal = int64(frac[0]-'0')*10 + int64(frac[1]-'0')
		if len(frac) > 2 && frac[2] >= '5' {
			fracVal++
		}
	}

	cents := wholeVal*100 + fracVal
	if cents <= 0 {
		return Money{}, fmt.Errorf("%w: amount must be positive", ErrInvalidAmount)
	}
	return Money{Cents: cents}, nil
}

// MoneyFromFloat converts a database decimal to Money, rounding half away from
// zero to absorb binary representation error.
func MoneyFromFloat(f float64) Money {
	if f < 0 {
		return Money{Cents: -int64(math.Floor(-f*100 + 0.5))}
	}
	return Money{Cents: int64(math.Floor(f*100 + 0.5))}
}

// Float64 returns the amount in currency units for storage in a DECIMAL
// column. Aggregation must not happen on the float side.
func (m Money) Float64() float64 {
	return float64(m.Cents) / 100
}

func (m Money) String() string {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// Add returns m plus other.
func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}

// Sub returns m minus other. The result may be negative.
func (m Money) Sub(other Money) Money {
	return Money{Cents: m.Cents - other.Cents}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Cents == 0
}

// Validate rejects zero and negative amounts.
func (m Money) Validate() error {
	if m.Cents <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidAmount)
	}
	return nil
}
