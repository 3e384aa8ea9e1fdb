package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountPrecision is the number of fractional digits an Amount carries.
const AmountPrecision = 4

// maxInputScale bounds the fractional digits, trailing zeros included, that
// ParseAmount will look at.
const maxInputScale = 18

// Amount is a fixed-point monetary value stored as ten-thousandths of a unit.
type Amount int64

// ZeroAmount is the additive identity.
const ZeroAmount Amount = 0

// NewAmountFromUnits builds an Amount from a raw count of ten-thousandths.
func NewAmountFromUnits(units int64) Amount {
	return Amount(units)
}

// ParseAmount parses a decimal string such as "1.5" or "0.0001".
// Values with more than four fractional digits are rejected rather than rounded.
// Exponent notation is not accepted.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidAmount)
	}
	if strings.ContainsAny(s, "eE") {
		return 0, fmt.Errorf("%w: %q uses exponent notation", ErrInvalidAmount, s)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.Exponent() < -maxInputScale {
		return 0, fmt.Errorf("%w: %q has too many fractional digits", ErrInvalidAmount, s)
	}

	scaled := d.Shift(AmountPrecision)
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("%w: %q has more than %d fractional digits", ErrInvalidAmount, s, AmountPrecision)
	}

	bi := scaled.BigInt()
	if !bi.IsInt64() {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidAmount, s)
	}

	return Amount(bi.Int64()), nil
}

// MustParseAmount is ParseAmount for literals known to be valid. It panics otherwise.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Add returns a+b, or ErrAmountOverflow.
func (a Amount) Add(b Amount) (Amount, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, fmt.Errorf("%w: %s + %s", ErrAmountOverflow, a, b)
	}
	return a + b, nil
}

// Sub returns a-b, or ErrAmountOverflow.
func (a Amount) Sub(b Amount) (Amount, error) {
	if (b < 0 && a > math.MaxInt64+b) || (b > 0 && a < math.MinInt64+b) {
		return 0, fmt.Errorf("%w: %s - %s", ErrAmountOverflow, a, b)
	}
	return a - b, nil
}

func (a Amount) LessThan(b Amount) bool { return a < b }

func (a Amount) IsZero() bool        { return a == 0 }
func (a Amount) IsPositive() bool    { return a > 0 }
func (a Amount) IsNegative() bool    { return a < 0 }
func (a Amount) IsNonNegative() bool { return a >= 0 }

// Decimal converts the amount to an exact decimal.Decimal.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -AmountPrecision)
}

// String renders the amount without trailing zeros, e.g. "1.5" or "0".
func (a Amount) String() string {
	return a.Decimal().String()
}
