// Package money provides fixed-point monetary arithmetic for the wallet ledger.
//
// Amounts are persisted as base-10 strings with exactly two fractional digits.
// All arithmetic happens on scaled integers (minor units), so amounts that are
// representable with two decimal digits never pick up float drift. The only
// place precision can be lost is the rounding to the minor-unit boundary in
// Parse and Mul, and that rounding is always half-away-from-zero.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits every amount carries.
const Scale = 2

// Amount is an immutable monetary value with two fractional digits.
type Amount struct {
	d decimal.Decimal
}

// Parse converts a decimal string into an Amount, rounding half-away-from-zero
// to two fractional digits. It rejects anything that is not a plain decimal
// number.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Amount{d: d.Round(Scale)}, nil
}

// MustParse is Parse for trusted inputs (constants, already-persisted values).
// It panics on malformed input.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Zero returns the zero amount.
func Zero() Amount {
	return Amount{d: decimal.Zero}
}

// FromMinorUnits builds an Amount from an integer count of minor units (cents).
func FromMinorUnits(n int64) Amount {
	return Amount{d: decimal.New(n, -Scale)}
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return Amount{d: a.d.Add(b.d)}
}

// Sub returns a - b.
func (a Amount) Sub(b Amount) Amount {
	return Amount{d: a.d.Sub(b.d)}
}

// Mul returns a × m rounded half-away-from-zero to two fractional digits.
// Used for wagering requirements (grant × multiplier).
func (a Amount) Mul(m Amount) Amount {
	return Amount{d: a.d.Mul(m.d).Round(Scale)}
}

// Neg returns -a.
func (a Amount) Neg() Amount {
	return Amount{d: a.d.Neg()}
}

// Abs returns |a|.
func (a Amount) Abs() Amount {
	return Amount{d: a.d.Abs()}
}

// Cmp returns -1, 0 or 1 when a is respectively less than, equal to or
// greater than b.
func (a Amount) Cmp(b Amount) int {
	return a.d.Cmp(b.d)
}

// LessThan reports a < b.
func (a Amount) LessThan(b Amount) bool {
	return a.d.Cmp(b.d) < 0
}

// GreaterOrEqual reports a >= b.
func (a Amount) GreaterOrEqual(b Amount) bool {
	return a.d.Cmp(b.d) >= 0
}

// IsNegative reports a < 0.
func (a Amount) IsNegative() bool {
	return a.d.IsNegative()
}

// IsPositive reports a > 0.
func (a Amount) IsPositive() bool {
	return a.d.IsPositive()
}

// IsZero reports a == 0.
func (a Amount) IsZero() bool {
	return a.d.IsZero()
}

// MinorUnits returns the amount as an integer count of minor units.
func (a Amount) MinorUnits() int64 {
	return a.d.Shift(Scale).IntPart()
}

// String formats the amount with exactly two fractional digits. This is the
// canonical persisted representation.
func (a Amount) String() string {
	return a.d.StringFixed(Scale)
}
