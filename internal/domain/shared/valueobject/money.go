package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/eventops/backend/internal/domain/shared"
)

// Money is a monetary amount in paise (minor units of INR).
// All internal arithmetic is exact integer arithmetic; fractional results
// only appear transiently inside derivations and are rounded exactly once
// per derived amount via RoundPaise.
type Money int64

// MaxRupees bounds the major-unit amounts accepted at the boundary.
// Keeps paise arithmetic far away from int64 overflow.
const MaxRupees = 1_000_000_000_000

var hundred = decimal.NewFromInt(100)

// NewMoneyFromPaise wraps an already-minor-unit amount
func NewMoneyFromPaise(paise int64) Money {
	return Money(paise)
}

// NewMoneyFromRupees converts a major-unit decimal amount into paise.
// The fractional paise remainder, if any, is rounded half up.
// Rejects negative and out-of-range amounts with INVALID_AMOUNT.
func NewMoneyFromRupees(rupees decimal.Decimal) (Money, error) {
	if rupees.IsNegative() {
		return 0, shared.NewDomainError(shared.ErrCodeInvalidAmount,
			fmt.Sprintf("amount must not be negative, got %s", rupees.String()))
	}
	if rupees.GreaterThan(decimal.NewFromInt(MaxRupees)) {
		return 0, shared.NewDomainError(shared.ErrCodeInvalidAmount,
			fmt.Sprintf("amount %s exceeds the supported maximum", rupees.String()))
	}
	return RoundPaise(rupees.Mul(hundred)), nil
}

// NewMoneyFromFloat converts a major-unit float64 into paise.
// NaN and infinities are rejected with INVALID_AMOUNT.
func NewMoneyFromFloat(rupees float64) (Money, error) {
	if rupees != rupees || rupees > float64(MaxRupees) || rupees < -float64(MaxRupees) {
		return 0, shared.NewDomainError(shared.ErrCodeInvalidAmount,
			fmt.Sprintf("amount %v is not a finite value in range", rupees))
	}
	return NewMoneyFromRupees(decimal.NewFromFloat(rupees))
}

// RoundPaise rounds a decimal paise amount to whole paise, half up.
// This is the single rounding point for every derived amount.
// decimal.Round rounds half away from zero, which equals half-up for the
// non-negative amounts the domain produces.
func RoundPaise(paise decimal.Decimal) Money {
	return Money(paise.Round(0).IntPart())
}

// Paise returns the raw minor-unit amount
func (m Money) Paise() int64 {
	return int64(m)
}

// Rupees returns the major-unit decimal amount
func (m Money) Rupees() decimal.Decimal {
	return decimal.NewFromInt(int64(m)).Div(hundred)
}

// Decimal returns the paise amount as a decimal for transient derivation math
func (m Money) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(m))
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m == 0
}

// IsNegative returns true if the amount is below zero
func (m Money) IsNegative() bool {
	return m < 0
}

// Add returns the sum of both amounts
func (m Money) Add(other Money) Money {
	return m + other
}

// Sub returns the difference of both amounts
func (m Money) Sub(other Money) Money {
	return m - other
}

// ClampFloor returns the amount, or zero when the amount is negative
func (m Money) ClampFloor() Money {
	if m < 0 {
		return 0
	}
	return m
}

// MulDecimal multiplies by an arbitrary decimal factor and rounds once
func (m Money) MulDecimal(factor decimal.Decimal) Money {
	return RoundPaise(m.Decimal().Mul(factor))
}

// Percent derives the given percentage of the amount, rounded once
func (m Money) Percent(percent decimal.Decimal) Money {
	return RoundPaise(m.Decimal().Mul(percent).Div(hundred))
}

// String returns the major-unit representation with two decimal places
func (m Money) String() string {
	return m.Rupees().StringFixed(2)
}
