package lifecycle

import (
	"github.com/shopspring/decimal"
)

// InvalidAmountError reports a monetary value that fails validation.
type InvalidAmountError struct {
	Field  string
	Reason string
}

func (e *InvalidAmountError) Error() string {
	return e.Field + " " + e.Reason
}

// Normalize rejects negative values and rounds to 2 decimal places
// (half-up). A nil value normalizes to zero.
func Normalize(val *decimal.Decimal, field string) (decimal.Decimal, error) {
	if val == nil {
		return decimal.Zero, nil
	}
	if val.IsNegative() {
		return decimal.Zero, &InvalidAmountError{Field: field, Reason: "must be >= 0"}
	}
	return val.Round(2), nil
}

// Refund computes the refund amount: normalize(amount) - normalize(less).
// Fails when less exceeds amount.
func Refund(amount, less *decimal.Decimal) (decimal.Decimal, error) {
	a, err := Normalize(amount, "amountRupees")
	if err != nil {
		return decimal.Zero, err
	}
	l, err := Normalize(less, "lessRupees")
	if err != nil {
		return decimal.Zero, err
	}
	if l.GreaterThan(a) {
		return decimal.Zero, &InvalidAmountError{Field: "lessRupees", Reason: "cannot exceed amountRupees"}
	}
	return a.Sub(l).Round(2), nil
}
