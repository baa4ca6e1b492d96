package lifecycle

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		val     *decimal.Decimal
		want    string
		wantErr bool
	}{
		{name: "nil is zero", val: nil, want: "0"},
		{name: "rounds half up", val: dec("10.005"), want: "10.01"},
		{name: "rounds down below half", val: dec("10.004"), want: "10"},
		{name: "already two places", val: dec("99.90"), want: "99.9"},
		{name: "negative rejected", val: dec("-0.01"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.val, "amountRupees")
			if tt.wantErr {
				var invErr *InvalidAmountError
				if !errors.As(err, &invErr) {
					t.Fatalf("Normalize() err = %v, want InvalidAmountError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize() err = %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("Normalize() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRefund(t *testing.T) {
	got, err := Refund(dec("100.00"), dec("12.50"))
	if err != nil {
		t.Fatalf("Refund() err = %v", err)
	}
	if got.String() != "87.5" {
		t.Errorf("Refund() = %s, want 87.5", got)
	}

	if _, err := Refund(dec("10"), dec("20")); err == nil {
		t.Error("Refund() should fail when less exceeds amount")
	}
	if _, err := Refund(dec("-1"), dec("0")); err == nil {
		t.Error("Refund() should fail on negative amount")
	}

	// nil less treated as zero
	got, err = Refund(dec("42"), nil)
	if err != nil {
		t.Fatalf("Refund() err = %v", err)
	}
	if got.String() != "42" {
		t.Errorf("Refund() = %s, want 42", got)
	}
}
