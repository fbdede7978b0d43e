package core

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDateValidate(t *testing.T) {
	if err := NewDate(2025, 8, 19).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Date{Time: time.Time{}}).Validate(); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate for zero date, got %v", err)
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Place:    "Padaria",
		Amount:   decimal.RequireFromString("15.50"),
		Category: "comida",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	// Place may be empty, amount may be zero.
	free := Transaction{Amount: decimal.Zero, Category: "comida"}
	if err := free.Validate(); err != nil {
		t.Fatalf("expected ok for empty place and zero amount, got %v", err)
	}

	cases := []struct {
		name string
		tx   Transaction
		want error
	}{
		{"negative amount", Transaction{Amount: decimal.RequireFromString("-1"), Category: "c"}, ErrInvalidAmount},
		{"empty category", Transaction{Amount: decimal.NewFromInt(1), Category: ""}, ErrEmptyCategory},
		{"blank category", Transaction{Amount: decimal.NewFromInt(1), Category: "   "}, ErrEmptyCategory},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.tx.Validate(); !errors.Is(err, tc.want) {
				t.Errorf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"15.50", "15.5"},
		{"15,50", "15.5"},
		{" 7 ", "7"},
		{"0", "0"},
		{"1234.567", "1234.567"},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if err != nil {
			t.Fatalf("ParseAmount(%q): %v", tc.in, err)
		}
		if got.String() != tc.want {
			t.Errorf("ParseAmount(%q) = %s, want %s", tc.in, got.String(), tc.want)
		}
	}
}

func TestParseAmountInvalid(t *testing.T) {
	for _, in := range []string{"", "  ", "abc", "-3.50", "1.2.3"} {
		if _, err := ParseAmount(in); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("ParseAmount(%q) err = %v, want ErrInvalidAmount", in, err)
		}
	}
}
