package amqp

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BistonN/Bills-bot/internal/core"
)

func TestTransactionMessageRoundTrip(t *testing.T) {
	tx := core.Transaction{
		Place:    "Padaria",
		Amount:   decimal.RequireFromString("15.50"),
		Category: "comida",
	}
	msg := NewTransactionMessage(tx, core.NewDate(2025, 8, 19))

	if msg.Amount != "15.5" {
		t.Errorf("Amount on wire = %q, want \"15.5\"", msg.Amount)
	}
	if msg.Date != "2025-08-19" {
		t.Errorf("Date on wire = %q, want \"2025-08-19\"", msg.Date)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	parsed, err := TransactionMessageFromJSON(body)
	if err != nil {
		t.Fatalf("TransactionMessageFromJSON: %v", err)
	}

	gotTx, gotDate, err := parsed.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if gotTx.Place != tx.Place || gotTx.Category != tx.Category {
		t.Errorf("parsed transaction = %+v, want %+v", gotTx, tx)
	}
	if !gotTx.Amount.Equal(tx.Amount) {
		t.Errorf("parsed amount = %s, want %s", gotTx.Amount, tx.Amount)
	}
	if gotDate.Year() != 2025 || gotDate.Month() != 8 || gotDate.Day() != 19 {
		t.Errorf("parsed date = %v", gotDate)
	}
}

func TestTransactionMessageParseErrors(t *testing.T) {
	cases := []struct {
		name string
		msg  TransactionMessage
		want error
	}{
		{
			name: "bad amount",
			msg:  TransactionMessage{Amount: "abc", Category: "comida", Date: "2025-08-19"},
			want: core.ErrInvalidAmount,
		},
		{
			name: "negative amount",
			msg:  TransactionMessage{Amount: "-5", Category: "comida", Date: "2025-08-19"},
			want: core.ErrInvalidAmount,
		},
		{
			name: "empty category",
			msg:  TransactionMessage{Amount: "5", Category: "", Date: "2025-08-19"},
			want: core.ErrEmptyCategory,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := tc.msg.Parse()
			if !errors.Is(err, tc.want) {
				t.Errorf("Parse() err = %v, want %v", err, tc.want)
			}
		})
	}

	bad := TransactionMessage{Amount: "5", Category: "comida", Date: "19/08/2025"}
	if _, _, err := bad.Parse(); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestTransactionMessageCommaAmount(t *testing.T) {
	msg := TransactionMessage{
		Place:     "Padaria",
		Amount:    "15,50",
		Category:  "comida",
		Date:      "2025-08-19",
		Timestamp: time.Now(),
	}
	tx, _, err := msg.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !tx.Amount.Equal(decimal.RequireFromString("15.50")) {
		t.Errorf("amount = %s, want 15.5", tx.Amount)
	}
}

func TestTransactionMessageFromInvalidJSON(t *testing.T) {
	if _, err := TransactionMessageFromJSON([]byte(`{"amount": 12`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
