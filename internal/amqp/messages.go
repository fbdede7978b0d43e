package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/BistonN/Bills-bot/internal/core"
)

// dateLayout is the wire format for the transaction's logging date.
const dateLayout = "2006-01-02"

// TransactionMessage is the parsed expense the transcription and NLP
// collaborator publishes once a voice message has been understood.
// Amount travels as a decimal string to avoid float drift on the wire.
type TransactionMessage struct {
	Place     string    `json:"place"`
	Amount    string    `json:"amount"`
	Category  string    `json:"category"`
	Date      string    `json:"date"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTransactionMessage builds the wire message for a transaction
// logged on the given date.
func NewTransactionMessage(t core.Transaction, day core.Date) *TransactionMessage {
	return &TransactionMessage{
		Place:     t.Place,
		Amount:    t.Amount.String(),
		Category:  t.Category,
		Date:      day.Format(dateLayout),
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionMessageFromJSON creates a message from JSON bytes
func TransactionMessageFromJSON(data []byte) (*TransactionMessage, error) {
	var msg TransactionMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Parse converts the wire message into the domain transaction and its
// logging date, validating both.
func (m *TransactionMessage) Parse() (core.Transaction, core.Date, error) {
	amount, err := core.ParseAmount(m.Amount)
	if err != nil {
		return core.Transaction{}, core.Date{}, fmt.Errorf("parse amount: %w", err)
	}
	day, err := time.Parse(dateLayout, m.Date)
	if err != nil {
		return core.Transaction{}, core.Date{}, fmt.Errorf("parse date %q: %w", m.Date, err)
	}
	t := core.Transaction{Place: m.Place, Amount: amount, Category: m.Category}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, core.Date{}, err
	}
	return t, core.Date{Time: day}, nil
}
