package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/BistonN/Bills-bot/internal/core"
	"github.com/BistonN/Bills-bot/internal/sheets"
)

// AppendResult reports a successful append: the period the row landed
// in, the row values as written, and the 1-based row number.
type AppendResult struct {
	Period string
	Row    []any
	RowNum int
}

// AppendError is the single error surface of the appender. It carries
// the attempted period label for diagnostics and wraps the underlying
// cause, so errors.Is still reaches the store sentinels.
type AppendError struct {
	Period string
	Err    error
}

func (e *AppendError) Error() string {
	if e.Period == "" {
		return fmt.Sprintf("ledger append: %v", e.Err)
	}
	return fmt.Sprintf("ledger append to %q: %v", e.Period, e.Err)
}

func (e *AppendError) Unwrap() error { return e.Err }

// Appender orchestrates period naming, rotation and provisioning to
// append one transaction row per call. It holds no state across calls;
// each invocation is independent given (transaction, date, store).
type Appender struct {
	store       sheets.WorksheetStore
	provisioner *Provisioner
}

func NewAppender(store sheets.WorksheetStore) *Appender {
	return &Appender{store: store, provisioner: NewProvisioner(store)}
}

// PostTransaction appends one transaction to the period tab selected
// by the cutover rule for today, provisioning the tab when needed.
// Exactly one row is appended to exactly one worksheet; identical
// calls append duplicate rows on purpose, since repeated voice
// messages represent repeated real expenses. Nothing is retried here;
// retry policy belongs to the caller.
func (a *Appender) PostTransaction(ctx context.Context, t core.Transaction, today core.Date) (AppendResult, error) {
	if err := t.Validate(); err != nil {
		return AppendResult{}, &AppendError{Err: err}
	}
	if err := today.Validate(); err != nil {
		return AppendResult{}, &AppendError{Err: err}
	}

	current, err := core.CurrentLabel(today)
	if err != nil {
		return AppendResult{}, &AppendError{Err: err}
	}
	target, err := TargetLabel(today)
	if err != nil {
		return AppendResult{}, &AppendError{Err: err}
	}

	ws, err := a.provisioner.Ensure(ctx, target, current)
	if err != nil {
		return AppendResult{}, &AppendError{Period: target, Err: err}
	}

	row := []any{t.Place, t.Amount, strings.ToUpper(t.Category)}
	ws, err = a.store.AppendRow(ctx, ws, row)
	if err != nil {
		return AppendResult{}, &AppendError{Period: target, Err: err}
	}

	slog.InfoContext(ctx, "Transaction appended",
		"period", target,
		"place", t.Place,
		"amount", t.Amount.String(),
		"category", row[2],
		"row", ws.Rows)

	return AppendResult{Period: target, Row: row, RowNum: ws.Rows}, nil
}
