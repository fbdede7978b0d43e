package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/BistonN/Bills-bot/internal/sheets"
)

const (
	// HeaderRows is the protected header/formula region at the top of
	// every ledger tab, preserved verbatim when a tab is cloned.
	HeaderRows = 3

	// DefaultCols is the column capacity of a tab created without a
	// template to inherit from.
	DefaultCols = 20
)

// Provisioner lazily creates the worksheet a period's transactions are
// appended to. Every new period starts from the prior period's header
// and formula scaffolding so running totals carry forward, degrading
// to a blank tab when no predecessor exists.
type Provisioner struct {
	store sheets.WorksheetStore
}

func NewProvisioner(store sheets.WorksheetStore) *Provisioner {
	return &Provisioner{store: store}
}

// Ensure returns the worksheet titled target, creating it when absent.
// Idempotent for an existing tab. When target differs from current and
// the current-period tab exists, the new tab is a clone of it trimmed
// to the header region; otherwise a bare tab is created.
//
// Lookup and create are not atomic: two concurrent calls that both see
// the target as absent race, and the backend's title uniqueness
// constraint fails the loser with ErrWriteRejected. Callers serialize
// appends per ledger, or treat that error as retryable.
func (p *Provisioner) Ensure(ctx context.Context, target, current string) (sheets.Worksheet, error) {
	ws, err := p.store.FindByTitle(ctx, target)
	if err == nil {
		return ws, nil
	}
	if !errors.Is(err, sheets.ErrWorksheetNotFound) {
		return sheets.Worksheet{}, fmt.Errorf("look up %q: %w", target, err)
	}

	if target == current {
		// First transaction of a fresh period with no rotation in
		// flight: nothing to inherit.
		return p.createBare(ctx, target)
	}

	src, err := p.store.FindByTitle(ctx, current)
	if errors.Is(err, sheets.ErrWorksheetNotFound) {
		return p.createBare(ctx, target)
	}
	if err != nil {
		return sheets.Worksheet{}, fmt.Errorf("look up template %q: %w", current, err)
	}

	dup, err := p.store.Duplicate(ctx, src, target)
	if err != nil {
		return sheets.Worksheet{}, fmt.Errorf("clone %q into %q: %w", current, target, err)
	}
	if dup.Rows != HeaderRows {
		// Drop the template's data rows, keeping only the header
		// region. A failure here leaves the clone as-is for the
		// operator; no cleanup is attempted.
		dup, err = p.store.ResizeRows(ctx, dup, HeaderRows)
		if err != nil {
			return sheets.Worksheet{}, fmt.Errorf("trim %q to header: %w", target, err)
		}
	}
	slog.InfoContext(ctx, "Provisioned period tab from template",
		"period", target, "template", current, "rows", dup.Rows)
	return dup, nil
}

func (p *Provisioner) createBare(ctx context.Context, title string) (sheets.Worksheet, error) {
	ws, err := p.store.Create(ctx, title, HeaderRows, DefaultCols)
	if err != nil {
		return sheets.Worksheet{}, fmt.Errorf("create %q: %w", title, err)
	}
	slog.InfoContext(ctx, "Provisioned blank period tab", "period", title)
	return ws, nil
}
