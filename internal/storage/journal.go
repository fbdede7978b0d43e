// Package storage keeps a local append journal: one row per
// transaction successfully written to the ledger, with the period tab
// it landed in. The journal is an audit trail; the spreadsheet remains
// the source of truth.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BistonN/Bills-bot/internal/core"
	"github.com/BistonN/Bills-bot/internal/ledger"

	_ "modernc.org/sqlite"
)

type Journal struct {
	db *sql.DB
}

// Entry is one journaled append.
type Entry struct {
	ID         int64
	Place      string
	Amount     string
	Category   string
	Period     string
	RowNumber  int64
	AppendedAt time.Time
}

func NewJournal(dbPath string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Journal{db: db}, nil
}

func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

// Record journals one successful append.
func (j *Journal) Record(ctx context.Context, t core.Transaction, res ledger.AppendResult) (int64, error) {
	result, err := j.db.ExecContext(ctx,
		`INSERT INTO ledger_entries (place, amount, category, period_label, row_number, appended_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.Place, t.Amount.String(), strings.ToUpper(t.Category), res.Period, res.RowNum,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("insert journal entry: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("journal entry id: %w", err)
	}

	slog.InfoContext(ctx, "Journaled ledger append",
		"id", id,
		"period", res.Period,
		"place", t.Place,
		"amount", t.Amount.String())

	return id, nil
}

// ListByPeriod returns all journaled appends for a period label, in
// append order.
func (j *Journal) ListByPeriod(ctx context.Context, period string) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, place, amount, category, period_label, row_number, appended_at
		 FROM ledger_entries WHERE period_label = ? ORDER BY id`,
		period)
	if err != nil {
		return nil, fmt.Errorf("query journal entries: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e  Entry
			at string
		)
		if err := rows.Scan(&e.ID, &e.Place, &e.Amount, &e.Category, &e.Period, &e.RowNumber, &at); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		// appended_at is written as RFC 3339; rows inserted by hand
		// may carry the sqlite CURRENT_TIMESTAMP format instead.
		if ts, err := time.Parse(time.RFC3339, at); err == nil {
			e.AppendedAt = ts
		} else if ts, err := time.Parse("2006-01-02 15:04:05", at); err == nil {
			e.AppendedAt = ts
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal entries: %w", err)
	}
	return out, nil
}

// CountByPeriod returns how many appends were journaled for a period.
func (j *Journal) CountByPeriod(ctx context.Context, period string) (int64, error) {
	var n int64
	err := j.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ledger_entries WHERE period_label = ?`, period).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count journal entries: %w", err)
	}
	return n, nil
}
