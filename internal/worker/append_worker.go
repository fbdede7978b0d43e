// Package worker consumes parsed transactions and drives the ledger
// append engine, journaling every successful append.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/BistonN/Bills-bot/internal/amqp"
	"github.com/BistonN/Bills-bot/internal/core"
	"github.com/BistonN/Bills-bot/internal/ledger"
	"github.com/BistonN/Bills-bot/internal/storage"
)

type AppendWorker struct {
	appender *ledger.Appender
	journal  *storage.Journal
}

func NewAppendWorker(appender *ledger.Appender, journal *storage.Journal) *AppendWorker {
	return &AppendWorker{appender: appender, journal: journal}
}

// HandleTransactionMessage processes one message from the queue.
// Malformed messages are dropped after logging, since requeueing them
// can never succeed. Append failures are returned to the consumer,
// which requeues the delivery; the queue is the retry policy.
func (w *AppendWorker) HandleTransactionMessage(ctx context.Context, msg *amqp.TransactionMessage) error {
	t, day, err := msg.Parse()
	if err != nil {
		slog.ErrorContext(ctx, "Discarding malformed transaction message",
			"error", err,
			"category", msg.Category,
			"date", msg.Date)
		return nil
	}

	res, err := w.appender.PostTransaction(ctx, t, day)
	if err != nil {
		return fmt.Errorf("post transaction: %w", err)
	}

	if w.journal != nil {
		// The row is already in the spreadsheet; a journal failure
		// must not requeue the message and append a duplicate.
		if _, err := w.journal.Record(ctx, t, res); err != nil {
			slog.ErrorContext(ctx, "Failed to journal append",
				"error", err, "period", res.Period)
		}
	}

	return nil
}

// ReportJournalTotals periodically logs how many appends the current
// period has accumulated. Runs until the context is cancelled.
func (w *AppendWorker) ReportJournalTotals(ctx context.Context, interval time.Duration) error {
	if w.journal == nil {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			now := time.Now()
			period, err := ledger.TargetLabel(core.NewDate(now.Year(), int(now.Month()), now.Day()))
			if err != nil {
				continue
			}
			n, err := w.journal.CountByPeriod(ctx, period)
			if err != nil {
				slog.WarnContext(ctx, "Failed to read journal totals", "error", err)
				continue
			}
			slog.InfoContext(ctx, "Journal totals", "period", period, "appends", n)
		}
	}
}
