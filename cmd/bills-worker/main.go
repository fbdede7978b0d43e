package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/BistonN/Bills-bot/internal/amqp"
	"github.com/BistonN/Bills-bot/internal/cli"
	"github.com/BistonN/Bills-bot/internal/ledger"
	"github.com/BistonN/Bills-bot/internal/storage"
	"github.com/BistonN/Bills-bot/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting bills-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := cli.NewWorksheetStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize worksheet store", "error", err, "backend", cfg.WorksheetBackend)
		os.Exit(1)
	}

	journal, err := storage.NewJournal(cfg.JournalDBPath)
	if err != nil {
		logger.Error("Failed to initialize journal", "error", err, "path", cfg.JournalDBPath)
		os.Exit(1)
	}
	defer journal.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	appendWorker := worker.NewAppendWorker(ledger.NewAppender(store), journal)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeTransactions(ctx, appendWorker.HandleTransactionMessage)
	})
	g.Go(func() error {
		return appendWorker.ReportJournalTotals(ctx, cfg.ReportInterval)
	})

	logger.Info("bills-worker running",
		"backend", cfg.WorksheetBackend,
		"queue", cfg.AMQPQueue,
		"journal", cfg.JournalDBPath)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("bills-worker stopped gracefully")
}
