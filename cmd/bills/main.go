// Command bills is the operator CLI for the expense ledger: append a
// transaction directly, enqueue one for the worker, or inspect the
// append journal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/BistonN/Bills-bot/internal/amqp"
	"github.com/BistonN/Bills-bot/internal/cli"
	"github.com/BistonN/Bills-bot/internal/core"
	"github.com/BistonN/Bills-bot/internal/ledger"
	"github.com/BistonN/Bills-bot/internal/storage"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Description string
	Run         func(args []string) error
}

func main() {
	commands := map[string]*Command{
		"append": {
			Name:        "append",
			Description: "Append one transaction to the ledger",
			Run:         appendCmd,
		},
		"publish": {
			Name:        "publish",
			Description: "Enqueue one transaction for the append worker",
			Run:         publishCmd,
		},
		"list": {
			Name:        "list",
			Description: "List journaled appends for a period",
			Run:         listCmd,
		},
	}

	if len(os.Args) < 2 {
		usage(commands)
		os.Exit(2)
	}

	cmd, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		usage(commands)
		os.Exit(2)
	}

	if err := cmd.Run(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "bills %s: %v\n", cmd.Name, err)
		os.Exit(1)
	}
}

func usage(commands map[string]*Command) {
	fmt.Fprintln(os.Stderr, "usage: bills <command> [flags]")
	fmt.Fprintln(os.Stderr)
	for _, name := range []string{"append", "publish", "list"} {
		fmt.Fprintf(os.Stderr, "  %-8s %s\n", name, commands[name].Description)
	}
}

func transactionFlags(fs *flag.FlagSet) (place, amount, category, date *string) {
	place = fs.String("place", "", "where the expense happened")
	amount = fs.String("amount", "", "expense amount, e.g. 15.50 or 15,50")
	category = fs.String("category", "", "expense category")
	date = fs.String("date", time.Now().Format("2006-01-02"), "logging date (YYYY-MM-DD)")
	return
}

func parseTransaction(place, amount, category, date string) (core.Transaction, core.Date, error) {
	value, err := core.ParseAmount(amount)
	if err != nil {
		return core.Transaction{}, core.Date{}, err
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return core.Transaction{}, core.Date{}, fmt.Errorf("parse date %q: %w", date, err)
	}
	t := core.Transaction{Place: place, Amount: value, Category: category}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, core.Date{}, err
	}
	return t, core.Date{Time: day}, nil
}

func appendCmd(args []string) error {
	fs := flag.NewFlagSet("append", flag.ExitOnError)
	place, amount, category, date := transactionFlags(fs)
	fs.Parse(args)

	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	t, day, err := parseTransaction(*place, *amount, *category, *date)
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := cli.NewWorksheetStore(ctx, cfg, logger)
	if err != nil {
		return err
	}

	res, err := ledger.NewAppender(store).PostTransaction(ctx, t, day)
	if err != nil {
		return err
	}

	journal, err := storage.NewJournal(cfg.JournalDBPath)
	if err != nil {
		logger.Warn("Journal unavailable, append not journaled", "error", err)
	} else {
		defer journal.Close()
		if _, err := journal.Record(ctx, t, res); err != nil {
			logger.Warn("Failed to journal append", "error", err)
		}
	}

	fmt.Printf("Appended to %q (row %d): %v\n", res.Period, res.RowNum, res.Row)
	return nil
}

func publishCmd(args []string) error {
	fs := flag.NewFlagSet("publish", flag.ExitOnError)
	place, amount, category, date := transactionFlags(fs)
	fs.Parse(args)

	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	t, day, err := parseTransaction(*place, *amount, *category, *date)
	if err != nil {
		return err
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		return fmt.Errorf("connect AMQP: %w", err)
	}
	defer client.Close()

	if err := client.PublishTransaction(context.Background(), amqp.NewTransactionMessage(t, day)); err != nil {
		return err
	}

	fmt.Printf("Enqueued %q %s (%s) for %s\n", t.Place, t.Amount.String(), t.Category, day.Format("2006-01-02"))
	return nil
}

func listCmd(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	period := fs.String("period", "", "period label, e.g. ago/25 (default: today's target period)")
	fs.Parse(args)

	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	label := *period
	if label == "" {
		now := time.Now()
		var err error
		label, err = ledger.TargetLabel(core.NewDate(now.Year(), int(now.Month()), now.Day()))
		if err != nil {
			return err
		}
	}

	journal, err := storage.NewJournal(cfg.JournalDBPath)
	if err != nil {
		return err
	}
	defer journal.Close()

	entries, err := journal.ListByPeriod(context.Background(), label)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Printf("No journaled appends for %q\n", label)
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%-4d %-10s row %-4d %-12s %-10s %s\n",
			e.ID, e.Period, e.RowNumber, e.Place, e.Amount, e.Category)
	}
	return nil
}
