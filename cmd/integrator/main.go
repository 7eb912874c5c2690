package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/transaction-ledger-engine/internal/app"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/config"
	kafkaevents "github.com/sheikh-saqib/transaction-ledger-engine/internal/events/kafka"
	interfaces "github.com/sheikh-saqib/transaction-ledger-engine/internal/interfaces"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/ledger"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/logging"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/report"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/storage"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/storage/postgres"
)

var version = "1.0"

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("integrator", flag.ContinueOnError)
	flags.SetOutput(stderr)
	showVersion := flags.Bool("version", false, "print version and exit")
	flags.Usage = func() {
		fmt.Fprintln(stderr, "Processes a CSV file of payment transactions and prints the final state of every client account.")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Usage: integrator [--version] FILENAME")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if *showVersion {
		fmt.Fprintf(stdout, "integrator %s\n", version)
		return exitOK
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return exitFailure
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(stderr, "logger: %v\n", err)
		return exitFailure
	}
	defer logger.Sync()

	if err := process(ctx, cfg, flags.Arg(0), stdout, logger); err != nil {
		logger.Error("run failed", zap.Error(err))
		return exitFailure
	}
	return exitOK
}

func process(ctx context.Context, cfg config.Config, filename string, stdout io.Writer, logger *zap.Logger) error {
	input, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("couldn't read from %s: %w", filename, err)
	}
	defer input.Close()

	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID))

	store, closeStore, err := storage.NewTransactionStore(ctx, cfg, runID)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := closeStore(closeCtx); err != nil {
			logger.Warn("failed to release transaction store", zap.Error(err))
		}
	}()

	var publisher interfaces.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kp := kafkaevents.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kp.Close()
		publisher = kp
		logger.Info("publishing ledger events", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	ledgerService := ledger.NewLedger(store, logger)
	processor := app.NewProcessor(runID, ledgerService, publisher, logger)

	if _, err := processor.Run(ctx, input); err != nil {
		return err
	}

	snapshots := ledgerService.Snapshots()
	if err := report.NewWriter(stdout).WriteSnapshots(snapshots); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil
	}
	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close()

	exporter := postgres.NewPostgresSnapshotStore(db)
	if err := exporter.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate snapshot table: %w", err)
	}
	if err := exporter.ExportSnapshots(ctx, runID, snapshots); err != nil {
		return fmt.Errorf("export snapshots: %w", err)
	}
	logger.Info("snapshots exported", zap.Int("accounts", len(snapshots)))
	return nil
}
