package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iho/paymentsengine/internal/adapter/csvio"
	"github.com/iho/paymentsengine/internal/engine"
	"github.com/iho/paymentsengine/internal/infrastructure/config"
	"github.com/iho/paymentsengine/internal/infrastructure/idgen"
	"github.com/iho/paymentsengine/internal/infrastructure/logger"
	"github.com/iho/paymentsengine/internal/infrastructure/metrics"
	"github.com/iho/paymentsengine/internal/usecase"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		logLevel    string
		logFormat   string
		outputOrder string
		metricsFile string
	)

	rootCmd := &cobra.Command{
		Use:   "payments <transactions.csv>",
		Short: "Replay a transaction feed into client account balances",
		Long: `Reads deposits, withdrawals, disputes, resolves and chargebacks from a CSV
file, applies them in order and prints the resulting client accounts as CSV.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			flags := cmd.Flags()
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("log-format") {
				cfg.LogFormat = logFormat
			}
			if flags.Changed("order") {
				cfg.OutputOrder = outputOrder
			}
			if flags.Changed("metrics-file") {
				cfg.MetricsFile = metricsFile
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return run(cmd.Context(), cfg, args[0], stdout, stderr)
		},
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error, disabled)")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "console", "Log format (console, json)")
	rootCmd.Flags().StringVar(&outputOrder, "order", config.OutputOrderClient, "Account order in the report (client, arrival)")
	rootCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run")

	return rootCmd
}

func run(ctx context.Context, cfg *config.Config, path string, stdout, stderr io.Writer) error {
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: stderr}).
		With().Str("input", path).Logger()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	m := metrics.New()
	ledger := engine.New(log, m)
	uc := usecase.NewReplayUseCase(ledger, idgen.NewULIDGenerator(), log, m, cfg.OutputOrder == config.OutputOrderClient)

	if _, err := uc.Replay(ctx, csvio.NewReader(f), csvio.NewWriter(stdout)); err != nil {
		return err
	}

	if cfg.MetricsFile != "" {
		if err := writeMetrics(m, cfg.MetricsFile); err != nil {
			return err
		}
	}
	return nil
}

func writeMetrics(m *metrics.Metrics, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create metrics file: %w", err)
	}

	if err := m.WriteText(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
