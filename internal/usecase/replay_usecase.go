package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/paymentsengine/internal/domain"
	"github.com/iho/paymentsengine/internal/infrastructure/metrics"
)

// ReplayUseCase feeds a transaction source through a ledger and hands the
// resulting balances to a sink.
type ReplayUseCase struct {
	ledger       Ledger
	idGen        IDGenerator
	logger       zerolog.Logger
	metrics      *metrics.Metrics
	sortByClient bool
}

func NewReplayUseCase(
	ledger Ledger,
	idGen IDGenerator,
	logger zerolog.Logger,
	metrics *metrics.Metrics,
	sortByClient bool,
) *ReplayUseCase {
	return &ReplayUseCase{
		ledger:       ledger,
		idGen:        idGen,
		logger:       logger,
		metrics:      metrics,
		sortByClient: sortByClient,
	}
}

// ReplaySummary describes a completed run.
type ReplaySummary struct {
	RunID    string
	Events   int
	Accounts int
	Duration time.Duration
}

// Replay applies every transaction of source, in order, then writes the
// accounts to sink. Any fatal error aborts the run before the sink is called,
// so no partial report is ever produced.
func (uc *ReplayUseCase) Replay(ctx context.Context, source TransactionSource, sink AccountSink) (*ReplaySummary, error) {
	start := time.Now()
	runID := uc.idGen.Generate()
	log := uc.logger.With().Str("run_id", runID).Logger()

	log.Info().Msg("replay started")

	events, err := uc.applyAll(ctx, source)
	if err != nil {
		return nil, uc.fail(log, events, err)
	}

	accounts, err := uc.ledger.Accounts()
	if err != nil {
		return nil, uc.fail(log, events, fmt.Errorf("export accounts: %w", err))
	}

	if uc.sortByClient {
		domain.SortByClient(accounts)
	}

	if err := sink.WriteAccounts(accounts); err != nil {
		return nil, uc.fail(log, events, fmt.Errorf("write accounts: %w", err))
	}

	summary := &ReplaySummary{
		RunID:    runID,
		Events:   events,
		Accounts: len(accounts),
		Duration: time.Since(start),
	}

	if uc.metrics != nil {
		uc.metrics.ReplayDuration.Observe(summary.Duration.Seconds())
	}

	log.Info().
		Int("events", summary.Events).
		Int("accounts", summary.Accounts).
		Dur("duration", summary.Duration).
		Msg("replay completed")

	return summary, nil
}

func (uc *ReplayUseCase) applyAll(ctx context.Context, source TransactionSource) (int, error) {
	events := 0
	for {
		if err := ctx.Err(); err != nil {
			return events, err
		}

		tx, err := source.Next()
		if errors.Is(err, io.EOF) {
			return events, nil
		}
		if err != nil {
			return events, fmt.Errorf("read transaction: %w", err)
		}

		if err := uc.ledger.Apply(tx); err != nil {
			return events, err
		}
		events++
	}
}

func (uc *ReplayUseCase) fail(log zerolog.Logger, events int, err error) error {
	if uc.metrics != nil {
		uc.metrics.ReplayFailures.Inc()
	}
	log.Error().Err(err).Int("events", events).Msg("replay aborted")
	return err
}
