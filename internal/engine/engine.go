// Package engine replays transaction events into per-client account balances.
//
// The engine is a synchronous, single-owner reducer: events must be applied in
// arrival order, and every event is either committed in full or discarded with
// no observable effect.
package engine

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iho/paymentsengine/internal/domain"
	"github.com/iho/paymentsengine/internal/infrastructure/metrics"
)

// Engine owns the account table and the deposit history.
// It is not safe for concurrent use.
type Engine struct {
	accounts map[domain.ClientID]*domain.Account
	order    []domain.ClientID

	deposits map[domain.TxID]*domain.DepositRecord
	usedTx   map[domain.TxID]struct{}

	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// New creates an empty engine. metrics may be nil.
func New(logger zerolog.Logger, m *metrics.Metrics) *Engine {
	return &Engine{
		accounts: make(map[domain.ClientID]*domain.Account),
		deposits: make(map[domain.TxID]*domain.DepositRecord),
		usedTx:   make(map[domain.TxID]struct{}),
		logger:   logger.With().Str("component", "engine").Logger(),
		metrics:  m,
	}
}

// Apply processes one event.
//
// Business-rule violations (locked account, insufficient funds, duplicate or
// unknown transaction id, client mismatch, invalid dispute transition) discard
// the event and return nil. A non-nil error is fatal: the event is malformed or
// an amount overflowed, and the run must be aborted.
func (e *Engine) Apply(tx domain.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	account := e.account(tx.Client)

	var err error
	switch tx.Type {
	case domain.TransactionTypeDeposit:
		err = e.deposit(account, tx)
	case domain.TransactionTypeWithdrawal:
		err = e.withdraw(account, tx)
	case domain.TransactionTypeDispute:
		err = e.dispute(account, tx)
	case domain.TransactionTypeResolve:
		err = e.resolve(account, tx)
	case domain.TransactionTypeChargeback:
		err = e.chargeback(account, tx)
	}

	if err == nil {
		if e.metrics != nil {
			e.metrics.TransactionsApplied.WithLabelValues(string(tx.Type)).Inc()
		}
		return nil
	}

	if domain.IsRejection(err) {
		e.logger.Debug().
			Err(err).
			Str("type", string(tx.Type)).
			Uint16("client", uint16(tx.Client)).
			Uint32("tx", uint32(tx.TxID)).
			Msg("transaction discarded")
		if e.metrics != nil {
			e.metrics.TransactionsRejected.WithLabelValues(string(tx.Type), domain.RejectionReason(err)).Inc()
		}
		return nil
	}

	return fmt.Errorf("apply %s %d for client %d: %w", tx.Type, tx.TxID, tx.Client, err)
}

// Accounts returns a snapshot of every account, in order of first appearance.
func (e *Engine) Accounts() ([]domain.AccountSnapshot, error) {
	snapshots := make([]domain.AccountSnapshot, 0, len(e.order))
	for _, client := range e.order {
		snap, err := e.accounts[client].Snapshot()
		if err != nil {
			return nil, fmt.Errorf("snapshot client %d: %w", client, err)
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, nil
}

// account returns the client's account, creating it on first reference.
func (e *Engine) account(client domain.ClientID) *domain.Account {
	if acc, ok := e.accounts[client]; ok {
		return acc
	}

	acc := domain.NewAccount(client)
	e.accounts[client] = acc
	e.order = append(e.order, client)

	if e.metrics != nil {
		e.metrics.AccountsCreated.Inc()
	}
	return acc
}

func (e *Engine) deposit(account *domain.Account, tx domain.Transaction) error {
	if _, used := e.usedTx[tx.TxID]; used {
		return domain.ErrDuplicateTransaction
	}
	if account.Locked {
		return domain.ErrAccountLocked
	}

	amount := *tx.Amount
	if err := account.CreditAvailable(amount); err != nil {
		return err
	}

	e.usedTx[tx.TxID] = struct{}{}
	e.deposits[tx.TxID] = domain.NewDepositRecord(tx.TxID, tx.Client, amount)
	return nil
}

func (e *Engine) withdraw(account *domain.Account, tx domain.Transaction) error {
	if _, used := e.usedTx[tx.TxID]; used {
		return domain.ErrDuplicateTransaction
	}
	if account.Locked {
		return domain.ErrAccountLocked
	}

	if err := account.DebitAvailable(*tx.Amount); err != nil {
		return err
	}

	e.usedTx[tx.TxID] = struct{}{}
	return nil
}

func (e *Engine) dispute(account *domain.Account, tx domain.Transaction) error {
	record, next, err := e.transition(tx, domain.DisputeActionDispute)
	if err != nil {
		return err
	}
	if account.Locked {
		return domain.ErrAccountLocked
	}

	if err := account.MoveAvailableToHeld(record.Amount); err != nil {
		return err
	}

	record.State = next
	return nil
}

func (e *Engine) resolve(account *domain.Account, tx domain.Transaction) error {
	record, next, err := e.transition(tx, domain.DisputeActionResolve)
	if err != nil {
		return err
	}
	if account.Locked {
		return domain.ErrAccountLocked
	}

	if err := account.MoveHeldToAvailable(record.Amount); err != nil {
		return err
	}

	record.State = next
	return nil
}

// chargeback is the only operation allowed on a locked account.
func (e *Engine) chargeback(account *domain.Account, tx domain.Transaction) error {
	record, next, err := e.transition(tx, domain.DisputeActionChargeback)
	if err != nil {
		return err
	}

	if err := account.ForfeitHeld(record.Amount); err != nil {
		return err
	}

	if !account.Locked && e.metrics != nil {
		e.metrics.AccountsLocked.Inc()
	}
	account.Lock()
	record.State = next
	return nil
}

// transition looks up the deposit referenced by a dispute-family event and
// computes its next state without committing it.
func (e *Engine) transition(tx domain.Transaction, action domain.DisputeAction) (*domain.DepositRecord, domain.DisputeState, error) {
	record, ok := e.deposits[tx.TxID]
	if !ok {
		return nil, "", domain.ErrTransactionNotFound
	}
	if record.Client != tx.Client {
		return nil, "", domain.ErrClientMismatch
	}

	next, err := record.State.Next(action)
	if err != nil {
		return nil, "", err
	}
	return record, next, nil
}
