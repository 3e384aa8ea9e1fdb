package usecase

import (
	"github.com/iho/paymentsengine/internal/domain"
)

// TransactionSource yields parsed transactions in arrival order.
// Next returns io.EOF once the source is exhausted; any other error is fatal.
type TransactionSource interface {
	Next() (domain.Transaction, error)
}

// AccountSink receives the final account snapshots.
type AccountSink interface {
	WriteAccounts(accounts []domain.AccountSnapshot) error
}

// Ledger applies transactions and reports balances.
type Ledger interface {
	// Apply returns a non-nil error only for fatal input; rule violations are discarded.
	Apply(tx domain.Transaction) error
	Accounts() ([]domain.AccountSnapshot, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
