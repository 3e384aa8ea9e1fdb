package domain

import (
	"fmt"
	"strings"
)

type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeDispute    TransactionType = "dispute"
	TransactionTypeResolve    TransactionType = "resolve"
	TransactionTypeChargeback TransactionType = "chargeback"
)

// ParseTransactionType maps a type tag (case-insensitive) to a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case TransactionTypeDeposit, TransactionTypeWithdrawal,
		TransactionTypeDispute, TransactionTypeResolve, TransactionTypeChargeback:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown transaction type %q", ErrMalformedTransaction, s)
}

// RequiresAmount reports whether the type moves funds and must carry an amount.
func (t TransactionType) RequiresAmount() bool {
	return t == TransactionTypeDeposit || t == TransactionTypeWithdrawal
}

// IsDisputeFamily reports whether the type references a prior deposit.
func (t TransactionType) IsDisputeFamily() bool {
	return t == TransactionTypeDispute || t == TransactionTypeResolve || t == TransactionTypeChargeback
}

// Transaction is a single parsed event of the input stream.
// For deposits and withdrawals TxID is a new id; for the dispute family it
// references an earlier deposit.
type Transaction struct {
	Type   TransactionType
	Client ClientID
	TxID   TxID
	Amount *Amount
}

// Validate checks the structural shape of the event. A failure is fatal for the run.
func (t Transaction) Validate() error {
	switch {
	case t.Type.RequiresAmount():
		if t.Amount == nil {
			return fmt.Errorf("%w: %s %d has no amount", ErrMalformedTransaction, t.Type, t.TxID)
		}
		if !t.Amount.IsPositive() {
			return fmt.Errorf("%w: %s %d amount must be positive, got %s", ErrMalformedTransaction, t.Type, t.TxID, t.Amount)
		}
	case t.Type.IsDisputeFamily():
		if t.Amount != nil {
			return fmt.Errorf("%w: %s %d must not carry an amount", ErrMalformedTransaction, t.Type, t.TxID)
		}
	default:
		return fmt.Errorf("%w: unknown transaction type %q", ErrMalformedTransaction, t.Type)
	}
	return nil
}

// Deposit, Withdrawal, Dispute, Resolve and Chargeback build well-formed events.

func Deposit(client ClientID, tx TxID, amount Amount) Transaction {
	return Transaction{Type: TransactionTypeDeposit, Client: client, TxID: tx, Amount: &amount}
}

func Withdrawal(client ClientID, tx TxID, amount Amount) Transaction {
	return Transaction{Type: TransactionTypeWithdrawal, Client: client, TxID: tx, Amount: &amount}
}

func Dispute(client ClientID, tx TxID) Transaction {
	return Transaction{Type: TransactionTypeDispute, Client: client, TxID: tx}
}

func Resolve(client ClientID, tx TxID) Transaction {
	return Transaction{Type: TransactionTypeResolve, Client: client, TxID: tx}
}

func Chargeback(client ClientID, tx TxID) Transaction {
	return Transaction{Type: TransactionTypeChargeback, Client: client, TxID: tx}
}
