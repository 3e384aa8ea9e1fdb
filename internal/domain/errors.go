package domain

import "errors"

var (
	// Fatal errors: the input cannot be processed any further.
	ErrMalformedTransaction = errors.New("malformed transaction")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrAmountOverflow       = errors.New("amount overflow")

	// Account errors
	ErrAccountLocked     = errors.New("account is locked")
	ErrInsufficientFunds = errors.New("insufficient available funds")
	ErrInsufficientHeld  = errors.New("insufficient held funds")

	// Transaction history errors
	ErrDuplicateTransaction     = errors.New("transaction id already used")
	ErrTransactionNotFound      = errors.New("referenced deposit not found")
	ErrClientMismatch           = errors.New("referenced deposit belongs to another client")
	ErrInvalidDisputeTransition = errors.New("invalid dispute state transition")
)

var rejections = []error{
	ErrAccountLocked,
	ErrInsufficientFunds,
	ErrInsufficientHeld,
	ErrDuplicateTransaction,
	ErrTransactionNotFound,
	ErrClientMismatch,
	ErrInvalidDisputeTransition,
}

// IsRejection reports whether err is a business-rule rejection: the event is
// well-formed but one of its preconditions failed, so it is discarded and
// processing continues.
func IsRejection(err error) bool {
	for _, target := range rejections {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// RejectionReason returns a short, stable label for a rejection, suitable for
// metric labels. Non-rejections map to "fatal".
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrAccountLocked):
		return "account_locked"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrInsufficientHeld):
		return "insufficient_held"
	case errors.Is(err, ErrDuplicateTransaction):
		return "duplicate_tx"
	case errors.Is(err, ErrTransactionNotFound):
		return "tx_not_found"
	case errors.Is(err, ErrClientMismatch):
		return "client_mismatch"
	case errors.Is(err, ErrInvalidDisputeTransition):
		return "invalid_dispute_state"
	default:
		return "fatal"
	}
}
