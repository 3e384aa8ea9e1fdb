package domain

import "fmt"

// TxID identifies a transaction across the whole event stream.
type TxID uint32

type DisputeState string

const (
	DisputeStateNormal      DisputeState = "normal"
	DisputeStateDisputed    DisputeState = "disputed"
	DisputeStateResolved    DisputeState = "resolved"
	DisputeStateChargedBack DisputeState = "charged_back"
)

// DisputeAction is an event that drives a deposit through its dispute lifecycle.
type DisputeAction string

const (
	DisputeActionDispute    DisputeAction = "dispute"
	DisputeActionResolve    DisputeAction = "resolve"
	DisputeActionChargeback DisputeAction = "chargeback"
)

// Next returns the state reached by applying action, or ErrInvalidDisputeTransition.
//
//	normal   --dispute-->    disputed
//	disputed --resolve-->    resolved
//	disputed --chargeback--> charged_back
//
// resolved and charged_back are terminal.
func (s DisputeState) Next(action DisputeAction) (DisputeState, error) {
	switch {
	case s == DisputeStateNormal && action == DisputeActionDispute:
		return DisputeStateDisputed, nil
	case s == DisputeStateDisputed && action == DisputeActionResolve:
		return DisputeStateResolved, nil
	case s == DisputeStateDisputed && action == DisputeActionChargeback:
		return DisputeStateChargedBack, nil
	}
	return s, fmt.Errorf("%w: %s from %s", ErrInvalidDisputeTransition, action, s)
}

// DepositRecord remembers a committed deposit so it can later be disputed.
type DepositRecord struct {
	TxID   TxID
	Client ClientID
	Amount Amount
	State  DisputeState
}

// NewDepositRecord returns a record in the normal state.
func NewDepositRecord(tx TxID, client ClientID, amount Amount) *DepositRecord {
	return &DepositRecord{
		TxID:   tx,
		Client: client,
		Amount: amount,
		State:  DisputeStateNormal,
	}
}
