package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisputeState_Next(t *testing.T) {
	tests := []struct {
		from        DisputeState
		action      DisputeAction
		want        DisputeState
		expectError bool
	}{
		{DisputeStateNormal, DisputeActionDispute, DisputeStateDisputed, false},
		{DisputeStateNormal, DisputeActionResolve, DisputeStateNormal, true},
		{DisputeStateNormal, DisputeActionChargeback, DisputeStateNormal, true},
		{DisputeStateDisputed, DisputeActionDispute, DisputeStateDisputed, true},
		{DisputeStateDisputed, DisputeActionResolve, DisputeStateResolved, false},
		{DisputeStateDisputed, DisputeActionChargeback, DisputeStateChargedBack, false},
		{DisputeStateResolved, DisputeActionDispute, DisputeStateResolved, true},
		{DisputeStateResolved, DisputeActionResolve, DisputeStateResolved, true},
		{DisputeStateResolved, DisputeActionChargeback, DisputeStateResolved, true},
		{DisputeStateChargedBack, DisputeActionDispute, DisputeStateChargedBack, true},
		{DisputeStateChargedBack, DisputeActionResolve, DisputeStateChargedBack, true},
		{DisputeStateChargedBack, DisputeActionChargeback, DisputeStateChargedBack, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+string(tt.action), func(t *testing.T) {
			got, err := tt.from.Next(tt.action)
			if tt.expectError {
				assert.ErrorIs(t, err, ErrInvalidDisputeTransition)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewDepositRecord(t *testing.T) {
	rec := NewDepositRecord(9, 2, MustParseAmount("3.5"))
	assert.Equal(t, TxID(9), rec.TxID)
	assert.Equal(t, ClientID(2), rec.Client)
	assert.Equal(t, DisputeStateNormal, rec.State)
}
