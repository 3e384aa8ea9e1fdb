package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amt(s string) Amount { return MustParseAmount(s) }

func TestAccount_DebitAvailable(t *testing.T) {
	tests := []struct {
		name          string
		available     Amount
		debitAmount   Amount
		wantAvailable Amount
		expectError   error
	}{
		{
			name:          "debit less than available",
			available:     amt("100"),
			debitAmount:   amt("50"),
			wantAvailable: amt("50"),
		},
		{
			name:          "debit exact available",
			available:     amt("100"),
			debitAmount:   amt("100"),
			wantAvailable: ZeroAmount,
		},
		{
			name:          "debit more than available",
			available:     amt("100"),
			debitAmount:   amt("150"),
			wantAvailable: amt("100"),
			expectError:   ErrInsufficientFunds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{Client: 1, Available: tt.available}

			err := acc.DebitAvailable(tt.debitAmount)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantAvailable, acc.Available)
			assert.True(t, acc.Held.IsZero())
		})
	}
}

func TestAccount_CreditAvailable(t *testing.T) {
	acc := NewAccount(1)
	require.NoError(t, acc.CreditAvailable(amt("10")))
	assert.Equal(t, amt("10"), acc.Available)

	full := &Account{Available: NewAmountFromUnits(math.MaxInt64 - 1)}
	assert.ErrorIs(t, full.CreditAvailable(amt("1")), ErrAmountOverflow)
	assert.Equal(t, NewAmountFromUnits(math.MaxInt64-1), full.Available)

	// total = available + held must stay representable too
	split := &Account{Available: amt("1"), Held: NewAmountFromUnits(math.MaxInt64 - 15_000)}
	assert.ErrorIs(t, split.CreditAvailable(amt("1")), ErrAmountOverflow)
	assert.Equal(t, amt("1"), split.Available)
}

func TestAccount_HoldAndRelease(t *testing.T) {
	acc := &Account{Client: 1, Available: amt("10")}

	require.NoError(t, acc.MoveAvailableToHeld(amt("4")))
	assert.Equal(t, amt("6"), acc.Available)
	assert.Equal(t, amt("4"), acc.Held)

	total, err := acc.Total()
	require.NoError(t, err)
	assert.Equal(t, amt("10"), total)

	assert.ErrorIs(t, acc.MoveAvailableToHeld(amt("7")), ErrInsufficientFunds)
	assert.Equal(t, amt("6"), acc.Available)
	assert.Equal(t, amt("4"), acc.Held)

	assert.ErrorIs(t, acc.MoveHeldToAvailable(amt("5")), ErrInsufficientHeld)
	require.NoError(t, acc.MoveHeldToAvailable(amt("4")))
	assert.Equal(t, amt("10"), acc.Available)
	assert.True(t, acc.Held.IsZero())
}

func TestAccount_ForfeitHeld(t *testing.T) {
	acc := &Account{Client: 1, Available: amt("1"), Held: amt("5")}

	require.NoError(t, acc.ForfeitHeld(amt("5")))
	assert.True(t, acc.Held.IsZero())
	assert.Equal(t, amt("1"), acc.Available)

	// no sufficiency check: held is allowed to go negative
	require.NoError(t, acc.ForfeitHeld(amt("2")))
	assert.Equal(t, amt("-2"), acc.Held)

	total, err := acc.Total()
	require.NoError(t, err)
	assert.Equal(t, amt("-1"), total)
}

func TestAccount_Lock(t *testing.T) {
	acc := NewAccount(7)
	assert.False(t, acc.Locked)
	acc.Lock()
	acc.Lock()
	assert.True(t, acc.Locked)
}

func TestAccount_Snapshot(t *testing.T) {
	acc := &Account{Client: 3, Available: amt("1.5"), Held: amt("2"), Locked: true}

	snap, err := acc.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, AccountSnapshot{
		Client:    3,
		Available: amt("1.5"),
		Held:      amt("2"),
		Total:     amt("3.5"),
		Locked:    true,
	}, snap)
}
