package domain

// ClientID identifies the owner of an account.
type ClientID uint16

// Account is the balance state of a single client.
// Total is always derived from Available and Held.
type Account struct {
	Client    ClientID
	Available Amount
	Held      Amount
	Locked    bool
}

// NewAccount returns a zero-balance, unlocked account.
func NewAccount(client ClientID) *Account {
	return &Account{Client: client}
}

// Total returns Available + Held.
func (a *Account) Total() (Amount, error) {
	return a.Available.Add(a.Held)
}

// CreditAvailable adds amount to the available balance.
func (a *Account) CreditAvailable(amount Amount) error {
	available, err := a.Available.Add(amount)
	if err != nil {
		return err
	}
	// total must stay representable as well
	if _, err := available.Add(a.Held); err != nil {
		return err
	}
	a.Available = available
	return nil
}

// DebitAvailable removes amount from the available balance.
func (a *Account) DebitAvailable(amount Amount) error {
	if a.Available.LessThan(amount) {
		return ErrInsufficientFunds
	}
	available, err := a.Available.Sub(amount)
	if err != nil {
		return err
	}
	a.Available = available
	return nil
}

// MoveAvailableToHeld freezes amount of the available balance.
func (a *Account) MoveAvailableToHeld(amount Amount) error {
	if a.Available.LessThan(amount) {
		return ErrInsufficientFunds
	}
	available, err := a.Available.Sub(amount)
	if err != nil {
		return err
	}
	held, err := a.Held.Add(amount)
	if err != nil {
		return err
	}
	a.Available, a.Held = available, held
	return nil
}

// MoveHeldToAvailable releases amount of the held balance.
func (a *Account) MoveHeldToAvailable(amount Amount) error {
	if a.Held.LessThan(amount) {
		return ErrInsufficientHeld
	}
	held, err := a.Held.Sub(amount)
	if err != nil {
		return err
	}
	available, err := a.Available.Add(amount)
	if err != nil {
		return err
	}
	a.Available, a.Held = available, held
	return nil
}

// ForfeitHeld removes amount from the held balance, and with it from the total.
// Held is not checked against amount and may go negative.
func (a *Account) ForfeitHeld(amount Amount) error {
	held, err := a.Held.Sub(amount)
	if err != nil {
		return err
	}
	a.Held = held
	return nil
}

// Lock freezes the account. It never unlocks.
func (a *Account) Lock() {
	a.Locked = true
}

// Snapshot returns the exported view of the account.
func (a *Account) Snapshot() (AccountSnapshot, error) {
	total, err := a.Total()
	if err != nil {
		return AccountSnapshot{}, err
	}
	return AccountSnapshot{
		Client:    a.Client,
		Available: a.Available,
		Held:      a.Held,
		Total:     total,
		Locked:    a.Locked,
	}, nil
}
