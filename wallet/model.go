package wallet

import (
	"time"

	"github.com/opalpay/opalcore/money"
)

const (
	// StatusActive marks a wallet accepting balance operations.
	StatusActive = "active"
)

// Wallet is an account-scoped monetary balance in a single currency. The
// balance is mutated only through ledger.Apply; persistence of the mutated
// wallet is the caller's responsibility.
type Wallet struct {
	ID        string
	OwnerID   string
	Balance   money.Money
	Status    string
	CreatedAt time.Time
}
