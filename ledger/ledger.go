// Package ledger applies signed monetary operations to a wallet balance.
//
// Apply is pure in-memory arithmetic: it mutates the wallet it is given and
// returns the new balance, leaving persistence and per-wallet serialization
// (row lock, transaction) to the caller.
package ledger

import (
	"fmt"

	"github.com/opalpay/opalcore/money"
	"github.com/opalpay/opalcore/wallet"
)

// Kind selects the sign an operation applies to the balance.
type Kind string

const (
	// KindAdd credits the wallet.
	KindAdd Kind = "add"
	// KindSubtract debits the wallet. No floor is enforced; the balance may
	// go negative. Overdraft policy belongs to the caller.
	KindSubtract Kind = "subtract"
)

// Operation is a single immutable balance instruction. Amount magnitude is
// expected to be non-negative; Kind determines the sign applied.
type Operation struct {
	Kind   Kind
	Amount money.Money
}

// CurrencyMismatchError is returned when an operation's currency differs from
// the wallet's. No conversion is attempted.
type CurrencyMismatchError struct {
	WalletID          string
	WalletCurrency    string
	OperationCurrency string
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("wallet %s holds %s, operation is %s", e.WalletID, e.WalletCurrency, e.OperationCurrency)
}

// UnknownKindError is returned for an operation kind that is neither add nor
// subtract. It signals a programming or data error and should not be retried.
type UnknownKindError struct {
	WalletID string
	Kind     Kind
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("wallet %s: unknown operation kind %q", e.WalletID, e.Kind)
}

// Apply executes a single operation against the wallet, mutating its balance
// in place and returning the new balance. On failure the wallet is left
// untouched. Apply never performs I/O and never logs.
func Apply(w *wallet.Wallet, op Operation) (money.Money, error) {
	if w.Balance.Currency != op.Amount.Currency {
		return money.Money{}, &CurrencyMismatchError{
			WalletID:          w.ID,
			WalletCurrency:    w.Balance.Currency,
			OperationCurrency: op.Amount.Currency,
		}
	}

	var (
		balance money.Money
		err     error
	)
	switch op.Kind {
	case KindAdd:
		balance, err = w.Balance.Add(op.Amount)
	case KindSubtract:
		balance, err = w.Balance.Sub(op.Amount)
	default:
		return money.Money{}, &UnknownKindError{WalletID: w.ID, Kind: op.Kind}
	}
	if err != nil {
		return money.Money{}, err
	}

	w.Balance = balance
	return balance, nil
}
