package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/opalpay/opalcore/money"
	"github.com/opalpay/opalcore/wallet"
)

func usd(amount int64) money.Money {
	return money.New(decimal.NewFromInt(amount), "USD")
}

func testWallet(balance money.Money) *wallet.Wallet {
	return &wallet.Wallet{
		ID:      "w-1",
		OwnerID: "u-1",
		Balance: balance,
		Status:  wallet.StatusActive,
	}
}

func TestApplyAdd(t *testing.T) {
	w := testWallet(usd(100))

	balance, err := Apply(w, Operation{Kind: KindAdd, Amount: usd(50)})
	if err != nil {
		t.Fatalf("apply add: %v", err)
	}
	if !balance.Equal(usd(150)) {
		t.Fatalf("expected balance 150 USD, got %s", balance)
	}
	if !w.Balance.Equal(usd(150)) {
		t.Fatalf("wallet balance not mutated, got %s", w.Balance)
	}
}

func TestApplySubtractAllowsNegative(t *testing.T) {
	w := testWallet(usd(100))

	balance, err := Apply(w, Operation{Kind: KindSubtract, Amount: usd(150)})
	if err != nil {
		t.Fatalf("apply subtract: %v", err)
	}
	if !balance.Equal(usd(-50)) {
		t.Fatalf("expected balance -50 USD, got %s", balance)
	}
}

func TestApplyCurrencyMismatch(t *testing.T) {
	w := testWallet(usd(100))
	op := Operation{Kind: KindAdd, Amount: money.New(decimal.NewFromInt(50), "EUR")}

	_, err := Apply(w, op)
	var mismatch *CurrencyMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected CurrencyMismatchError, got %v", err)
	}
	if mismatch.WalletID != "w-1" || mismatch.WalletCurrency != "USD" || mismatch.OperationCurrency != "EUR" {
		t.Fatalf("unexpected error details: %+v", mismatch)
	}
	if !w.Balance.Equal(usd(100)) {
		t.Fatalf("balance changed on failed apply: %s", w.Balance)
	}
}

func TestApplyUnknownKind(t *testing.T) {
	w := testWallet(usd(100))

	_, err := Apply(w, Operation{Kind: Kind("multiply"), Amount: usd(2)})
	var unknown *UnknownKindError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownKindError, got %v", err)
	}
	if unknown.WalletID != "w-1" {
		t.Fatalf("expected wallet id w-1, got %s", unknown.WalletID)
	}
	if !w.Balance.Equal(usd(100)) {
		t.Fatalf("balance changed on failed apply: %s", w.Balance)
	}
}

func TestApplyTable(t *testing.T) {
	cases := []struct {
		name    string
		balance money.Money
		op      Operation
		want    money.Money
	}{
		{"credit", usd(0), Operation{KindAdd, usd(25)}, usd(25)},
		{"debit", usd(25), Operation{KindSubtract, usd(10)}, usd(15)},
		{"debit to zero", usd(10), Operation{KindSubtract, usd(10)}, usd(0)},
		{"debit past zero", usd(10), Operation{KindSubtract, usd(30)}, usd(-20)},
		{"credit negative balance", usd(-20), Operation{KindAdd, usd(50)}, usd(30)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := testWallet(tc.balance)
			got, err := Apply(w, tc.op)
			if err != nil {
				t.Fatalf("apply: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestApplyFractionalAmounts(t *testing.T) {
	balance, err := money.FromString("100.10", "USD")
	if err != nil {
		t.Fatalf("parse balance: %v", err)
	}
	amount, err := money.FromString("0.20", "USD")
	if err != nil {
		t.Fatalf("parse amount: %v", err)
	}
	w := testWallet(balance)

	got, err := Apply(w, Operation{Kind: KindAdd, Amount: amount})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	want, _ := money.FromString("100.30", "USD")
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}
