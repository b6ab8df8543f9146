package settlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/opalpay/opalcore/ledger"
	"github.com/opalpay/opalcore/money"
	"github.com/opalpay/opalcore/notification"
	"github.com/opalpay/opalcore/wallet"
)

// ErrWalletInactive indicates the wallet does not accept operations in its
// current status.
var ErrWalletInactive = errors.New("wallet is not active")

// Service settles checkout outcomes against customer wallets: it loads the
// wallet, applies the ledger operation and persists the result. Per-wallet
// serialization (transaction or row lock) is expected from the repository.
type Service struct {
	wallets  wallet.Repository
	notifier notification.Notifier
	logger   *slog.Logger
}

// NewService constructs a settlement service.
func NewService(wallets wallet.Repository, notifier notification.Notifier, logger *slog.Logger) *Service {
	return &Service{wallets: wallets, notifier: notifier, logger: logger}
}

// Input captures a single settlement instruction.
type Input struct {
	WalletID  string
	Kind      ledger.Kind
	Amount    money.Money
	Reference string
}

// Result describes the wallet outcome of a settlement.
type Result struct {
	WalletID  string
	Balance   money.Money
	Reference string
	SettledAt time.Time
}

// Settle applies a single operation to the wallet and persists the updated
// balance. Nothing is persisted when the apply fails; typed ledger errors
// pass through to the caller untouched.
func (s *Service) Settle(ctx context.Context, input Input) (Result, error) {
	if input.Amount.IsNegative() {
		return Result{}, fmt.Errorf("amount must not be negative")
	}
	if input.Reference == "" {
		input.Reference = uuid.New().String()
	}

	w, err := s.wallets.Get(ctx, input.WalletID)
	if err != nil {
		return Result{}, err
	}
	if w.Status != wallet.StatusActive {
		return Result{}, ErrWalletInactive
	}

	balance, err := ledger.Apply(&w, ledger.Operation{Kind: input.Kind, Amount: input.Amount})
	if err != nil {
		return Result{}, err
	}

	if err := s.wallets.Save(ctx, w); err != nil {
		return Result{}, err
	}

	if s.logger != nil {
		s.logger.Info("settlement applied",
			"wallet_id", w.ID, "kind", string(input.Kind), "reference", input.Reference, "balance", balance.String())
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindOrderSettled,
			Destination: w.OwnerID,
			Body:        fmt.Sprintf("Order %s settled, wallet balance %s", input.Reference, balance),
		})
	}

	return Result{
		WalletID:  w.ID,
		Balance:   balance,
		Reference: input.Reference,
		SettledAt: time.Now().UTC(),
	}, nil
}
