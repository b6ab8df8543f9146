package wallet

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opalpay/opalcore/money"
)

// ErrNotFound indicates the requested wallet does not exist.
var ErrNotFound = errors.New("wallet not found")

// Repository persists wallets. Callers load a wallet, apply ledger operations
// in memory, then Save the mutated wallet, serializing per-wallet writes
// themselves (row lock or transaction).
type Repository interface {
	Create(ctx context.Context, w Wallet) error
	Get(ctx context.Context, id string) (Wallet, error)
	Save(ctx context.Context, w Wallet) error
}

// PostgresRepository stores wallets in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a wallet record.
func (r *PostgresRepository) Create(ctx context.Context, w Wallet) error {
	walletID, err := uuid.Parse(w.ID)
	if err != nil {
		return err
	}
	ownerID, err := uuid.Parse(w.OwnerID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO wallets (id, owner_id, balance, currency, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		walletID, ownerID, w.Balance.Amount.String(), w.Balance.Currency, w.Status, w.CreatedAt.UTC())
	return err
}

// Get fetches a wallet by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Wallet, error) {
	walletUUID, err := uuid.Parse(id)
	if err != nil {
		return Wallet{}, err
	}
	row := r.db.QueryRow(ctx, `SELECT id, owner_id, balance::text, currency, status, created_at
        FROM wallets WHERE id = $1`, walletUUID)

	var (
		w         Wallet
		idVal     uuid.UUID
		ownerID   uuid.UUID
		amount    string
		currency  string
		createdAt time.Time
	)
	if err := row.Scan(&idVal, &ownerID, &amount, &currency, &w.Status, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Wallet{}, ErrNotFound
		}
		return Wallet{}, err
	}
	balance, err := money.FromString(amount, currency)
	if err != nil {
		return Wallet{}, err
	}
	w.ID = idVal.String()
	w.OwnerID = ownerID.String()
	w.Balance = balance
	w.CreatedAt = createdAt.UTC()
	return w, nil
}

// Save writes the wallet's current balance back to storage.
func (r *PostgresRepository) Save(ctx context.Context, w Wallet) error {
	walletID, err := uuid.Parse(w.ID)
	if err != nil {
		return err
	}
	cmd, err := r.db.Exec(ctx, `UPDATE wallets SET balance = $1, currency = $2, status = $3 WHERE id = $4`,
		w.Balance.Amount.String(), w.Balance.Currency, w.Status, walletID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
