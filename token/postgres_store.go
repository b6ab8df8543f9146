package token

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres unique_violation error code.
const uniqueViolation = "23505"

// PostgresStore persists tokens in PostgreSQL. The auth_tokens table carries
// a unique constraint on the token value; the constraint is the sole
// uniqueness authority the issuer relies on.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore builds a token store backed by PostgreSQL.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Save inserts the token, deleting the subject's previous token in the same
// transaction so a subject never holds more than one active credential.
func (s *PostgresStore) Save(ctx context.Context, tok IssuedToken) error {
	subjectID, err := uuid.Parse(tok.SubjectID)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM auth_tokens WHERE subject_id = $1`, subjectID); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `INSERT INTO auth_tokens (id, subject_id, token, issued_at)
        VALUES ($1, $2, $3, $4)`, uuid.New(), subjectID, tok.Value, tok.IssuedAt.UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrConflict
		}
		return err
	}

	return tx.Commit(ctx)
}

// FindByToken fetches the token record matching the opaque value.
func (s *PostgresStore) FindByToken(ctx context.Context, value string) (IssuedToken, error) {
	row := s.db.QueryRow(ctx, `SELECT subject_id, token, issued_at FROM auth_tokens WHERE token = $1`, value)

	var (
		subjectID uuid.UUID
		tok       IssuedToken
		issuedAt  time.Time
	)
	if err := row.Scan(&subjectID, &tok.Value, &issuedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return IssuedToken{}, ErrNotFound
		}
		return IssuedToken{}, err
	}
	tok.SubjectID = subjectID.String()
	tok.IssuedAt = issuedAt.UTC()
	return tok, nil
}
