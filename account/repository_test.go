package account

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestTranslateUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "accounts_email_key"}
	if !errors.Is(translateUniqueViolation(dup), ErrEmailTaken) {
		t.Fatal("expected unique violation to map to ErrEmailTaken")
	}

	fk := &pgconn.PgError{Code: "23503"}
	if !errors.Is(translateUniqueViolation(fk), fk) {
		t.Fatal("expected non-unique pg error to pass through unchanged")
	}

	plain := errors.New("connection reset")
	if translateUniqueViolation(plain) != plain {
		t.Fatal("expected plain error to pass through unchanged")
	}

	if translateUniqueViolation(nil) != nil {
		t.Fatal("expected nil to stay nil")
	}
}
