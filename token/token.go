package token

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrConflict indicates the store rejected a candidate because an equal
	// token value already exists. Expected and transient; drives the retry
	// loop in Issuer.
	ErrConflict = errors.New("token already exists")

	// ErrNotFound indicates no token matches the requested value.
	ErrNotFound = errors.New("token not found")
)

// maxAttempts bounds the issuance retry loop.
const maxAttempts = 10

// IssuedToken is an opaque login credential bound to a single subject. A
// subject holds at most one active token; issuing a new one replaces it.
type IssuedToken struct {
	SubjectID string
	Value     string
	IssuedAt  time.Time
}

// Store persists issued tokens and enforces global uniqueness of values.
// Save must atomically reject a duplicate value with ErrConflict and replace
// any previous token held by the same subject.
type Store interface {
	Save(ctx context.Context, tok IssuedToken) error
	FindByToken(ctx context.Context, value string) (IssuedToken, error)
}

// ExhaustedError is returned when every issuance attempt collided.
type ExhaustedError struct {
	SubjectID string
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("token issuance for subject %s exhausted after %d attempts", e.SubjectID, maxAttempts)
}

// Issuer provisions unique opaque credentials, retrying on store conflicts.
type Issuer struct {
	store Store
}

// NewIssuer builds an issuer persisting through the provided store.
func NewIssuer(store Store) *Issuer {
	return &Issuer{store: store}
}

// CreateForSubject generates and persists a fresh credential for the subject.
// Each attempt uses a new random candidate; a store conflict discards the
// candidate and retries up to the attempt budget. Any other store error is
// propagated immediately rather than burning attempts on it. After the budget
// is spent the call fails with ExhaustedError.
func (i *Issuer) CreateForSubject(ctx context.Context, subjectID string) (IssuedToken, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		tok := IssuedToken{
			SubjectID: subjectID,
			Value:     newValue(),
			IssuedAt:  time.Now().UTC(),
		}

		err := i.store.Save(ctx, tok)
		if err == nil {
			return tok, nil
		}
		if errors.Is(err, ErrConflict) {
			continue
		}
		return IssuedToken{}, err
	}
	return IssuedToken{}, &ExhaustedError{SubjectID: subjectID}
}

// newValue produces a 32-character hex credential from 128 random bits.
func newValue() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}
