package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/opalpay/opalcore/token"
)

const minPasswordLength = 8

// ErrInvalidCredentials indicates the email/password pair did not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service manages account lifecycle and auto-login credential provisioning.
type Service struct {
	repo   Repository
	issuer *token.Issuer
	tokens token.Store
}

// NewService creates a new account service. The issuer and store must share
// the same backing storage.
func NewService(repo Repository, issuer *token.Issuer, tokens token.Store) *Service {
	return &Service{repo: repo, issuer: issuer, tokens: tokens}
}

// RegisterResult carries the created account and its auto-login credential.
type RegisterResult struct {
	Account Account
	Token   token.IssuedToken
}

// Register creates an account with a hashed password and provisions its
// auto-login token in the same flow.
func (s *Service) Register(ctx context.Context, creds Credentials) (RegisterResult, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email == "" || !strings.Contains(email, "@") {
		return RegisterResult{}, errors.New("valid email required")
	}
	if len(creds.Password) < minPasswordLength {
		return RegisterResult{}, errors.New("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return RegisterResult{}, err
	}

	acc := Account{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, acc); err != nil {
		return RegisterResult{}, err
	}

	tok, err := s.issuer.CreateForSubject(ctx, acc.ID)
	if err != nil {
		return RegisterResult{}, err
	}

	return RegisterResult{Account: acc, Token: tok}, nil
}

// Authenticate verifies the email/password pair.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (Account, error) {
	acc, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(creds.Email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Account{}, ErrInvalidCredentials
		}
		return Account{}, err
	}
	if err := bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(creds.Password)); err != nil {
		return Account{}, ErrInvalidCredentials
	}
	return acc, nil
}

// Reissue replaces the account's auto-login token with a fresh one. The old
// token row is deleted by the store.
func (s *Service) Reissue(ctx context.Context, accountID string) (token.IssuedToken, error) {
	if _, err := s.repo.FindByID(ctx, accountID); err != nil {
		return token.IssuedToken{}, err
	}
	return s.issuer.CreateForSubject(ctx, accountID)
}

// AccountForToken resolves an auto-login token to its account.
func (s *Service) AccountForToken(ctx context.Context, value string) (Account, error) {
	tok, err := s.tokens.FindByToken(ctx, value)
	if err != nil {
		return Account{}, err
	}
	return s.repo.FindByID(ctx, tok.SubjectID)
}
