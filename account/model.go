package account

import "time"

// Account represents a registered customer able to hold wallets and an
// auto-login credential.
type Account struct {
	ID           string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// Credentials carries a sign-up or login request.
type Credentials struct {
	Email    string
	Password string
}
