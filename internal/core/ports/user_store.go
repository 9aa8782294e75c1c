package ports

import (
	"context"
	"time"
)

// Account is an authentication record held by the backend. It is distinct
// from Identity: accounts carry credentials, identities carry authority.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserStore persists authentication accounts.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)
	Create(ctx context.Context, account *Account) (*Account, error)
}

// ProfileWriter creates the profile row attached to a new account. Profile
// creation failures are never fatal to sign-up.
type ProfileWriter interface {
	CreateProfile(ctx context.Context, userID string, profile Profile) error
}
