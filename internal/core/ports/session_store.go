package ports

import (
	"context"

	"github.com/royalestate/realty-platform/internal/core/domain"
)

// SessionStore is the single source of truth for who is using this instance
// and with what authority. Readers take it as an injected dependency; there is
// no ambient global identity.
type SessionStore interface {
	// EstablishSession resolves any existing remote session into an Identity
	// and begins listening for session changes for the lifetime of the store.
	EstablishSession(ctx context.Context)
	// LoginAsGuest synchronously installs the fixed guest identity.
	LoginAsGuest() *domain.Identity
	// Logout requests remote session termination, then clears the local
	// identity unconditionally.
	Logout(ctx context.Context)
	// Current returns the live identity, or nil before authentication.
	Current() *domain.Identity
	// Subscribe registers fn to receive every identity change. The returned
	// func removes the subscription.
	Subscribe(fn func(*domain.Identity)) Unsubscribe
	// Close releases the auth change subscription. Idempotent.
	Close()
}
