package ports

import "context"

// Session is the external auth service's view of a signed-in account. It says
// nothing about role or display name; those come from the profile lookup.
type Session struct {
	Token  string
	UserID string
	Email  string
}

// Unsubscribe releases a change subscription. Safe to call once.
type Unsubscribe func()

// AuthProvider is the contract of the hosted auth service. A nil provider
// means no backend is configured: sessions cannot be established and only the
// guest identity is available.
type AuthProvider interface {
	// CurrentSession returns the existing valid session, or (nil, nil) when
	// there is none.
	CurrentSession(ctx context.Context) (*Session, error)
	// SubscribeSessionChanges registers a handler invoked on every session
	// change (sign-in, sign-out, token refresh). The handler receives the new
	// session, or nil when the session ended.
	SubscribeSessionChanges(handler func(*Session)) Unsubscribe
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context) error
}

// Profile is the optional per-account record resolved after authentication.
// Any field may be empty; the session store applies fallbacks.
type Profile struct {
	FullName    string
	Role        string
	AvatarURL   string
	CompanyName string
}

// ProfileStore looks up the profile attached to an account.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
}
