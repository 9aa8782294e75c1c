package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/royalestate/realty-platform/internal/core/domain"
	"github.com/royalestate/realty-platform/internal/core/ports"
)

// SessionStore resolves and holds the single live identity for this instance.
// It implements ports.SessionStore.
type SessionStore struct {
	auth     ports.AuthProvider // nil when no backend is configured
	profiles ports.ProfileStore
	log      zerolog.Logger

	mu          sync.Mutex
	current     *domain.Identity
	subscribers map[int]func(*domain.Identity)
	nextSubID   int
	unsub       ports.Unsubscribe
	closeOnce   sync.Once
}

func NewSessionStore(auth ports.AuthProvider, profiles ports.ProfileStore, log zerolog.Logger) *SessionStore {
	return &SessionStore{
		auth:        auth,
		profiles:    profiles,
		log:         log,
		subscribers: make(map[int]func(*domain.Identity)),
	}
}

// EstablishSession queries the auth service for an existing session, resolves
// it into an Identity, and starts listening for session changes. Without a
// configured auth service the identity is simply absent.
func (s *SessionStore) EstablishSession(ctx context.Context) {
	if s.auth == nil {
		s.publish(nil)
		return
	}

	sess, err := s.auth.CurrentSession(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("session lookup failed")
		s.publish(nil)
	} else if sess == nil {
		s.publish(nil)
	} else {
		s.publish(s.resolveIdentity(ctx, sess))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unsub != nil {
		return
	}
	s.unsub = s.auth.SubscribeSessionChanges(func(sess *ports.Session) {
		if sess == nil {
			s.publish(nil)
			return
		}
		s.publish(s.resolveIdentity(context.Background(), sess))
	})
}

// LoginAsGuest installs the fixed guest identity. No network call.
func (s *SessionStore) LoginAsGuest() *domain.Identity {
	id := domain.GuestIdentity()
	s.publish(id)
	return id
}

// Logout requests remote sign-out, then clears the local identity no matter
// what the remote call returned: local state must never point at a dead
// remote session.
func (s *SessionStore) Logout(ctx context.Context) {
	if s.auth != nil {
		if err := s.auth.SignOut(ctx); err != nil {
			s.log.Warn().Err(err).Msg("remote sign-out failed, clearing local identity anyway")
		}
	}
	s.publish(nil)
}

// Current returns the live identity, or nil before authentication.
func (s *SessionStore) Current() *domain.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Subscribe registers fn for identity changes and returns its unsubscribe.
func (s *SessionStore) Subscribe(fn func(*domain.Identity)) ports.Unsubscribe {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// Close releases the auth change subscription exactly once.
func (s *SessionStore) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		unsub := s.unsub
		s.unsub = nil
		s.mu.Unlock()
		if unsub != nil {
			unsub()
		}
	})
}

// resolveIdentity turns a raw session into an Identity. A failed or missing
// profile lookup degrades to "authenticated with default role"; it is never
// treated as an authentication failure.
func (s *SessionStore) resolveIdentity(ctx context.Context, sess *ports.Session) *domain.Identity {
	var profile *ports.Profile
	if s.profiles != nil {
		p, err := s.profiles.GetProfile(ctx, sess.UserID)
		if err != nil {
			s.log.Warn().Err(err).Str("user_id", sess.UserID).Msg("profile lookup failed, using defaults")
		} else {
			profile = p
		}
	}

	identity := &domain.Identity{
		ID:   sess.UserID,
		Role: domain.RoleBroker,
	}
	if profile != nil {
		identity.DisplayName = profile.FullName
		identity.AvatarURL = profile.AvatarURL
		identity.CompanyName = profile.CompanyName
		if profile.Role != "" {
			identity.Role = domain.ParseRole(profile.Role)
		}
	}
	if identity.DisplayName == "" {
		identity.DisplayName = displayNameFromEmail(sess.Email)
	}
	if identity.AvatarURL == "" {
		identity.AvatarURL = fallbackAvatarURL(sess.Email)
	}
	return identity
}

// publish replaces the live identity and notifies subscribers outside the lock.
func (s *SessionStore) publish(identity *domain.Identity) {
	s.mu.Lock()
	s.current = identity
	fns := make([]func(*domain.Identity), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(identity)
	}
}

func displayNameFromEmail(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return "مستخدم"
}

func fallbackAvatarURL(email string) string {
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=002147&color=fff", url.QueryEscape(email))
}
