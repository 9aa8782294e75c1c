package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/royalestate/realty-platform/internal/core/domain"
	"github.com/royalestate/realty-platform/internal/core/ports"
)

const defaultTokenTTL = 24 * time.Hour

// SessionRegistry tracks issued tokens so sign-outs propagate across
// instances. Implemented by the Redis adapter.
type SessionRegistry interface {
	Put(ctx context.Context, token, userID string) error
	Resolve(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
	PublishChange(ctx context.Context, userID string) error
	SubscribeChanges(ctx context.Context, fn func(userID string)) error
}

// Provider implements ports.AuthProvider on the local user store with
// bcrypt-hashed credentials and HS256 session tokens. The registry is
// optional; without it tokens are still issued but remote revocation is
// not observed.
type Provider struct {
	users     ports.UserStore
	profiles  ports.ProfileWriter
	roles     ports.ProfileStore
	registry  SessionRegistry
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger

	mu          sync.Mutex
	current     *ports.Session
	subscribers map[int]func(*ports.Session)
	nextSubID   int
}

func NewProvider(users ports.UserStore, profiles ports.ProfileWriter, roles ports.ProfileStore, registry SessionRegistry, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *Provider {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &Provider{
		users:       users,
		profiles:    profiles,
		roles:       roles,
		registry:    registry,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		log:         log,
		subscribers: map[int]func(*ports.Session){},
	}
}

// CurrentSession returns the session established in this process, or
// (nil, nil) when nobody is signed in.
func (p *Provider) CurrentSession(ctx context.Context) (*ports.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current, nil
}

// SubscribeSessionChanges registers a handler for sign-ins and sign-outs.
func (p *Provider) SubscribeSessionChanges(handler func(*ports.Session)) ports.Unsubscribe {
	p.mu.Lock()
	id := p.nextSubID
	p.nextSubID++
	p.subscribers[id] = handler
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.subscribers, id)
		p.mu.Unlock()
	}
}

func (p *Provider) SignInWithPassword(ctx context.Context, email, password string) (*ports.Session, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := p.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return p.establish(ctx, account)
}

// SignUp creates the account, writes the initial profile row and signs the
// new account in. New accounts start as brokers; profile write failures are
// logged and ignored so a half-provisioned backend never blocks sign-up.
func (p *Provider) SignUp(ctx context.Context, email, password string) (*ports.Session, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account, err := p.users.Create(ctx, &ports.Account{Email: email, PasswordHash: string(hash)})
	if err != nil {
		return nil, err
	}

	if p.profiles != nil {
		profile := ports.Profile{Role: string(domain.RoleBroker)}
		if err := p.profiles.CreateProfile(ctx, account.ID, profile); err != nil {
			p.log.Warn().Err(err).Str("user_id", account.ID).Msg("profile creation failed")
		}
	}

	return p.establish(ctx, account)
}

func (p *Provider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	session := p.current
	p.current = nil
	p.mu.Unlock()

	if session == nil {
		return nil
	}

	if p.registry != nil {
		if err := p.registry.Revoke(ctx, session.Token); err != nil {
			p.log.Warn().Err(err).Msg("session revoke failed")
		}
		if err := p.registry.PublishChange(ctx, session.UserID); err != nil {
			p.log.Warn().Err(err).Msg("session change publish failed")
		}
	}

	p.notify(nil)
	return nil
}

// ListenRemoteChanges watches the registry for session changes made by other
// instances and drops the local session when its token has been revoked. It
// blocks until ctx is cancelled, so callers run it in a goroutine.
func (p *Provider) ListenRemoteChanges(ctx context.Context) error {
	if p.registry == nil {
		return nil
	}
	return p.registry.SubscribeChanges(ctx, func(userID string) {
		p.mu.Lock()
		session := p.current
		p.mu.Unlock()
		if session == nil || session.UserID != userID {
			return
		}
		if _, err := p.registry.Resolve(ctx, session.Token); err == nil {
			return
		}
		p.mu.Lock()
		p.current = nil
		p.mu.Unlock()
		p.notify(nil)
	})
}

func (p *Provider) establish(ctx context.Context, account *ports.Account) (*ports.Session, error) {
	token, err := p.generateToken(ctx, account)
	if err != nil {
		return nil, err
	}

	session := &ports.Session{Token: token, UserID: account.ID, Email: account.Email}

	if p.registry != nil {
		if err := p.registry.Put(ctx, token, account.ID); err != nil {
			return nil, fmt.Errorf("register session: %w", err)
		}
		if err := p.registry.PublishChange(ctx, account.ID); err != nil {
			p.log.Warn().Err(err).Msg("session change publish failed")
		}
	}

	p.mu.Lock()
	p.current = session
	p.mu.Unlock()

	p.notify(session)
	return session, nil
}

func (p *Provider) generateToken(ctx context.Context, account *ports.Account) (string, error) {
	claims := jwt.MapClaims{
		"sub":   account.ID,
		"email": account.Email,
		"role":  string(p.resolveRole(ctx, account.ID)),
		"exp":   time.Now().Add(p.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(p.jwtSecret))
}

// resolveRole reads the account's profile role, falling back to broker when
// the profile is missing or unreadable.
func (p *Provider) resolveRole(ctx context.Context, userID string) domain.Role {
	if p.roles == nil {
		return domain.RoleBroker
	}
	profile, err := p.roles.GetProfile(ctx, userID)
	if err != nil || profile == nil {
		return domain.RoleBroker
	}
	return domain.ParseRole(profile.Role)
}

func (p *Provider) notify(session *ports.Session) {
	p.mu.Lock()
	handlers := make([]func(*ports.Session), 0, len(p.subscribers))
	for _, h := range p.subscribers {
		handlers = append(handlers, h)
	}
	p.mu.Unlock()

	for _, h := range handlers {
		h(session)
	}
}
