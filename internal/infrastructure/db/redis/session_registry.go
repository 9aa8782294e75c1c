package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/royalestate/realty-platform/internal/core/domain"
)

const (
	sessionTTL      = 24 * time.Hour
	sessionsChannel = "sessions:changed"
)

// SessionRegistry tracks issued session tokens backed by Redis.
// Key format: session:<token> -> user id, expiring after sessionTTL.
// Revocations and new logins are fanned out on the sessions:changed
// channel so every running instance can re-resolve its identity.
type SessionRegistry struct {
	client *redis.Client
}

// NewSessionRegistry creates a SessionRegistry wrapping the given Redis client.
func NewSessionRegistry(client *redis.Client) *SessionRegistry {
	return &SessionRegistry{client: client}
}

// Put records a freshly issued token for userID.
func (r *SessionRegistry) Put(ctx context.Context, token, userID string) error {
	if err := r.client.Set(ctx, r.key(token), userID, sessionTTL).Err(); err != nil {
		return fmt.Errorf("register session: %w", err)
	}
	return nil
}

// Resolve returns the user id a token was issued for. Unknown or expired
// tokens map to domain.ErrNoSession.
func (r *SessionRegistry) Resolve(ctx context.Context, token string) (string, error) {
	userID, err := r.client.Get(ctx, r.key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("resolve session: %w", err)
	}
	return userID, nil
}

// Revoke removes a token. Revoking an unknown token is not an error.
func (r *SessionRegistry) Revoke(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, r.key(token)).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// PublishChange notifies all subscribers that the session set changed for
// userID (login, logout or token revocation).
func (r *SessionRegistry) PublishChange(ctx context.Context, userID string) error {
	return r.client.Publish(ctx, sessionsChannel, userID).Err()
}

// SubscribeChanges invokes fn with the affected user id for every session
// change until ctx is cancelled. It blocks, so callers run it in a goroutine.
func (r *SessionRegistry) SubscribeChanges(ctx context.Context, fn func(userID string)) error {
	sub := r.client.Subscribe(ctx, sessionsChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			fn(msg.Payload)
		}
	}
}

func (r *SessionRegistry) key(token string) string {
	return "session:" + token
}
