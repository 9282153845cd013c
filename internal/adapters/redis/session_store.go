// Package redis provides Redis-backed auth stores for the admin panel.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	domainauth "github.com/target/admin-panel/internal/domain/auth"
	"github.com/target/admin-panel/internal/ports"
)

// DefaultSessionPrefix is the key prefix for stored sessions.
const DefaultSessionPrefix = "adminpanel:session:"

// SessionStore is a Redis-based session store.
// Keys expire with the session, so logout and expiry both make a token unusable.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
	clock  clockwork.Clock
}

// SessionStoreOption customizes a SessionStore.
type SessionStoreOption func(*SessionStore)

// WithPrefix overrides the key prefix.
func WithPrefix(prefix string) SessionStoreOption {
	return func(s *SessionStore) { s.prefix = prefix }
}

// WithClock overrides the clock used for TTL math.
func WithClock(clock clockwork.Clock) SessionStoreOption {
	return func(s *SessionStore) { s.clock = clock }
}

// NewSessionStore creates a new Redis-based session store.
func NewSessionStore(client redis.UniversalClient, opts ...SessionStoreOption) *SessionStore {
	s := &SessionStore{
		client: client,
		prefix: DefaultSessionPrefix,
		clock:  clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	ttl := sess.ExpiresAt.Sub(s.clock.Now())
	if ttl <= 0 {
		return errors.New("session is expired")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.client.Set(ctx, s.prefix+sess.ID, data, ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}

	data, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Session{}, ports.ErrSessionNotFound
		}
		return domainauth.Session{}, fmt.Errorf("redis get: %w", err)
	}

	var sess domainauth.Session
	if unmarshalErr := json.Unmarshal(data, &sess); unmarshalErr != nil {
		return domainauth.Session{}, fmt.Errorf("unmarshal session: %w", unmarshalErr)
	}

	if s.clock.Now().After(sess.ExpiresAt) {
		if deleteErr := s.Delete(ctx, id); deleteErr != nil {
			return domainauth.Session{}, fmt.Errorf("cleanup expired session: %w", deleteErr)
		}
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+id).Err()
}

const scanBatch = 100

// List returns every live session. Entries that fail to decode are skipped.
func (s *SessionStore) List(ctx context.Context) ([]domainauth.Session, error) {
	var out []domainauth.Session
	err := s.scan(ctx, func(key string, sess domainauth.Session) error {
		out = append(out, sess)
		return nil
	})
	return out, err
}

// Revoke deletes the sessions belonging to userID, or every session when
// userID is empty. It returns the number of sessions removed.
func (s *SessionStore) Revoke(ctx context.Context, userID string) (int, error) {
	removed := 0
	err := s.scan(ctx, func(key string, sess domainauth.Session) error {
		if userID != "" && sess.UserID != userID {
			return nil
		}
		n, err := s.client.Del(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("redis del: %w", err)
		}
		removed += int(n)
		return nil
	})
	return removed, err
}

func (s *SessionStore) scan(ctx context.Context, fn func(key string, sess domainauth.Session) error) error {
	iter := s.client.Scan(ctx, 0, s.prefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		data, err := s.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return fmt.Errorf("redis get: %w", err)
		}
		var sess domainauth.Session
		if json.Unmarshal(data, &sess) != nil {
			continue
		}
		if err := fn(key, sess); err != nil {
			return err
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	return nil
}
