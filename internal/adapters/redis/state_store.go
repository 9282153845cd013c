package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/target/admin-panel/internal/ports"
)

const defaultStatePrefix = "adminpanel:sso_state:"

// StateStore keeps pending SSO state/nonce pairs until the callback consumes them.
type StateStore struct {
	client redis.UniversalClient
	prefix string
}

// NewStateStore creates a StateStore with the default key prefix.
func NewStateStore(client redis.UniversalClient) *StateStore {
	return &StateStore{client: client, prefix: defaultStatePrefix}
}

// Put stores nonce under state for ttl.
func (s *StateStore) Put(ctx context.Context, state, nonce string, ttl time.Duration) error {
	if state == "" {
		return errors.New("state cannot be empty")
	}
	if err := s.client.Set(ctx, s.prefix+state, nonce, ttl).Err(); err != nil {
		return fmt.Errorf("redis set state: %w", err)
	}
	return nil
}

// Take atomically reads and deletes the nonce stored under state.
func (s *StateStore) Take(ctx context.Context, state string) (string, error) {
	if state == "" {
		return "", ports.ErrStateNotFound
	}
	nonce, err := s.client.GetDel(ctx, s.prefix+state).Result()
	if errors.Is(err, redis.Nil) {
		return "", ports.ErrStateNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis getdel state: %w", err)
	}
	return nonce, nil
}
