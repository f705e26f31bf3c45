package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = time.Hour

// IdempotencyStore maps client idempotency keys to the post they created.
// Key format: idem:post:<key>
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given Redis client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Lookup reports the post id stored for key, if it has not expired.
func (s *IdempotencyStore) Lookup(ctx context.Context, key string) (string, bool, error) {
	id, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	return id, true, nil
}

// Remember records postID under key (expires after idempotencyTTL).
func (s *IdempotencyStore) Remember(ctx context.Context, key, postID string) error {
	return s.client.Set(ctx, s.key(key), postID, idempotencyTTL).Err()
}

func (s *IdempotencyStore) key(key string) string {
	return "idem:post:" + key
}
