package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyStore maps client-supplied Idempotency-Key values to the
// external id of the shipment they first created.
// Key format: idem:shipment:<key>
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore wraps the given Redis client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Lookup returns the shipment external id remembered for key, or "" when the
// key has not been seen.
func (s *IdempotencyStore) Lookup(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("idempotency lookup: %w", err)
	}
	return val, nil
}

// Remember records that key produced shipmentID (expires after idempotencyTTL).
func (s *IdempotencyStore) Remember(ctx context.Context, key, shipmentID string) error {
	return s.client.Set(ctx, s.key(key), shipmentID, idempotencyTTL).Err()
}

func (s *IdempotencyStore) key(k string) string {
	return "idem:shipment:" + k
}
