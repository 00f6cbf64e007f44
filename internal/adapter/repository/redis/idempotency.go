package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/dairyledger/internal/infrastructure/metrics"
	"github.com/iho/dairyledger/internal/usecase"
)

// pendingMarker is stored while the first request with a key is still running.
const pendingMarker = "processing"

// IdempotencyStore implements usecase.IdempotencyStore using Redis.
type IdempotencyStore struct {
	client  *redis.Client
	prefix  string
	metrics *metrics.Metrics
}

var _ usecase.IdempotencyStore = (*IdempotencyStore)(nil)

// NewIdempotencyStore creates a new IdempotencyStore. m may be nil.
func NewIdempotencyStore(client *redis.Client, m *metrics.Metrics) *IdempotencyStore {
	return &IdempotencyStore{
		client:  client,
		prefix:  "dairyledger:idempotency:",
		metrics: m,
	}
}

// CheckAndSet claims key for the caller. When the key is already claimed it
// returns true and whatever was stored under it: the final response, or the
// pending marker while the first request is still in flight.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	fullKey := s.prefix + key

	var value any = pendingMarker
	if response != nil {
		value = response
	}

	set, err := s.client.SetNX(ctx, fullKey, value, ttl).Result()
	s.record("setnx", err)
	if err != nil {
		return false, nil, err
	}
	if set {
		return false, nil, nil
	}

	existing, err := s.client.Get(ctx, fullKey).Bytes()
	if errors.Is(err, redis.Nil) {
		// expired between the two calls; the caller may go ahead
		return false, nil, nil
	}
	s.record("get", err)
	if err != nil {
		return false, nil, err
	}
	return true, existing, nil
}

// Update replaces the stored value for key with the final response.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	err := s.client.Set(ctx, s.prefix+key, response, ttl).Err()
	s.record("set", err)
	return err
}

// IsPending reports whether a stored value is the in-flight marker.
func IsPending(value []byte) bool {
	return string(value) == pendingMarker
}

func (s *IdempotencyStore) record(op string, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.RedisOperations.WithLabelValues(op).Inc()
	if err != nil {
		s.metrics.RedisErrors.WithLabelValues(op).Inc()
	}
}
