package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"funnel-storefront/internal/core/cache"
	"funnel-storefront/internal/features/checkout/domain"
)

// RedisSessionRepository implements the SessionRepository port using the
// cache port. Sessions are stored as JSON snapshots with a sliding TTL:
// every save renews the idle lifetime.
type RedisSessionRepository struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewRedisSessionRepository creates a new RedisSessionRepository.
func NewRedisSessionRepository(c cache.Cache, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{
		cache: c,
		ttl:   ttl,
	}
}

func sessionCacheKey(id string) string {
	return fmt.Sprintf("checkout:session:%s", id)
}

// Save stores the session snapshot and renews its TTL.
func (r *RedisSessionRepository) Save(ctx context.Context, session *domain.CheckoutSession) error {
	data, err := json.Marshal(session.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.cache.Set(ctx, sessionCacheKey(session.ID), data, r.ttl); err != nil {
		return fmt.Errorf("failed to save session to cache: %w", err)
	}

	return nil
}

// Get loads a session, rebuilding the live stores from the snapshot.
// Returns nil, nil when the session does not exist or has expired.
func (r *RedisSessionRepository) Get(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	key := sessionCacheKey(id)
	data, err := r.cache.Get(ctx, key)
	if err != nil {
		if err.Error() == fmt.Sprintf("key not found: %s", key) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session from cache: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	var snapshot domain.SessionSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return domain.FromSnapshot(snapshot), nil
}

// Delete removes a session, e.g. after a confirmed order.
func (r *RedisSessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.cache.Delete(ctx, sessionCacheKey(id)); err != nil {
		return fmt.Errorf("failed to delete session from cache: %w", err)
	}
	return nil
}
