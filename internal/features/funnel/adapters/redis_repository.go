package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"funnel-storefront/internal/core/cache"
	"funnel-storefront/internal/features/funnel/domain"
)

// RedisFunnelRepository implements the FunnelRepository port using the cache port.
type RedisFunnelRepository struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewRedisFunnelRepository creates a new RedisFunnelRepository.
func NewRedisFunnelRepository(c cache.Cache, ttl time.Duration) *RedisFunnelRepository {
	return &RedisFunnelRepository{
		cache: c,
		ttl:   ttl,
	}
}

func funnelCacheKey(id, lang string) string {
	return fmt.Sprintf("funnel:%s:%s", id, lang)
}

// Save stores the funnel in the cache under its id and language.
func (r *RedisFunnelRepository) Save(ctx context.Context, lang string, funnel *domain.Funnel) error {
	data, err := json.Marshal(funnel)
	if err != nil {
		return fmt.Errorf("failed to marshal funnel: %w", err)
	}

	if err := r.cache.Set(ctx, funnelCacheKey(funnel.ID, lang), data, r.ttl); err != nil {
		return fmt.Errorf("failed to save funnel to cache: %w", err)
	}

	return nil
}

// Get retrieves the funnel from the cache. Returns nil, nil on a miss.
func (r *RedisFunnelRepository) Get(ctx context.Context, id, lang string) (*domain.Funnel, error) {
	key := funnelCacheKey(id, lang)
	data, err := r.cache.Get(ctx, key)
	if err != nil {
		if err.Error() == fmt.Sprintf("key not found: %s", key) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get funnel from cache: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	var funnel domain.Funnel
	if err := json.Unmarshal(data, &funnel); err != nil {
		return nil, fmt.Errorf("failed to unmarshal funnel: %w", err)
	}

	return &funnel, nil
}
