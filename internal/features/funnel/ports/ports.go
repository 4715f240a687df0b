package ports

import (
	"context"

	"funnel-storefront/internal/features/funnel/domain"
)

// FunnelService defines the primary port for funnel operations.
type FunnelService interface {
	// GetFunnel returns the funnel, served from cache when fresh.
	GetFunnel(ctx context.Context, id, lang string) (*domain.Funnel, error)
	// GetResolvedOptions returns the selection-ready option view of the
	// funnel's product. Nil for products without variants.
	GetResolvedOptions(ctx context.Context, id, lang string) (*domain.ResolvedOptions, error)
}

// FunnelProvider defines the secondary port for the upstream funnel backend.
type FunnelProvider interface {
	// FetchFunnel retrieves a funnel from the backend.
	FetchFunnel(ctx context.Context, id, lang string) (*domain.Funnel, error)
	// SubmitOrder relays a confirmed order to the backend.
	SubmitOrder(ctx context.Context, lang string, sub *domain.OrderSubmission) (*domain.OrderResult, error)
}

// FunnelRepository defines the secondary port for funnel caching.
type FunnelRepository interface {
	Save(ctx context.Context, lang string, funnel *domain.Funnel) error
	Get(ctx context.Context, id, lang string) (*domain.Funnel, error)
}
