package service

import (
	"context"
	"fmt"

	"funnel-storefront/internal/core/logger"
	"funnel-storefront/internal/features/funnel/domain"
	"funnel-storefront/internal/features/funnel/ports"

	"go.uber.org/zap"
)

// FunnelServiceImpl implements ports.FunnelService with cache-aside reads.
type FunnelServiceImpl struct {
	provider ports.FunnelProvider
	repo     ports.FunnelRepository
}

// NewFunnelService creates a new FunnelServiceImpl.
func NewFunnelService(provider ports.FunnelProvider, repo ports.FunnelRepository) *FunnelServiceImpl {
	return &FunnelServiceImpl{
		provider: provider,
		repo:     repo,
	}
}

// GetFunnel returns the funnel for id in lang, serving from the cache when
// fresh and fetching from the backend otherwise. Products with unsupported
// option data are rejected before they enter the cache.
func (s *FunnelServiceImpl) GetFunnel(ctx context.Context, id, lang string) (*domain.Funnel, error) {
	funnel, err := s.repo.Get(ctx, id, lang)
	if err != nil {
		// A broken cache read degrades to an upstream fetch.
		logger.Get().Warn("Funnel cache read failed",
			zap.String("funnel_id", id),
			zap.Error(err),
		)
	}
	if funnel != nil {
		return funnel, nil
	}

	funnel, err = s.provider.FetchFunnel(ctx, id, lang)
	if err != nil {
		return nil, fmt.Errorf("service: failed to fetch funnel: %w", err)
	}

	if err := funnel.Product.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, lang, funnel); err != nil {
		logger.Get().Warn("Funnel cache write failed",
			zap.String("funnel_id", id),
			zap.Error(err),
		)
	}

	return funnel, nil
}

// GetResolvedOptions returns the selection-ready option view for the
// funnel's product, nil when the product has no variants.
func (s *FunnelServiceImpl) GetResolvedOptions(ctx context.Context, id, lang string) (*domain.ResolvedOptions, error) {
	funnel, err := s.GetFunnel(ctx, id, lang)
	if err != nil {
		return nil, err
	}

	resolved := domain.ResolveOptions(&funnel.Product)
	if resolved == nil {
		logger.Get().Debug("Product has no resolvable options",
			zap.String("funnel_id", id),
			zap.Int("product_id", funnel.Product.ID),
		)
	}
	return resolved, nil
}
