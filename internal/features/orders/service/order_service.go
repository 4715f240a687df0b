package service

import (
	"context"
	"fmt"

	"funnel-storefront/internal/core/i18n"
	"funnel-storefront/internal/core/logger"
	checkoutdomain "funnel-storefront/internal/features/checkout/domain"
	checkoutports "funnel-storefront/internal/features/checkout/ports"
	funneldomain "funnel-storefront/internal/features/funnel/domain"
	funnelports "funnel-storefront/internal/features/funnel/ports"
	"funnel-storefront/internal/features/orders/domain"

	"go.uber.org/zap"
)

// OrderServiceImpl implements ports.OrderService: it runs the submission
// gate against a checkout session and relays confirmed orders upstream.
type OrderServiceImpl struct {
	sessions checkoutports.SessionRepository
	funnels  funnelports.FunnelService
	provider funnelports.FunnelProvider
}

// NewOrderService creates a new OrderServiceImpl.
func NewOrderService(sessions checkoutports.SessionRepository, funnels funnelports.FunnelService, provider funnelports.FunnelProvider) *OrderServiceImpl {
	return &OrderServiceImpl{
		sessions: sessions,
		funnels:  funnels,
		provider: provider,
	}
}

// Submit runs the submission gate for the session. When blocked, every
// form field is marked touched (persisted, so inline errors survive a
// reload) and the localized report is returned. When clear, the assembled
// payload opens the confirmation step; nothing is sent upstream here.
func (s *OrderServiceImpl) Submit(ctx context.Context, sessionID string) (*domain.SubmitResult, error) {
	session, gate, err := s.loadGate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	violations := gate.Violations()
	if len(violations) > 0 {
		session.Form.MarkAllTouched()
		if err := s.sessions.Save(ctx, session); err != nil {
			logger.Get().Warn("Failed to persist touched state",
				zap.String("session_id", session.ID),
				zap.Error(err),
			)
		}
		return &domain.SubmitResult{
			CanSubmit: false,
			Report:    buildReport(gate, violations, session.Lang),
		}, nil
	}

	return &domain.SubmitResult{
		CanSubmit: true,
		Payload:   gate.BuildPayload(),
	}, nil
}

// Confirm re-runs the gate and relays the order to the funnel backend.
func (s *OrderServiceImpl) Confirm(ctx context.Context, sessionID string) (*funneldomain.OrderResult, error) {
	session, gate, err := s.loadGate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !gate.CanSubmit() {
		return nil, domain.ErrNotSubmittable
	}

	result, err := s.provider.SubmitOrder(ctx, session.Lang, gate.BuildPayload())
	if err != nil {
		// The session stays alive so the visitor can retry.
		return nil, fmt.Errorf("service: failed to submit order: %w", err)
	}

	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		logger.Get().Warn("Failed to delete confirmed session",
			zap.String("session_id", session.ID),
			zap.Error(err),
		)
	}

	logger.Get().Info("Order confirmed",
		zap.String("session_id", session.ID),
		zap.String("funnel_id", session.FunnelID),
		zap.String("order_id", result.OrderID),
	)
	return result, nil
}

// loadGate loads the session and builds its gate against the funnel's
// resolved option data.
func (s *OrderServiceImpl) loadGate(ctx context.Context, sessionID string) (*checkoutdomain.CheckoutSession, *checkoutdomain.Gate, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("service: failed to load session: %w", err)
	}
	if session == nil {
		return nil, nil, checkoutdomain.ErrSessionNotFound
	}

	funnel, err := s.funnels.GetFunnel(ctx, session.FunnelID, session.Lang)
	if err != nil {
		return nil, nil, err
	}
	resolved, err := s.funnels.GetResolvedOptions(ctx, session.FunnelID, session.Lang)
	if err != nil {
		return nil, nil, err
	}

	return session, checkoutdomain.NewGate(session, resolved, funnel.Product.HasVariants()), nil
}

// buildReport localizes gate violations for the renderer.
func buildReport(gate *checkoutdomain.Gate, violations []checkoutdomain.Violation, lang string) *domain.ValidationReport {
	report := &domain.ValidationReport{
		FirstInvalidField: gate.FirstInvalidField(),
		Errors:            make([]domain.ReportEntry, 0, len(violations)),
	}
	for _, v := range violations {
		report.Errors = append(report.Errors, domain.ReportEntry{
			Field:      v.Field,
			PanelIndex: v.PanelIndex,
			Message:    i18n.T(v.MessageKey, lang),
		})
	}
	return report
}
