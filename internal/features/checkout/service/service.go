package service

import (
	"context"
	"errors"
	"fmt"

	"funnel-storefront/internal/features/checkout/domain"
	"funnel-storefront/internal/features/checkout/ports"
	funneldomain "funnel-storefront/internal/features/funnel/domain"
	funnelports "funnel-storefront/internal/features/funnel/ports"
)

// ErrUnknownSlot is returned when an option mutation names a slot the
// session's flow does not drive.
var ErrUnknownSlot = errors.New("unknown option slot")

// CheckoutServiceImpl implements ports.CheckoutService. Every mutation
// loads the session, applies the domain operation against the funnel's
// resolved option data and persists the result.
type CheckoutServiceImpl struct {
	repo    ports.SessionRepository
	funnels funnelports.FunnelService
}

// NewCheckoutService creates a new CheckoutServiceImpl.
func NewCheckoutService(repo ports.SessionRepository, funnels funnelports.FunnelService) *CheckoutServiceImpl {
	return &CheckoutServiceImpl{
		repo:    repo,
		funnels: funnels,
	}
}

// CreateSession starts a session for the funnel, seeded with its default
// purchase option. An empty flow defaults to the bundle flow for variant
// products and the product flow otherwise.
func (s *CheckoutServiceImpl) CreateSession(ctx context.Context, funnelID, lang string, flow domain.Flow) (*domain.CheckoutSession, error) {
	funnel, err := s.funnels.GetFunnel(ctx, funnelID, lang)
	if err != nil {
		return nil, err
	}

	if flow == "" {
		if funnel.Product.HasVariants() {
			flow = domain.FlowBundle
		} else {
			flow = domain.FlowProduct
		}
	}

	session := domain.NewCheckoutSession(funnel, lang, flow)
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("service: failed to save session: %w", err)
	}

	return session, nil
}

// GetSession loads an existing session.
func (s *CheckoutServiceImpl) GetSession(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load session: %w", err)
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// SelectQuantity switches the session to the named purchase option. The
// session's own mutation path wipes every panel selection.
func (s *CheckoutServiceImpl) SelectQuantity(ctx context.Context, sessionID string, purchaseOptionID int) (*domain.CheckoutSession, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	funnel, err := s.funnels.GetFunnel(ctx, session.FunnelID, session.Lang)
	if err != nil {
		return nil, err
	}

	offer, ok := findPurchaseOption(funnel, purchaseOptionID)
	if !ok {
		return nil, domain.ErrUnknownPurchaseOption
	}

	session.SelectQuantity(offer, &funnel.Product)
	return session, s.save(ctx, session)
}

// SelectPanelOption records an option choice on one bundle panel.
func (s *CheckoutServiceImpl) SelectPanelOption(ctx context.Context, sessionID string, panelIndex int, slot ports.OptionSlot, value string) (*domain.CheckoutSession, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	resolved, err := s.funnels.GetResolvedOptions(ctx, session.FunnelID, session.Lang)
	if err != nil {
		return nil, err
	}

	switch slot {
	case ports.SlotFirst:
		session.SelectFirstOption(panelIndex, value, resolved)
	case ports.SlotSecond:
		session.SelectSecondOption(panelIndex, value, resolved)
	case ports.SlotColor:
		session.SelectColor(panelIndex, value)
	case ports.SlotSize:
		session.SelectSize(panelIndex, value, resolved)
	default:
		return nil, ErrUnknownSlot
	}

	return session, s.save(ctx, session)
}

// UpdateField validates and writes a form field value.
func (s *CheckoutServiceImpl) UpdateField(ctx context.Context, sessionID, fieldID, value string, touched bool) (*domain.CheckoutSession, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.UpdateField(fieldID, value, touched)
	return session, s.save(ctx, session)
}

// SelectPayment records the payment option.
func (s *CheckoutServiceImpl) SelectPayment(ctx context.Context, sessionID, id, value string) (*domain.CheckoutSession, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.SelectPayment(id, value)
	return session, s.save(ctx, session)
}

// SelectDelivery records the delivery option.
func (s *CheckoutServiceImpl) SelectDelivery(ctx context.Context, sessionID, id, value string) (*domain.CheckoutSession, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.SelectDelivery(id, value)
	return session, s.save(ctx, session)
}

// SelectProductOption records an option choice on the non-bundle product
// selection.
func (s *CheckoutServiceImpl) SelectProductOption(ctx context.Context, sessionID string, slot ports.OptionSlot, value string) (*domain.CheckoutSession, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	funnel, err := s.funnels.GetFunnel(ctx, session.FunnelID, session.Lang)
	if err != nil {
		return nil, err
	}
	resolved, err := s.funnels.GetResolvedOptions(ctx, session.FunnelID, session.Lang)
	if err != nil {
		return nil, err
	}

	switch slot {
	case ports.SlotFirst:
		session.SelectProductFirstOption(value, resolved, &funnel.Product)
	case ports.SlotSecond:
		session.SelectProductSecondOption(value, resolved, &funnel.Product)
	default:
		return nil, ErrUnknownSlot
	}

	return session, s.save(ctx, session)
}

// SetProductQty sets the non-bundle quantity; the store clamps to stock.
func (s *CheckoutServiceImpl) SetProductQty(ctx context.Context, sessionID string, qty int) (*domain.CheckoutSession, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.SetProductQty(qty)
	return session, s.save(ctx, session)
}

// Summary computes the localized order summary for the session.
func (s *CheckoutServiceImpl) Summary(ctx context.Context, sessionID string) (*domain.OrderSummary, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	funnel, err := s.funnels.GetFunnel(ctx, session.FunnelID, session.Lang)
	if err != nil {
		return nil, err
	}

	return buildSummary(session, funnel), nil
}

func (s *CheckoutServiceImpl) save(ctx context.Context, session *domain.CheckoutSession) error {
	if err := s.repo.Save(ctx, session); err != nil {
		return fmt.Errorf("service: failed to save session: %w", err)
	}
	return nil
}

func findPurchaseOption(funnel *funneldomain.Funnel, id int) (funneldomain.PurchaseOption, bool) {
	for _, offer := range funnel.PurchaseOptions {
		if offer.ID == id {
			return offer, true
		}
	}
	return funneldomain.PurchaseOption{}, false
}
