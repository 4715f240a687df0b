package ports

import (
	"context"

	"funnel-storefront/internal/features/checkout/domain"
)

// OptionSlot names which selection surface a panel mutation targets.
type OptionSlot string

const (
	// SlotFirst is the primary option in the bundle flow.
	SlotFirst OptionSlot = "first"
	// SlotSecond is the secondary option in the bundle flow.
	SlotSecond OptionSlot = "second"
	// SlotColor is the color in the color/size flow.
	SlotColor OptionSlot = "color"
	// SlotSize is the size in the color/size flow.
	SlotSize OptionSlot = "size"
)

// CheckoutService defines the primary port for checkout session operations.
type CheckoutService interface {
	// CreateSession starts a session for a funnel. An empty flow picks the
	// default for the funnel's product.
	CreateSession(ctx context.Context, funnelID, lang string, flow domain.Flow) (*domain.CheckoutSession, error)
	// GetSession loads an existing session.
	GetSession(ctx context.Context, id string) (*domain.CheckoutSession, error)
	// SelectQuantity switches the session to the given purchase option,
	// wiping all per-panel selections.
	SelectQuantity(ctx context.Context, sessionID string, purchaseOptionID int) (*domain.CheckoutSession, error)
	// SelectPanelOption records an option choice on one bundle panel.
	SelectPanelOption(ctx context.Context, sessionID string, panelIndex int, slot OptionSlot, value string) (*domain.CheckoutSession, error)
	// UpdateField writes a form field value, validating it on every write.
	UpdateField(ctx context.Context, sessionID, fieldID, value string, touched bool) (*domain.CheckoutSession, error)
	// SelectPayment records the payment option, last-write-wins.
	SelectPayment(ctx context.Context, sessionID, id, value string) (*domain.CheckoutSession, error)
	// SelectDelivery records the delivery option, last-write-wins.
	SelectDelivery(ctx context.Context, sessionID, id, value string) (*domain.CheckoutSession, error)
	// SelectProductOption records an option choice on the non-bundle
	// product selection.
	SelectProductOption(ctx context.Context, sessionID string, slot OptionSlot, value string) (*domain.CheckoutSession, error)
	// SetProductQty sets the non-bundle quantity, clamped to stock.
	SetProductQty(ctx context.Context, sessionID string, qty int) (*domain.CheckoutSession, error)
	// Summary computes the localized order summary for the session.
	Summary(ctx context.Context, sessionID string) (*domain.OrderSummary, error)
}

// SessionRepository defines the secondary port for session persistence.
type SessionRepository interface {
	Save(ctx context.Context, session *domain.CheckoutSession) error
	Get(ctx context.Context, id string) (*domain.CheckoutSession, error)
	Delete(ctx context.Context, id string) error
}
