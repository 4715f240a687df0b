package domain

import (
	"errors"
	"time"

	funnel "funnel-storefront/internal/features/funnel/domain"

	"github.com/google/uuid"
)

var (
	// ErrSessionNotFound is returned when no session exists for an id.
	ErrSessionNotFound = errors.New("checkout session not found")
	// ErrUnknownPurchaseOption is returned when a quantity selection names
	// a tier the funnel does not offer.
	ErrUnknownPurchaseOption = errors.New("unknown purchase option")
)

// Flow identifies which selection surface a theme drives for the session.
type Flow string

const (
	// FlowBundle is the first/second option flow with per-panel SKU data.
	FlowBundle Flow = "bundle"
	// FlowColorSize is the simpler per-panel color/size flow.
	FlowColorSize Flow = "color-size"
	// FlowProduct is the single-product flow without bundle panels.
	FlowProduct Flow = "product"
)

// CheckoutSession is the complete selection state of one visitor on one
// funnel. Every container lives inside the session; nothing is process
// global, so concurrent funnel sessions never cross-talk.
type CheckoutSession struct {
	ID       string
	FunnelID string
	Lang     string
	Flow     Flow

	Bundle        *BundleStore
	Panels        *PanelStore
	BundleOptions *BundleOptionStore
	Form          *FormStore
	Payment       *ChoiceStore
	Delivery      *ChoiceStore
	Product       *ProductSelectionStore

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCheckoutSession creates a session for the given funnel, seeded with
// the default (first) purchase option and blank form fields. Panels are
// initialized to the default offer's quantity.
func NewCheckoutSession(f *funnel.Funnel, lang string, flow Flow) *CheckoutSession {
	now := time.Now().UTC()
	s := &CheckoutSession{
		ID:            uuid.NewString(),
		FunnelID:      f.ID,
		Lang:          lang,
		Flow:          flow,
		Bundle:        NewBundleStore(),
		Panels:        NewPanelStore(),
		BundleOptions: NewBundleOptionStore(),
		Form:          NewFormStore(),
		Payment:       NewChoiceStore(),
		Delivery:      NewChoiceStore(),
		Product:       NewProductSelectionStore(f.Product.Qty),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	s.Form.InitializeFields(FormFieldIDs)
	for _, id := range FormFieldIDs {
		ok, errKey := ValidateField(id, "")
		s.Form.UpdateField(id, FieldPatch{IsValid: &ok, ErrorMessage: &errKey})
	}

	if len(f.PurchaseOptions) > 0 {
		s.SelectQuantity(f.PurchaseOptions[0], &f.Product)
	}

	return s
}

// SelectQuantity is the single mutation path for the quantity tier: it
// replaces the bundle selection wholesale and re-initializes every panel
// container to the new quantity, wiping all prior per-panel selections.
// Panel metadata is re-derived from the product's option groups, and
// non-variant products get their base image defaulted on every panel
// with no user action required.
func (s *CheckoutSession) SelectQuantity(offer funnel.PurchaseOption, product *funnel.Product) {
	quantity := offer.Items
	if quantity < 1 {
		quantity = 1
	}

	s.Bundle.SetState(BundlePatch{Quantity: &quantity, SelectedOffer: &offer})
	s.Panels.InitializePanels(quantity)
	s.BundleOptions.InitializePanels(quantity)

	numberOfOptions := len(product.CustomOptions)
	if numberOfOptions > 2 {
		numberOfOptions = 2
	}
	if !product.HasVariants() {
		numberOfOptions = 0
	}

	for i := 1; i <= quantity; i++ {
		patch := BundleOptionPatch{NumberOfOptions: &numberOfOptions}
		if numberOfOptions == 0 && product.Image != "" {
			image := product.Image
			patch.Image = &image
		}
		s.BundleOptions.UpdatePanelOption(i, patch)
	}

	s.touch()
}

// UpdateField validates the value, merges it into the form store and
// records touched state. IsValid always tracks the latest value; Touched
// only gates error display.
func (s *CheckoutSession) UpdateField(id, value string, touched bool) {
	ok, errKey := ValidateField(id, value)
	patch := FieldPatch{Value: &value, IsValid: &ok, ErrorMessage: &errKey}
	if touched {
		patch.Touched = &touched
	}
	s.Form.UpdateField(id, patch)
	s.touch()
}

// SelectPayment records the payment option, last-write-wins.
func (s *CheckoutSession) SelectPayment(id, value string) {
	s.Payment.SetChoice(id, value)
	s.touch()
}

// SelectDelivery records the delivery option, last-write-wins.
func (s *CheckoutSession) SelectDelivery(id, value string) {
	s.Delivery.SetChoice(id, value)
	s.touch()
}

func (s *CheckoutSession) touch() {
	s.UpdatedAt = time.Now().UTC()
}

// SessionSnapshot is the serializable view of a session, used both for
// persistence and as the API response shape. Observers are runtime-only
// and not part of the snapshot.
type SessionSnapshot struct {
	ID            string                 `json:"id"`
	FunnelID      string                 `json:"funnel_id"`
	Lang          string                 `json:"lang"`
	Flow          Flow                   `json:"flow"`
	Bundle        BundleSelection        `json:"bundle"`
	Panels        []PanelOption          `json:"panels"`
	BundleOptions []BundlePanelOption    `json:"bundle_options"`
	FieldIDs      []string               `json:"field_ids"`
	Fields        map[string]FieldState  `json:"fields"`
	Payment       *Choice                `json:"payment,omitempty"`
	Delivery      *Choice                `json:"delivery,omitempty"`
	Product       ProductSelection       `json:"product_selection"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// Snapshot captures the session's current state.
func (s *CheckoutSession) Snapshot() SessionSnapshot {
	return SessionSnapshot{
		ID:            s.ID,
		FunnelID:      s.FunnelID,
		Lang:          s.Lang,
		Flow:          s.Flow,
		Bundle:        s.Bundle.GetState(),
		Panels:        s.Panels.GetAllOptions(),
		BundleOptions: s.BundleOptions.GetAllOptions(),
		FieldIDs:      s.Form.FieldIDs(),
		Fields:        s.Form.Fields(),
		Payment:       s.Payment.GetChoice(),
		Delivery:      s.Delivery.GetChoice(),
		Product:       s.Product.GetState(),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// FromSnapshot rebuilds a live session from a persisted snapshot.
func FromSnapshot(sn SessionSnapshot) *CheckoutSession {
	s := &CheckoutSession{
		ID:            sn.ID,
		FunnelID:      sn.FunnelID,
		Lang:          sn.Lang,
		Flow:          sn.Flow,
		Bundle:        NewBundleStore(),
		Panels:        NewPanelStore(),
		BundleOptions: NewBundleOptionStore(),
		Form:          NewFormStore(),
		Payment:       NewChoiceStore(),
		Delivery:      NewChoiceStore(),
		Product:       NewProductSelectionStore(sn.Product.MaxQty),
		CreatedAt:     sn.CreatedAt,
		UpdatedAt:     sn.UpdatedAt,
	}

	s.Bundle.state = sn.Bundle
	s.Panels.options = append([]PanelOption(nil), sn.Panels...)
	s.BundleOptions.options = append([]BundlePanelOption(nil), sn.BundleOptions...)
	s.Form.ids = append([]string(nil), sn.FieldIDs...)
	s.Form.fields = make(map[string]FieldState, len(sn.Fields))
	for id, field := range sn.Fields {
		s.Form.fields[id] = field
	}
	if sn.Payment != nil {
		payment := *sn.Payment
		s.Payment.state = &payment
	}
	if sn.Delivery != nil {
		delivery := *sn.Delivery
		s.Delivery.state = &delivery
	}
	s.Product.state = sn.Product

	return s
}
