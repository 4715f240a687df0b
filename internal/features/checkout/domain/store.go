package domain

import (
	funnel "funnel-storefront/internal/features/funnel/domain"

	"funnel-storefront/internal/core/logger"

	"go.uber.org/zap"
)

// Observer receives a synchronous notification after a store mutation.
// An Update callback may itself mutate the same or another store;
// notification runs over a copied observer list so re-entrant
// Attach/Detach/SetState calls cannot invalidate the iteration.
type Observer interface {
	Update()
}

// subject implements the shared attach/detach/notify mechanics of all
// checkout stores. Notification is synchronous and carries no equality
// short-circuit: every mutation notifies, even when the merged state is
// equivalent to the previous one.
type subject struct {
	observers []Observer
}

// Attach registers an observer.
func (s *subject) Attach(o Observer) {
	s.observers = append(s.observers, o)
}

// Detach removes a previously attached observer, no-op when absent.
func (s *subject) Detach(o Observer) {
	for i, cur := range s.observers {
		if cur == o {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

func (s *subject) notify() {
	snapshot := make([]Observer, len(s.observers))
	copy(snapshot, s.observers)
	for _, o := range snapshot {
		o.Update()
	}
}

// BundleSelection is the selected quantity tier of the session.
type BundleSelection struct {
	// Quantity is the number of units, always >= 1.
	Quantity int `json:"quantity"`
	// SelectedOffer is the chosen purchase option, replaced wholesale on
	// every tier change.
	SelectedOffer *funnel.PurchaseOption `json:"selected_offer,omitempty"`
}

// BundlePatch is a partial update of BundleSelection. Nil fields are left
// untouched.
type BundlePatch struct {
	Quantity      *int
	SelectedOffer *funnel.PurchaseOption
}

// BundleStore holds the session's bundle/quantity selection.
// Changing quantity does not reset panels here; that orchestration lives
// in CheckoutSession.SelectQuantity so it cannot be forgotten by callers.
type BundleStore struct {
	subject
	state BundleSelection
}

// NewBundleStore creates a BundleStore with quantity 1 and no offer.
func NewBundleStore() *BundleStore {
	return &BundleStore{state: BundleSelection{Quantity: 1}}
}

// GetState returns the current bundle selection.
func (s *BundleStore) GetState() BundleSelection {
	return s.state
}

// SetState merges the patch into the state and notifies observers.
func (s *BundleStore) SetState(p BundlePatch) {
	if p.Quantity != nil {
		s.state.Quantity = *p.Quantity
	}
	if p.SelectedOffer != nil {
		offer := *p.SelectedOffer
		s.state.SelectedOffer = &offer
	}
	s.notify()
}

// PanelOption is one panel's color/size selection in the simple flow.
type PanelOption struct {
	// PanelIndex identifies the panel, 1-based.
	PanelIndex int `json:"panel_index"`
	// Color is the selected color, nil until chosen.
	Color *string `json:"color"`
	// Size is the selected size, nil until chosen. Reset to nil whenever
	// Color changes.
	Size *string `json:"size"`
}

// PanelPatch is a partial update of a PanelOption. Nil pointer fields are
// left untouched; the Clear flags reset a field to nil.
type PanelPatch struct {
	Color     *string
	Size      *string
	ClearSize bool
}

// PanelStore holds the per-panel color/size selections.
type PanelStore struct {
	subject
	options []PanelOption
}

// NewPanelStore creates an empty PanelStore.
func NewPanelStore() *PanelStore {
	return &PanelStore{}
}

// InitializePanels replaces the entire options array with n fresh panels.
// This is how panel count changes propagate: all prior selections are gone.
func (s *PanelStore) InitializePanels(n int) {
	options := make([]PanelOption, 0, n)
	for i := 1; i <= n; i++ {
		options = append(options, PanelOption{PanelIndex: i})
	}
	s.options = options
	s.notify()
}

// UpdatePanelOption merges the patch into the panel with the given index.
// Unknown indexes warn and no-op so a stale UI cannot crash the session.
func (s *PanelStore) UpdatePanelOption(index int, p PanelPatch) {
	for i := range s.options {
		if s.options[i].PanelIndex != index {
			continue
		}
		if p.Color != nil {
			color := *p.Color
			s.options[i].Color = &color
		}
		if p.ClearSize {
			s.options[i].Size = nil
		}
		if p.Size != nil {
			size := *p.Size
			s.options[i].Size = &size
		}
		s.notify()
		return
	}
	logger.Get().Warn("Panel index out of range", zap.Int("panel_index", index))
}

// GetPanelOption returns the panel with the given index, nil when absent.
func (s *PanelStore) GetPanelOption(index int) *PanelOption {
	for i := range s.options {
		if s.options[i].PanelIndex == index {
			option := s.options[i]
			return &option
		}
	}
	return nil
}

// GetAllOptions returns a copy of all panels.
func (s *PanelStore) GetAllOptions() []PanelOption {
	out := make([]PanelOption, len(s.options))
	copy(out, s.options)
	return out
}

// BundlePanelOption is one panel's selection in the bundle option flow.
type BundlePanelOption struct {
	// BundleIndex identifies the panel, 1-based.
	BundleIndex int `json:"bundle_index"`
	// FirstOption is the selected primary option value.
	FirstOption *string `json:"first_option"`
	// SecondOption is the selected secondary option value. Reset to nil
	// whenever FirstOption changes.
	SecondOption *string `json:"second_option"`
	// NumberOfOptions is how many option groups this panel requires (0-2).
	NumberOfOptions int `json:"number_of_options"`
	// SKUID is the resolved variant of the completed selection.
	SKUID *int `json:"sku_id"`
	// Image is the image of the resolved variant.
	Image *string `json:"image"`
}

// BundleOptionPatch is a partial update of a BundlePanelOption.
type BundleOptionPatch struct {
	FirstOption     *string
	SecondOption    *string
	NumberOfOptions *int
	SKUID           *int
	Image           *string
	ClearSecond     bool
	ClearSKU        bool
}

// BundleOptionStore holds the per-panel first/second option selections.
type BundleOptionStore struct {
	subject
	options []BundlePanelOption
}

// NewBundleOptionStore creates an empty BundleOptionStore.
func NewBundleOptionStore() *BundleOptionStore {
	return &BundleOptionStore{}
}

// InitializePanels replaces the entire options array with n fresh panels.
func (s *BundleOptionStore) InitializePanels(n int) {
	options := make([]BundlePanelOption, 0, n)
	for i := 1; i <= n; i++ {
		options = append(options, BundlePanelOption{BundleIndex: i})
	}
	s.options = options
	s.notify()
}

// UpdatePanelOption merges the patch into the panel with the given index.
// Unknown indexes warn and no-op.
func (s *BundleOptionStore) UpdatePanelOption(index int, p BundleOptionPatch) {
	for i := range s.options {
		if s.options[i].BundleIndex != index {
			continue
		}
		if p.FirstOption != nil {
			first := *p.FirstOption
			s.options[i].FirstOption = &first
		}
		if p.ClearSecond {
			s.options[i].SecondOption = nil
		}
		if p.SecondOption != nil {
			second := *p.SecondOption
			s.options[i].SecondOption = &second
		}
		if p.NumberOfOptions != nil {
			s.options[i].NumberOfOptions = *p.NumberOfOptions
		}
		if p.ClearSKU {
			s.options[i].SKUID = nil
			s.options[i].Image = nil
		}
		if p.SKUID != nil {
			id := *p.SKUID
			s.options[i].SKUID = &id
		}
		if p.Image != nil {
			image := *p.Image
			s.options[i].Image = &image
		}
		s.notify()
		return
	}
	logger.Get().Warn("Bundle panel index out of range", zap.Int("bundle_index", index))
}

// GetPanelOption returns the panel with the given index, nil when absent.
func (s *BundleOptionStore) GetPanelOption(index int) *BundlePanelOption {
	for i := range s.options {
		if s.options[i].BundleIndex == index {
			option := s.options[i]
			return &option
		}
	}
	return nil
}

// GetAllOptions returns a copy of all panels.
func (s *BundleOptionStore) GetAllOptions() []BundlePanelOption {
	out := make([]BundlePanelOption, len(s.options))
	copy(out, s.options)
	return out
}

// FieldState is the state of one checkout form field.
type FieldState struct {
	// Value is the latest raw input.
	Value string `json:"value"`
	// IsValid always reflects the latest value, touched or not.
	IsValid bool `json:"is_valid"`
	// ErrorMessage is the localized validation message for invalid values.
	ErrorMessage string `json:"error_message"`
	// Touched gates whether validation UI is shown; it never affects IsValid.
	Touched bool `json:"touched"`
}

// FieldPatch is a partial update of a FieldState.
type FieldPatch struct {
	Value        *string
	IsValid      *bool
	ErrorMessage *string
	Touched      *bool
}

// FormStore holds all form field states. Fields are seeded once per
// session and never destroyed afterwards.
type FormStore struct {
	subject
	ids    []string
	fields map[string]FieldState
}

// NewFormStore creates an empty FormStore.
func NewFormStore() *FormStore {
	return &FormStore{fields: make(map[string]FieldState)}
}

// InitializeFields seeds blank entries for the given field ids, replacing
// any previous fields.
func (s *FormStore) InitializeFields(ids []string) {
	s.ids = append([]string(nil), ids...)
	s.fields = make(map[string]FieldState, len(ids))
	for _, id := range ids {
		s.fields[id] = FieldState{}
	}
	s.notify()
}

// UpdateField merges the patch into the named field. Unknown ids warn and
// no-op.
func (s *FormStore) UpdateField(id string, p FieldPatch) {
	field, ok := s.fields[id]
	if !ok {
		logger.Get().Warn("Unknown form field", zap.String("field_id", id))
		return
	}
	if p.Value != nil {
		field.Value = *p.Value
	}
	if p.IsValid != nil {
		field.IsValid = *p.IsValid
	}
	if p.ErrorMessage != nil {
		field.ErrorMessage = *p.ErrorMessage
	}
	if p.Touched != nil {
		field.Touched = *p.Touched
	}
	s.fields[id] = field
	s.notify()
}

// Field returns the named field's state and whether it exists.
func (s *FormStore) Field(id string) (FieldState, bool) {
	field, ok := s.fields[id]
	return field, ok
}

// FieldIDs returns the seeded field ids in their original order.
func (s *FormStore) FieldIDs() []string {
	return append([]string(nil), s.ids...)
}

// Fields returns a copy of all field states.
func (s *FormStore) Fields() map[string]FieldState {
	out := make(map[string]FieldState, len(s.fields))
	for id, field := range s.fields {
		out[id] = field
	}
	return out
}

// MarkAllTouched marks every field touched, forcing inline error display.
func (s *FormStore) MarkAllTouched() {
	for id, field := range s.fields {
		field.Touched = true
		s.fields[id] = field
	}
	s.notify()
}

// Choice is a selected payment or delivery option.
type Choice struct {
	// ID is the option identifier.
	ID string `json:"id"`
	// Value is the option's display value.
	Value string `json:"value"`
}

// ChoiceStore holds a single selected choice, last-write-wins.
type ChoiceStore struct {
	subject
	state *Choice
}

// NewChoiceStore creates an empty ChoiceStore.
func NewChoiceStore() *ChoiceStore {
	return &ChoiceStore{}
}

// SetChoice replaces the selected choice and notifies observers.
func (s *ChoiceStore) SetChoice(id, value string) {
	s.state = &Choice{ID: id, Value: value}
	s.notify()
}

// GetChoice returns the selected choice, nil when none was made.
func (s *ChoiceStore) GetChoice() *Choice {
	if s.state == nil {
		return nil
	}
	choice := *s.state
	return &choice
}

// ProductSelection is the non-bundle single-product selection.
type ProductSelection struct {
	FirstOption        *string  `json:"first_option"`
	SecondOption       *string  `json:"second_option"`
	SKUID              *int     `json:"sku_id"`
	Hex                *string  `json:"hex"`
	Price              *float64 `json:"price"`
	PriceAfterDiscount *float64 `json:"price_after_discount"`
	// Qty is clamped to [1, MaxQty] on every write.
	Qty int `json:"qty"`
	// MaxQty is the available stock of the resolved SKU, falling back to
	// the base product stock.
	MaxQty int     `json:"max_qty"`
	Image  *string `json:"image"`
}

// ProductSelectionPatch is a partial update of a ProductSelection.
type ProductSelectionPatch struct {
	FirstOption        *string
	SecondOption       *string
	SKUID              *int
	Hex                *string
	Price              *float64
	PriceAfterDiscount *float64
	Qty                *int
	MaxQty             *int
	Image              *string
	ClearSecond        bool
	ClearSKU           bool
}

// ProductSelectionStore holds the non-bundle product selection.
type ProductSelectionStore struct {
	subject
	state ProductSelection
}

// NewProductSelectionStore creates a store with qty 1 and the given stock cap.
func NewProductSelectionStore(maxQty int) *ProductSelectionStore {
	if maxQty < 1 {
		maxQty = 1
	}
	return &ProductSelectionStore{state: ProductSelection{Qty: 1, MaxQty: maxQty}}
}

// GetState returns the current product selection.
func (s *ProductSelectionStore) GetState() ProductSelection {
	return s.state
}

// SetState merges the patch, clamps Qty to [1, MaxQty] and notifies.
func (s *ProductSelectionStore) SetState(p ProductSelectionPatch) {
	if p.FirstOption != nil {
		first := *p.FirstOption
		s.state.FirstOption = &first
	}
	if p.ClearSecond {
		s.state.SecondOption = nil
	}
	if p.SecondOption != nil {
		second := *p.SecondOption
		s.state.SecondOption = &second
	}
	if p.ClearSKU {
		s.state.SKUID = nil
		s.state.Hex = nil
		s.state.Price = nil
		s.state.PriceAfterDiscount = nil
		s.state.Image = nil
	}
	if p.SKUID != nil {
		id := *p.SKUID
		s.state.SKUID = &id
	}
	if p.Hex != nil {
		hex := *p.Hex
		s.state.Hex = &hex
	}
	if p.Price != nil {
		price := *p.Price
		s.state.Price = &price
	}
	if p.PriceAfterDiscount != nil {
		price := *p.PriceAfterDiscount
		s.state.PriceAfterDiscount = &price
	}
	if p.Image != nil {
		image := *p.Image
		s.state.Image = &image
	}
	if p.MaxQty != nil {
		s.state.MaxQty = *p.MaxQty
		if s.state.MaxQty < 1 {
			s.state.MaxQty = 1
		}
	}
	if p.Qty != nil {
		s.state.Qty = *p.Qty
	}
	if s.state.Qty < 1 {
		s.state.Qty = 1
	}
	if s.state.Qty > s.state.MaxQty {
		s.state.Qty = s.state.MaxQty
	}
	s.notify()
}
