package domain

import (
	funnel "funnel-storefront/internal/features/funnel/domain"
)

// Violation is one reason the order cannot be submitted yet.
type Violation struct {
	// Field names the invalid form field, empty for option violations.
	Field string `json:"field,omitempty"`
	// PanelIndex names the incomplete panel, zero for field violations.
	PanelIndex int `json:"panel_index,omitempty"`
	// MessageKey is the i18n key of the error message.
	MessageKey string `json:"message_key"`
}

// Gate aggregates validity from the form store and all selection
// containers to decide whether the order-confirmation step may open, and
// assembles the final order payload. The gate never talks to the backend
// itself; relaying a confirmed order is the order service's job.
type Gate struct {
	session     *CheckoutSession
	resolved    *funnel.ResolvedOptions
	hasVariants bool
}

// NewGate creates a gate for the session against its funnel's resolved
// option data.
func NewGate(session *CheckoutSession, resolved *funnel.ResolvedOptions, hasVariants bool) *Gate {
	return &Gate{
		session:     session,
		resolved:    resolved,
		hasVariants: hasVariants,
	}
}

// CanSubmit reports whether every required field is valid and every
// active panel's option selection is complete.
func (g *Gate) CanSubmit() bool {
	return len(g.Violations()) == 0
}

// Violations returns every reason submission is currently blocked, field
// violations first in display order.
func (g *Gate) Violations() []Violation {
	var violations []Violation

	for _, id := range RequiredFields {
		field, ok := g.session.Form.Field(id)
		if !ok {
			continue
		}
		if !field.IsValid {
			violations = append(violations, Violation{Field: id, MessageKey: errorKeyFor(id)})
		}
	}
	if notes, ok := g.session.Form.Field(FieldNotes); ok && !notes.IsValid {
		violations = append(violations, Violation{Field: FieldNotes, MessageKey: "error.notes"})
	}

	violations = append(violations, g.optionViolations()...)
	return violations
}

// optionViolations checks selection completeness for the session's flow.
// Products without variants trivially pass.
func (g *Gate) optionViolations() []Violation {
	if !g.hasVariants {
		return nil
	}

	var violations []Violation

	switch g.session.Flow {
	case FlowBundle:
		for _, panel := range g.session.BundleOptions.GetAllOptions() {
			switch panel.NumberOfOptions {
			case 0:
				// Trivially complete.
			case 1:
				if panel.FirstOption == nil {
					violations = append(violations, Violation{
						PanelIndex: panel.BundleIndex,
						MessageKey: "error.option_required",
					})
				}
			default:
				if panel.FirstOption == nil || panel.SecondOption == nil {
					violations = append(violations, Violation{
						PanelIndex: panel.BundleIndex,
						MessageKey: "error.option_required",
					})
				}
			}
		}
	case FlowColorSize:
		sizeRequired := g.resolved != nil && g.resolved.Second != nil
		for _, panel := range g.session.Panels.GetAllOptions() {
			if panel.Color == nil {
				violations = append(violations, Violation{
					PanelIndex: panel.PanelIndex,
					MessageKey: "error.color_required",
				})
				continue
			}
			if sizeRequired && panel.Size == nil {
				violations = append(violations, Violation{
					PanelIndex: panel.PanelIndex,
					MessageKey: "error.size_required",
				})
			}
		}
	case FlowProduct:
		state := g.session.Product.GetState()
		if state.FirstOption == nil {
			violations = append(violations, Violation{MessageKey: "error.option_required"})
		} else if g.resolved != nil && g.resolved.Second != nil && state.SecondOption == nil {
			violations = append(violations, Violation{MessageKey: "error.option_required"})
		}
	}

	return violations
}

// FirstInvalidField returns the id of the first invalid required field in
// display order, empty when all fields pass. The renderer scrolls to and
// focuses this field after a blocked submission.
func (g *Gate) FirstInvalidField() string {
	for _, id := range g.session.Form.FieldIDs() {
		if field, ok := g.session.Form.Field(id); ok && !field.IsValid {
			return id
		}
	}
	return ""
}

// BuildPayload assembles the order submission from the session's
// containers. Call only after CanSubmit; an incomplete session produces a
// payload with missing selections.
func (g *Gate) BuildPayload() *funnel.OrderSubmission {
	s := g.session
	bundle := s.Bundle.GetState()

	sub := &funnel.OrderSubmission{
		FunnelID: s.FunnelID,
		CustomerData: funnel.CustomerData{
			FullName: fieldValue(s.Form, FieldFullName),
			Phone:    fieldValue(s.Form, FieldPhone),
			Email:    fieldValue(s.Form, FieldEmail),
			Address:  fieldValue(s.Form, FieldAddress),
			City:     fieldValue(s.Form, FieldCity),
			Notes:    fieldValue(s.Form, FieldNotes),
		},
	}
	if bundle.SelectedOffer != nil {
		sub.PurchaseOptionID = bundle.SelectedOffer.ID
	}
	if payment := s.Payment.GetChoice(); payment != nil {
		sub.CustomerData.PaymentMethod = payment.Value
	}
	if delivery := s.Delivery.GetChoice(); delivery != nil {
		sub.CustomerData.DeliveryMethod = delivery.Value
	}

	switch s.Flow {
	case FlowColorSize:
		for _, panel := range s.Panels.GetAllOptions() {
			item := funnel.OrderItem{Quantity: 1}
			if panel.Color != nil {
				item.FirstOption = *panel.Color
			}
			if panel.Size != nil {
				item.SecondOption = *panel.Size
			}
			sub.CustomerData.Items = append(sub.CustomerData.Items, item)
		}
	case FlowProduct:
		state := s.Product.GetState()
		item := funnel.OrderItem{Quantity: state.Qty}
		if state.SKUID != nil {
			item.SKUID = *state.SKUID
		}
		if state.FirstOption != nil {
			item.FirstOption = *state.FirstOption
		}
		if state.SecondOption != nil {
			item.SecondOption = *state.SecondOption
		}
		if state.Image != nil {
			item.Image = *state.Image
		}
		sub.CustomerData.Items = append(sub.CustomerData.Items, item)
	default:
		for _, panel := range s.BundleOptions.GetAllOptions() {
			item := funnel.OrderItem{Quantity: 1}
			if panel.SKUID != nil {
				item.SKUID = *panel.SKUID
			}
			if panel.FirstOption != nil {
				item.FirstOption = *panel.FirstOption
			}
			if panel.SecondOption != nil {
				item.SecondOption = *panel.SecondOption
			}
			if panel.Image != nil {
				item.Image = *panel.Image
			}
			sub.CustomerData.Items = append(sub.CustomerData.Items, item)
		}
	}

	return sub
}

func errorKeyFor(id string) string {
	switch id {
	case FieldFullName:
		return "error.full_name"
	case FieldPhone:
		return "error.phone"
	case FieldEmail:
		return "error.email"
	case FieldAddress:
		return "error.address"
	case FieldCity:
		return "error.city"
	default:
		return "error." + id
	}
}

func fieldValue(form *FormStore, id string) string {
	field, _ := form.Field(id)
	return field.Value
}
