package domain

import (
	funnel "funnel-storefront/internal/features/funnel/domain"

	"funnel-storefront/internal/core/logger"

	"go.uber.org/zap"
)

// SelectFirstOption records a first-option choice on a bundle panel.
// The stored first option is always overwritten and the second option,
// SKU and image are cleared (reset-on-change). On single-group products
// whose association resolves to exactly one entry, SKU and image are set
// immediately with no further user action.
func (s *CheckoutSession) SelectFirstOption(panelIndex int, value string, resolved *funnel.ResolvedOptions) {
	if resolved == nil {
		logger.Get().Warn("First option selected on product without options",
			zap.String("session_id", s.ID))
		return
	}

	patch := BundleOptionPatch{
		FirstOption: &value,
		ClearSecond: true,
		ClearSKU:    true,
	}

	if resolved.Second == nil {
		if assoc := resolved.Associations[value]; len(assoc) == 1 {
			id := assoc[0].SKUID
			patch.SKUID = &id
			patch.Image = assoc[0].Image
		}
	}

	s.BundleOptions.UpdatePanelOption(panelIndex, patch)
	s.touch()
}

// SelectSecondOption records a second-option choice on a bundle panel.
// It no-ops while no first option is chosen, and no-ops for values that
// are not associated with the current first option: the panel keeps its
// last validly resolved SKU, or stays incomplete.
func (s *CheckoutSession) SelectSecondOption(panelIndex int, value string, resolved *funnel.ResolvedOptions) {
	if resolved == nil || resolved.Second == nil {
		return
	}

	panel := s.BundleOptions.GetPanelOption(panelIndex)
	if panel == nil || panel.FirstOption == nil {
		return
	}

	for _, opt := range resolved.Associations[*panel.FirstOption] {
		if opt.Value != value {
			continue
		}
		id := opt.SKUID
		s.BundleOptions.UpdatePanelOption(panelIndex, BundleOptionPatch{
			SecondOption: &value,
			SKUID:        &id,
			Image:        opt.Image,
		})
		s.touch()
		return
	}
}

// SecondOptionAvailability returns the second-option values currently
// enabled for a bundle panel. The list is empty while no first option is
// chosen; products without a second group have nothing to enable.
func (s *CheckoutSession) SecondOptionAvailability(panelIndex int, resolved *funnel.ResolvedOptions) []string {
	if resolved == nil || resolved.Second == nil {
		return nil
	}

	panel := s.BundleOptions.GetPanelOption(panelIndex)
	if panel == nil || panel.FirstOption == nil {
		return nil
	}

	assoc := resolved.Associations[*panel.FirstOption]
	values := make([]string, 0, len(assoc))
	for _, opt := range assoc {
		values = append(values, opt.Value)
	}
	return values
}

// SelectColor records a color choice on a color/size panel, clearing the
// panel's size (reset-on-change).
func (s *CheckoutSession) SelectColor(panelIndex int, color string) {
	s.Panels.UpdatePanelOption(panelIndex, PanelPatch{Color: &color, ClearSize: true})
	s.touch()
}

// SelectSize records a size choice on a color/size panel. It no-ops while
// no color is chosen, and no-ops for sizes not associated with the
// current color when option data is available.
func (s *CheckoutSession) SelectSize(panelIndex int, size string, resolved *funnel.ResolvedOptions) {
	panel := s.Panels.GetPanelOption(panelIndex)
	if panel == nil || panel.Color == nil {
		return
	}

	if resolved != nil && resolved.Second != nil {
		allowed := false
		for _, opt := range resolved.Associations[*panel.Color] {
			if opt.Value == size {
				allowed = true
				break
			}
		}
		if !allowed {
			return
		}
	}

	s.Panels.UpdatePanelOption(panelIndex, PanelPatch{Size: &size})
	s.touch()
}

// SelectProductFirstOption records the primary choice on the non-bundle
// product selection, clearing the secondary choice and resolved SKU. On
// single-group products the SKU resolves immediately, updating the stock
// cap for quantity clamping.
func (s *CheckoutSession) SelectProductFirstOption(value string, resolved *funnel.ResolvedOptions, product *funnel.Product) {
	if resolved == nil {
		return
	}

	patch := ProductSelectionPatch{
		FirstOption: &value,
		ClearSecond: true,
		ClearSKU:    true,
	}

	if resolved.Second == nil {
		if assoc := resolved.Associations[value]; len(assoc) == 1 {
			applyResolvedSKU(&patch, assoc[0], product)
		}
	}

	s.Product.SetState(patch)
	s.touch()
}

// SelectProductSecondOption records the secondary choice on the
// non-bundle product selection. It no-ops while no first option is chosen
// and for values outside the current association.
func (s *CheckoutSession) SelectProductSecondOption(value string, resolved *funnel.ResolvedOptions, product *funnel.Product) {
	if resolved == nil || resolved.Second == nil {
		return
	}

	state := s.Product.GetState()
	if state.FirstOption == nil {
		return
	}

	for _, opt := range resolved.Associations[*state.FirstOption] {
		if opt.Value != value {
			continue
		}
		patch := ProductSelectionPatch{SecondOption: &value}
		applyResolvedSKU(&patch, opt, product)
		s.Product.SetState(patch)
		s.touch()
		return
	}
}

// SetProductQty sets the non-bundle quantity; the store clamps it to
// [1, MaxQty].
func (s *CheckoutSession) SetProductQty(qty int) {
	s.Product.SetState(ProductSelectionPatch{Qty: &qty})
	s.touch()
}

// applyResolvedSKU copies a resolved combination's SKU metadata into the
// patch, falling back to base product pricing and stock where the
// combination carries none.
func applyResolvedSKU(patch *ProductSelectionPatch, opt funnel.AvailableOption, product *funnel.Product) {
	id := opt.SKUID
	patch.SKUID = &id
	patch.Hex = opt.Hex
	patch.Image = opt.Image

	if opt.Price != nil {
		patch.Price = opt.Price
	} else if product != nil {
		price := product.Price
		patch.Price = &price
	}
	if opt.PriceAfterDiscount != nil {
		patch.PriceAfterDiscount = opt.PriceAfterDiscount
	} else if product != nil {
		patch.PriceAfterDiscount = product.PriceAfterDiscount
	}

	maxQty := 0
	if opt.Qty != nil {
		maxQty = *opt.Qty
	} else if product != nil {
		maxQty = product.Qty
	}
	if maxQty > 0 {
		patch.MaxQty = &maxQty
	}
}
