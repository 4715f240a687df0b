package domain

// ResolvedGroup is one option group prepared for selection.
type ResolvedGroup struct {
	// Key is the group identifier.
	Key string `json:"key"`
	// Title is the display title of the group.
	Title string `json:"title"`
	// Values are the selectable values, in display order.
	Values []OptionValue `json:"values"`
	// HasColors reports whether choosing the other group reveals swatch
	// colors for this one. The detection is cross-wired on purpose: colors
	// live per SKU combination under the other group's available_options,
	// not on this group's own values.
	HasColors bool `json:"has_colors"`
}

// ResolvedOptions is the selection-ready view of a product's option tree:
// the first/second groups and, per first value, the compatible second
// choices with their SKU metadata.
type ResolvedOptions struct {
	// First is the primary option group.
	First ResolvedGroup `json:"first_option"`
	// Second is the secondary option group, nil on single-group products.
	Second *ResolvedGroup `json:"second_option,omitempty"`
	// Associations maps each first value to its valid second choices.
	// On single-group products every list holds exactly one entry carrying
	// the value's own SKU metadata.
	Associations map[string][]AvailableOption `json:"associations"`
}

// ResolveOptions computes the selection-ready view of a product's option
// tree. It is pure and deterministic; malformed or missing optional data
// degrades to partial results (Second == nil, empty association lists)
// rather than failing. Returns nil for products without variants.
//
// Only the first two option groups are considered; ingestion rejects
// products with more (see Product.Validate).
func ResolveOptions(p *Product) *ResolvedOptions {
	if p == nil || !p.HasVariants() {
		return nil
	}

	first := p.CustomOptions[0]
	var second *OptionGroup
	if len(p.CustomOptions) > 1 {
		second = &p.CustomOptions[1]
	}

	resolved := &ResolvedOptions{
		First: ResolvedGroup{
			Key:    first.Key,
			Title:  first.Title,
			Values: first.Values,
		},
		Associations: make(map[string][]AvailableOption, len(first.Values)),
	}

	if second != nil {
		resolved.Second = &ResolvedGroup{
			Key:    second.Key,
			Title:  second.Title,
			Values: second.Values,
		}
		// Cross-wired color detection: a group "has colors" when the other
		// group's combinations reveal hex values for it.
		resolved.First.HasColors = groupRevealsColors(second.Values, first.Key)
		resolved.Second.HasColors = groupRevealsColors(first.Values, second.Key)
	}

	for _, v := range first.Values {
		if second != nil {
			// A first value with no available_options entry for the second
			// group has no valid second choices; every second value must
			// stay disabled for it.
			resolved.Associations[v.Value] = v.AvailableOptions[second.Key]
			continue
		}
		resolved.Associations[v.Value] = []AvailableOption{singleGroupAssociation(p, v)}
	}

	return resolved
}

// groupRevealsColors reports whether any of values carries an
// available_options entry for otherKey with a non-nil hex.
func groupRevealsColors(values []OptionValue, otherKey string) bool {
	for _, v := range values {
		for _, opt := range v.AvailableOptions[otherKey] {
			if opt.Hex != nil {
				return true
			}
		}
	}
	return false
}

// singleGroupAssociation derives the singleton association for a value on
// a single-group product: the flat SKU list matched by value, falling back
// to the value's own SKU metadata when no SKU list exists.
func singleGroupAssociation(p *Product, v OptionValue) AvailableOption {
	for _, sku := range p.SKUs {
		if sku.Option == v.Value {
			price := sku.Price
			qty := sku.Qty
			opt := AvailableOption{
				Value:              v.Value,
				SKUID:              sku.ID,
				Hex:                v.Hex,
				Price:              &price,
				PriceAfterDiscount: sku.PriceAfterDiscount,
				Qty:                &qty,
			}
			if sku.Image != "" {
				image := sku.Image
				opt.Image = &image
			}
			return opt
		}
	}

	opt := AvailableOption{
		Value: v.Value,
		Hex:   v.Hex,
		Image: v.Image,
	}
	if v.SKUID != nil {
		opt.SKUID = *v.SKUID
	}
	return opt
}
