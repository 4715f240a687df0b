package domain

import (
	"encoding/json"
	"errors"
)

var (
	// ErrFunnelNotFound is returned when the funnel does not exist upstream.
	ErrFunnelNotFound = errors.New("funnel not found")
	// ErrUpstreamUnavailable is returned when the funnel backend cannot be reached
	// or answers with an unexpected status.
	ErrUpstreamUnavailable = errors.New("funnel backend unavailable")
	// ErrTooManyOptionGroups is returned at ingestion for products carrying more
	// than two custom option groups. Selection logic only ever supports two.
	ErrTooManyOptionGroups = errors.New("product has more than two option groups")
)

// Funnel represents a single-product checkout flow as served by the backend.
type Funnel struct {
	// ID is the funnel identifier.
	ID string `json:"id"`
	// Product is the product sold through this funnel.
	Product Product `json:"product"`
	// Theme is the visual theme the storefront renders this funnel with.
	Theme string `json:"theme"`
	// Currency is the ISO 4217 code prices are denominated in.
	Currency string `json:"currency"`
	// Blocks is opaque theme content, passed through to the renderer untouched.
	Blocks []Block `json:"blocks"`
	// PurchaseOptions are the quantity tiers the visitor can pick from.
	PurchaseOptions []PurchaseOption `json:"purchase_options"`
	// AcceptOnlinePayment indicates whether online payment methods are offered.
	AcceptOnlinePayment bool `json:"accept_online_payment"`
}

// Product represents the funnel's product with its variant data.
type Product struct {
	// ID is the product identifier.
	ID int `json:"id"`
	// Name is the display name of the product.
	Name string `json:"name"`
	// Description is the marketing description.
	Description string `json:"description"`
	// Price is the base unit price.
	Price float64 `json:"price"`
	// PriceAfterDiscount is the discounted unit price, if any.
	PriceAfterDiscount *float64 `json:"price_after_discount,omitempty"`
	// Qty is the available stock for the base product.
	Qty int `json:"qty"`
	// Image is the primary product image URL.
	Image string `json:"image"`
	// Images holds additional gallery image URLs.
	Images []string `json:"images,omitempty"`
	// SKUs is the flat variant list used by single-option products.
	SKUs []SKU `json:"skus,omitempty"`
	// CustomOptions holds the product's option groups in their original order.
	CustomOptions []OptionGroup `json:"custom_options,omitempty"`
}

// OptionGroup is a named product attribute (e.g., "Color") with its values.
type OptionGroup struct {
	// Key is the group identifier used in AvailableOptions lookups.
	Key string `json:"key"`
	// Title is the display title of the group.
	Title string `json:"title"`
	// Values are the selectable values, in display order.
	Values []OptionValue `json:"values"`
}

// OptionValue is one selectable value within an option group.
type OptionValue struct {
	// Value is the display string and identity of this choice.
	Value string `json:"value"`
	// Hex is the swatch color of this value, if any.
	Hex *string `json:"hex,omitempty"`
	// SKUID is the variant this value resolves to on single-option products.
	SKUID *int `json:"sku_id,omitempty"`
	// Image is the image shown when this value is selected.
	Image *string `json:"image,omitempty"`
	// AvailableOptions maps the other group's key to the compatible choices
	// there, carrying per-combination SKU metadata.
	AvailableOptions map[string][]AvailableOption `json:"available_options,omitempty"`
}

// AvailableOption is a compatible choice in the other option group,
// together with the SKU metadata of the resulting combination.
type AvailableOption struct {
	// Value is the other group's value this entry enables.
	Value string `json:"value"`
	// SKUID is the variant identifier of the combination.
	SKUID int `json:"sku_id"`
	// Hex is the swatch color revealed by this combination, if any.
	Hex *string `json:"hex,omitempty"`
	// Image is the image of the combination, if any.
	Image *string `json:"image,omitempty"`
	// Price is the unit price of the combination, if it overrides the base.
	Price *float64 `json:"price,omitempty"`
	// PriceAfterDiscount is the discounted unit price, if any.
	PriceAfterDiscount *float64 `json:"price_after_discount,omitempty"`
	// Qty is the available stock of the combination, if tracked per SKU.
	Qty *int `json:"qty,omitempty"`
}

// SKU is a purchasable variant on products without two-level options.
type SKU struct {
	// ID is the variant identifier.
	ID int `json:"id"`
	// Option is the option value this variant corresponds to.
	Option string `json:"option"`
	// Price is the unit price of this variant.
	Price float64 `json:"price"`
	// PriceAfterDiscount is the discounted unit price, if any.
	PriceAfterDiscount *float64 `json:"price_after_discount,omitempty"`
	// Qty is the available stock of this variant.
	Qty int `json:"qty"`
	// Image is the image of this variant.
	Image string `json:"image"`
}

// PurchaseOption is a purchasable quantity tier with its own pricing.
type PurchaseOption struct {
	// ID is the tier identifier.
	ID int `json:"id"`
	// Title is the display title (e.g., "Buy 2, get 1 free").
	Title string `json:"title"`
	// Items is the number of units in the tier.
	Items int `json:"items"`
	// PricePerItem is the unit price within the tier.
	PricePerItem float64 `json:"price_per_item"`
	// TotalPrice is Items * PricePerItem before shipping and discount.
	TotalPrice float64 `json:"total_price"`
	// ShippingPrice is the shipping cost for the tier. Zero means free.
	ShippingPrice float64 `json:"shipping_price"`
	// Discount is the absolute discount applied to the tier.
	Discount float64 `json:"discount"`
	// DiscountPercent is the relative discount applied to the tier.
	DiscountPercent float64 `json:"discount_percent"`
	// FinalTotal is the amount the customer pays.
	FinalTotal float64 `json:"final_total"`
}

// Block is an opaque theme content block.
type Block struct {
	// Type identifies the block kind to the renderer.
	Type string `json:"type"`
	// Content is the raw block payload, not interpreted by the engine.
	Content json.RawMessage `json:"content"`
}

// HasVariants reports whether the product requires option selection.
func (p *Product) HasVariants() bool {
	for _, g := range p.CustomOptions {
		if len(g.Values) > 0 {
			return true
		}
	}
	return false
}

// Validate flags data the selection logic cannot support.
// Products with more than two option groups are rejected at ingestion
// instead of being silently truncated.
func (p *Product) Validate() error {
	if len(p.CustomOptions) > 2 {
		return ErrTooManyOptionGroups
	}
	return nil
}
