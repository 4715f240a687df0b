package domain

// CustomerData is the customer-facing part of an order submission.
type CustomerData struct {
	// FullName is the customer's full name.
	FullName string `json:"full_name"`
	// Phone is the customer's phone number.
	Phone string `json:"phone"`
	// Email is the customer's email address.
	Email string `json:"email"`
	// Address is the delivery street address.
	Address string `json:"address"`
	// City is the delivery city.
	City string `json:"city"`
	// Notes are optional delivery notes.
	Notes string `json:"notes,omitempty"`
	// PaymentMethod is the selected payment option value.
	PaymentMethod string `json:"payment_method,omitempty"`
	// DeliveryMethod is the selected delivery option value.
	DeliveryMethod string `json:"delivery_method,omitempty"`
	// Items are the selected variant combinations, one per bundle panel.
	Items []OrderItem `json:"items"`
}

// OrderItem is one unit of the order with its selected variant.
type OrderItem struct {
	// SKUID is the resolved variant identifier, zero when the product has
	// no variants.
	SKUID int `json:"sku_id,omitempty"`
	// FirstOption is the selected primary option value, if any.
	FirstOption string `json:"first_option,omitempty"`
	// SecondOption is the selected secondary option value, if any.
	SecondOption string `json:"second_option,omitempty"`
	// Quantity is the number of units for this item.
	Quantity int `json:"quantity"`
	// Image is the image of the selected variant, if any.
	Image string `json:"image,omitempty"`
}

// OrderSubmission is the payload relayed to the funnel backend.
type OrderSubmission struct {
	// FunnelID identifies the funnel the order was placed through.
	FunnelID string `json:"funnel_id"`
	// PurchaseOptionID identifies the selected quantity tier.
	PurchaseOptionID int `json:"purchase_option_id"`
	// CustomerData carries the customer and selection details.
	CustomerData CustomerData `json:"customer_data"`
}

// OrderResult is the funnel backend's answer to a submitted order.
type OrderResult struct {
	// OrderID is the identifier assigned by the backend.
	OrderID string `json:"order_id"`
	// Status is the backend's order status.
	Status string `json:"status"`
	// Total is the charged amount.
	Total float64 `json:"total"`
}
