package domain

// SummaryLine is one localized line item of the order summary.
type SummaryLine struct {
	// Label is the localized line label.
	Label string `json:"label"`
	// Amount is the formatted amount, or a localized word like "Free".
	Amount string `json:"amount"`
}

// OrderSummary is the localized price breakdown shown before confirmation.
type OrderSummary struct {
	// Lines are the breakdown line items in display order.
	Lines []SummaryLine `json:"lines"`
	// Total is the formatted final amount.
	Total string `json:"total"`
}
