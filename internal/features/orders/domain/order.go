package domain

import (
	"errors"

	funneldomain "funnel-storefront/internal/features/funnel/domain"
)

// ErrNotSubmittable is returned when an order confirmation is attempted
// on a session that does not pass the submission gate.
var ErrNotSubmittable = errors.New("order is not submittable")

// ReportEntry is one localized submission blocker.
type ReportEntry struct {
	// Field names the invalid form field, empty for option errors.
	Field string `json:"field,omitempty"`
	// PanelIndex names the incomplete panel, zero for field errors.
	PanelIndex int `json:"panel_index,omitempty"`
	// Message is the localized error message.
	Message string `json:"message"`
}

// ValidationReport explains why submission is blocked. All form fields
// are marked touched when a report is produced, so the renderer shows
// every inline error and scrolls to the first invalid field.
type ValidationReport struct {
	// FirstInvalidField is the field the renderer should focus, empty when
	// only option errors remain.
	FirstInvalidField string `json:"first_invalid_field,omitempty"`
	// Errors are the blockers in display order.
	Errors []ReportEntry `json:"errors"`
}

// SubmitResult is the outcome of running the submission gate.
type SubmitResult struct {
	// CanSubmit reports whether the confirmation step may open.
	CanSubmit bool `json:"can_submit"`
	// Report explains the blockers when CanSubmit is false.
	Report *ValidationReport `json:"report,omitempty"`
	// Payload is the assembled order when CanSubmit is true. The renderer
	// shows it in the confirmation modal; nothing is sent upstream yet.
	Payload *funneldomain.OrderSubmission `json:"payload,omitempty"`
}
