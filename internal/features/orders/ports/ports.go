package ports

import (
	"context"

	funneldomain "funnel-storefront/internal/features/funnel/domain"
	"funnel-storefront/internal/features/orders/domain"
)

// OrderService defines the primary port for order submission.
type OrderService interface {
	// Submit runs the submission gate. An invalid session gets all fields
	// marked touched and a validation report; a valid one gets the
	// assembled payload for the confirmation step.
	Submit(ctx context.Context, sessionID string) (*domain.SubmitResult, error)
	// Confirm re-runs the gate and relays the order to the funnel backend.
	// The session is deleted on success and kept on upstream failure so
	// the visitor can retry.
	Confirm(ctx context.Context, sessionID string) (*funneldomain.OrderResult, error)
}
