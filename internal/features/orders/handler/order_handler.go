package handler

import (
	"errors"
	"net/http"

	"funnel-storefront/internal/core/logger"
	checkoutdomain "funnel-storefront/internal/features/checkout/domain"
	funneldomain "funnel-storefront/internal/features/funnel/domain"
	"funnel-storefront/internal/features/orders/domain"
	"funnel-storefront/internal/features/orders/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// OrderHandler handles HTTP requests for order submission.
type OrderHandler struct {
	service ports.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// Submit handles POST /api/sessions/:id/submit.
// @Summary Run the submission gate
// @Description Validates the session. Returns the assembled payload when the confirmation step may open, or a validation report when blocked.
// @Tags Orders
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} domain.SubmitResult
// @Failure 404 {object} map[string]string
// @Failure 422 {object} domain.SubmitResult
// @Router /api/sessions/{id}/submit [post]
func (h *OrderHandler) Submit(c *fiber.Ctx) error {
	result, err := h.service.Submit(c.Context(), c.Params("id"))
	if err != nil {
		return h.mapError(c, err)
	}

	status := http.StatusOK
	if !result.CanSubmit {
		status = http.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(result)
}

// Confirm handles POST /api/sessions/:id/confirm.
// @Summary Confirm the order
// @Description Relays the validated order to the funnel backend and closes the session.
// @Tags Orders
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} funneldomain.OrderResult
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/sessions/{id}/confirm [post]
func (h *OrderHandler) Confirm(c *fiber.Ctx) error {
	result, err := h.service.Confirm(c.Context(), c.Params("id"))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(http.StatusOK).JSON(result)
}

// mapError translates domain errors into HTTP responses.
func (h *OrderHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, checkoutdomain.ErrSessionNotFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	case errors.Is(err, funneldomain.ErrFunnelNotFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": "Funnel not found",
		})
	case errors.Is(err, domain.ErrNotSubmittable):
		return c.Status(http.StatusConflict).JSON(fiber.Map{
			"error": "Order is not submittable",
		})
	case errors.Is(err, funneldomain.ErrUpstreamUnavailable):
		logger.Get().Error("Order relay failed", zap.Error(err))
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{
			"error": "Funnel backend unavailable, please retry",
		})
	default:
		logger.Get().Error("Order operation failed", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
}
