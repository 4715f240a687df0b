package handler

import (
	"errors"
	"net/http"
	"strconv"

	"funnel-storefront/internal/core/logger"
	"funnel-storefront/internal/features/checkout/domain"
	"funnel-storefront/internal/features/checkout/ports"
	checkoutservice "funnel-storefront/internal/features/checkout/service"
	funneldomain "funnel-storefront/internal/features/funnel/domain"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CheckoutHandler handles HTTP requests for checkout sessions.
type CheckoutHandler struct {
	service     ports.CheckoutService
	defaultLang string
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service ports.CheckoutService, defaultLang string) *CheckoutHandler {
	return &CheckoutHandler{
		service:     service,
		defaultLang: defaultLang,
	}
}

// CreateSessionRequest is the body of POST /api/sessions.
type CreateSessionRequest struct {
	FunnelID string      `json:"funnel_id"`
	Lang     string      `json:"lang"`
	Flow     domain.Flow `json:"flow"`
}

// SelectQuantityRequest is the body of PUT /api/sessions/:id/quantity.
type SelectQuantityRequest struct {
	PurchaseOptionID int `json:"purchase_option_id"`
}

// SelectOptionRequest is the body of panel and product option updates.
type SelectOptionRequest struct {
	Slot  ports.OptionSlot `json:"slot"`
	Value string           `json:"value"`
}

// UpdateFieldRequest is the body of PUT /api/sessions/:id/fields/:field.
type UpdateFieldRequest struct {
	Value string `json:"value"`
	// Touched marks the field as blurred, enabling inline error display.
	Touched bool `json:"touched"`
}

// SelectChoiceRequest is the body of payment and delivery updates.
type SelectChoiceRequest struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// SetQtyRequest is the body of PUT /api/sessions/:id/product-qty.
type SetQtyRequest struct {
	Qty int `json:"qty"`
}

// CreateSession handles POST /api/sessions.
// @Summary Start a checkout session
// @Description Creates a checkout session for a funnel, seeded with its default purchase option.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param session body CreateSessionRequest true "Session details"
// @Success 201 {object} domain.SessionSnapshot
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/sessions [post]
func (h *CheckoutHandler) CreateSession(c *fiber.Ctx) error {
	var req CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.FunnelID == "" {
		return badRequest(c, "funnel_id is required")
	}
	if req.Lang == "" {
		req.Lang = h.defaultLang
	}

	session, err := h.service.CreateSession(c.Context(), req.FunnelID, req.Lang, req.Flow)
	if err != nil {
		return h.mapError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(session.Snapshot())
}

// GetSession handles GET /api/sessions/:id.
// @Summary Get a checkout session
// @Tags Checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} domain.SessionSnapshot
// @Failure 404 {object} map[string]string
// @Router /api/sessions/{id} [get]
func (h *CheckoutHandler) GetSession(c *fiber.Ctx) error {
	session, err := h.service.GetSession(c.Context(), c.Params("id"))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(http.StatusOK).JSON(session.Snapshot())
}

// SelectQuantity handles PUT /api/sessions/:id/quantity.
// @Summary Select a purchase option
// @Description Switches the quantity tier and wipes all per-panel selections.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param quantity body SelectQuantityRequest true "Purchase option"
// @Success 200 {object} domain.SessionSnapshot
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/sessions/{id}/quantity [put]
func (h *CheckoutHandler) SelectQuantity(c *fiber.Ctx) error {
	var req SelectQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	session, err := h.service.SelectQuantity(c.Context(), c.Params("id"), req.PurchaseOptionID)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(http.StatusOK).JSON(session.Snapshot())
}

// SelectPanelOption handles PUT /api/sessions/:id/panels/:index/option.
// @Summary Select a panel option
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param index path int true "Panel index (1-based)"
// @Param option body SelectOptionRequest true "Option choice"
// @Success 200 {object} domain.SessionSnapshot
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/sessions/{id}/panels/{index}/option [put]
func (h *CheckoutHandler) SelectPanelOption(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil || index < 1 {
		return badRequest(c, "Invalid panel index")
	}

	var req SelectOptionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	session, err := h.service.SelectPanelOption(c.Context(), c.Params("id"), index, req.Slot, req.Value)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(http.StatusOK).JSON(session.Snapshot())
}

// UpdateField handles PUT /api/sessions/:id/fields/:field.
// @Summary Update a form field
// @Description Writes a field value; validity always tracks the latest value.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param field path string true "Field ID"
// @Param field body UpdateFieldRequest true "Field value"
// @Success 200 {object} domain.SessionSnapshot
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/sessions/{id}/fields/{field} [put]
func (h *CheckoutHandler) UpdateField(c *fiber.Ctx) error {
	var req UpdateFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	session, err := h.service.UpdateField(c.Context(), c.Params("id"), c.Params("field"), req.Value, req.Touched)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(http.StatusOK).JSON(session.Snapshot())
}

// SelectPayment handles PUT /api/sessions/:id/payment.
// @Summary Select the payment option
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param choice body SelectChoiceRequest true "Payment option"
// @Success 200 {object} domain.SessionSnapshot
// @Failure 404 {object} map[string]string
// @Router /api/sessions/{id}/payment [put]
func (h *CheckoutHandler) SelectPayment(c *fiber.Ctx) error {
	var req SelectChoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	session, err := h.service.SelectPayment(c.Context(), c.Params("id"), req.ID, req.Value)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(http.StatusOK).JSON(session.Snapshot())
}

// SelectDelivery handles PUT /api/sessions/:id/delivery.
// @Summary Select the delivery option
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param choice body SelectChoiceRequest true "Delivery option"
// @Success 200 {object} domain.SessionSnapshot
// @Failure 404 {object} map[string]string
// @Router /api/sessions/{id}/delivery [put]
func (h *CheckoutHandler) SelectDelivery(c *fiber.Ctx) error {
	var req SelectChoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	session, err := h.service.SelectDelivery(c.Context(), c.Params("id"), req.ID, req.Value)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(http.StatusOK).JSON(session.Snapshot())
}

// SelectProductOption handles PUT /api/sessions/:id/product-option.
// @Summary Select a non-bundle product option
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param option body SelectOptionRequest true "Option choice"
// @Success 200 {object} domain.SessionSnapshot
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/sessions/{id}/product-option [put]
func (h *CheckoutHandler) SelectProductOption(c *fiber.Ctx) error {
	var req SelectOptionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	session, err := h.service.SelectProductOption(c.Context(), c.Params("id"), req.Slot, req.Value)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(http.StatusOK).JSON(session.Snapshot())
}

// SetProductQty handles PUT /api/sessions/:id/product-qty.
// @Summary Set the non-bundle quantity
// @Description Sets the quantity, clamped to the available stock.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param qty body SetQtyRequest true "Quantity"
// @Success 200 {object} domain.SessionSnapshot
// @Failure 404 {object} map[string]string
// @Router /api/sessions/{id}/product-qty [put]
func (h *CheckoutHandler) SetProductQty(c *fiber.Ctx) error {
	var req SetQtyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	session, err := h.service.SetProductQty(c.Context(), c.Params("id"), req.Qty)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(http.StatusOK).JSON(session.Snapshot())
}

// GetSummary handles GET /api/sessions/:id/summary.
// @Summary Get the localized order summary
// @Tags Checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} domain.OrderSummary
// @Failure 404 {object} map[string]string
// @Router /api/sessions/{id}/summary [get]
func (h *CheckoutHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.service.Summary(c.Context(), c.Params("id"))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(http.StatusOK).JSON(summary)
}

// mapError translates domain errors into HTTP responses.
func (h *CheckoutHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	case errors.Is(err, funneldomain.ErrFunnelNotFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": "Funnel not found",
		})
	case errors.Is(err, domain.ErrUnknownPurchaseOption):
		return badRequest(c, "Unknown purchase option")
	case errors.Is(err, checkoutservice.ErrUnknownSlot):
		return badRequest(c, "Unknown option slot")
	case errors.Is(err, funneldomain.ErrUpstreamUnavailable):
		logger.Get().Error("Funnel backend unavailable", zap.Error(err))
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{
			"error": "Funnel backend unavailable, please retry",
		})
	default:
		logger.Get().Error("Checkout operation failed", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{
		"error": message,
	})
}
