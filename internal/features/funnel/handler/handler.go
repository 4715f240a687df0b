package handler

import (
	"errors"
	"net/http"

	"funnel-storefront/internal/core/logger"
	"funnel-storefront/internal/features/funnel/domain"
	"funnel-storefront/internal/features/funnel/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// FunnelHandler handles HTTP requests for funnel data.
type FunnelHandler struct {
	service     ports.FunnelService
	defaultLang string
}

// NewFunnelHandler creates a new FunnelHandler.
func NewFunnelHandler(service ports.FunnelService, defaultLang string) *FunnelHandler {
	return &FunnelHandler{
		service:     service,
		defaultLang: defaultLang,
	}
}

// FunnelResponse is the funnel together with its resolved option view.
type FunnelResponse struct {
	Funnel          *domain.Funnel          `json:"funnel"`
	ResolvedOptions *domain.ResolvedOptions `json:"resolved_options,omitempty"`
}

// GetFunnel handles GET /api/funnel/:id.
// @Summary Get funnel data
// @Description Retrieves the funnel with its product, purchase options and resolved variant options.
// @Tags Funnel
// @Produce json
// @Param id path string true "Funnel ID"
// @Param lang query string false "Language code"
// @Success 200 {object} FunnelResponse
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/funnel/{id} [get]
func (h *FunnelHandler) GetFunnel(c *fiber.Ctx) error {
	id := c.Params("id")
	lang := c.Query("lang", h.defaultLang)

	ctx := c.Context()
	funnel, err := h.service.GetFunnel(ctx, id, lang)
	if err != nil {
		return h.mapError(c, err)
	}

	resolved, err := h.service.GetResolvedOptions(ctx, id, lang)
	if err != nil {
		return h.mapError(c, err)
	}

	return c.Status(http.StatusOK).JSON(FunnelResponse{
		Funnel:          funnel,
		ResolvedOptions: resolved,
	})
}

// mapError translates domain errors into HTTP responses.
func (h *FunnelHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrFunnelNotFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": "Funnel not found",
		})
	case errors.Is(err, domain.ErrTooManyOptionGroups):
		return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Product option data is not supported",
		})
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		logger.Get().Error("Funnel backend unavailable", zap.Error(err))
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{
			"error": "Funnel backend unavailable, please retry",
		})
	default:
		logger.Get().Error("Failed to get funnel", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
}
