package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"funnel-storefront/internal/features/funnel/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFunnelService is a mock implementation of ports.FunnelService
type MockFunnelService struct {
	mock.Mock
}

func (m *MockFunnelService) GetFunnel(ctx context.Context, id, lang string) (*domain.Funnel, error) {
	args := m.Called(ctx, id, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Funnel), args.Error(1)
}

func (m *MockFunnelService) GetResolvedOptions(ctx context.Context, id, lang string) (*domain.ResolvedOptions, error) {
	args := m.Called(ctx, id, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResolvedOptions), args.Error(1)
}

func setupApp(service *MockFunnelService) *fiber.App {
	app := fiber.New()
	handler := NewFunnelHandler(service, "en")
	app.Get("/api/funnel/:id", handler.GetFunnel)
	return app
}

func TestFunnelHandler_GetFunnel(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockFunnelService)
		app := setupApp(mockService)

		funnel := &domain.Funnel{ID: "fnl_1", Theme: "zen"}
		resolved := &domain.ResolvedOptions{First: domain.ResolvedGroup{Key: "color"}}
		mockService.On("GetFunnel", mock.Anything, "fnl_1", "en").Return(funnel, nil).Once()
		mockService.On("GetResolvedOptions", mock.Anything, "fnl_1", "en").Return(resolved, nil).Once()

		req := httptest.NewRequest("GET", "/api/funnel/fnl_1", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body FunnelResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "zen", body.Funnel.Theme)
		require.NotNil(t, body.ResolvedOptions)
		assert.Equal(t, "color", body.ResolvedOptions.First.Key)
		mockService.AssertExpectations(t)
	})

	t.Run("LangQueryForwarded", func(t *testing.T) {
		mockService := new(MockFunnelService)
		app := setupApp(mockService)

		mockService.On("GetFunnel", mock.Anything, "fnl_1", "ar").Return(&domain.Funnel{ID: "fnl_1"}, nil).Once()
		mockService.On("GetResolvedOptions", mock.Anything, "fnl_1", "ar").Return(nil, nil).Once()

		req := httptest.NewRequest("GET", "/api/funnel/fnl_1?lang=ar", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockService.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService := new(MockFunnelService)
		app := setupApp(mockService)

		mockService.On("GetFunnel", mock.Anything, "missing", "en").Return(nil, domain.ErrFunnelNotFound).Once()

		req := httptest.NewRequest("GET", "/api/funnel/missing", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("TooManyOptionGroups", func(t *testing.T) {
		mockService := new(MockFunnelService)
		app := setupApp(mockService)

		mockService.On("GetFunnel", mock.Anything, "fnl_1", "en").Return(nil, domain.ErrTooManyOptionGroups).Once()

		req := httptest.NewRequest("GET", "/api/funnel/fnl_1", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("UpstreamUnavailable", func(t *testing.T) {
		mockService := new(MockFunnelService)
		app := setupApp(mockService)

		mockService.On("GetFunnel", mock.Anything, "fnl_1", "en").Return(nil, domain.ErrUpstreamUnavailable).Once()

		req := httptest.NewRequest("GET", "/api/funnel/fnl_1", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	})
}
