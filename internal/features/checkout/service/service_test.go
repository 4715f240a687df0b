package service

import (
	"context"
	"errors"
	"testing"

	"funnel-storefront/internal/features/checkout/domain"
	"funnel-storefront/internal/features/checkout/ports"
	funneldomain "funnel-storefront/internal/features/funnel/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSessionRepository is a mock implementation of ports.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Save(ctx context.Context, session *domain.CheckoutSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) Get(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckoutSession), args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFunnelService is a mock implementation of funnelports.FunnelService
type MockFunnelService struct {
	mock.Mock
}

func (m *MockFunnelService) GetFunnel(ctx context.Context, id, lang string) (*funneldomain.Funnel, error) {
	args := m.Called(ctx, id, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*funneldomain.Funnel), args.Error(1)
}

func (m *MockFunnelService) GetResolvedOptions(ctx context.Context, id, lang string) (*funneldomain.ResolvedOptions, error) {
	args := m.Called(ctx, id, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*funneldomain.ResolvedOptions), args.Error(1)
}

func variantFunnel() *funneldomain.Funnel {
	return &funneldomain.Funnel{
		ID:       "fnl_1",
		Currency: "USD",
		Product: funneldomain.Product{
			ID: 9, Price: 25, Qty: 10,
			CustomOptions: []funneldomain.OptionGroup{
				{Key: "color", Values: []funneldomain.OptionValue{
					{Value: "red", AvailableOptions: map[string][]funneldomain.AvailableOption{
						"size": {{Value: "S", SKUID: 101}},
					}},
				}},
				{Key: "size", Values: []funneldomain.OptionValue{{Value: "S"}}},
			},
		},
		PurchaseOptions: []funneldomain.PurchaseOption{
			{ID: 11, Items: 2, PricePerItem: 25, ShippingPrice: 0, FinalTotal: 50},
			{ID: 12, Items: 3, PricePerItem: 22, ShippingPrice: 5, Discount: 9, FinalTotal: 62},
		},
	}
}

func plainFunnel() *funneldomain.Funnel {
	return &funneldomain.Funnel{
		ID:       "fnl_2",
		Currency: "USD",
		Product:  funneldomain.Product{ID: 10, Price: 30, Qty: 5},
		PurchaseOptions: []funneldomain.PurchaseOption{
			{ID: 21, Items: 1, PricePerItem: 30, FinalTotal: 30},
		},
	}
}

type checkoutFixture struct {
	repo    *MockSessionRepository
	funnels *MockFunnelService
	service *CheckoutServiceImpl
}

func newCheckoutFixture() *checkoutFixture {
	f := &checkoutFixture{
		repo:    new(MockSessionRepository),
		funnels: new(MockFunnelService),
	}
	f.service = NewCheckoutService(f.repo, f.funnels)
	return f
}

func TestCheckoutService_CreateSession(t *testing.T) {
	ctx := context.Background()

	t.Run("VariantProductDefaultsToBundleFlow", func(t *testing.T) {
		f := newCheckoutFixture()
		f.funnels.On("GetFunnel", ctx, "fnl_1", "en").Return(variantFunnel(), nil).Once()
		f.repo.On("Save", ctx, mock.AnythingOfType("*domain.CheckoutSession")).Return(nil).Once()

		session, err := f.service.CreateSession(ctx, "fnl_1", "en", "")
		require.NoError(t, err)
		assert.Equal(t, domain.FlowBundle, session.Flow)
		assert.Equal(t, 2, session.Bundle.GetState().Quantity)
		f.repo.AssertExpectations(t)
	})

	t.Run("PlainProductDefaultsToProductFlow", func(t *testing.T) {
		f := newCheckoutFixture()
		f.funnels.On("GetFunnel", ctx, "fnl_2", "en").Return(plainFunnel(), nil).Once()
		f.repo.On("Save", ctx, mock.AnythingOfType("*domain.CheckoutSession")).Return(nil).Once()

		session, err := f.service.CreateSession(ctx, "fnl_2", "en", "")
		require.NoError(t, err)
		assert.Equal(t, domain.FlowProduct, session.Flow)
	})

	t.Run("ExplicitFlowIsHonored", func(t *testing.T) {
		f := newCheckoutFixture()
		f.funnels.On("GetFunnel", ctx, "fnl_1", "en").Return(variantFunnel(), nil).Once()
		f.repo.On("Save", ctx, mock.AnythingOfType("*domain.CheckoutSession")).Return(nil).Once()

		session, err := f.service.CreateSession(ctx, "fnl_1", "en", domain.FlowColorSize)
		require.NoError(t, err)
		assert.Equal(t, domain.FlowColorSize, session.Flow)
	})

	t.Run("FunnelNotFound", func(t *testing.T) {
		f := newCheckoutFixture()
		f.funnels.On("GetFunnel", ctx, "missing", "en").
			Return(nil, funneldomain.ErrFunnelNotFound).Once()

		_, err := f.service.CreateSession(ctx, "missing", "en", "")
		assert.ErrorIs(t, err, funneldomain.ErrFunnelNotFound)
	})

	t.Run("SaveFailure", func(t *testing.T) {
		f := newCheckoutFixture()
		f.funnels.On("GetFunnel", ctx, "fnl_1", "en").Return(variantFunnel(), nil).Once()
		f.repo.On("Save", ctx, mock.AnythingOfType("*domain.CheckoutSession")).
			Return(errors.New("redis down")).Once()

		_, err := f.service.CreateSession(ctx, "fnl_1", "en", "")
		assert.Error(t, err)
	})
}

func TestCheckoutService_GetSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Miss", func(t *testing.T) {
		f := newCheckoutFixture()
		f.repo.On("Get", ctx, "missing").Return(nil, nil).Once()

		_, err := f.service.GetSession(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Hit", func(t *testing.T) {
		f := newCheckoutFixture()
		session := domain.NewCheckoutSession(variantFunnel(), "en", domain.FlowBundle)
		f.repo.On("Get", ctx, session.ID).Return(session, nil).Once()

		got, err := f.service.GetSession(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, session.ID, got.ID)
	})
}

func TestCheckoutService_SelectQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("SwitchesTierAndWipesPanels", func(t *testing.T) {
		f := newCheckoutFixture()
		funnel := variantFunnel()
		session := domain.NewCheckoutSession(funnel, "en", domain.FlowBundle)
		f.repo.On("Get", ctx, session.ID).Return(session, nil).Once()
		f.funnels.On("GetFunnel", ctx, "fnl_1", "en").Return(funnel, nil).Once()
		f.repo.On("Save", ctx, session).Return(nil).Once()

		got, err := f.service.SelectQuantity(ctx, session.ID, 12)
		require.NoError(t, err)
		assert.Equal(t, 3, got.Bundle.GetState().Quantity)
		assert.Len(t, got.BundleOptions.GetAllOptions(), 3)
		f.repo.AssertExpectations(t)
	})

	t.Run("UnknownTier", func(t *testing.T) {
		f := newCheckoutFixture()
		funnel := variantFunnel()
		session := domain.NewCheckoutSession(funnel, "en", domain.FlowBundle)
		f.repo.On("Get", ctx, session.ID).Return(session, nil).Once()
		f.funnels.On("GetFunnel", ctx, "fnl_1", "en").Return(funnel, nil).Once()

		_, err := f.service.SelectQuantity(ctx, session.ID, 999)
		assert.ErrorIs(t, err, domain.ErrUnknownPurchaseOption)
		f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCheckoutService_SelectPanelOption(t *testing.T) {
	ctx := context.Background()

	t.Run("FirstSlot", func(t *testing.T) {
		f := newCheckoutFixture()
		funnel := variantFunnel()
		session := domain.NewCheckoutSession(funnel, "en", domain.FlowBundle)
		resolved := funneldomain.ResolveOptions(&funnel.Product)
		f.repo.On("Get", ctx, session.ID).Return(session, nil).Once()
		f.funnels.On("GetResolvedOptions", ctx, "fnl_1", "en").Return(resolved, nil).Once()
		f.repo.On("Save", ctx, session).Return(nil).Once()

		got, err := f.service.SelectPanelOption(ctx, session.ID, 1, ports.SlotFirst, "red")
		require.NoError(t, err)
		panel := got.BundleOptions.GetPanelOption(1)
		require.NotNil(t, panel.FirstOption)
		assert.Equal(t, "red", *panel.FirstOption)
	})

	t.Run("UnknownSlot", func(t *testing.T) {
		f := newCheckoutFixture()
		funnel := variantFunnel()
		session := domain.NewCheckoutSession(funnel, "en", domain.FlowBundle)
		f.repo.On("Get", ctx, session.ID).Return(session, nil).Once()
		f.funnels.On("GetResolvedOptions", ctx, "fnl_1", "en").Return(nil, nil).Once()

		_, err := f.service.SelectPanelOption(ctx, session.ID, 1, "flavor", "mint")
		assert.ErrorIs(t, err, ErrUnknownSlot)
	})
}

func TestCheckoutService_UpdateField(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture()
	session := domain.NewCheckoutSession(variantFunnel(), "en", domain.FlowBundle)
	f.repo.On("Get", ctx, session.ID).Return(session, nil).Once()
	f.repo.On("Save", ctx, session).Return(nil).Once()

	got, err := f.service.UpdateField(ctx, session.ID, domain.FieldCity, "Riyadh", true)
	require.NoError(t, err)

	field, ok := got.Form.Field(domain.FieldCity)
	require.True(t, ok)
	assert.Equal(t, "Riyadh", field.Value)
	assert.True(t, field.IsValid)
	assert.True(t, field.Touched)
	f.repo.AssertExpectations(t)
}

func TestCheckoutService_Choices(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture()
	session := domain.NewCheckoutSession(variantFunnel(), "en", domain.FlowBundle)
	f.repo.On("Get", ctx, session.ID).Return(session, nil).Twice()
	f.repo.On("Save", ctx, session).Return(nil).Twice()

	_, err := f.service.SelectPayment(ctx, session.ID, "cod", "Cash on delivery")
	require.NoError(t, err)
	_, err = f.service.SelectDelivery(ctx, session.ID, "home", "Home delivery")
	require.NoError(t, err)

	assert.Equal(t, "cod", session.Payment.GetChoice().ID)
	assert.Equal(t, "home", session.Delivery.GetChoice().ID)
}

func TestCheckoutService_ProductOperations(t *testing.T) {
	ctx := context.Background()

	t.Run("SelectOptionAndQty", func(t *testing.T) {
		f := newCheckoutFixture()
		funnel := variantFunnel()
		session := domain.NewCheckoutSession(funnel, "en", domain.FlowProduct)
		resolved := funneldomain.ResolveOptions(&funnel.Product)
		f.repo.On("Get", ctx, session.ID).Return(session, nil).Twice()
		f.funnels.On("GetFunnel", ctx, "fnl_1", "en").Return(funnel, nil).Once()
		f.funnels.On("GetResolvedOptions", ctx, "fnl_1", "en").Return(resolved, nil).Once()
		f.repo.On("Save", ctx, session).Return(nil).Twice()

		_, err := f.service.SelectProductOption(ctx, session.ID, ports.SlotFirst, "red")
		require.NoError(t, err)

		got, err := f.service.SetProductQty(ctx, session.ID, 4)
		require.NoError(t, err)
		assert.Equal(t, 4, got.Product.GetState().Qty)
	})

	t.Run("UnknownSlot", func(t *testing.T) {
		f := newCheckoutFixture()
		funnel := variantFunnel()
		session := domain.NewCheckoutSession(funnel, "en", domain.FlowProduct)
		f.repo.On("Get", ctx, session.ID).Return(session, nil).Once()
		f.funnels.On("GetFunnel", ctx, "fnl_1", "en").Return(funnel, nil).Once()
		f.funnels.On("GetResolvedOptions", ctx, "fnl_1", "en").Return(nil, nil).Once()

		_, err := f.service.SelectProductOption(ctx, session.ID, ports.SlotColor, "red")
		assert.ErrorIs(t, err, ErrUnknownSlot)
	})
}
