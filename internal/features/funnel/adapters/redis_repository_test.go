package adapters

import (
	"context"
	"testing"
	"time"

	"funnel-storefront/internal/core/cache"
	"funnel-storefront/internal/features/funnel/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*RedisFunnelRepository, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	adapter, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })

	return NewRedisFunnelRepository(adapter, 5*time.Minute), mr
}

func TestRedisFunnelRepository_SaveGet(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	funnel := &domain.Funnel{
		ID:       "fnl_1",
		Theme:    "classic",
		Currency: "USD",
		Product:  domain.Product{ID: 9, Name: "Desk Lamp", Price: 25.5},
	}

	require.NoError(t, repo.Save(ctx, "en", funnel))

	got, err := repo.Get(ctx, "fnl_1", "en")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, funnel.ID, got.ID)
	assert.Equal(t, funnel.Product.Name, got.Product.Name)
}

func TestRedisFunnelRepository_Get_Miss(t *testing.T) {
	repo, _ := newTestRepo(t)

	got, err := repo.Get(context.Background(), "unknown", "en")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisFunnelRepository_LangIsolation(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	funnel := &domain.Funnel{ID: "fnl_1", Theme: "classic"}
	require.NoError(t, repo.Save(ctx, "en", funnel))

	got, err := repo.Get(ctx, "fnl_1", "ar")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisFunnelRepository_TTL(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	funnel := &domain.Funnel{ID: "fnl_1"}
	require.NoError(t, repo.Save(ctx, "en", funnel))

	mr.FastForward(6 * time.Minute)

	got, err := repo.Get(ctx, "fnl_1", "en")
	require.NoError(t, err)
	assert.Nil(t, got)
}
