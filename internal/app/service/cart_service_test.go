package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nchoi/atelier-backend/internal/app/repository"
	"github.com/nchoi/atelier-backend/internal/app/state"
	"github.com/nchoi/atelier-backend/pkg/kv"
)

func setupCartTest(t *testing.T) (CartService, *state.Manager) {
	store, err := kv.NewFileStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
	})

	sessions := state.NewManager(store)
	catalogRepo := repository.NewCatalogRepository(nil)
	return NewCartService(sessions, catalogRepo), sessions
}

func TestCartService_AddToCart_Success(t *testing.T) {
	svc, _ := setupCartTest(t)

	err := svc.AddToCart("s1", 1, 2, "M", "Black")
	require.NoError(t, err)

	summary, err := svc.GetCart("s1")
	require.NoError(t, err)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, "Premium Cotton T-Shirt", summary.Items[0].Name)
	assert.Equal(t, 99.98, summary.Total)
}

func TestCartService_AddToCart_UnknownProduct(t *testing.T) {
	svc, _ := setupCartTest(t)

	err := svc.AddToCart("s1", 9999, 1, "M", "Black")
	assert.ErrorIs(t, err, ErrProductNotFound)

	summary, err := svc.GetCart("s1")
	require.NoError(t, err)
	assert.Empty(t, summary.Items)
}

func TestCartService_UpdateQuantity_AbsentLineIsNoOp(t *testing.T) {
	svc, _ := setupCartTest(t)

	require.NoError(t, svc.AddToCart("s1", 1, 1, "M", "Black"))

	// Updating a line that does not exist changes nothing and reports
	// no error.
	require.NoError(t, svc.UpdateQuantity("s1", 1, "XL", "Red", 5))

	summary, err := svc.GetCart("s1")
	require.NoError(t, err)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 1, summary.Items[0].Quantity)
}

func TestCartService_RemoveFromCart_AbsentLineIsNoOp(t *testing.T) {
	svc, _ := setupCartTest(t)

	require.NoError(t, svc.AddToCart("s1", 1, 1, "M", "Black"))
	require.NoError(t, svc.RemoveFromCart("s1", 1, "L", "Black"))

	summary, err := svc.GetCart("s1")
	require.NoError(t, err)
	assert.Len(t, summary.Items, 1)
}

func TestCartService_ClearCart(t *testing.T) {
	svc, _ := setupCartTest(t)

	require.NoError(t, svc.AddToCart("s1", 1, 1, "M", "Black"))
	require.NoError(t, svc.AddToCart("s1", 2, 1, "S", "White"))
	require.NoError(t, svc.ClearCart("s1"))

	summary, err := svc.GetCart("s1")
	require.NoError(t, err)
	assert.Empty(t, summary.Items)
	assert.Equal(t, 0, summary.Count)
	assert.Equal(t, 0.0, summary.Total)
}

func TestCartService_SessionsAreIsolated(t *testing.T) {
	svc, _ := setupCartTest(t)

	require.NoError(t, svc.AddToCart("s1", 1, 1, "M", "Black"))

	summary, err := svc.GetCart("s2")
	require.NoError(t, err)
	assert.Empty(t, summary.Items)
}
