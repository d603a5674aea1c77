package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nchoi/atelier-backend/internal/app/repository"
	"github.com/nchoi/atelier-backend/internal/app/state"
	"github.com/nchoi/atelier-backend/pkg/kv"
)

func setupCatalogTest(t *testing.T) CatalogService {
	store, err := kv.NewFileStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
	})

	sessions := state.NewManager(store)
	return NewCatalogService(repository.NewCatalogRepository(nil), sessions)
}

func TestCatalogService_GetAllProducts_RecordsSearch(t *testing.T) {
	svc := setupCatalogTest(t)

	products, err := svc.GetAllProducts("s1", repository.CatalogFilter{Query: "dress"})
	require.NoError(t, err)
	assert.NotEmpty(t, products)

	history, err := svc.GetSearchHistory("s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"dress"}, history)

	// Listing without a query leaves history untouched.
	_, err = svc.GetAllProducts("s1", repository.CatalogFilter{})
	require.NoError(t, err)
	history, err = svc.GetSearchHistory("s1")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestCatalogService_GetProductByID_RecordsView(t *testing.T) {
	svc := setupCatalogTest(t)

	product, err := svc.GetProductByID("s1", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, product.ID)

	_, err = svc.GetProductByID("s1", 2)
	require.NoError(t, err)

	viewed, err := svc.GetRecentlyViewed("s1")
	require.NoError(t, err)
	require.Len(t, viewed, 2)
	assert.Equal(t, 2, viewed[0].ID)
	assert.Equal(t, 1, viewed[1].ID)
}

func TestCatalogService_GetProductByID_NotFound(t *testing.T) {
	svc := setupCatalogTest(t)

	_, err := svc.GetProductByID("s1", 9999)
	assert.ErrorIs(t, err, ErrProductNotFound)

	viewed, err := svc.GetRecentlyViewed("s1")
	require.NoError(t, err)
	assert.Empty(t, viewed)
}

func TestCatalogService_GetCategories(t *testing.T) {
	svc := setupCatalogTest(t)

	categories, err := svc.GetCategories()
	require.NoError(t, err)
	assert.NotEmpty(t, categories)
}

func TestCatalogService_ClearSearchHistory(t *testing.T) {
	svc := setupCatalogTest(t)

	_, err := svc.GetAllProducts("s1", repository.CatalogFilter{Query: "dress"})
	require.NoError(t, err)

	require.NoError(t, svc.ClearSearchHistory("s1"))

	history, err := svc.GetSearchHistory("s1")
	require.NoError(t, err)
	assert.Empty(t, history)
}
