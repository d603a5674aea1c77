package kv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFileStore(t *testing.T) Store {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func TestFileStore_SetAndGet(t *testing.T) {
	store := setupFileStore(t)

	require.NoError(t, store.Set("storefront:s1", []byte(`{"a":1}`)))

	data, err := store.Get("storefront:s1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(data))

	// Overwrite replaces the slot.
	require.NoError(t, store.Set("storefront:s1", []byte(`{"a":2}`)))
	data, err = store.Get("storefront:s1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":2}`, string(data))
}

func TestFileStore_Get_Missing(t *testing.T) {
	store := setupFileStore(t)

	_, err := store.Get("storefront:missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_Delete(t *testing.T) {
	store := setupFileStore(t)

	require.NoError(t, store.Set("storefront:s1", []byte("{}")))
	require.NoError(t, store.Delete("storefront:s1"))

	_, err := store.Get("storefront:s1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing key is not an error.
	assert.NoError(t, store.Delete("storefront:s1"))
}

func TestFileStore_Keys(t *testing.T) {
	store := setupFileStore(t)

	require.NoError(t, store.Set("storefront:s1", []byte("{}")))
	require.NoError(t, store.Set("storefront:s2", []byte("{}")))
	require.NoError(t, store.Set("auth:users", []byte("{}")))

	keys, err := store.Keys("storefront:")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"storefront:s1", "storefront:s2"}, keys)

	keys, err = store.Keys("auth:")
	require.NoError(t, err)
	assert.Equal(t, []string{"auth:users"}, keys)
}
