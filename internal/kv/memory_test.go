package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSetGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "v"))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDeleteIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "v"))
	require.NoError(t, store.Delete(ctx, "k"))
	require.NoError(t, store.Delete(ctx, "k"))

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreKeys(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", "1"))
	require.NoError(t, store.Set(ctx, "b", "2"))

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, keys)
}

func TestBoundedMemoryStoreQuota(t *testing.T) {
	store := NewBoundedMemoryStore(10)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "abc", "def")) // 6 bytes

	err := store.Set(ctx, "ghijk", "lmnop") // would be 16
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	// Overwriting an existing key accounts for the freed space.
	require.NoError(t, store.Set(ctx, "abc", "xyzw"))

	// Deleting frees quota for new writes.
	require.NoError(t, store.Delete(ctx, "abc"))
	require.NoError(t, store.Set(ctx, "ghij", "lmnop"))
}
