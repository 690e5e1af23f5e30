package blob

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	require.NoError(t, m.Put(ctx, "k1", "image/jpeg", []byte("abc")))
	obj, err := m.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", obj.ContentType)
	assert.Equal(t, []byte("abc"), obj.Data)
	assert.Equal(t, 1, m.Len())

	require.NoError(t, m.Delete(ctx, "k1"))
	_, err = m.Get(ctx, "k1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreMiss(t *testing.T) {
	_, err := NewMemoryStore().Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTieredWithoutBackingIsMemoryOnly(t *testing.T) {
	ctx := context.Background()
	tiered := NewTiered(NewMemoryStore(), nil)

	require.NoError(t, tiered.Put(ctx, "k", "image/png", []byte("x")))
	obj, err := tiered.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), obj.Data)

	require.NoError(t, tiered.Delete(ctx, "k"))
	_, err = tiered.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTieredRepopulatesCacheFromBacking(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryStore()
	backing := NewMemoryStore()
	tiered := NewTiered(cache, backing)

	require.NoError(t, tiered.Put(ctx, "k", "image/png", []byte("x")))

	// simulate a restart: cache gone, backing intact
	require.NoError(t, cache.Delete(ctx, "k"))
	assert.Equal(t, 0, cache.Len())

	obj, err := tiered.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), obj.Data)
	assert.Equal(t, 1, cache.Len(), "read-through should repopulate the cache")
}

func TestTieredDeleteEvictsBothTiers(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryStore()
	backing := NewMemoryStore()
	tiered := NewTiered(cache, backing)

	require.NoError(t, tiered.Put(ctx, "k", "image/png", []byte("x")))
	require.NoError(t, tiered.Delete(ctx, "k"))

	_, err := cache.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = backing.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}
