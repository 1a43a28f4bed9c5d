package pagecache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "/", []byte("payload"), time.Minute))

	payload, found, err := store.Get(ctx, "/")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("payload"), payload)
}

func TestMemoryStore_MissingKey(t *testing.T) {
	store := NewMemoryStore()

	payload, found, err := store.Get(context.Background(), "/nothing")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, payload)
}

func TestMemoryStore_EntryExpires(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "/", []byte("payload"), 10*time.Millisecond))
	time.Sleep(25 * time.Millisecond)

	_, found, err := store.Get(ctx, "/")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStore_SetOverwrites(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "/", []byte("old"), time.Minute))
	require.NoError(t, store.Set(ctx, "/", []byte("new"), time.Minute))

	payload, found, err := store.Get(ctx, "/")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("new"), payload)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "/", []byte("payload"), time.Minute))
	require.NoError(t, store.Delete(ctx, "/"))

	_, found, err := store.Get(ctx, "/")
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting a missing key is not an error
	require.NoError(t, store.Delete(ctx, "/"))
}

func TestMemoryStore_NonPositiveTTLStoresNothing(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "/", []byte("payload"), 0))

	_, found, err := store.Get(ctx, "/")
	require.NoError(t, err)
	assert.False(t, found)
}
