package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/cache"
)

func TestMemoryStore_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	err := store.Save(ctx, "s1", Data{User: &User{ID: 1, Handle: "alice"}}, time.Hour)
	require.NoError(t, err)

	data, ok, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "alice", data.User.Handle)

	data.User.Handle = "changed"
	again, _, _ := store.Load(ctx, "s1")
	assert.Equal(t, "alice", again.User.Handle, "loaded data must not alias the stored record")

	require.NoError(t, store.Delete(ctx, "s1"))
	_, ok, err = store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, "old", Data{SuccessMessage: "x"}, time.Minute))

	now = now.Add(2 * time.Minute)
	_, ok, err := store.Load(ctx, "old")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save(ctx, "a", Data{SuccessMessage: "x"}, time.Minute))
	require.NoError(t, store.Save(ctx, "b", Data{SuccessMessage: "y"}, time.Hour))
	now = now.Add(5 * time.Minute)
	require.NoError(t, store.Save(ctx, "c", Data{SuccessMessage: "z"}, time.Hour))
	assert.Equal(t, 2, store.Len())
}

func TestRedisStore_NilCacheIsEmpty(t *testing.T) {
	ctx := context.Background()
	var client *cache.Client
	store := NewRedisStore(client)

	require.NoError(t, store.Save(ctx, "s1", Data{SuccessMessage: "x"}, time.Hour))
	_, ok, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = store.Replace(ctx, "s1", Data{SuccessMessage: "y"}, time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, store.Delete(ctx, "s1"))
}

func TestMemoryStore_ReplaceOnlyExisting(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	ok, err := store.Replace(ctx, "s1", Data{SuccessMessage: "x"}, time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())

	require.NoError(t, store.Save(ctx, "s1", Data{SuccessMessage: "x"}, time.Hour))
	ok, err = store.Replace(ctx, "s1", Data{User: &User{ID: 1}}, time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	data, found, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Empty(t, data.SuccessMessage)
	assert.Equal(t, uint(1), data.User.ID)
}
