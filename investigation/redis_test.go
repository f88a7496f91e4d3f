package investigation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRedisStore creates a miniredis instance and returns a connected RedisStore.
func setupRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	mr := miniredis.RunT(t)
	store, err := NewRedisStore(RedisOptions{
		URL:            fmt.Sprintf("redis://%s", mr.Addr()),
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   5 * time.Second,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = store.Close()
		mr.Close()
	})

	return store
}

func TestNewRedisStore_InvalidURL(t *testing.T) {
	_, err := NewRedisStore(RedisOptions{URL: "not-a-url"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestRedisStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := setupRedisStore(t)

	inv := &Investigation{
		ID:        "i1",
		Name:      "APT Campaign Review",
		State:     StateActive,
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		QueryHistory: []QueryRecord{
			{Query: "threat: severity equals critical", ExecutedAt: time.Date(2024, 5, 1, 12, 5, 0, 0, time.UTC), ResultCount: 2},
		},
	}
	require.NoError(t, store.Save(ctx, inv))

	got, err := store.Get(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, inv.Name, got.Name)
	assert.Equal(t, inv.State, got.State)
	require.Len(t, got.QueryHistory, 1)
	assert.Equal(t, 2, got.QueryHistory[0].ResultCount)
}

func TestRedisStore_GetNotFound(t *testing.T) {
	store := setupRedisStore(t)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_List(t *testing.T) {
	ctx := context.Background()
	store := setupRedisStore(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"b", "a"} {
		inv := &Investigation{ID: id, Name: id, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, store.Save(ctx, inv))
	}

	got, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
}

func TestRedisStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := setupRedisStore(t)

	require.NoError(t, store.Save(ctx, &Investigation{ID: "i1", Name: "x"}))
	require.NoError(t, store.Delete(ctx, "i1"))

	_, err := store.Get(ctx, "i1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, "i1"), ErrNotFound)
}
