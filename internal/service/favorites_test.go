package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/StorefrontGo/internal/storage"
	"github.com/utafrali/StorefrontGo/internal/storage/memory"
)

func newTestFavorites(t *testing.T) (*Favorites, *memory.KV) {
	t.Helper()
	kv := memory.NewKV()
	adapter := storage.NewAdapter(kv, newTestLogger())
	favs := NewFavorites(context.Background(), adapter, newTestLogger(), "favorites:test-session")
	return favs, kv
}

func TestFavoritesAdd(t *testing.T) {
	favs, _ := newTestFavorites(t)
	ctx := context.Background()

	favs.Add(ctx, "p1")

	assert.True(t, favs.Has("p1"))
	assert.Equal(t, []string{"p1"}, favs.List())
}

func TestFavoritesAdd_Idempotent(t *testing.T) {
	favs, _ := newTestFavorites(t)
	ctx := context.Background()

	favs.Add(ctx, "p1")
	favs.Add(ctx, "p1")

	assert.Equal(t, []string{"p1"}, favs.List())
}

func TestFavoritesAdd_NumericAndStringIDsCoincide(t *testing.T) {
	favs, _ := newTestFavorites(t)
	ctx := context.Background()

	favs.Add(ctx, 5)

	assert.True(t, favs.Has("5"))
	assert.True(t, favs.Has(5))
	assert.True(t, favs.Has(int64(5)))
	assert.True(t, favs.Has(float64(5)))
	assert.Equal(t, []string{"5"}, favs.List())
}

func TestFavoritesRemove(t *testing.T) {
	favs, _ := newTestFavorites(t)
	ctx := context.Background()

	favs.Add(ctx, "p1")
	favs.Remove(ctx, "p1")

	assert.False(t, favs.Has("p1"))
	assert.Empty(t, favs.List())
}

func TestFavoritesRemove_NonMemberIsNoOp(t *testing.T) {
	favs, _ := newTestFavorites(t)
	ctx := context.Background()

	favs.Add(ctx, "p1")
	favs.Remove(ctx, "p999")

	assert.Equal(t, []string{"p1"}, favs.List())
}

func TestFavoritesToggle(t *testing.T) {
	favs, _ := newTestFavorites(t)
	ctx := context.Background()

	assert.True(t, favs.Toggle(ctx, "p1"))
	assert.True(t, favs.Has("p1"))

	assert.False(t, favs.Toggle(ctx, "p1"))
	assert.False(t, favs.Has("p1"))
}

func TestFavoritesToggle_DoubleToggleRestoresState(t *testing.T) {
	favs, _ := newTestFavorites(t)
	ctx := context.Background()

	favs.Add(ctx, "p1")

	favs.Toggle(ctx, "p2")
	favs.Toggle(ctx, "p2")

	assert.Equal(t, []string{"p1"}, favs.List())
}

func TestFavoritesToggle_NumericID(t *testing.T) {
	favs, _ := newTestFavorites(t)
	ctx := context.Background()

	assert.True(t, favs.Toggle(ctx, 42))
	assert.False(t, favs.Toggle(ctx, "42"))
	assert.Empty(t, favs.List())
}

func TestFavorites_EmptyIDIsIgnored(t *testing.T) {
	favs, kv := newTestFavorites(t)
	ctx := context.Background()

	favs.Add(ctx, "")
	favs.Add(ctx, nil)
	assert.False(t, favs.Toggle(ctx, ""))

	assert.Empty(t, favs.List())
	_, err := kv.Get(ctx, "favorites:test-session")
	assert.Error(t, err)
}

func TestFavoritesList_Sorted(t *testing.T) {
	favs, _ := newTestFavorites(t)
	ctx := context.Background()

	favs.Add(ctx, "c")
	favs.Add(ctx, "a")
	favs.Add(ctx, "b")

	assert.Equal(t, []string{"a", "b", "c"}, favs.List())
}

func TestFavoritesPersist_SortedJSONArray(t *testing.T) {
	favs, kv := newTestFavorites(t)
	ctx := context.Background()

	favs.Add(ctx, "b")
	favs.Add(ctx, "a")

	raw, err := kv.Get(ctx, "favorites:test-session")
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, raw)
}

func TestFavoritesHydrate_ExistingState(t *testing.T) {
	kv := memory.NewKV()
	adapter := storage.NewAdapter(kv, newTestLogger())
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "favorites:s1", `["1","2"]`))

	favs := NewFavorites(ctx, adapter, newTestLogger(), "favorites:s1")

	assert.Equal(t, []string{"1", "2"}, favs.List())
}

func TestFavoritesHydrate_CoercesNumericMembers(t *testing.T) {
	kv := memory.NewKV()
	adapter := storage.NewAdapter(kv, newTestLogger())
	ctx := context.Background()

	// A payload written by an older client that stored raw numbers.
	require.NoError(t, kv.Set(ctx, "favorites:s1", `[1, "2", 3]`))

	favs := NewFavorites(ctx, adapter, newTestLogger(), "favorites:s1")

	assert.Equal(t, []string{"1", "2", "3"}, favs.List())
}

func TestFavoritesHydrate_CorruptPayload(t *testing.T) {
	kv := memory.NewKV()
	adapter := storage.NewAdapter(kv, newTestLogger())
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "favorites:s1", `{not json`))

	favs := NewFavorites(ctx, adapter, newTestLogger(), "favorites:s1")

	assert.Empty(t, favs.List())
}

func TestFavoritesHydrate_NonArrayPayload(t *testing.T) {
	kv := memory.NewKV()
	adapter := storage.NewAdapter(kv, newTestLogger())
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "favorites:s1", `{"a": true}`))

	favs := NewFavorites(ctx, adapter, newTestLogger(), "favorites:s1")

	assert.Empty(t, favs.List())
}

func TestFavoritesAdd_DegradedWriteKeepsMemoryState(t *testing.T) {
	favs, kv := newTestFavorites(t)
	ctx := context.Background()

	kv.FailNext(errors.New("quota exceeded"))
	favs.Add(ctx, "p1")

	assert.True(t, favs.Has("p1"))
	_, err := kv.Get(ctx, "favorites:test-session")
	assert.Error(t, err)
}
