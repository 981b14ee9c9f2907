package storage

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/StorefrontGo/internal/storage/memory"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestAdapterRead_OK(t *testing.T) {
	kv := memory.NewKV()
	adapter := NewAdapter(kv, newTestLogger())
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "cart:s1", `[{"productId":"p1"}]`))

	value, status := adapter.Read(ctx, "cart:s1")
	assert.Equal(t, StatusOK, status)
	assert.Equal(t, `[{"productId":"p1"}]`, value)
}

func TestAdapterRead_Missing(t *testing.T) {
	adapter := NewAdapter(memory.NewKV(), newTestLogger())

	value, status := adapter.Read(context.Background(), "cart:absent")
	assert.Equal(t, StatusMissing, status)
	assert.Empty(t, value)
}

func TestAdapterRead_Degraded(t *testing.T) {
	kv := memory.NewKV()
	adapter := NewAdapter(kv, newTestLogger())

	kv.FailNext(errors.New("medium offline"))

	value, status := adapter.Read(context.Background(), "cart:s1")
	assert.Equal(t, StatusDegraded, status)
	assert.Empty(t, value)
}

func TestAdapterWrite_OK(t *testing.T) {
	kv := memory.NewKV()
	adapter := NewAdapter(kv, newTestLogger())
	ctx := context.Background()

	status := adapter.Write(ctx, "cart:s1", `[]`)
	assert.Equal(t, StatusOK, status)

	value, err := kv.Get(ctx, "cart:s1")
	require.NoError(t, err)
	assert.Equal(t, `[]`, value)
}

func TestAdapterWrite_Degraded(t *testing.T) {
	kv := memory.NewKV()
	adapter := NewAdapter(kv, newTestLogger())
	ctx := context.Background()

	kv.FailNext(errors.New("quota exceeded"))

	status := adapter.Write(ctx, "cart:s1", `[]`)
	assert.Equal(t, StatusDegraded, status)

	// The failed write left nothing behind.
	_, err := kv.Get(ctx, "cart:s1")
	assert.Error(t, err)
}

func TestAdapterRemove_OK(t *testing.T) {
	kv := memory.NewKV()
	adapter := NewAdapter(kv, newTestLogger())
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "cart:s1", `[]`))

	status := adapter.Remove(ctx, "cart:s1")
	assert.Equal(t, StatusOK, status)

	_, err := kv.Get(ctx, "cart:s1")
	assert.Error(t, err)
}

func TestAdapterRemove_AbsentKeyIsOK(t *testing.T) {
	adapter := NewAdapter(memory.NewKV(), newTestLogger())

	status := adapter.Remove(context.Background(), "cart:absent")
	assert.Equal(t, StatusOK, status)
}

func TestAdapterRemove_Degraded(t *testing.T) {
	kv := memory.NewKV()
	adapter := NewAdapter(kv, newTestLogger())

	kv.FailNext(errors.New("medium offline"))

	status := adapter.Remove(context.Background(), "cart:s1")
	assert.Equal(t, StatusDegraded, status)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "ok", StatusOK.String())
	assert.Equal(t, "missing", StatusMissing.String())
	assert.Equal(t, "degraded", StatusDegraded.String())
	assert.Equal(t, "unknown", Status(99).String())
}
