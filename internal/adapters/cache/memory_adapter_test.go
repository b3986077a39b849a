package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAdapterSetGet(t *testing.T) {
	adapter := NewMemoryAdapter(time.Minute, time.Minute)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "snapshot", []byte(`{"ok":true}`), 60))

	got, err := adapter.Get(ctx, "snapshot")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"ok":true}`), got)
}

func TestMemoryAdapterGetMissing(t *testing.T) {
	adapter := NewMemoryAdapter(time.Minute, time.Minute)

	_, err := adapter.Get(context.Background(), "missing")
	assert.Error(t, err)
}

func TestMemoryAdapterDelete(t *testing.T) {
	adapter := NewMemoryAdapter(time.Minute, time.Minute)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "k", []byte("v"), 60))
	require.NoError(t, adapter.Delete(ctx, "k"))

	exists, err := adapter.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryAdapterExists(t *testing.T) {
	adapter := NewMemoryAdapter(time.Minute, time.Minute)
	ctx := context.Background()

	exists, err := adapter.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, adapter.Set(ctx, "k", []byte("v"), 60))

	exists, err = adapter.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)
}
