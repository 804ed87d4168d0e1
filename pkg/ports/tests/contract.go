package tests

import (
	"context"
	"testing"

	"github.com/aretw0/conduit/pkg/ports"
	"github.com/aretw0/conduit/pkg/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// VerdictCacheContractTest is a reusable suite that verifies an adapter
// complies with ports.VerdictCache.
func VerdictCacheContractTest(t *testing.T, cache ports.VerdictCache) {
	t.Helper()
	ctx := context.Background()

	t.Run("Miss", func(t *testing.T) {
		_, ok, err := cache.Get(ctx, "never-stored")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("PutThenGet", func(t *testing.T) {
		want := wire.Response{NumNodes: 4, NumEdge: 3, IsDAG: true}
		require.NoError(t, cache.Put(ctx, "fp-1", want))

		got, ok, err := cache.Get(ctx, "fp-1")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, "fp-2", wire.Response{NumNodes: 2, IsDAG: true}))
		require.NoError(t, cache.Put(ctx, "fp-2", wire.Response{NumNodes: 2, NumEdge: 2, IsDAG: false}))

		got, ok, err := cache.Get(ctx, "fp-2")
		require.NoError(t, err)
		require.True(t, ok)
		assert.False(t, got.IsDAG)
		assert.Equal(t, 2, got.NumEdge)
	})

	t.Run("KeysAreIndependent", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, "fp-a", wire.Response{NumNodes: 1, IsDAG: true}))
		_, ok, err := cache.Get(ctx, "fp-b")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
