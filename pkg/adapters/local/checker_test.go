package local_test

import (
	"context"
	"testing"

	"github.com/aretw0/conduit/pkg/adapters/local"
	"github.com/aretw0/conduit/pkg/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecker_CheckAcyclic(t *testing.T) {
	payload := wire.Payload{
		Nodes: []wire.Node{{ID: "a"}, {ID: "b"}},
		Edges: []wire.Edge{{ID: "1", Source: "a", Target: "b"}, {ID: "2", Source: "b", Target: "a"}},
	}

	resp, err := local.NewChecker().CheckAcyclic(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, wire.Response{NumNodes: 2, NumEdge: 2, IsDAG: false}, resp)
}

func TestChecker_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := local.NewChecker().CheckAcyclic(ctx, wire.Payload{})
	assert.ErrorIs(t, err, context.Canceled)
}
