package connectivity_test

import (
	"testing"

	"github.com/aretw0/conduit/pkg/connectivity"
	"github.com/aretw0/conduit/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func nodes(ids ...string) []domain.Node {
	out := make([]domain.Node, len(ids))
	for i, id := range ids {
		out[i] = domain.Node{ID: id, Type: domain.NodeTypeTransform, Config: domain.TransformConfig{TransformType: "trim"}}
	}
	return out
}

func edge(src, dst string) domain.Edge {
	return domain.Edge{
		ID:           src + "->" + dst,
		Source:       src,
		SourceHandle: src + "-output",
		Target:       dst,
		TargetHandle: dst + "-input",
	}
}

func TestIsConnected(t *testing.T) {
	tests := []struct {
		name  string
		graph domain.Graph
		want  bool
	}{
		{"empty", domain.Graph{}, true},
		{"single node", domain.Graph{Nodes: nodes("a")}, true},
		{"single node with self loop", domain.Graph{Nodes: nodes("a"), Edges: []domain.Edge{edge("a", "a")}}, true},
		{"two nodes no edges", domain.Graph{Nodes: nodes("a", "b")}, false},
		{"two nodes linked", domain.Graph{Nodes: nodes("a", "b"), Edges: []domain.Edge{edge("a", "b")}}, true},
		{"chain", domain.Graph{Nodes: nodes("a", "b", "c"), Edges: []domain.Edge{edge("a", "b"), edge("b", "c")}}, true},
		{"directed cycle", domain.Graph{Nodes: nodes("a", "b", "c"), Edges: []domain.Edge{edge("a", "b"), edge("b", "c"), edge("c", "a")}}, true},
		{"edges against direction", domain.Graph{Nodes: nodes("a", "b", "c"), Edges: []domain.Edge{edge("b", "a"), edge("b", "c")}}, true},
		{"isolated node", domain.Graph{Nodes: nodes("a", "b", "c"), Edges: []domain.Edge{edge("a", "b")}}, false},
		{"two islands", domain.Graph{Nodes: nodes("a", "b", "c", "d"), Edges: []domain.Edge{edge("a", "b"), edge("c", "d")}}, false},
		{"edge to unknown node ignored", domain.Graph{Nodes: nodes("a", "b"), Edges: []domain.Edge{edge("a", "ghost")}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, connectivity.IsConnected(tt.graph))
		})
	}
}

func TestIsConnected_StartIndependent(t *testing.T) {
	edges := []domain.Edge{edge("a", "b"), edge("c", "b")}
	orders := [][]string{{"a", "b", "c"}, {"b", "c", "a"}, {"c", "a", "b"}}
	for _, order := range orders {
		assert.True(t, connectivity.IsConnected(domain.Graph{Nodes: nodes(order...), Edges: edges}), "order %v", order)
	}
}

func TestUnreached(t *testing.T) {
	g := domain.Graph{Nodes: nodes("a", "b", "c", "d"), Edges: []domain.Edge{edge("a", "b"), edge("c", "d")}}
	assert.Equal(t, []string{"c", "d"}, connectivity.Unreached(g))

	assert.Equal(t, []string{"b"}, connectivity.Unreached(domain.Graph{Nodes: nodes("a", "b")}))
	assert.Nil(t, connectivity.Unreached(domain.Graph{Nodes: nodes("a")}))
}
