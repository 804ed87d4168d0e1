package pipeline

import (
	"fmt"
	"slices"

	"github.com/aretw0/conduit/pkg/domain"
)

// Node returns the node with the given id.
func (p *Pipeline) Node(id string) (domain.Node, bool) {
	ent, ok := p.nodes[id]
	if !ok {
		return domain.Node{}, false
	}
	return ent.node, true
}

// Edge returns the edge with the given id.
func (p *Pipeline) Edge(id string) (domain.Edge, bool) {
	e, ok := p.edges[id]
	return e, ok
}

// Ports returns the ports node id currently exposes, in derivation order.
// The slice is a copy; renderers may keep it.
func (p *Pipeline) Ports(id string) ([]domain.Port, error) {
	ent, ok := p.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrNodeNotFound, id)
	}
	return slices.Clone(ent.ports), nil
}

// Nodes returns all nodes in insertion order.
func (p *Pipeline) Nodes() []domain.Node {
	out := make([]domain.Node, 0, len(p.nodeOrder))
	for _, id := range p.nodeOrder {
		out = append(out, p.nodes[id].node)
	}
	return out
}

// Edges returns all edges in insertion order.
func (p *Pipeline) Edges() []domain.Edge {
	out := make([]domain.Edge, 0, len(p.edgeOrder))
	for _, id := range p.edgeOrder {
		out = append(out, p.edges[id])
	}
	return out
}

// NodeCount returns the number of nodes.
func (p *Pipeline) NodeCount() int { return len(p.nodeOrder) }

// EdgeCount returns the number of edges.
func (p *Pipeline) EdgeCount() int { return len(p.edgeOrder) }

// Snapshot captures the current graph. Later mutations of p do not affect it.
func (p *Pipeline) Snapshot() domain.Graph {
	return domain.Graph{Nodes: p.Nodes(), Edges: p.Edges()}
}
