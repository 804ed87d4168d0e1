// Package dag implements the reference directed-cycle check used by the
// verdict service and the in-process checker.
package dag

import "github.com/aretw0/conduit/pkg/wire"

// Analyze counts nodes and edges and reports whether the directed graph has
// no cycle, using Kahn's topological sort. Edges naming an unknown node are
// counted but do not take part in the sort.
func Analyze(p wire.Payload) wire.Response {
	known := make(map[string]bool, len(p.Nodes))
	for _, n := range p.Nodes {
		known[n.ID] = true
	}

	inDegree := make(map[string]int, len(known))
	for id := range known {
		inDegree[id] = 0
	}
	successors := make(map[string][]string, len(known))
	for _, e := range p.Edges {
		if !known[e.Source] || !known[e.Target] {
			continue
		}
		successors[e.Source] = append(successors[e.Source], e.Target)
		inDegree[e.Target]++
	}

	queue := make([]string, 0, len(known))
	queued := make(map[string]bool, len(known))
	for _, n := range p.Nodes {
		if inDegree[n.ID] == 0 && !queued[n.ID] {
			queued[n.ID] = true
			queue = append(queue, n.ID)
		}
	}

	processed := 0
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		processed++
		for _, next := range successors[current] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	return wire.Response{
		NumNodes: len(p.Nodes),
		NumEdge:  len(p.Edges),
		IsDAG:    processed == len(known),
	}
}
