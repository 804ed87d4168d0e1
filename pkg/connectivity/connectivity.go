// Package connectivity decides whether a pipeline, viewed as an undirected
// graph, forms a single component.
package connectivity

import "github.com/aretw0/conduit/pkg/domain"

// IsConnected reports whether every node of g is reachable from every other
// node when edge direction is ignored.
//
// The empty pipeline and any single node count as connected. Two or more
// nodes with no edges do not.
func IsConnected(g domain.Graph) bool {
	switch {
	case len(g.Nodes) <= 1:
		return true
	case len(g.Edges) == 0:
		return false
	}
	return len(reach(g)) == len(g.Nodes)
}

// Unreached lists, in insertion order, the nodes not reachable from the first
// node. It is empty whenever IsConnected is true.
func Unreached(g domain.Graph) []string {
	if IsConnected(g) {
		return nil
	}
	visited := reach(g)
	var out []string
	for _, n := range g.Nodes {
		if !visited[n.ID] {
			out = append(out, n.ID)
		}
	}
	return out
}

// reach runs a breadth-first traversal from the first node. Edges with an
// endpoint outside the node set are ignored.
func reach(g domain.Graph) map[string]bool {
	adjacency := make(map[string][]string, len(g.Nodes))
	for _, n := range g.Nodes {
		adjacency[n.ID] = nil
	}
	for _, e := range g.Edges {
		if _, ok := adjacency[e.Source]; !ok {
			continue
		}
		if _, ok := adjacency[e.Target]; !ok {
			continue
		}
		adjacency[e.Source] = append(adjacency[e.Source], e.Target)
		adjacency[e.Target] = append(adjacency[e.Target], e.Source)
	}

	start := g.Nodes[0].ID
	visited := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range adjacency[current] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return visited
}
