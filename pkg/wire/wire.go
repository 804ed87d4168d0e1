// Package wire defines the JSON documents exchanged with the verdict service
// and converts between them and the in-memory pipeline.
package wire

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/conduit/pkg/domain"
	"github.com/aretw0/conduit/pkg/pipeline"
)

// Payload is the submission request body.
type Payload struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// Node is a node as submitted. Data carries the configuration under its wire
// field names; derived ports are never sent.
type Node struct {
	ID       string          `json:"id" yaml:"id"`
	Type     string          `json:"type" yaml:"type"`
	Position domain.Position `json:"position" yaml:"position"`
	Data     map[string]any  `json:"data" yaml:"data,omitempty"`
}

// Edge is an edge as submitted. The handles are the recorded port ids.
type Edge struct {
	ID           string `json:"id" yaml:"id"`
	Source       string `json:"source" yaml:"source"`
	Target       string `json:"target" yaml:"target"`
	SourceHandle string `json:"sourceHandle" yaml:"sourceHandle"`
	TargetHandle string `json:"targetHandle" yaml:"targetHandle"`
}

// Response is the verdict service answer. The counts are echoed for display
// and are not checked against the local pipeline.
type Response struct {
	NumNodes int  `json:"num_nodes"`
	NumEdge  int  `json:"num_edge"`
	IsDAG    bool `json:"is_dag"`
}

// Serialize projects a snapshot into a submission payload.
func Serialize(g domain.Graph) Payload {
	p := Payload{
		Nodes: make([]Node, 0, len(g.Nodes)),
		Edges: make([]Edge, 0, len(g.Edges)),
	}
	for _, n := range g.Nodes {
		p.Nodes = append(p.Nodes, Node{
			ID:       n.ID,
			Type:     string(n.Type),
			Position: n.Position,
			Data:     domain.ConfigData(n.Config),
		})
	}
	for _, e := range g.Edges {
		p.Edges = append(p.Edges, Edge{
			ID:           e.ID,
			Source:       e.Source,
			Target:       e.Target,
			SourceHandle: e.SourceHandle,
			TargetHandle: e.TargetHandle,
		})
	}
	return p
}

// Decode rebuilds a pipeline from a payload. Node data is decoded over the
// type defaults and every edge is checked against the derived ports, so a
// payload that decodes cleanly satisfies all structural invariants.
func Decode(p Payload, opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	pl := pipeline.New(opts...)
	for i, n := range p.Nodes {
		t := domain.NodeType(n.Type)
		if !t.Valid() {
			return nil, fmt.Errorf("node %d (%q): %w: %q", i, n.ID, domain.ErrUnknownNodeType, n.Type)
		}
		cfg, err := domain.DecodeConfig(t, n.Data)
		if err != nil {
			return nil, fmt.Errorf("node %d (%q): %w", i, n.ID, err)
		}
		if err := pl.InsertNode(n.ID, cfg, n.Position); err != nil {
			return nil, fmt.Errorf("node %d (%q): %w", i, n.ID, err)
		}
	}
	for i, e := range p.Edges {
		err := pl.InsertEdge(domain.Edge{
			ID:           e.ID,
			Source:       e.Source,
			SourceHandle: e.SourceHandle,
			Target:       e.Target,
			TargetHandle: e.TargetHandle,
		})
		if err != nil {
			return nil, fmt.Errorf("edge %d (%q): %w", i, e.ID, err)
		}
	}
	return pl, nil
}

// Fingerprint hashes the structure relevant to a verdict: node ids and edge
// endpoints. Positions and configuration do not contribute, nor does order.
func Fingerprint(p Payload) string {
	nodes := make([]string, 0, len(p.Nodes))
	for _, n := range p.Nodes {
		nodes = append(nodes, n.ID)
	}
	edges := make([]string, 0, len(p.Edges))
	for _, e := range p.Edges {
		edges = append(edges, e.ID+"\x00"+e.Source+"\x00"+e.Target)
	}
	slices.Sort(nodes)
	slices.Sort(edges)

	h := sha256.New()
	h.Write([]byte(strings.Join(nodes, "\n")))
	h.Write([]byte{0xff})
	h.Write([]byte(strings.Join(edges, "\n")))
	return hex.EncodeToString(h.Sum(nil))
}
