// Package pipeline holds the mutable graph a user is assembling: nodes, the
// ports derived from them, and the edges between those ports.
//
// A Pipeline is owned by a single session and is not safe for concurrent
// mutation. Callers that need to hand the graph to another goroutine take a
// Snapshot.
package pipeline

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/conduit/internal/logging"
	"github.com/aretw0/conduit/pkg/derive"
	"github.com/aretw0/conduit/pkg/domain"
)

type entry struct {
	node  domain.Node
	ports []domain.Port // memoised derive.Ports(node.ID, node.Config)
}

// Pipeline is the canonical in-memory graph.
type Pipeline struct {
	nodes     map[string]*entry
	nodeOrder []string
	edges     map[string]domain.Edge
	edgeOrder []string

	nodeSeq map[domain.NodeType]int
	edgeSeq int

	logger  *slog.Logger
	onPrune func(domain.Edge)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for structural events such as pruning.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithPruneHook registers fn to be called for every edge dropped because one
// of its ports disappeared.
func WithPruneHook(fn func(domain.Edge)) Option {
	return func(p *Pipeline) {
		p.onPrune = fn
	}
}

// New creates an empty pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		nodes:   make(map[string]*entry),
		edges:   make(map[string]domain.Edge),
		nodeSeq: make(map[domain.NodeType]int),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AddNode adds a node configured by cfg and returns its generated id
// ("<type>-<n>").
func (p *Pipeline) AddNode(cfg domain.Config, pos domain.Position) (string, error) {
	if cfg == nil {
		return "", fmt.Errorf("%w: missing configuration", domain.ErrInvalidConfiguration)
	}
	id := p.nextNodeID(cfg.Type())
	cfg = withDefaultName(id, cfg)
	if err := p.insertNode(id, cfg, pos); err != nil {
		return "", err
	}
	return id, nil
}

// InsertNode adds a node under a caller-chosen id, e.g. when rebuilding a
// pipeline from a submitted document.
func (p *Pipeline) InsertNode(id string, cfg domain.Config, pos domain.Position) error {
	if id == "" {
		return fmt.Errorf("%w: empty node id", domain.ErrInvalidConfiguration)
	}
	if _, exists := p.nodes[id]; exists {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateNode, id)
	}
	if cfg == nil {
		return fmt.Errorf("%w: missing configuration for %q", domain.ErrInvalidConfiguration, id)
	}
	return p.insertNode(id, cfg, pos)
}

func (p *Pipeline) insertNode(id string, cfg domain.Config, pos domain.Position) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	ports, err := derive.Ports(id, cfg)
	if err != nil {
		return err
	}
	p.nodes[id] = &entry{
		node:  domain.Node{ID: id, Type: cfg.Type(), Config: cfg, Position: pos},
		ports: ports,
	}
	p.nodeOrder = append(p.nodeOrder, id)
	p.logger.Debug("node added", "node_id", id, "type", cfg.Type(), "ports", len(ports))
	return nil
}

// RemoveNode deletes a node together with every edge touching it and returns
// the removed edges.
func (p *Pipeline) RemoveNode(id string) ([]domain.Edge, error) {
	if _, ok := p.nodes[id]; !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrNodeNotFound, id)
	}

	var removed []domain.Edge
	for _, edgeID := range slices.Clone(p.edgeOrder) {
		e := p.edges[edgeID]
		if e.Touches(id) {
			p.dropEdge(edgeID)
			removed = append(removed, e)
		}
	}

	delete(p.nodes, id)
	p.nodeOrder = remove(p.nodeOrder, id)
	p.logger.Debug("node removed", "node_id", id, "edges_removed", len(removed))
	return removed, nil
}

// UpdateNodeConfiguration merges partial into the node's configuration,
// re-derives its ports and prunes edges bound to ports that no longer exist.
// The pruned edges are returned. On error the node is left unchanged.
func (p *Pipeline) UpdateNodeConfiguration(id string, partial map[string]any) ([]domain.Edge, error) {
	ent, ok := p.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrNodeNotFound, id)
	}
	merged, err := domain.Overlay(ent.node.Config, partial)
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", id, err)
	}
	return p.reconfigure(ent, merged)
}

// SetNodeConfiguration replaces the node's configuration with cfg, which must
// be the variant of the node's type.
func (p *Pipeline) SetNodeConfiguration(id string, cfg domain.Config) ([]domain.Edge, error) {
	ent, ok := p.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrNodeNotFound, id)
	}
	if cfg == nil || cfg.Type() != ent.node.Type {
		return nil, fmt.Errorf("%w: node %q is of type %s", domain.ErrInvalidConfiguration, id, ent.node.Type)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("node %q: %w", id, err)
	}
	return p.reconfigure(ent, cfg)
}

func (p *Pipeline) reconfigure(ent *entry, cfg domain.Config) ([]domain.Edge, error) {
	ports, err := derive.Ports(ent.node.ID, cfg)
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", ent.node.ID, err)
	}
	ent.node.Config = cfg
	ent.ports = ports
	return p.pruneDangling(ent.node.ID), nil
}

// MoveNode updates the canvas position of a node.
func (p *Pipeline) MoveNode(id string, pos domain.Position) error {
	ent, ok := p.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrNodeNotFound, id)
	}
	ent.node.Position = pos
	return nil
}

// AddEdge connects sourcePort on sourceNode to targetPort on targetNode and
// returns the edge id. Cycles and same-node edges are accepted here; only the
// validity check flags them. Connecting the same two ports twice returns the
// existing edge.
func (p *Pipeline) AddEdge(sourceNode, sourcePort, targetNode, targetPort string) (string, error) {
	e := domain.Edge{Source: sourceNode, SourceHandle: sourcePort, Target: targetNode, TargetHandle: targetPort}
	if err := p.checkEndpoints(e); err != nil {
		return "", err
	}
	for _, id := range p.edgeOrder {
		existing := p.edges[id]
		if existing.Source == e.Source && existing.SourceHandle == e.SourceHandle &&
			existing.Target == e.Target && existing.TargetHandle == e.TargetHandle {
			return id, nil
		}
	}
	e.ID = p.nextEdgeID()
	p.putEdge(e)
	return e.ID, nil
}

// InsertEdge adds e under its own id, validating both endpoints.
func (p *Pipeline) InsertEdge(e domain.Edge) error {
	if e.ID == "" {
		return fmt.Errorf("%w: empty edge id", domain.ErrInvalidPortReference)
	}
	if _, exists := p.edges[e.ID]; exists {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateEdge, e.ID)
	}
	if err := p.checkEndpoints(e); err != nil {
		return err
	}
	p.putEdge(e)
	return nil
}

// RemoveEdge deletes an edge.
func (p *Pipeline) RemoveEdge(id string) error {
	if _, ok := p.edges[id]; !ok {
		return fmt.Errorf("%w: %q", domain.ErrEdgeNotFound, id)
	}
	p.dropEdge(id)
	return nil
}

func (p *Pipeline) checkEndpoints(e domain.Edge) error {
	src, ok := p.nodes[e.Source]
	if !ok {
		return fmt.Errorf("%w: source %q", domain.ErrNodeNotFound, e.Source)
	}
	dst, ok := p.nodes[e.Target]
	if !ok {
		return fmt.Errorf("%w: target %q", domain.ErrNodeNotFound, e.Target)
	}
	if _, ok := domain.FindPort(src.ports, e.SourceHandle, domain.Outbound); !ok {
		return fmt.Errorf("%w: %q is not an outbound port of %q", domain.ErrInvalidPortReference, e.SourceHandle, e.Source)
	}
	if _, ok := domain.FindPort(dst.ports, e.TargetHandle, domain.Inbound); !ok {
		return fmt.Errorf("%w: %q is not an inbound port of %q", domain.ErrInvalidPortReference, e.TargetHandle, e.Target)
	}
	return nil
}

// pruneDangling drops edges touching nodeID whose ports are gone.
func (p *Pipeline) pruneDangling(nodeID string) []domain.Edge {
	var pruned []domain.Edge
	for _, id := range slices.Clone(p.edgeOrder) {
		e := p.edges[id]
		if !e.Touches(nodeID) {
			continue
		}
		if p.checkEndpoints(e) == nil {
			continue
		}
		p.dropEdge(id)
		pruned = append(pruned, e)
		p.logger.Warn("edge pruned", "edge_id", e.ID, "node_id", nodeID, "error", domain.ErrDanglingEdge)
		if p.onPrune != nil {
			p.onPrune(e)
		}
	}
	return pruned
}

func (p *Pipeline) putEdge(e domain.Edge) {
	p.edges[e.ID] = e
	p.edgeOrder = append(p.edgeOrder, e.ID)
	p.logger.Debug("edge added", "edge_id", e.ID, "source", e.SourceHandle, "target", e.TargetHandle)
}

func (p *Pipeline) dropEdge(id string) {
	delete(p.edges, id)
	p.edgeOrder = remove(p.edgeOrder, id)
}

func (p *Pipeline) nextNodeID(t domain.NodeType) string {
	for {
		p.nodeSeq[t]++
		id := string(t) + "-" + strconv.Itoa(p.nodeSeq[t])
		if _, taken := p.nodes[id]; !taken {
			return id
		}
	}
}

func (p *Pipeline) nextEdgeID() string {
	for {
		p.edgeSeq++
		id := "edge-" + strconv.Itoa(p.edgeSeq)
		if _, taken := p.edges[id]; !taken {
			return id
		}
	}
}

// withDefaultName names unnamed Input/Output nodes after their id, e.g.
// customInput-3 becomes input_3.
func withDefaultName(id string, cfg domain.Config) domain.Config {
	switch c := cfg.(type) {
	case domain.InputConfig:
		if c.InputName == "" {
			c.InputName = strings.Replace(id, string(domain.NodeTypeInput)+"-", "input_", 1)
		}
		return c
	case domain.OutputConfig:
		if c.OutputName == "" {
			c.OutputName = strings.Replace(id, string(domain.NodeTypeOutput)+"-", "output_", 1)
		}
		return c
	}
	return cfg
}

func remove(ids []string, id string) []string {
	if i := slices.Index(ids, id); i >= 0 {
		return slices.Delete(ids, i, i+1)
	}
	return ids
}
