package domain

// NodeType identifies a building block. The values are the names the canvas
// and the verdict service exchange on the wire.
type NodeType string

const (
	NodeTypeInput       NodeType = "customInput"
	NodeTypeOutput      NodeType = "customOutput"
	NodeTypeText        NodeType = "text"
	NodeTypeLLM         NodeType = "llm"
	NodeTypeConditional NodeType = "conditional"
	NodeTypeTransform   NodeType = "transform"
	NodeTypeMerge       NodeType = "merge"
	NodeTypeFilter      NodeType = "filter"
	NodeTypeAPICall     NodeType = "api"
)

// NodeTypes lists every known type in palette order.
var NodeTypes = []NodeType{
	NodeTypeInput,
	NodeTypeLLM,
	NodeTypeOutput,
	NodeTypeText,
	NodeTypeConditional,
	NodeTypeTransform,
	NodeTypeMerge,
	NodeTypeFilter,
	NodeTypeAPICall,
}

// Valid reports whether t is one of the known node types.
func (t NodeType) Valid() bool {
	for _, known := range NodeTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Position is the canvas coordinate of a node. It belongs to the renderer and
// is passed through untouched.
type Position struct {
	X float64 `json:"x" yaml:"x" mapstructure:"x"`
	Y float64 `json:"y" yaml:"y" mapstructure:"y"`
}

// Node is a typed unit of pipeline configuration.
// Type is fixed at creation; Config always holds the variant matching Type.
type Node struct {
	ID       string   `json:"id"`
	Type     NodeType `json:"type"`
	Config   Config   `json:"data"`
	Position Position `json:"position"`
}

// Edge is a directed connection from an outbound port to an inbound port.
// The handle fields carry port ids exactly as derived for each endpoint.
type Edge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	SourceHandle string `json:"sourceHandle"`
	Target       string `json:"target"`
	TargetHandle string `json:"targetHandle"`
}

// Touches reports whether the edge has nodeID at either end.
func (e Edge) Touches(nodeID string) bool {
	return e.Source == nodeID || e.Target == nodeID
}

// Graph is a read-only snapshot of a pipeline, nodes and edges in insertion order.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// NodeIndex maps node id to its position in Nodes.
func (g Graph) NodeIndex() map[string]int {
	idx := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		idx[n.ID] = i
	}
	return idx
}
