package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/conduit/pkg/domain"
)

// Overlay carries validation results to visualize on the graph.
type Overlay struct {
	Unreached []string
}

// GenerateMermaid produces a Mermaid flowchart of a pipeline snapshot.
// Node shapes follow the node type:
// - Input/Output: ([Stadium])
// - LLM: [[Subroutine]]
// - Conditional: {Rhombus}
// - Default: [Rectangle]
// Edges are labelled "source port → target port" using the port labels in
// ports, falling back to the raw handle when a node has no ports listed.
func GenerateMermaid(g domain.Graph, ports map[string][]domain.Port, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, node := range g.Nodes {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "[", "]"
		switch node.Type {
		case domain.NodeTypeInput, domain.NodeTypeOutput:
			opener, closer = "([", "])"
		case domain.NodeTypeLLM:
			opener, closer = "[[", "]]"
		case domain.NodeTypeConditional:
			opener, closer = "{", "}"
		}

		label := node.ID
		if name := ioName(node.Config); name != "" {
			label = fmt.Sprintf("%s <br/> %s", node.ID, name)
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, escape(label), closer)
	}

	for _, e := range g.Edges {
		from := portLabel(ports[e.Source], e.SourceHandle, domain.Outbound)
		to := portLabel(ports[e.Target], e.TargetHandle, domain.Inbound)
		fmt.Fprintf(&sb, "    %s -- \"%s → %s\" --> %s\n",
			sanitizeMermaidID(e.Source), escape(from), escape(to), sanitizeMermaidID(e.Target))
	}

	if overlay != nil && len(overlay.Unreached) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) so the highlight reads on light and dark themes
		sb.WriteString("    classDef unreached fill:#ffebee,stroke:#c62828,stroke-width:2px,stroke-dasharray:4,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.Unreached {
			safeID := sanitizeMermaidID(id)
			if !seen[safeID] && safeID != "" {
				seen[safeID] = true
				fmt.Fprintf(&sb, "    class %s unreached;\n", safeID)
			}
		}
	}

	return sb.String()
}

func ioName(cfg domain.Config) string {
	switch c := cfg.(type) {
	case domain.InputConfig:
		return c.InputName
	case domain.OutputConfig:
		return c.OutputName
	}
	return ""
}

func portLabel(ports []domain.Port, handle string, dir domain.Direction) string {
	if p, ok := domain.FindPort(ports, handle, dir); ok {
		return p.Label
	}
	return handle
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
