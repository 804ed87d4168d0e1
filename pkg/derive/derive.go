// Package derive computes the ports a node exposes from its type and
// configuration. Derivation is pure: identical inputs always produce identical
// port lists, which is what lets edges refer to ports by id.
package derive

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/aretw0/conduit/pkg/domain"
)

var variablePattern = regexp.MustCompile(`\{\{([A-Za-z_$][A-Za-z0-9_$]*)\}\}`)

// Ports returns the ordered ports of node nodeID configured by cfg.
// Inbound ports come first, then outbound ports.
func Ports(nodeID string, cfg domain.Config) ([]domain.Port, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: missing configuration for node %q", domain.ErrInvalidConfiguration, nodeID)
	}

	b := builder{nodeID: nodeID}

	switch c := cfg.(type) {
	case domain.InputConfig:
		b.out("value", "Value")
	case domain.OutputConfig:
		b.in("value", "Value")
	case domain.LLMConfig:
		b.in("system", "System")
		b.in("prompt", "Prompt")
		b.out("response", "Response")
	case domain.ConditionalConfig:
		b.in("input", "Input")
		b.out("true", "True")
		b.out("false", "False")
	case domain.TransformConfig:
		b.in("input", "Input")
		b.out("output", "Output")
	case domain.FilterConfig:
		b.in("input", "Input")
		b.out("output", "Filtered")
	case domain.APICallConfig:
		b.in("input", "Request Data")
		b.out("response", "Response")
		b.out("error", "Error")
	case domain.MergeConfig:
		if err := c.Validate(); err != nil {
			return nil, err
		}
		for i := 1; i <= c.InputCount; i++ {
			n := strconv.Itoa(i)
			b.in("input-"+n, "Input "+n)
		}
		b.out("output", "Merged Output")
	case domain.TextConfig:
		for _, v := range Variables(c.Text) {
			b.in(v, v)
		}
		b.out("output", "Output")
	default:
		return nil, fmt.Errorf("%w: %T", domain.ErrUnknownNodeType, cfg)
	}

	return b.ports, nil
}

// Variables returns the distinct {{identifier}} references in template, in
// order of first occurrence.
func Variables(template string) []string {
	matches := variablePattern.FindAllStringSubmatch(template, -1)
	seen := make(map[string]bool, len(matches))
	vars := make([]string, 0, len(matches))
	for _, m := range matches {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		vars = append(vars, name)
	}
	return vars
}

// PortID composes the id of the port named suffix on node nodeID.
func PortID(nodeID, suffix string) string {
	return nodeID + "-" + suffix
}

type builder struct {
	nodeID string
	ports  []domain.Port
}

func (b *builder) in(suffix, label string) {
	b.add(suffix, label, domain.Inbound)
}

func (b *builder) out(suffix, label string) {
	b.add(suffix, label, domain.Outbound)
}

func (b *builder) add(suffix, label string, dir domain.Direction) {
	b.ports = append(b.ports, domain.Port{
		ID:        PortID(b.nodeID, suffix),
		NodeID:    b.nodeID,
		Direction: dir,
		Label:     label,
	})
}
