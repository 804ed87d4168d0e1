// Package file reads and writes pipeline documents on disk. JSON and YAML
// documents mirror the submission payload; HCL documents describe the same
// graph with labelled node and edge blocks.
package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/conduit/pkg/domain"
	"github.com/aretw0/conduit/pkg/wire"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"gopkg.in/yaml.v3"
)

// Format identifies a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// ErrUnsupportedFormat is returned for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported pipeline format")

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hcl":
		return FormatHCL, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Load reads the pipeline document at path.
func Load(path string) (wire.Payload, error) {
	format, err := FormatOf(path)
	if err != nil {
		return wire.Payload{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return wire.Payload{}, fmt.Errorf("failed to read pipeline: %w", err)
	}
	return Parse(data, format, path)
}

// Parse decodes a document. filename only appears in diagnostics.
func Parse(data []byte, format Format, filename string) (wire.Payload, error) {
	var p wire.Payload
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &p); err != nil {
			return wire.Payload{}, fmt.Errorf("failed to parse %s: %w", filename, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &p); err != nil {
			return wire.Payload{}, fmt.Errorf("failed to parse %s: %w", filename, err)
		}
	case FormatHCL:
		return parseHCL(data, filename)
	default:
		return wire.Payload{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return p, nil
}

// Save writes p to path as JSON or YAML, chosen by extension.
func Save(path string, p wire.Payload) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	var data []byte
	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(p, "", "  ")
	case FormatYAML:
		data, err = yaml.Marshal(p)
	default:
		return fmt.Errorf("%w: cannot write %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode pipeline: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// hclDocument is the top-level structure of an HCL pipeline file.
type hclDocument struct {
	Nodes []*hclNode `hcl:"node,block"`
	Edges []*hclEdge `hcl:"edge,block"`
}

type hclNode struct {
	ID   string         `hcl:"id,label"`
	Type string         `hcl:"type"`
	X    float64        `hcl:"x,optional"`
	Y    float64        `hcl:"y,optional"`
	Data hcl.Expression `hcl:"data,optional"`
}

type hclEdge struct {
	ID           string `hcl:"id,label"`
	Source       string `hcl:"source"`
	SourceHandle string `hcl:"source_handle"`
	Target       string `hcl:"target"`
	TargetHandle string `hcl:"target_handle"`
}

func parseHCL(data []byte, filename string) (wire.Payload, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return wire.Payload{}, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var doc hclDocument
	if diags := gohcl.DecodeBody(f.Body, nil, &doc); diags.HasErrors() {
		return wire.Payload{}, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	p := wire.Payload{
		Nodes: make([]wire.Node, 0, len(doc.Nodes)),
		Edges: make([]wire.Edge, 0, len(doc.Edges)),
	}
	for _, n := range doc.Nodes {
		nodeData, err := expressionData(n.Data)
		if err != nil {
			return wire.Payload{}, fmt.Errorf("node %q in %s: %w", n.ID, filename, err)
		}
		p.Nodes = append(p.Nodes, wire.Node{
			ID:       n.ID,
			Type:     n.Type,
			Position: domain.Position{X: n.X, Y: n.Y},
			Data:     nodeData,
		})
	}
	for _, e := range doc.Edges {
		p.Edges = append(p.Edges, wire.Edge{
			ID:           e.ID,
			Source:       e.Source,
			SourceHandle: e.SourceHandle,
			Target:       e.Target,
			TargetHandle: e.TargetHandle,
		})
	}
	return p, nil
}

// expressionData evaluates a static data object into plain Go values.
func expressionData(expr hcl.Expression) (map[string]any, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, fmt.Errorf("data must be an object, got %s", val.Type().FriendlyName())
	}

	raw, err := ctyjson.SimpleJSONValue{Value: val}.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to convert data: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to convert data: %w", err)
	}
	return out, nil
}
