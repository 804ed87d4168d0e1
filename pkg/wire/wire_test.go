package wire_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/conduit/pkg/domain"
	"github.com/aretw0/conduit/pkg/pipeline"
	"github.com/aretw0/conduit/pkg/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inputOutput(t *testing.T) *pipeline.Pipeline {
	t.Helper()
	p := pipeline.New()
	in, err := p.AddNode(domain.InputConfig{InputType: "Text"}, domain.Position{X: 10, Y: 20})
	require.NoError(t, err)
	out, err := p.AddNode(domain.OutputConfig{OutputType: "File"}, domain.Position{X: 300, Y: 20})
	require.NoError(t, err)
	_, err = p.AddEdge(in, in+"-value", out, out+"-value")
	require.NoError(t, err)
	return p
}

func TestSerialize_InputToOutput(t *testing.T) {
	payload := wire.Serialize(inputOutput(t).Snapshot())

	require.Len(t, payload.Nodes, 2)
	require.Len(t, payload.Edges, 1)

	assert.Equal(t, "customInput-1", payload.Nodes[0].ID)
	assert.Equal(t, "customInput", payload.Nodes[0].Type)
	assert.Equal(t, domain.Position{X: 10, Y: 20}, payload.Nodes[0].Position)
	assert.Equal(t, "input_1", payload.Nodes[0].Data["inputName"])
	assert.Equal(t, "File", payload.Nodes[1].Data["outputType"])

	e := payload.Edges[0]
	assert.Equal(t, "customInput-1", e.Source)
	assert.Equal(t, "customOutput-1", e.Target)
	assert.Equal(t, "customInput-1-value", e.SourceHandle)
	assert.Equal(t, "customOutput-1-value", e.TargetHandle)
}

func TestSerialize_WireFieldNames(t *testing.T) {
	raw, err := json.Marshal(wire.Serialize(inputOutput(t).Snapshot()))
	require.NoError(t, err)

	var doc map[string][]map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	node := doc["nodes"][0]
	for _, key := range []string{"id", "type", "position", "data"} {
		assert.Contains(t, node, key)
	}
	assert.Equal(t, map[string]any{"x": 10.0, "y": 20.0}, node["position"])
	assert.NotContains(t, node, "ports")

	edge := doc["edges"][0]
	for _, key := range []string{"id", "source", "target", "sourceHandle", "targetHandle"} {
		assert.Contains(t, edge, key)
	}
}

func TestSerialize_AlwaysSendsData(t *testing.T) {
	p := pipeline.New()
	_, err := p.AddNode(domain.LLMConfig{}, domain.Position{})
	require.NoError(t, err)

	raw, err := json.Marshal(wire.Serialize(p.Snapshot()))
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodes":[{"id":"llm-1","type":"llm","position":{"x":0,"y":0},"data":{}}],"edges":[]}`, string(raw))
}

func TestSerialize_EmptyGraph(t *testing.T) {
	raw, err := json.Marshal(wire.Serialize(domain.Graph{}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodes":[],"edges":[]}`, string(raw))
}

func TestResponse_FieldNames(t *testing.T) {
	var resp wire.Response
	require.NoError(t, json.Unmarshal([]byte(`{"num_nodes":3,"num_edge":2,"is_dag":true}`), &resp))
	assert.Equal(t, wire.Response{NumNodes: 3, NumEdge: 2, IsDAG: true}, resp)
}

func TestDecode_RebuildsPipeline(t *testing.T) {
	payload := wire.Payload{
		Nodes: []wire.Node{
			{ID: "text-1", Type: "text", Data: map[string]any{"text": "{{a}} {{b}}", "nodeType": "text"}},
			{ID: "merge-1", Type: "merge", Data: map[string]any{"inputCount": 3.0}},
			{ID: "llm-1", Type: "llm"},
		},
		Edges: []wire.Edge{
			{ID: "e1", Source: "text-1", SourceHandle: "text-1-output", Target: "merge-1", TargetHandle: "merge-1-input-3"},
			{ID: "e2", Source: "merge-1", SourceHandle: "merge-1-output", Target: "llm-1", TargetHandle: "llm-1-prompt"},
		},
	}

	p, err := wire.Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, 3, p.NodeCount())
	assert.Equal(t, 2, p.EdgeCount())

	node, _ := p.Node("merge-1")
	assert.Equal(t, domain.MergeConfig{InputCount: 3}, node.Config)

	ports, err := p.Ports("text-1")
	require.NoError(t, err)
	assert.Len(t, ports, 3)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		payload wire.Payload
		want    error
	}{
		{
			name:    "unknown type",
			payload: wire.Payload{Nodes: []wire.Node{{ID: "x", Type: "teleport"}}},
			want:    domain.ErrUnknownNodeType,
		},
		{
			name:    "invalid merge count",
			payload: wire.Payload{Nodes: []wire.Node{{ID: "m", Type: "merge", Data: map[string]any{"inputCount": -2}}}},
			want:    domain.ErrInvalidConfiguration,
		},
		{
			name:    "duplicate node",
			payload: wire.Payload{Nodes: []wire.Node{{ID: "a", Type: "llm"}, {ID: "a", Type: "llm"}}},
			want:    domain.ErrDuplicateNode,
		},
		{
			name: "edge to missing port",
			payload: wire.Payload{
				Nodes: []wire.Node{{ID: "t", Type: "text", Data: map[string]any{"text": "{{a}}"}}, {ID: "l", Type: "llm"}},
				Edges: []wire.Edge{{ID: "e", Source: "l", SourceHandle: "l-response", Target: "t", TargetHandle: "t-b"}},
			},
			want: domain.ErrInvalidPortReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := wire.Decode(tt.payload)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecode_SerializeAgreesOnStructure(t *testing.T) {
	original := wire.Serialize(inputOutput(t).Snapshot())

	p, err := wire.Decode(original)
	require.NoError(t, err)

	assert.Equal(t, original, wire.Serialize(p.Snapshot()))
}

func TestFingerprint(t *testing.T) {
	a := wire.Payload{
		Nodes: []wire.Node{{ID: "a"}, {ID: "b"}},
		Edges: []wire.Edge{{ID: "e1", Source: "a", Target: "b"}},
	}
	reordered := wire.Payload{
		Nodes: []wire.Node{{ID: "b", Position: domain.Position{X: 99}}, {ID: "a", Data: map[string]any{"text": "x"}}},
		Edges: []wire.Edge{{ID: "e1", Source: "a", Target: "b", SourceHandle: "whatever"}},
	}
	reversed := wire.Payload{
		Nodes: a.Nodes,
		Edges: []wire.Edge{{ID: "e1", Source: "b", Target: "a"}},
	}

	assert.Equal(t, wire.Fingerprint(a), wire.Fingerprint(reordered))
	assert.NotEqual(t, wire.Fingerprint(a), wire.Fingerprint(reversed))
	assert.Len(t, wire.Fingerprint(wire.Payload{}), 64)
}
