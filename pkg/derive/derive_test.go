package derive_test

import (
	"testing"

	"github.com/aretw0/conduit/pkg/derive"
	"github.com/aretw0/conduit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(ports []domain.Port, dir domain.Direction) []string {
	var out []string
	for _, p := range ports {
		if p.Direction == dir {
			out = append(out, p.ID)
		}
	}
	return out
}

func TestPorts_PerType(t *testing.T) {
	tests := []struct {
		name string
		cfg  domain.Config
		in   []string
		out  []string
	}{
		{"input", domain.InputConfig{InputType: "Text"}, nil, []string{"n-value"}},
		{"output", domain.OutputConfig{OutputType: "Text"}, []string{"n-value"}, nil},
		{"llm", domain.LLMConfig{}, []string{"n-system", "n-prompt"}, []string{"n-response"}},
		{"conditional", domain.ConditionalConfig{Operator: "=="}, []string{"n-input"}, []string{"n-true", "n-false"}},
		{"transform", domain.TransformConfig{TransformType: "trim"}, []string{"n-input"}, []string{"n-output"}},
		{"filter", domain.FilterConfig{FilterType: "regex"}, []string{"n-input"}, []string{"n-output"}},
		{"api", domain.APICallConfig{Method: "POST"}, []string{"n-input"}, []string{"n-response", "n-error"}},
		{"merge default", domain.MergeConfig{InputCount: 2}, []string{"n-input-1", "n-input-2"}, []string{"n-output"}},
		{"text", domain.TextConfig{Text: "Hello {{name}}"}, []string{"n-name"}, []string{"n-output"}},
		{"text without variables", domain.TextConfig{Text: "static"}, nil, []string{"n-output"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ports, err := derive.Ports("n", tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.in, ids(ports, domain.Inbound))
			assert.Equal(t, tt.out, ids(ports, domain.Outbound))
			for _, p := range ports {
				assert.Equal(t, "n", p.NodeID)
				assert.NotEmpty(t, p.Label)
			}
		})
	}
}

func TestPorts_InboundBeforeOutbound(t *testing.T) {
	ports, err := derive.Ports("llm-1", domain.LLMConfig{})
	require.NoError(t, err)
	require.Len(t, ports, 3)
	assert.Equal(t, []string{"System", "Prompt", "Response"}, []string{ports[0].Label, ports[1].Label, ports[2].Label})
	assert.Equal(t, domain.Outbound, ports[2].Direction)
}

func TestPorts_TextDeduplicatesInFirstOccurrenceOrder(t *testing.T) {
	ports, err := derive.Ports("text-1", domain.TextConfig{Text: "{{a}} and {{b}} and {{a}}"})
	require.NoError(t, err)

	assert.Equal(t, []string{"text-1-a", "text-1-b"}, ids(ports, domain.Inbound))
	assert.Equal(t, []string{"text-1-output"}, ids(ports, domain.Outbound))
	assert.Equal(t, "a", ports[0].Label)
}

func TestPorts_MergeThreeInputs(t *testing.T) {
	ports, err := derive.Ports("merge-1", domain.MergeConfig{InputCount: 3})
	require.NoError(t, err)

	assert.Equal(t, []string{"merge-1-input-1", "merge-1-input-2", "merge-1-input-3"}, ids(ports, domain.Inbound))
	assert.Equal(t, []string{"merge-1-output"}, ids(ports, domain.Outbound))
	assert.Equal(t, "Input 3", ports[2].Label)
	assert.Equal(t, "Merged Output", ports[3].Label)
}

func TestPorts_MergeRejectsNonPositiveCount(t *testing.T) {
	for _, n := range []int{0, -1} {
		ports, err := derive.Ports("merge-1", domain.MergeConfig{InputCount: n})
		assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
		assert.Nil(t, ports)
	}
}

func TestPorts_NilConfig(t *testing.T) {
	_, err := derive.Ports("x", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}

func TestPorts_Deterministic(t *testing.T) {
	for _, typ := range domain.NodeTypes {
		cfg, err := domain.DefaultConfig(typ)
		require.NoError(t, err)

		first, err := derive.Ports("node-7", cfg)
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			again, err := derive.Ports("node-7", cfg)
			require.NoError(t, err)
			assert.Equal(t, first, again, "type %s", typ)
		}
	}
}

func TestVariables(t *testing.T) {
	tests := []struct {
		template string
		want     []string
	}{
		{"", []string{}},
		{"{{input}}", []string{"input"}},
		{"{{ spaced }}", []string{}},
		{"{{1bad}} {{_ok}} {{$dollar}} {{x9}}", []string{"_ok", "$dollar", "x9"}},
		{"{{a}}{{b}}{{a}}{{c}}{{b}}", []string{"a", "b", "c"}},
		{"{{{nested}}}", []string{"nested"}},
		{"{{a-b}}", []string{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, derive.Variables(tt.template), "template %q", tt.template)
	}
}
