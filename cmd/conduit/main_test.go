package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDoc = `{
	"nodes": [
		{"id": "customInput-1", "type": "customInput", "position": {"x": 0, "y": 0}, "data": {"inputType": "Text"}},
		{"id": "llm-1", "type": "llm", "position": {"x": 200, "y": 0}},
		{"id": "customOutput-1", "type": "customOutput", "position": {"x": 400, "y": 0}}
	],
	"edges": [
		{"id": "edge-1", "source": "customInput-1", "sourceHandle": "customInput-1-value", "target": "llm-1", "targetHandle": "llm-1-prompt"},
		{"id": "edge-2", "source": "llm-1", "sourceHandle": "llm-1-response", "target": "customOutput-1", "targetHandle": "customOutput-1-value"}
	]
}`

const disconnectedDoc = `
node "llm-1" { type = "llm" }
node "llm-2" { type = "llm" }
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "absent.yaml")))
	err := rootCmd.Execute()
	return out.String(), err
}

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateOffline(t *testing.T) {
	out, err := run(t, "validate", "--offline", "--cache", "memory", writeDoc(t, "p.json", validDoc))
	require.NoError(t, err)
	assert.Contains(t, out, "Pipeline is valid")
	assert.Contains(t, out, "| Nodes | 3 |")

	out, err = run(t, "validate", "--offline", writeDoc(t, "p.hcl", disconnectedDoc))
	assert.ErrorIs(t, err, errInvalidPipeline)
	assert.Contains(t, out, "- `llm-2`")
}

func TestValidateRejectsBadFlags(t *testing.T) {
	_, err := run(t, "validate", "--offline", "--cache", "memcached", writeDoc(t, "p.json", validDoc))
	assert.Error(t, err)
}

func TestGraph(t *testing.T) {
	out, err := run(t, "graph", writeDoc(t, "p.json", validDoc))
	require.NoError(t, err)
	assert.Contains(t, out, `customInput_1 -- "Value → Prompt" --> llm_1`)
}

func TestPorts(t *testing.T) {
	out, err := run(t, "ports", writeDoc(t, "p.json", validDoc))
	require.NoError(t, err)
	assert.Contains(t, out, "llm-1 (llm)")
	assert.Contains(t, out, "<- llm-1-system")
	assert.Contains(t, out, "-> llm-1-response")
}

func TestConvert(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "p.yaml")
	_, err := run(t, "convert", writeDoc(t, "p.json", validDoc), dst)
	require.NoError(t, err)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(data), "sourceHandle: customInput-1-value")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "conduit version")
}

func TestTimeoutFlagOverridesConfig(t *testing.T) {
	_, err := run(t, "version", "--timeout", "-1s")
	assert.Error(t, err)
	_, err = run(t, "version", "--timeout", "2s")
	require.NoError(t, err)
	assert.Equal(t, "2s", settings.Timeout.String())
}
