package tui_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/conduit/internal/presentation/tui"
	"github.com/aretw0/conduit/pkg/domain"
	"github.com/aretw0/conduit/pkg/submit"
	"github.com/aretw0/conduit/pkg/validity"
	"github.com/aretw0/conduit/pkg/wire"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_Valid(t *testing.T) {
	r := tui.Report{
		Source: "p.json",
		Outcome: &submit.Outcome{
			Response: wire.Response{NumNodes: 2, NumEdge: 1, IsDAG: true},
			Validity: validity.Evaluate(true, true),
			Cached:   true,
		},
	}

	md := r.Markdown()
	assert.Contains(t, md, "# Pipeline check: p.json")
	assert.Contains(t, md, validity.ReasonValid.Message())
	assert.Contains(t, md, "| Nodes | 2 |")
	assert.Contains(t, md, "| Acyclic | yes |")
	assert.Contains(t, md, "from cache")
	assert.NotContains(t, md, "Unreached")
}

func TestReport_Disconnected(t *testing.T) {
	r := tui.Report{
		Source: "p.yaml",
		Outcome: &submit.Outcome{
			Validity:  validity.Evaluate(false, true),
			Unreached: []string{"llm-2"},
		},
	}

	md := r.Markdown()
	assert.Contains(t, md, validity.ReasonDisconnectedNodes.Message())
	assert.Contains(t, md, "| Connected | no |")
	assert.Contains(t, md, "- `llm-2`")
}

func TestReport_Failure(t *testing.T) {
	r := tui.Report{
		Source:    "p.json",
		Err:       domain.ErrNetworkUnreachable,
		Endpoint:  "http://localhost:8000",
		Retryable: true,
	}

	md := r.Markdown()
	assert.Contains(t, md, "Submission failed")
	assert.Contains(t, md, "http://localhost:8000")
	assert.Contains(t, md, "submit it again")
}

func TestReport_WriteToNonTerminalIsPlain(t *testing.T) {
	var buf bytes.Buffer
	r := tui.Report{Source: "p.json", Outcome: &submit.Outcome{Validity: validity.Evaluate(true, false)}}

	require.NoError(t, r.Write(&buf))
	assert.Equal(t, r.Markdown(), buf.String())
	assert.False(t, tui.IsTerminal(&buf))
}

func TestReport_Status(t *testing.T) {
	valid := tui.Report{Outcome: &submit.Outcome{Validity: validity.Evaluate(true, true)}}
	cycle := tui.Report{Outcome: &submit.Outcome{Validity: validity.Evaluate(true, false)}}
	failed := tui.Report{Err: domain.ErrTimeout}

	assert.Contains(t, valid.Status(termenv.Ascii), "✓ valid")
	assert.Contains(t, cycle.Status(termenv.Ascii), "✗ cycle_detected")
	assert.Contains(t, failed.Status(termenv.Ascii), "✗ submission failed")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|_| |_|")
}
