package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/conduit/pkg/submit"
	"github.com/aretw0/conduit/pkg/validity"
	"github.com/muesli/termenv"
)

// Report is everything shown after a validation run.
type Report struct {
	Source    string
	Outcome   *submit.Outcome
	Err       error
	Endpoint  string
	Retryable bool
}

// Markdown renders the report as markdown.
func (r Report) Markdown() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Pipeline check: %s\n\n", r.Source)

	if r.Err != nil {
		fmt.Fprintf(&sb, "**Submission failed.** %s\n", submit.UserMessage(r.Err, r.Endpoint))
		if r.Retryable {
			sb.WriteString("\nThe pipeline was not changed; you can submit it again.\n")
		}
		return sb.String()
	}

	out := r.Outcome
	fmt.Fprintf(&sb, "%s\n\n", out.Validity.Reason.Message())
	sb.WriteString("| Check | Result |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Nodes | %d |\n", out.Response.NumNodes)
	fmt.Fprintf(&sb, "| Edges | %d |\n", out.Response.NumEdge)
	fmt.Fprintf(&sb, "| Acyclic | %s |\n", yesNo(out.Validity.StructurallyAcyclic))
	fmt.Fprintf(&sb, "| Connected | %s |\n", yesNo(out.Validity.FullyConnected))
	if out.Cached {
		sb.WriteString("\n_Verdict served from cache._\n")
	}

	if len(out.Unreached) > 0 {
		sb.WriteString("\n## Unreached nodes\n\n")
		for _, id := range out.Unreached {
			fmt.Fprintf(&sb, "- `%s`\n", id)
		}
	}
	return sb.String()
}

// Write prints the report to w: a coloured status line followed by the
// glamour-rendered body on terminals, plain markdown elsewhere.
func (r Report) Write(w io.Writer) error {
	md := r.Markdown()
	if !IsTerminal(w) {
		_, err := io.WriteString(w, md)
		return err
	}

	fmt.Fprintln(w, r.Status(termenv.ColorProfile()))
	rendered, err := NewRenderer()(md)
	if err != nil {
		rendered = md
	}
	_, err = io.WriteString(w, rendered)
	return err
}

// Status is a one-line coloured verdict.
func (r Report) Status(p termenv.Profile) string {
	switch {
	case r.Err != nil:
		return p.String("✗ submission failed").Foreground(p.Color("#f59e0b")).Bold().String()
	case r.Outcome.Validity.PipelineValid:
		return p.String("✓ " + string(validity.ReasonValid)).Foreground(p.Color("#22c55e")).Bold().String()
	}
	return p.String("✗ " + string(r.Outcome.Validity.Reason)).Foreground(p.Color("#ef4444")).Bold().String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
