/*
Package conduit models visual data-processing pipelines and checks that they are
well formed before they run.

A pipeline is a directed graph of typed nodes (Input, Output, Text, LLM,
Conditional, Transform, Merge, Filter, API). Each node exposes ports derived
from its type and configuration, and edges connect an outbound port to an
inbound port. A Text node grows one inbound port per {{variable}} in its
template; a Merge node exposes as many inputs as it is configured for. When a
configuration change removes a port, the edges bound to it are pruned.

# Validity

A pipeline is valid when it is a directed acyclic graph and every node is
reachable from the first node ignoring edge direction. Acyclicity is decided
by an AcyclicityChecker, normally the remote verdict service reached through
pkg/adapters/http; connectivity is computed locally on the same snapshot.
Cycles and disconnected nodes are reported as outcomes, not errors. Transport
failures (timeout, unreachable service, remote error) are errors.

# Usage

	checker := http.NewClient("http://localhost:8000")
	s := conduit.New(checker, conduit.WithTimeout(15*time.Second))

	p := s.Pipeline()
	in, _ := p.AddNode(domain.InputConfig{InputType: "Text"}, domain.Position{})
	out, _ := p.AddNode(domain.OutputConfig{OutputType: "Text"}, domain.Position{X: 300})
	_, _ = p.AddEdge(in, in+"-value", out, out+"-value")

	outcome, err := s.Submit(ctx)
	if err != nil {
		fmt.Println(submit.UserMessage(err, checker.Endpoint()))
		return
	}
	fmt.Println(outcome.Validity.Reason.Message())

The conduit command wraps the same flow: validate pipeline documents (JSON,
YAML or HCL), run the reference verdict service, export Mermaid diagrams and
serve the checks as MCP tools.
*/
package conduit
