package main

import (
	"fmt"
	"os"

	"github.com/aretw0/conduit/internal/presentation/graph"
	"github.com/aretw0/conduit/pkg/adapters/file"
	"github.com/aretw0/conduit/pkg/connectivity"
	"github.com/aretw0/conduit/pkg/domain"
	"github.com/aretw0/conduit/pkg/pipeline"
	"github.com/aretw0/conduit/pkg/wire"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph <file>",
	Short: "Export a pipeline as a Mermaid flowchart",
	Long:  `Prints a Mermaid flowchart of the pipeline. Edges are labelled with port names and nodes cut off from the first node are highlighted.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadPipeline(args[0])
		if err != nil {
			return err
		}

		snap := p.Snapshot()
		ports, err := portsByNode(p)
		if err != nil {
			return err
		}
		out := graph.GenerateMermaid(snap, ports, &graph.Overlay{Unreached: connectivity.Unreached(snap)})

		if path, _ := cmd.Flags().GetString("out"); path != "" {
			return os.WriteFile(path, []byte(out), 0o644)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("out", "o", "", "Write the diagram to a file instead of stdout")
}

func loadPipeline(path string) (*pipeline.Pipeline, error) {
	payload, err := file.Load(path)
	if err != nil {
		return nil, err
	}
	return wire.Decode(payload, pipeline.WithLogger(logger))
}

func portsByNode(p *pipeline.Pipeline) (map[string][]domain.Port, error) {
	out := make(map[string][]domain.Port, p.NodeCount())
	for _, n := range p.Nodes() {
		ports, err := p.Ports(n.ID)
		if err != nil {
			return nil, err
		}
		out[n.ID] = ports
	}
	return out, nil
}
