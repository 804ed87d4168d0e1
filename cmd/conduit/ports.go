package main

import (
	"fmt"

	"github.com/aretw0/conduit/pkg/domain"
	"github.com/spf13/cobra"
)

var portsCmd = &cobra.Command{
	Use:   "ports <file>",
	Short: "List the ports derived for every node",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadPipeline(args[0])
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		for _, n := range p.Nodes() {
			ports, err := p.Ports(n.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s (%s)\n", n.ID, n.Type)
			for _, port := range ports {
				arrow := "->"
				if port.Direction == domain.Inbound {
					arrow = "<-"
				}
				fmt.Fprintf(w, "  %s %-28s %s\n", arrow, port.ID, port.Label)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(portsCmd)
}
