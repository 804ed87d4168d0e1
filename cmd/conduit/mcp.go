package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/conduit/pkg/adapters/mcp"
	"github.com/aretw0/conduit/pkg/submit"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes validate_pipeline and derive_ports as MCP tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")
		offline, _ := cmd.Flags().GetBool("offline")

		submitter := submit.New(newChecker(offline),
			submit.WithTimeout(settings.Timeout),
			submit.WithLogger(logger),
		)
		srv := mcp.NewServer(submitter, mcp.WithLogger(logger), mcp.WithEndpoint(settings.Endpoint))

		switch transport {
		case "stdio":
			logger.Info("starting conduit MCP server (stdio)")
			return srv.ServeStdio()
		case "sse":
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ServeSSE(ctx, port)
		}
		return fmt.Errorf("unknown transport %q", transport)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport: stdio or sse")
	mcpCmd.Flags().Int("port", 8080, "Port for the sse transport")
	mcpCmd.Flags().Bool("offline", false, "Run the acyclicity check in-process")
}
