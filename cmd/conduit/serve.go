package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/conduit/internal/presentation/tui"
	httpAdapter "github.com/aretw0/conduit/pkg/adapters/http"
	"github.com/aretw0/conduit/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the reference verdict service",
	Long: `Serves POST /pipelines/parse, answering node and edge counts and whether
the submitted graph is a DAG. Prometheus metrics are exposed on the metrics path.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("listen") {
			settings.Listen, _ = cmd.Flags().GetString("listen")
		}

		srv, err := newServer()
		if err != nil {
			return err
		}

		serverErrors := make(chan error, 1)
		go func() {
			tui.PrintBanner(cmd.ErrOrStderr())
			logger.Info("verdict service listening", "address", srv.Addr, "metrics", settings.MetricsPath)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("start shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "error", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("verdict service stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", "", "Address to listen on (default :8000)")
}

// newServer assembles the verdict handler and the metrics endpoint.
func newServer() (*http.Server, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	handler, err := httpAdapter.NewHandler(
		httpAdapter.WithLogger(logger),
		httpAdapter.WithMetrics(observability.NewMetrics(reg)),
	)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle(settings.MetricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.Handle("/", handler)

	return &http.Server{
		Addr:              settings.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}
