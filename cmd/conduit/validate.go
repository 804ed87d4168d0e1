package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/conduit"
	"github.com/aretw0/conduit/internal/config"
	"github.com/aretw0/conduit/internal/presentation/tui"
	"github.com/aretw0/conduit/pkg/adapters/file"
	httpAdapter "github.com/aretw0/conduit/pkg/adapters/http"
	"github.com/aretw0/conduit/pkg/adapters/local"
	"github.com/aretw0/conduit/pkg/adapters/memory"
	"github.com/aretw0/conduit/pkg/adapters/redis"
	"github.com/aretw0/conduit/pkg/ports"
	"github.com/aretw0/conduit/pkg/submit"
	"github.com/spf13/cobra"
)

// errInvalidPipeline makes the command exit non-zero after the report.
var errInvalidPipeline = errors.New("pipeline is not valid")

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check that a pipeline is a connected DAG",
	Long: `Loads a pipeline document, submits it to the verdict service for the
acyclicity check and reports whether every node is connected.

With --offline the acyclicity check runs in-process instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		offline, _ := cmd.Flags().GetBool("offline")
		if cmd.Flags().Changed("cache") {
			settings.Cache.Backend, _ = cmd.Flags().GetString("cache")
			if err := settings.Validate(); err != nil {
				return err
			}
		}

		payload, err := file.Load(args[0])
		if err != nil {
			return err
		}

		cache, closeCache, err := newCache(settings.Cache)
		if err != nil {
			return err
		}
		defer closeCache()

		opts := []conduit.Option{
			conduit.WithLogger(logger),
			conduit.WithTimeout(settings.Timeout),
		}
		if cache != nil {
			opts = append(opts, conduit.WithCache(cache))
		}

		session, err := conduit.Open(newChecker(offline), payload, opts...)
		if err != nil {
			return err
		}

		outcome, err := session.Submit(cmd.Context())
		report := tui.Report{
			Source:    args[0],
			Outcome:   outcome,
			Err:       err,
			Endpoint:  settings.Endpoint,
			Retryable: submit.Retryable(err),
		}
		if werr := report.Write(cmd.OutOrStdout()); werr != nil {
			return werr
		}
		if err != nil {
			return fmt.Errorf("submission failed: %w", err)
		}
		if !outcome.Validity.PipelineValid {
			return errInvalidPipeline
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("offline", false, "Run the acyclicity check in-process")
	validateCmd.Flags().String("cache", "", "Verdict cache backend: none, memory or redis")
}

func newChecker(offline bool) ports.AcyclicityChecker {
	if offline {
		return local.NewChecker()
	}
	return httpAdapter.NewClient(settings.Endpoint, httpAdapter.WithClientLogger(logger))
}

// newCache builds the configured verdict cache. The returned func releases it.
func newCache(cfg config.CacheConfig) (ports.VerdictCache, func(), error) {
	switch cfg.Backend {
	case config.CacheMemory:
		return memory.NewStore(), func() {}, nil
	case config.CacheRedis:
		store := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			redis.WithTTL(cfg.TTL),
			redis.WithPrefix(cfg.Prefix),
		)
		ctx, cancel := context.WithTimeout(context.Background(), settings.Timeout)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("verdict cache unavailable: %w", err)
		}
		return store, func() { store.Close() }, nil
	}
	return nil, func() {}, nil
}
