//go:build sample

package app

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iroha-explorer/explorer/internal/config"
	"github.com/iroha-explorer/explorer/internal/httpapi"
	explorerlogger "github.com/iroha-explorer/explorer/internal/logger"
	"github.com/iroha-explorer/explorer/internal/samplesource"
	"github.com/iroha-explorer/explorer/internal/store"
	"github.com/iroha-explorer/explorer/internal/telemetry"
)

var serveSampleCmd = &cobra.Command{
	Use:   "serve-sample",
	Short: "Serve the HTTP surface over a fixture dataset, skipping the chain",
	RunE:  runServeSample,
}

// alwaysReady satisfies httpapi.Readiness: fixture data is loaded before
// the server starts, so the endpoint is ready from the first request.
type alwaysReady struct{}

func (alwaysReady) Ready() bool { return true }

func runServeSample(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := explorerlogger.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	repo, err := store.Open(":memory:")
	if err != nil {
		return fmt.Errorf("failed to open in-memory store: %w", err)
	}
	defer repo.Close()

	if err := samplesource.Load(cmd.Context(), repo); err != nil {
		return fmt.Errorf("failed to load sample dataset: %w", err)
	}

	agg := telemetry.New(nil, clientTimeout, logger)
	server := httpapi.New(repo, agg, alwaysReady{}, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*clientTimeout)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("serving sample dataset", "address", cfg.HTTP.Address)
	if err := server.Start(cfg.HTTP.Address); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http surface: %w", err)
	}
	return nil
}

func registerServeSample(root *cobra.Command) {
	root.AddCommand(serveSampleCmd)
}
