package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/iroha-explorer/explorer/internal/chainclient"
	"github.com/iroha-explorer/explorer/internal/config"
	"github.com/iroha-explorer/explorer/internal/httpapi"
	"github.com/iroha-explorer/explorer/internal/ingest"
	explorerlogger "github.com/iroha-explorer/explorer/internal/logger"
	"github.com/iroha-explorer/explorer/internal/store"
	"github.com/iroha-explorer/explorer/internal/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the ingest pipeline, telemetry aggregator, and HTTP surface",
	RunE:  runServe,
}

const clientTimeout = 5 * time.Second

func init() {
	flags := serveCmd.Flags()
	flags.StringSlice("torii-urls", nil, "comma-separated chain peer URLs (IROHA_EXPLORER_TORIIURLS)")
	flags.String("account", "", "the account this process authenticates as (IROHA_EXPLORER_ACCOUNT)")
	flags.String("account-private-key", "", "private key for --account (IROHA_EXPLORER_ACCOUNTPRIVATEKEY)")
	flags.String("port", "", "HTTP listen address, e.g. :8081 (IROHA_EXPLORER_HTTP_ADDRESS)")
	flags.Bool("no-telemetry", false, "disable the telemetry aggregator")

	bind := map[string]string{
		"torii-urls":          "toriiUrls",
		"account":             "account",
		"account-private-key": "accountPrivateKey",
		"port":                "http.address",
	}
	for flagName, viperKey := range bind {
		if err := viper.BindPFlag(viperKey, flags.Lookup(flagName)); err != nil {
			panic(fmt.Errorf("bind %s flag: %w", flagName, err))
		}
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := explorerlogger.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	if len(cfg.ToriiURLs) == 0 {
		return fmt.Errorf("no torii URLs configured")
	}

	repo, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer repo.Close()

	client := chainclient.New(cfg.ToriiURLs[0], clientTimeout)
	supervisor := ingest.New(client, repo, logger)

	noTelemetry, err := cmd.Flags().GetBool("no-telemetry")
	if err != nil {
		return fmt.Errorf("read no-telemetry flag: %w", err)
	}

	var agg *telemetry.Aggregator
	if cfg.Telemetry.Enabled && !noTelemetry {
		agg = telemetry.New(cfg.ToriiURLs, clientTimeout, logger)
	} else {
		agg = telemetry.New(nil, clientTimeout, logger)
	}

	server := httpapi.New(repo, agg, supervisor, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting ingest supervisor")
		if err := supervisor.Run(gctx); err != nil && gctx.Err() == nil {
			return fmt.Errorf("ingest supervisor: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("starting telemetry aggregator", slog.Int("peers", len(cfg.ToriiURLs)))
		if err := agg.Run(gctx); err != nil && gctx.Err() == nil {
			return fmt.Errorf("telemetry aggregator: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("starting HTTP surface", slog.String("address", cfg.HTTP.Address))
		if err := server.Start(cfg.HTTP.Address); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http surface: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	return nil
}
