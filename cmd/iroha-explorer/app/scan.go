package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iroha-explorer/explorer/internal/chainclient"
	"github.com/iroha-explorer/explorer/internal/config"
	"github.com/iroha-explorer/explorer/internal/ingest"
	explorerlogger "github.com/iroha-explorer/explorer/internal/logger"
	"github.com/iroha-explorer/explorer/internal/store"
)

var scanCmd = &cobra.Command{
	Use:   "scan <path>",
	Short: "Bootstrap a fresh store from genesis and dump its contents",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

// runScan drives the ingest supervisor until bootstrap completes, then
// stops it and prints the resulting table counts as JSON (spec.md §6,
// debugging aid — it never starts the HTTP surface or telemetry).
func runScan(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if len(cfg.ToriiURLs) == 0 {
		return fmt.Errorf("no torii URLs configured")
	}

	logger, err := explorerlogger.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	repo, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open store at %s: %w", path, err)
	}
	defer repo.Close()

	client := chainclient.New(cfg.ToriiURLs[0], clientTimeout)
	supervisor := ingest.New(client, repo, logger)

	ctx, cancel := context.WithCancel(cmd.Context())
	runErr := make(chan error, 1)
	go func() { runErr <- supervisor.Run(ctx) }()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for !supervisor.Ready() {
		select {
		case <-ticker.C:
		case <-ctx.Done():
			cancel()
			return ctx.Err()
		}
	}
	cancel()
	<-runErr

	counts, err := dumpCounts(cmd.Context(), repo)
	if err != nil {
		return fmt.Errorf("failed to dump store: %w", err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(counts)
}

func dumpCounts(ctx context.Context, repo *store.Repository) (map[string]int, error) {
	tables := []string{"blocks", "domains", "accounts", "asset_definitions", "assets", "nfts", "roles", "peers", "transactions", "instructions"}
	counts := make(map[string]int, len(tables))
	for _, table := range tables {
		n, err := repo.CountTable(ctx, table)
		if err != nil {
			return nil, err
		}
		counts[table] = n
	}
	return counts, nil
}
