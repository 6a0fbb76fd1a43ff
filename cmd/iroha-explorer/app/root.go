// Package app assembles the iroha-explorer CLI: a cobra command tree
// wiring C8 (config) through C1–C6 for `serve`, a bootstrap-and-dump
// `scan` aid, and the fixture-backed `serve-sample` (SPEC_FULL.md §4.10).
package app

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

var configDir string

var RootCmd = &cobra.Command{
	Use:     "iroha-explorer",
	Short:   "Read-only observability backend for an Iroha network",
	Version: version,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config", "", "directory to look for config.yaml in")
	if err := viper.BindPFlag("configDir", RootCmd.PersistentFlags().Lookup("config")); err != nil {
		panic(fmt.Errorf("bind config flag: %w", err))
	}

	RootCmd.AddCommand(serveCmd)
	RootCmd.AddCommand(scanCmd)
	registerServeSample(RootCmd)
}

// Execute runs the root command (invoked from cmd/iroha-explorer/main.go).
func Execute() error {
	return RootCmd.Execute()
}
