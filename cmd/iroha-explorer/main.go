package main

import (
	"fmt"
	"log"
	"os"

	"github.com/iroha-explorer/explorer/cmd/iroha-explorer/app"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("failed to run iroha-explorer: %v", err)
	}
	os.Exit(0)
}

func run() error {
	if err := app.Execute(); err != nil {
		return fmt.Errorf("failed to execute command: %w", err)
	}
	return nil
}
