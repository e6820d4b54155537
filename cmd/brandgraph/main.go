// Package main provides the entry point for the brandgraph CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	// Credentials commonly live in a .env file next to the pipeline.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:     "brandgraph",
		Short:   "A multi-phase Reddit brand-mention collection and enrichment pipeline",
		Version: version,
	}

	rootCmd.AddCommand(
		newSearchCmd(),
		newEnrichCmd(),
		newExtractCmd(),
		newDedupeCmd(),
		newCategoriesCmd(),
		newMasterCmd(),
		newCheckCmd(),
		newRunCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}
