package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/brandgraph/internal/application/handlers"
)

func newEnrichCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enrich",
		Short: "Fetch full post and comment text for searched posts",
		Long:  "Fetches every searched post's full selftext and comment tree and saves the enriched corpus.",
		RunE:  runEnrich,
	}
}

func runEnrich(cmd *cobra.Command, args []string) error {
	return withDeps(func(d *Deps) error {
		source, err := d.Source()
		if err != nil {
			return err
		}

		fmt.Println("Fetching full post content...")

		result, err := handlers.NewEnrichHandler(source, d.Store, d.Log).Handle(cmd.Context())
		if err != nil {
			return fmt.Errorf("enriching posts: %w", err)
		}

		fmt.Printf("Enriched %d/%d posts (%d comments) to %s\n",
			result.Threads, result.PostsIn, result.Comments, result.Path)
		if result.Skipped > 0 {
			fmt.Printf("Skipped %d posts that failed to fetch\n", result.Skipped)
		}
		return nil
	})
}
