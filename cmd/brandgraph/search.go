package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/brandgraph/internal/application/handlers"
)

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search",
		Short: "Search Reddit posts for the configured term",
		Long:  "Queries the configured subreddit for the search term and saves the matching post metadata.",
		RunE:  runSearch,
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	return withDeps(func(d *Deps) error {
		source, err := d.Source()
		if err != nil {
			return err
		}

		q := d.Query()
		fmt.Printf("Searching r/%s for %q...\n", q.Subreddit, q.Term)

		result, err := handlers.NewSearchHandler(source, d.Store, d.Log).Handle(cmd.Context(), q)
		if err != nil {
			return fmt.Errorf("searching posts: %w", err)
		}

		fmt.Printf("Saved %d posts to %s\n", result.Posts, result.Path)
		return nil
	})
}
