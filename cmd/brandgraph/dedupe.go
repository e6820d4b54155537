package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/brandgraph/internal/application/handlers"
	"github.com/ersonp/brandgraph/internal/domain/services"
)

func newDedupeCmd() *cobra.Command {
	var (
		byID bool
		sort string
	)

	cmd := &cobra.Command{
		Use:   "dedupe",
		Short: "Consolidate duplicate brand entries",
		Long:  "Groups spelling variants of the same brand via the LLM classifier, merges their mention counts, and saves the deduplicated list plus the alias table. With --by-id, merges exact duplicate IDs instead without calling the classifier.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDedupe(cmd, byID, sort)
		},
	}
	cmd.Flags().BoolVar(&byID, "by-id", false, "merge rows sharing an ID instead of LLM grouping")
	cmd.Flags().StringVar(&sort, "sort", "mentions", "final sort order: mentions or name")
	return cmd
}

func runDedupe(cmd *cobra.Command, byID bool, sort string) error {
	var order services.SortOrder
	switch sort {
	case "mentions":
		order = services.ByMentionsDesc
	case "name":
		order = services.ByNameAsc
	default:
		return fmt.Errorf("unknown sort order %q (want mentions or name)", sort)
	}

	return withDeps(func(d *Deps) error {
		h := handlers.NewDedupeHandler(nil, nil, d.Store, d.Log)
		if !byID {
			cl, err := d.Classifier()
			if err != nil {
				return err
			}
			h = handlers.NewDedupeHandler(cl, d.Pacer(), d.Store, d.Log)
		}

		fmt.Println("Deduplicating brands...")

		result, err := h.Handle(cmd.Context(), handlers.DedupeOptions{ByID: byID, Order: order})
		if err != nil {
			return fmt.Errorf("deduplicating brands: %w", err)
		}

		fmt.Printf("Consolidated %d brands into %d (%d groups, %d aliases) to %s\n",
			result.BrandsIn, result.BrandsOut, result.Groups, result.Aliases, result.Path)
		return nil
	})
}
