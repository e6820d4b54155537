package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/brandgraph/internal/application/handlers"
)

func newMasterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "master",
		Short: "Merge this run's brands into the cumulative master registry",
		Long:  "Folds the deduplicated brand list into the cross-run master registry and, when a subject ID is configured, updates the cumulative brand-to-brand relationship ledger.",
		RunE:  runMaster,
	}
}

func runMaster(cmd *cobra.Command, args []string) error {
	return withDeps(func(d *Deps) error {
		fmt.Println("Merging into master registry...")

		h := handlers.NewMasterHandler(d.Store, d.Log)
		result, err := h.Handle(cmd.Context(), handlers.MasterOptions{PivotID: d.Config.Search.SubjectID})
		if err != nil {
			return fmt.Errorf("merging master registry: %w", err)
		}

		fmt.Printf("Master registry: %d brands (%d added, %d updated) in %s\n",
			result.MasterBrands, result.BrandsAdded, result.BrandsUpdated, result.BrandsPath)
		if d.Config.Search.SubjectID > 0 {
			fmt.Printf("Relationship ledger: %d pairs (%d added, %d updated) in %s\n",
				result.Relations, result.RelationsAdded, result.RelationsUpdated, result.RelationsPath)
		} else {
			fmt.Println("No subject ID configured (SEARCH_ID); relationship ledger not updated")
		}
		return nil
	})
}
