package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/brandgraph/internal/application/handlers"
)

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Tag deduplicated brands with product categories",
		Long:  "Collects the mention contexts of each brand from the corpus, classifies them into product categories via the LLM, and saves the category list plus brand-to-category rows.",
		RunE:  runCategories,
	}
}

func runCategories(cmd *cobra.Command, args []string) error {
	return withDeps(func(d *Deps) error {
		cl, err := d.Classifier()
		if err != nil {
			return err
		}

		fmt.Println("Tagging brand categories...")

		h := handlers.NewCategoriesHandler(cl, d.Pacer(), d.Store, d.Log)
		result, err := h.Handle(cmd.Context())
		if err != nil {
			return fmt.Errorf("tagging categories: %w", err)
		}

		fmt.Printf("Tagged %d brands with %d categories (%d relation rows) to %s\n",
			result.BrandsIn, result.Categories, result.Relations, result.Path)
		if result.SkippedBatches > 0 {
			fmt.Printf("Skipped %d batches the classifier could not process\n", result.SkippedBatches)
		}
		return nil
	})
}
