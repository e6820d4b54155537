package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/brandgraph/internal/application/handlers"
)

func newExtractCmd() *cobra.Command {
	var minMentions int

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract brand mentions from the enriched corpus",
		Long:  "Sends each thread through the LLM classifier, accumulates brand mention counts across threads, and saves the raw brand list plus the per-run relationship rows.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, minMentions)
		},
	}
	cmd.Flags().IntVar(&minMentions, "min-mentions", 1, "drop brands with fewer total mentions")
	return cmd
}

func runExtract(cmd *cobra.Command, minMentions int) error {
	return withDeps(func(d *Deps) error {
		cl, err := d.Classifier()
		if err != nil {
			return err
		}

		fmt.Println("Extracting brands from corpus...")

		h := handlers.NewExtractHandler(cl, d.Pacer(), d.Store, d.Log)
		result, err := h.Handle(cmd.Context(), handlers.ExtractOptions{
			SearchTerm:  d.Config.Search.Term,
			MinMentions: minMentions,
		})
		if err != nil {
			return fmt.Errorf("extracting brands: %w", err)
		}

		fmt.Printf("Extracted %d brands from %d threads to %s\n",
			result.Brands, result.ThreadsIn, result.BrandsPath)
		fmt.Printf("Saved %d relationship rows to %s\n", result.RunMentions, result.MentionsPath)
		if result.Skipped > 0 {
			fmt.Printf("Skipped %d threads the classifier could not process\n", result.Skipped)
		}
		if result.SubjectID == 0 {
			fmt.Printf("Warning: search subject %q not found among extracted brands\n", d.Config.Search.Term)
		}
		return nil
	})
}
