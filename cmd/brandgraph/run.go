package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/brandgraph/internal/application/handlers"
	"github.com/ersonp/brandgraph/internal/application/pipeline"
	"github.com/ersonp/brandgraph/internal/domain/services"
	"github.com/ersonp/brandgraph/internal/infrastructure/artifacts"
)

func newRunCmd() *cobra.Command {
	var minMentions int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline end to end",
		Long:  "Executes search, enrich, extract, dedupe, categories, and master in order. Each phase persists its artifacts, so a failed run can resume from the failed phase by invoking it directly.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, minMentions)
		},
	}
	cmd.Flags().IntVar(&minMentions, "min-mentions", 1, "drop brands with fewer total mentions")
	return cmd
}

func runPipeline(cmd *cobra.Command, minMentions int) error {
	return withDeps(func(d *Deps) error {
		source, err := d.Source()
		if err != nil {
			return err
		}
		cl, err := d.Classifier()
		if err != nil {
			return err
		}
		pacer := d.Pacer()

		searchH := handlers.NewSearchHandler(source, d.Store, d.Log)
		enrichH := handlers.NewEnrichHandler(source, d.Store, d.Log)
		extractH := handlers.NewExtractHandler(cl, pacer, d.Store, d.Log)
		dedupeH := handlers.NewDedupeHandler(cl, pacer, d.Store, d.Log)
		categoriesH := handlers.NewCategoriesHandler(cl, pacer, d.Store, d.Log)
		masterH := handlers.NewMasterHandler(d.Store, d.Log)

		fmt.Printf("Running pipeline for %q in r/%s...\n", d.Config.Search.Term, d.Config.Search.Subreddit)

		stages := []pipeline.Stage{
			{
				Name:     "search",
				Produces: []artifacts.Kind{artifacts.KindPosts},
				Run: func(ctx context.Context) error {
					_, err := searchH.Handle(ctx, d.Query())
					return err
				},
			},
			{
				Name:     "enrich",
				Requires: []artifacts.Kind{artifacts.KindPosts},
				Produces: []artifacts.Kind{artifacts.KindCorpus},
				Run: func(ctx context.Context) error {
					_, err := enrichH.Handle(ctx)
					return err
				},
			},
			{
				Name:     "extract",
				Requires: []artifacts.Kind{artifacts.KindCorpus},
				Produces: []artifacts.Kind{artifacts.KindRawBrands, artifacts.KindRunMentions},
				Run: func(ctx context.Context) error {
					_, err := extractH.Handle(ctx, handlers.ExtractOptions{
						SearchTerm:  d.Config.Search.Term,
						MinMentions: minMentions,
					})
					return err
				},
			},
			{
				Name:     "dedupe",
				Requires: []artifacts.Kind{artifacts.KindRawBrands},
				Produces: []artifacts.Kind{artifacts.KindBrands, artifacts.KindAliases},
				Run: func(ctx context.Context) error {
					_, err := dedupeH.Handle(ctx, handlers.DedupeOptions{Order: services.ByMentionsDesc})
					return err
				},
			},
			{
				Name:     "categories",
				Requires: []artifacts.Kind{artifacts.KindBrands, artifacts.KindCorpus},
				Produces: []artifacts.Kind{artifacts.KindCategories, artifacts.KindCategoryMentions},
				Run: func(ctx context.Context) error {
					_, err := categoriesH.Handle(ctx)
					return err
				},
			},
			{
				Name:     "master",
				Requires: []artifacts.Kind{artifacts.KindBrands},
				Produces: []artifacts.Kind{artifacts.KindMasterBrands},
				Run: func(ctx context.Context) error {
					_, err := masterH.Handle(ctx, handlers.MasterOptions{PivotID: d.Config.Search.SubjectID})
					return err
				},
			},
		}

		if err := pipeline.NewRunner(d.Store, d.Log).Run(cmd.Context(), stages...); err != nil {
			return err
		}

		fmt.Printf("Pipeline complete; artifacts in %s\n", d.Config.RunDir())
		return nil
	})
}
