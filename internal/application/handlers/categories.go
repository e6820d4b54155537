package handlers

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ersonp/brandgraph/internal/domain/entities"
	"github.com/ersonp/brandgraph/internal/domain/ports"
	"github.com/ersonp/brandgraph/internal/domain/services"
	"github.com/ersonp/brandgraph/internal/infrastructure/artifacts"
	"github.com/ersonp/brandgraph/internal/infrastructure/ratelimit"
)

// categoryBatchSize bounds how many context windows go into one classifier
// call.
const categoryBatchSize = 20

// CategoriesHandler runs the category phase: extract context windows for each
// brand, tag them in batches, and build the category registry plus the
// brand-category relationship list.
type CategoriesHandler struct {
	classifier ports.Classifier
	pacer      ports.Pacer
	store      *artifacts.Store
	log        *zap.SugaredLogger
}

// NewCategoriesHandler creates a new categories handler.
func NewCategoriesHandler(classifier ports.Classifier, pacer ports.Pacer, store *artifacts.Store, log *zap.SugaredLogger) *CategoriesHandler {
	return &CategoriesHandler{classifier: classifier, pacer: pacer, store: store, log: log}
}

// CategoriesResult summarizes one category phase.
type CategoriesResult struct {
	BrandsIn       int
	Categories     int
	Relations      int
	SkippedBatches int
	Path           string
}

// Handle executes the phase. Failed batches are logged and skipped; missing
// brands or corpus artifacts abort the phase.
func (h *CategoriesHandler) Handle(ctx context.Context) (*CategoriesResult, error) {
	brands, err := h.store.LoadBrands()
	if err != nil {
		return nil, err
	}
	corpus, err := h.store.LoadCorpus()
	if err != nil {
		return nil, err
	}
	h.log.Infow("extracting categories", "brands", len(brands), "threads", len(corpus))

	result := &CategoriesResult{BrandsIn: len(brands)}
	global := services.NewAccumulator()
	perBrand := make(map[int]*services.Accumulator)
	brandOrder := make([]int, 0, len(brands))

	for _, brand := range brands {
		contexts := services.CollectBrandContexts(corpus, brand.Name, services.DefaultContextWindow)
		if len(contexts) == 0 {
			h.log.Warnw("no contexts found for brand, skipping", "brand", brand.Name)
			continue
		}
		h.log.Infow("collecting contexts", "brand", brand.Name, "contexts", len(contexts))

		tally := services.NewAccumulator()
		for start := 0; start < len(contexts); start += categoryBatchSize {
			end := start + categoryBatchSize
			if end > len(contexts) {
				end = len(contexts)
			}
			batch := contexts[start:end]

			if err := h.pacer.Wait(ctx, ratelimit.EstimateTokens(strings.Join(batch, "\n"))); err != nil {
				return nil, err
			}
			tags, err := h.classifier.ExtractCategories(ctx, brand.Name, batch)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				h.log.Warnw("category batch failed, skipping",
					"brand", brand.Name,
					"batch", start/categoryBatchSize+1,
					"error", err)
				result.SkippedBatches++
				continue
			}

			for _, tag := range tags {
				tag = strings.ToLower(strings.TrimSpace(tag))
				if tag == "" {
					continue
				}
				tally.Add(tag, 1)
				global.Add(tag, 1)
			}
		}

		if tally.Len() > 0 {
			perBrand[brand.ID] = tally
			brandOrder = append(brandOrder, brand.ID)
		}
	}

	categories := global.Entities(services.ByMentionsDesc, 0)
	categoryID := make(map[string]int, len(categories))
	for _, c := range categories {
		categoryID[c.Name] = c.ID
	}

	var relations []entities.CategoryMention
	for _, brandID := range brandOrder {
		for _, pair := range perBrand[brandID].Pairs() {
			relations = append(relations, entities.CategoryMention{
				BrandID:    brandID,
				CategoryID: categoryID[pair.Name],
				Mentions:   pair.Total,
			})
		}
	}

	if err := h.store.SaveCategories(categories); err != nil {
		return nil, fmt.Errorf("saving categories: %w", err)
	}
	if err := h.store.SaveCategoryMentions(relations); err != nil {
		return nil, fmt.Errorf("saving category mentions: %w", err)
	}

	result.Categories = len(categories)
	result.Relations = len(relations)
	result.Path = h.store.Path(artifacts.KindCategories)
	h.log.Infow("categories phase complete",
		"categories", result.Categories,
		"relations", result.Relations,
		"skipped_batches", result.SkippedBatches,
		"file", result.Path)
	return result, nil
}
