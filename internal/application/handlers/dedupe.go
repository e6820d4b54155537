package handlers

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ersonp/brandgraph/internal/domain/ports"
	"github.com/ersonp/brandgraph/internal/domain/services"
	"github.com/ersonp/brandgraph/internal/infrastructure/artifacts"
	"github.com/ersonp/brandgraph/internal/infrastructure/ratelimit"
)

// DedupeHandler runs the deduplication phase: consolidate the raw brand list
// into unique entities, emit the alias table, and remap the per-run ledger.
type DedupeHandler struct {
	classifier ports.Classifier
	pacer      ports.Pacer
	store      *artifacts.Store
	log        *zap.SugaredLogger
}

// NewDedupeHandler creates a new dedupe handler.
func NewDedupeHandler(classifier ports.Classifier, pacer ports.Pacer, store *artifacts.Store, log *zap.SugaredLogger) *DedupeHandler {
	return &DedupeHandler{classifier: classifier, pacer: pacer, store: store, log: log}
}

// DedupeOptions controls deduplication behavior.
type DedupeOptions struct {
	// ByID switches to exact-ID consolidation, for runs where no grouping
	// service is available.
	ByID bool
	// Order selects the final sort of the consolidated list.
	Order services.SortOrder
}

// DedupeResult summarizes one deduplication phase.
type DedupeResult struct {
	BrandsIn    int
	BrandsOut   int
	Groups      int
	Aliases     int
	RunMentions int
	Path        string
}

// Handle executes the phase. A malformed grouping reply degrades to
// pass-through consolidation with a warning; a missing raw-brands artifact
// aborts the phase.
func (h *DedupeHandler) Handle(ctx context.Context, opts DedupeOptions) (*DedupeResult, error) {
	raw, err := h.store.LoadRawBrands()
	if err != nil {
		return nil, err
	}
	h.log.Infow("deduplicating brands", "brands", len(raw), "by_id", opts.ByID)

	result := &DedupeResult{BrandsIn: len(raw)}

	if opts.ByID {
		consolidated := services.ConsolidateByID(raw)
		if err := h.store.SaveBrands(consolidated); err != nil {
			return nil, fmt.Errorf("saving brands: %w", err)
		}
		result.BrandsOut = len(consolidated)
		result.Path = h.store.Path(artifacts.KindBrands)
		h.log.Infow("dedupe phase complete", "brands_in", len(raw), "brands_out", len(consolidated), "file", result.Path)
		return result, nil
	}

	names := make([]string, 0, len(raw))
	for _, e := range raw {
		names = append(names, e.Name)
	}

	if err := h.pacer.Wait(ctx, ratelimit.EstimateTokens(fmt.Sprint(names))); err != nil {
		return nil, err
	}
	groups, err := h.classifier.GroupDuplicates(ctx, names)
	if err != nil {
		if !errors.Is(err, ports.ErrMalformedResponse) {
			return nil, fmt.Errorf("grouping duplicates: %w", err)
		}
		h.log.Warnw("grouping reply malformed, consolidating without groups", "error", err)
		groups = nil
	}

	deduped := services.Deduplicate(raw, groups, opts.Order, h.log)
	if err := h.store.SaveBrands(deduped.Entities); err != nil {
		return nil, fmt.Errorf("saving brands: %w", err)
	}
	if err := h.store.SaveAliases(deduped.Aliases); err != nil {
		return nil, fmt.Errorf("saving aliases: %w", err)
	}

	// Rewrite the per-run subject ledger through the new IDs.
	mentions, err := h.store.LoadRunMentions()
	if err != nil {
		if !errors.Is(err, artifacts.ErrArtifactMissing) {
			return nil, err
		}
		h.log.Warnw("no run mentions to remap", "error", err)
	} else {
		remapped := services.RemapMentions(mentions, deduped.IDRemap)
		if err := h.store.SaveRunMentions(remapped); err != nil {
			return nil, fmt.Errorf("saving run mentions: %w", err)
		}
		result.RunMentions = len(remapped)
	}

	result.BrandsOut = len(deduped.Entities)
	result.Groups = len(groups)
	result.Aliases = len(deduped.Aliases)
	result.Path = h.store.Path(artifacts.KindBrands)
	h.log.Infow("dedupe phase complete",
		"brands_in", result.BrandsIn,
		"brands_out", result.BrandsOut,
		"groups", result.Groups,
		"aliases", result.Aliases,
		"file", result.Path)
	return result, nil
}
