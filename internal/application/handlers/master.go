package handlers

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ersonp/brandgraph/internal/domain/services"
	"github.com/ersonp/brandgraph/internal/infrastructure/artifacts"
)

// MasterHandler runs the master phase: fold the run's deduplicated brands
// into the cumulative registry and update the brand-to-brand ledger.
type MasterHandler struct {
	store *artifacts.Store
	log   *zap.SugaredLogger
}

// NewMasterHandler creates a new master handler.
func NewMasterHandler(store *artifacts.Store, log *zap.SugaredLogger) *MasterHandler {
	return &MasterHandler{store: store, log: log}
}

// MasterOptions controls the master merge.
type MasterOptions struct {
	// PivotID is the master-registry ID of the search subject; relationship
	// rows for this run all anchor on it. Zero skips the ledger update.
	PivotID int
}

// MasterResult summarizes one master phase.
type MasterResult struct {
	BrandsIn         int
	MasterBrands     int
	BrandsAdded      int
	BrandsUpdated    int
	Relations        int
	RelationsAdded   int
	RelationsUpdated int
	BrandsPath       string
	RelationsPath    string
}

// Handle executes the phase. The registry is loaded once, merged in memory,
// and written once; no partial state reaches disk.
func (h *MasterHandler) Handle(ctx context.Context, opts MasterOptions) (*MasterResult, error) {
	batch, err := h.store.LoadBrands()
	if err != nil {
		return nil, err
	}
	state, err := h.store.LoadMaster()
	if err != nil {
		return nil, err
	}
	h.log.Infow("merging into master",
		"batch", len(batch),
		"master_brands", len(state.Brands),
		"pivot_id", opts.PivotID)

	result := &MasterResult{BrandsIn: len(batch)}

	state.Brands, result.BrandsAdded, result.BrandsUpdated = services.MergeMaster(batch, state.Brands)

	if opts.PivotID > 0 {
		index := services.MasterIDByName(state.Brands)
		mentions := make([]services.EntityMention, 0, len(batch))
		for _, b := range batch {
			id, ok := index[strings.ToLower(b.Name)]
			if !ok {
				// Cannot happen after the merge above; guard anyway.
				h.log.Warnw("batch brand missing from master after merge", "brand", b.Name)
				continue
			}
			mentions = append(mentions, services.EntityMention{ID: id, Mentions: b.TotalMentions})
		}
		state.Relations, result.RelationsAdded, result.RelationsUpdated =
			services.UpdateMasterLedger(mentions, opts.PivotID, state.Relations)
	} else {
		h.log.Warnw("no pivot ID configured, skipping brand-to-brand ledger update")
	}

	if err := h.store.SaveMaster(state); err != nil {
		return nil, fmt.Errorf("saving master state: %w", err)
	}

	result.MasterBrands = len(state.Brands)
	result.Relations = len(state.Relations)
	result.BrandsPath = h.store.Path(artifacts.KindMasterBrands)
	result.RelationsPath = h.store.Path(artifacts.KindMasterRelations)
	h.log.Infow("master phase complete",
		"master_brands", result.MasterBrands,
		"brands_added", result.BrandsAdded,
		"brands_updated", result.BrandsUpdated,
		"relations", result.Relations,
		"relations_added", result.RelationsAdded,
		"relations_updated", result.RelationsUpdated)
	return result, nil
}
