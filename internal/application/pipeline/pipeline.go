// Package pipeline wires phases together through explicit artifact
// dependencies instead of implicit file-path coupling: every stage declares
// what it reads and writes, and the runner refuses to start a stage whose
// inputs are not on disk.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ersonp/brandgraph/internal/infrastructure/artifacts"
)

// Stage is one runnable pipeline phase.
type Stage struct {
	Name     string
	Requires []artifacts.Kind
	Produces []artifacts.Kind
	Run      func(ctx context.Context) error
}

// Runner executes stages in order, checking artifact availability first.
type Runner struct {
	store *artifacts.Store
	log   *zap.SugaredLogger
}

// NewRunner creates a new runner over the given store.
func NewRunner(store *artifacts.Store, log *zap.SugaredLogger) *Runner {
	return &Runner{store: store, log: log}
}

// Run executes the stages sequentially. The first failure stops the run;
// artifacts written by earlier stages stay on disk, so a fixed run can resume
// from the failed stage.
func (r *Runner) Run(ctx context.Context, stages ...Stage) error {
	for _, stage := range stages {
		for _, kind := range stage.Requires {
			if !r.store.Has(kind) {
				return fmt.Errorf("stage %s: %w: %s", stage.Name, artifacts.ErrArtifactMissing, r.store.Path(kind))
			}
		}

		r.log.Infow("stage starting", "stage", stage.Name)
		if err := stage.Run(ctx); err != nil {
			return fmt.Errorf("stage %s: %w", stage.Name, err)
		}

		for _, kind := range stage.Produces {
			if !r.store.Has(kind) {
				r.log.Warnw("stage finished without producing artifact",
					"stage", stage.Name, "artifact", r.store.Path(kind))
			}
		}
		r.log.Infow("stage complete", "stage", stage.Name)
	}
	return nil
}
