// Package ports defines interfaces for external service communication.
package ports

import (
	"context"
	"errors"

	"github.com/ersonp/brandgraph/internal/domain/entities"
)

// ErrMalformedResponse marks a classifier reply that was not valid JSON or
// lacked an expected key. Handlers treat it as a per-unit failure: log, skip
// the unit, continue with the next one.
var ErrMalformedResponse = errors.New("malformed classifier response")

// Classifier defines the interface for the text-classification service.
type Classifier interface {
	// ExtractBrands scans one unit of text for brand mentions.
	ExtractBrands(ctx context.Context, text string) ([]entities.BrandObservation, error)

	// ExtractCategories tags a batch of context windows for one brand.
	ExtractCategories(ctx context.Context, brand string, contexts []string) ([]string, error)

	// GroupDuplicates partitions raw brand names into equivalence classes.
	GroupDuplicates(ctx context.Context, names []string) ([]entities.Grouping, error)
}
