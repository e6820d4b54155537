package services

import (
	"sort"
	"strings"

	"github.com/ersonp/brandgraph/internal/domain/entities"
)

// SortOrder selects how a finished entity list is ordered before IDs are
// assigned or before persistence.
type SortOrder int

const (
	// ByNameAsc orders by lowercased display name ascending.
	ByNameAsc SortOrder = iota
	// ByMentionsDesc orders by total mentions descending.
	ByMentionsDesc
)

// Accumulator merges (name, count) observations into running totals keyed by
// the raw display name. Accumulation is deliberately case- and
// punctuation-sensitive: fuzzy merging of near-duplicate names is the
// deduplicator's job, not the accumulator's.
type Accumulator struct {
	totals map[string]int
	order  []string
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{totals: make(map[string]int)}
}

// Add merges one observation into the running totals.
func (a *Accumulator) Add(name string, count int) {
	if _, seen := a.totals[name]; !seen {
		a.order = append(a.order, name)
	}
	a.totals[name] += count
}

// AddAll merges a batch of observations.
func (a *Accumulator) AddAll(obs []entities.BrandObservation) {
	for _, o := range obs {
		a.Add(o.Name, o.Mentions)
	}
}

// Len returns the number of distinct names observed so far.
func (a *Accumulator) Len() int {
	return len(a.order)
}

// NamedCount is one (name, total) pair from an accumulation.
type NamedCount struct {
	Name  string
	Total int
}

// Pairs returns the running totals in first-observation order, without
// filtering or ID assignment.
func (a *Accumulator) Pairs() []NamedCount {
	out := make([]NamedCount, 0, len(a.order))
	for _, name := range a.order {
		out = append(out, NamedCount{Name: name, Total: a.totals[name]})
	}
	return out
}

// Entities finalizes the accumulation: names with fewer than minMentions total
// mentions are dropped (minMentions <= 1 disables the filter), survivors are
// sorted by the given order, and sequential IDs starting at 1 are assigned in
// that order. Ties keep first-observation order, so output is deterministic
// for a deterministic observation sequence.
func (a *Accumulator) Entities(order SortOrder, minMentions int) []entities.Entity {
	names := make([]string, 0, len(a.order))
	for _, name := range a.order {
		if minMentions > 1 && a.totals[name] < minMentions {
			continue
		}
		names = append(names, name)
	}

	switch order {
	case ByMentionsDesc:
		sort.SliceStable(names, func(i, j int) bool {
			return a.totals[names[i]] > a.totals[names[j]]
		})
	default:
		sort.SliceStable(names, func(i, j int) bool {
			return strings.ToLower(names[i]) < strings.ToLower(names[j])
		})
	}

	out := make([]entities.Entity, 0, len(names))
	for i, name := range names {
		out = append(out, entities.Entity{ID: i + 1, Name: name, TotalMentions: a.totals[name]})
	}
	return out
}
