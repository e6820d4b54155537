package services

import (
	"sort"
	"strings"

	"github.com/ersonp/brandgraph/internal/domain/entities"
)

// MergeMaster folds one run's deduplicated batch into the cumulative master
// registry. Matching is by lowercased name only: punctuation-level duplicates
// are the deduplicator's responsibility upstream. Known entities have their
// totals incremented in place; new ones are appended with max(id)+1, so IDs
// keep growing and are never reused even after re-sorting. The returned list
// is sorted by lowercased name for deterministic persistence.
//
// Merging the same batch twice doubles totals: that models two genuinely
// separate runs, so callers must not replay a batch by accident.
func MergeMaster(batch, master []entities.Entity) (updated []entities.Entity, added, changed int) {
	index := make(map[string]int, len(master))
	nextID := 0
	for i, e := range master {
		index[strings.ToLower(e.Name)] = i
		if e.ID > nextID {
			nextID = e.ID
		}
	}
	nextID++

	for _, b := range batch {
		key := strings.ToLower(b.Name)
		if at, ok := index[key]; ok {
			master[at].TotalMentions += b.TotalMentions
			changed++
			continue
		}
		master = append(master, entities.Entity{
			ID:            nextID,
			Name:          b.Name,
			TotalMentions: b.TotalMentions,
		})
		index[key] = len(master) - 1
		nextID++
		added++
	}

	sort.SliceStable(master, func(i, j int) bool {
		return strings.ToLower(master[i].Name) < strings.ToLower(master[j].Name)
	})
	return master, added, changed
}

// MasterIDByName returns a lowercased-name lookup into the master registry.
func MasterIDByName(master []entities.Entity) map[string]int {
	index := make(map[string]int, len(master))
	for _, e := range master {
		index[strings.ToLower(e.Name)] = e.ID
	}
	return index
}
