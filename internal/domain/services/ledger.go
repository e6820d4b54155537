package services

import (
	"sort"

	"github.com/ersonp/brandgraph/internal/domain/entities"
)

// EntityMention is one ledger update: an entity observed alongside the pivot.
type EntityMention struct {
	ID       int
	Mentions int
}

// UpdateMasterLedger folds one run's co-mention counts into the cumulative
// brand-to-brand ledger, anchored on the pivot brand. Pairs are stored in
// canonical order (smaller ID first) so the same unordered pair always lands
// on the same row no matter which side was the pivot. Self-pairs are never
// recorded. Returns the ledger sorted by (id_1, id_2) plus added/updated row
// counts.
func UpdateMasterLedger(batch []EntityMention, pivotID int, existing []entities.BrandRelation) (ledger []entities.BrandRelation, added, updated int) {
	ledger = existing
	index := make(map[[2]int]int, len(ledger))
	for i, rel := range ledger {
		index[[2]int{rel.BrandID1, rel.BrandID2}] = i
	}

	for _, m := range batch {
		if m.ID == pivotID {
			continue
		}
		key := [2]int{pivotID, m.ID}
		if key[0] > key[1] {
			key[0], key[1] = key[1], key[0]
		}
		if at, ok := index[key]; ok {
			ledger[at].TotalMentions += m.Mentions
			updated++
			continue
		}
		index[key] = len(ledger)
		ledger = append(ledger, entities.BrandRelation{
			BrandID1:      key[0],
			BrandID2:      key[1],
			TotalMentions: m.Mentions,
		})
		added++
	}

	sort.SliceStable(ledger, func(i, j int) bool {
		if ledger[i].BrandID1 != ledger[j].BrandID1 {
			return ledger[i].BrandID1 < ledger[j].BrandID1
		}
		return ledger[i].BrandID2 < ledger[j].BrandID2
	})
	return ledger, added, updated
}

// BuildRunLedger builds the single-run subject ledger: the search subject
// paired with every other brand from the run, direction fixed as
// subject -> other, self-pair skipped.
func BuildRunLedger(brands []entities.Entity, subjectID int) []entities.SearchMention {
	var out []entities.SearchMention
	for _, b := range brands {
		if b.ID == subjectID {
			continue
		}
		out = append(out, entities.SearchMention{
			BrandAID: subjectID,
			BrandBID: b.ID,
			Mentions: b.TotalMentions,
		})
	}
	return out
}

// FindSubject locates the search subject in a brand list by normalized name
// match. Returns 0 when the subject never appeared.
func FindSubject(brands []entities.Entity, term string) int {
	want := Normalize(term)
	if want == "" {
		return 0
	}
	for _, b := range brands {
		if Normalize(b.Name) == want {
			return b.ID
		}
	}
	return 0
}
