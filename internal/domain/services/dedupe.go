package services

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/ersonp/brandgraph/internal/domain/entities"
)

// DedupeResult is the output of one consolidation pass.
type DedupeResult struct {
	// Entities is the consolidated list, renumbered and sorted.
	Entities []entities.Entity
	// IDRemap maps every input entity's old ID to its new consolidated ID.
	IDRemap map[int]int
	// Aliases is the searchable alias table: one row per raw name, exactly one
	// canonical row per consolidated brand.
	Aliases []entities.Alias
}

// Deduplicate consolidates an entity list using a classifier-supplied
// partition of raw names into equivalence classes.
//
// Groups are processed in order; each emits one entity carrying the group's
// canonical name and the summed mentions of its members, with the next
// sequential ID starting at 1. Members absent from the input are skipped.
// Input entities claimed by no group pass through unchanged except for a fresh
// sequential ID. If a raw name appears in two groups the last group wins its
// mentions; that is a data-quality condition, logged and tolerated.
func Deduplicate(list []entities.Entity, groups []entities.Grouping, order SortOrder, log *zap.SugaredLogger) DedupeResult {
	byName := make(map[string]entities.Entity, len(list))
	for _, e := range list {
		byName[e.Name] = e
	}

	// Resolve the partition first so last-group-wins holds even when groups
	// overlap: each raw name belongs to the last group that claims it.
	owner := make(map[string]int)
	for gi, g := range groups {
		for _, member := range g.GroupMembers {
			if prev, claimed := owner[member]; claimed && prev != gi && log != nil {
				log.Warnw("raw name claimed by two groups, keeping last",
					"name", member,
					"first_canonical", groups[prev].CanonicalName,
					"last_canonical", g.CanonicalName)
			}
			owner[member] = gi
		}
	}

	result := DedupeResult{IDRemap: make(map[int]int, len(list))}
	nextID := 1
	aliasSeen := make(map[entities.Alias]bool)

	addAlias := func(raw string, id int, canonical bool) {
		key := entities.Alias{Alias: Normalize(raw), BrandID: id}
		if aliasSeen[key] {
			return
		}
		aliasSeen[key] = true
		result.Aliases = append(result.Aliases, entities.Alias{
			Alias:       key.Alias,
			BrandID:     id,
			IsCanonical: canonical,
		})
	}

	for gi, g := range groups {
		total := 0
		var members []entities.Entity
		for _, member := range g.GroupMembers {
			if owner[member] != gi {
				continue
			}
			e, ok := byName[member]
			if !ok {
				// Classifier invented a name not present in the data.
				continue
			}
			total += e.TotalMentions
			members = append(members, e)
		}
		if len(members) == 0 {
			continue
		}

		id := nextID
		nextID++
		result.Entities = append(result.Entities, entities.Entity{
			ID:            id,
			Name:          g.CanonicalName,
			TotalMentions: total,
		})

		addAlias(g.CanonicalName, id, true)
		for _, m := range members {
			result.IDRemap[m.ID] = id
			addAlias(m.Name, id, m.Name == g.CanonicalName)
		}
	}

	for _, e := range list {
		if _, grouped := owner[e.Name]; grouped {
			// Claimed by a group even if the group itself was empty of data;
			// already remapped above when the member was found.
			if _, done := result.IDRemap[e.ID]; done {
				continue
			}
		}
		id := nextID
		nextID++
		result.IDRemap[e.ID] = id
		result.Entities = append(result.Entities, entities.Entity{
			ID:            id,
			Name:          e.Name,
			TotalMentions: e.TotalMentions,
		})
		addAlias(e.Name, id, true)
	}

	sortEntities(result.Entities, order)
	return result
}

// ConsolidateByID is the lightweight consolidation used when no grouping
// service is available: entities already carrying duplicate IDs are merged by
// that ID, the member with the most mentions keeps the display name, and
// mentions are summed. The result is sorted by lowercased name ascending.
func ConsolidateByID(list []entities.Entity) []entities.Entity {
	sorted := make([]entities.Entity, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ID != sorted[j].ID {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].TotalMentions > sorted[j].TotalMentions
	})

	index := make(map[int]int)
	var out []entities.Entity
	for _, e := range sorted {
		if at, seen := index[e.ID]; seen {
			out[at].TotalMentions += e.TotalMentions
			continue
		}
		index[e.ID] = len(out)
		out = append(out, e)
	}

	sortEntities(out, ByNameAsc)
	return out
}

// sortEntities orders a finished list without touching the assigned IDs.
func sortEntities(list []entities.Entity, order SortOrder) {
	switch order {
	case ByMentionsDesc:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].TotalMentions > list[j].TotalMentions
		})
	default:
		sort.SliceStable(list, func(i, j int) bool {
			return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
		})
	}
}

// RemapMentions rewrites a per-run subject ledger through an ID remap produced
// by deduplication, re-merging rows that now share the same consolidated pair
// and dropping rows that became self-pairs.
func RemapMentions(mentions []entities.SearchMention, remap map[int]int) []entities.SearchMention {
	index := make(map[[2]int]int)
	var out []entities.SearchMention
	for _, m := range mentions {
		a, ok := remap[m.BrandAID]
		if !ok {
			a = m.BrandAID
		}
		b, ok := remap[m.BrandBID]
		if !ok {
			b = m.BrandBID
		}
		if a == b {
			continue
		}
		key := [2]int{a, b}
		if at, seen := index[key]; seen {
			out[at].Mentions += m.Mentions
			continue
		}
		index[key] = len(out)
		out = append(out, entities.SearchMention{BrandAID: a, BrandBID: b, Mentions: m.Mentions})
	}
	return out
}
