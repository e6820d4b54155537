package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ersonp/brandgraph/internal/domain/entities"
)

func TestAccumulator_MergesByRawName(t *testing.T) {
	acc := NewAccumulator()
	acc.AddAll([]entities.BrandObservation{
		{Name: "A", Mentions: 3},
		{Name: "A", Mentions: 2},
		{Name: "B", Mentions: 1},
	})

	got := acc.Entities(ByNameAsc, 0)

	assert.Equal(t, []entities.Entity{
		{ID: 1, Name: "A", TotalMentions: 5},
		{ID: 2, Name: "B", TotalMentions: 1},
	}, got)
}

func TestAccumulator_RawNameIsCaseSensitive(t *testing.T) {
	// "Levis" and "levis" stay separate here; merging near-duplicates is the
	// deduplicator's job.
	acc := NewAccumulator()
	acc.Add("Levis", 2)
	acc.Add("levis", 1)

	assert.Equal(t, 2, acc.Len())
}

func TestAccumulator_SortByMentionsDesc(t *testing.T) {
	acc := NewAccumulator()
	acc.Add("Minor", 1)
	acc.Add("Major", 9)
	acc.Add("Middle", 4)

	got := acc.Entities(ByMentionsDesc, 0)

	assert.Equal(t, []entities.Entity{
		{ID: 1, Name: "Major", TotalMentions: 9},
		{ID: 2, Name: "Middle", TotalMentions: 4},
		{ID: 3, Name: "Minor", TotalMentions: 1},
	}, got)
}

func TestAccumulator_TiesKeepObservationOrder(t *testing.T) {
	acc := NewAccumulator()
	acc.Add("Zeta", 3)
	acc.Add("Alpha", 3)

	got := acc.Entities(ByMentionsDesc, 0)

	assert.Equal(t, "Zeta", got[0].Name)
	assert.Equal(t, "Alpha", got[1].Name)
}

func TestAccumulator_MinMentionsFilter(t *testing.T) {
	acc := NewAccumulator()
	acc.Add("Common", 5)
	acc.Add("Rare", 1)

	got := acc.Entities(ByNameAsc, 2)

	assert.Equal(t, []entities.Entity{
		{ID: 1, Name: "Common", TotalMentions: 5},
	}, got)
}

func TestAccumulator_FilterDisabledByDefaultThreshold(t *testing.T) {
	acc := NewAccumulator()
	acc.Add("Once", 1)

	assert.Len(t, acc.Entities(ByNameAsc, 0), 1)
	assert.Len(t, acc.Entities(ByNameAsc, 1), 1)
}
