package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/brandgraph/internal/domain/entities"
)

func TestUpdateMasterLedger_PairSymmetry(t *testing.T) {
	// Updating (pivot 1, other 2) then (pivot 2, other 1) must land on the
	// same canonical row.
	ledger, added, updated := UpdateMasterLedger([]EntityMention{{ID: 2, Mentions: 5}}, 1, nil)
	assert.Equal(t, 1, added)
	assert.Equal(t, 0, updated)

	ledger, added, updated = UpdateMasterLedger([]EntityMention{{ID: 1, Mentions: 3}}, 2, ledger)
	assert.Equal(t, 0, added)
	assert.Equal(t, 1, updated)

	require.Len(t, ledger, 1)
	assert.Equal(t, entities.BrandRelation{BrandID1: 1, BrandID2: 2, TotalMentions: 8}, ledger[0])
}

func TestUpdateMasterLedger_SelfPairsNeverRecorded(t *testing.T) {
	for _, pivot := range []int{1, 7, 42} {
		ledger, added, updated := UpdateMasterLedger([]EntityMention{{ID: pivot, Mentions: 9}}, pivot, nil)
		assert.Empty(t, ledger)
		assert.Zero(t, added)
		assert.Zero(t, updated)
	}
}

func TestUpdateMasterLedger_SortedByPair(t *testing.T) {
	ledger, _, _ := UpdateMasterLedger([]EntityMention{
		{ID: 9, Mentions: 1},
		{ID: 2, Mentions: 1},
		{ID: 5, Mentions: 1},
	}, 3, nil)

	require.Len(t, ledger, 3)
	assert.Equal(t, [2]int{2, 3}, [2]int{ledger[0].BrandID1, ledger[0].BrandID2})
	assert.Equal(t, [2]int{3, 5}, [2]int{ledger[1].BrandID1, ledger[1].BrandID2})
	assert.Equal(t, [2]int{3, 9}, [2]int{ledger[2].BrandID1, ledger[2].BrandID2})
}

func TestBuildRunLedger(t *testing.T) {
	brands := []entities.Entity{
		{ID: 1, Name: "Levis", TotalMentions: 12},
		{ID: 2, Name: "Uniqlo", TotalMentions: 4},
		{ID: 3, Name: "Zara", TotalMentions: 2},
	}

	got := BuildRunLedger(brands, 1)

	// Direction is fixed subject -> other, no canonical ordering, no self-pair.
	assert.Equal(t, []entities.SearchMention{
		{BrandAID: 1, BrandBID: 2, Mentions: 4},
		{BrandAID: 1, BrandBID: 3, Mentions: 2},
	}, got)
}

func TestFindSubject(t *testing.T) {
	brands := []entities.Entity{
		{ID: 1, Name: "Levi's", TotalMentions: 12},
		{ID: 2, Name: "Uniqlo", TotalMentions: 4},
	}

	assert.Equal(t, 1, FindSubject(brands, "levis"))
	assert.Equal(t, 0, FindSubject(brands, "patagonia"))
	assert.Equal(t, 0, FindSubject(brands, "?!"))
}
