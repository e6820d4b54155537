package artifacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/brandgraph/internal/domain/entities"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	base := t.TempDir()
	return NewStore(base+"/levis-buyitforlife", base)
}

func TestStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	brands := []entities.Entity{
		{ID: 1, Name: "Levi's", TotalMentions: 12},
		{ID: 2, Name: "Uniqlo", TotalMentions: 4},
	}

	require.NoError(t, store.SaveBrands(brands))
	assert.True(t, store.Has(KindBrands))

	got, err := store.LoadBrands()
	require.NoError(t, err)
	assert.Equal(t, brands, got)
}

func TestStore_MissingArtifact(t *testing.T) {
	store := newTestStore(t)

	assert.False(t, store.Has(KindCorpus))
	_, err := store.LoadCorpus()
	assert.ErrorIs(t, err, ErrArtifactMissing)
}

func TestStore_MasterStateFreshStart(t *testing.T) {
	store := newTestStore(t)

	state, err := store.LoadMaster()
	require.NoError(t, err)
	assert.Empty(t, state.Brands)
	assert.Empty(t, state.Relations)
}

func TestStore_MasterStateRoundTrip(t *testing.T) {
	store := newTestStore(t)
	state := MasterState{
		Brands:    []entities.Entity{{ID: 1, Name: "Levis", TotalMentions: 3}},
		Relations: []entities.BrandRelation{{BrandID1: 1, BrandID2: 2, TotalMentions: 5}},
	}

	require.NoError(t, store.SaveMaster(state))

	got, err := store.LoadMaster()
	require.NoError(t, err)
	assert.Equal(t, state, got)
}

func TestStore_MasterArtifactsLiveOutsideRunDir(t *testing.T) {
	store := newTestStore(t)

	assert.Contains(t, store.Path(KindBrands), "levis-buyitforlife")
	assert.NotContains(t, store.Path(KindMasterBrands), "levis-buyitforlife")
}

func TestStore_SaveNilWritesEmptyArray(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveRunMentions(nil))

	got, err := store.LoadRunMentions()
	require.NoError(t, err)
	assert.Empty(t, got)
}
