package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ersonp/brandgraph/internal/domain/entities"
	"github.com/ersonp/brandgraph/internal/domain/mocks"
	"github.com/ersonp/brandgraph/internal/infrastructure/artifacts"
)

func TestEnrichHandler_FetchesAllThreads(t *testing.T) {
	store := testStore(t)
	require.NoError(t, store.SavePosts([]entities.Post{
		{ID: "p1", Title: "first"},
		{ID: "p2", Title: "second"},
	}))

	source := &mocks.ContentSource{
		Threads: map[string]*entities.Thread{
			"p1": {PostID: "p1", Comments: []entities.Comment{{Body: "a"}, {Body: "b"}}},
			"p2": {PostID: "p2", Comments: []entities.Comment{{Body: "c"}}},
		},
	}
	h := NewEnrichHandler(source, store, zap.NewNop().Sugar())

	result, err := h.Handle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Threads)
	assert.Equal(t, 3, result.Comments)
	assert.Zero(t, result.Skipped)
	assert.Equal(t, []string{"p1", "p2"}, source.FetchCalls)
}

func TestEnrichHandler_FailedThreadSkipped(t *testing.T) {
	store := testStore(t)
	require.NoError(t, store.SavePosts([]entities.Post{
		{ID: "p1"},
		{ID: "p2"},
	}))

	source := &mocks.ContentSource{
		Threads:   map[string]*entities.Thread{"p2": {PostID: "p2"}},
		ThreadErr: map[string]error{"p1": errors.New("timeout")},
	}
	h := NewEnrichHandler(source, store, zap.NewNop().Sugar())

	result, err := h.Handle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Threads)
	assert.Equal(t, 1, result.Skipped)

	corpus, err := store.LoadCorpus()
	require.NoError(t, err)
	require.Len(t, corpus, 1)
	assert.Equal(t, "p2", corpus[0].PostID)
}

func TestEnrichHandler_MissingPostsAborts(t *testing.T) {
	store := testStore(t)
	h := NewEnrichHandler(&mocks.ContentSource{}, store, zap.NewNop().Sugar())

	_, err := h.Handle(context.Background())
	assert.ErrorIs(t, err, artifacts.ErrArtifactMissing)
	assert.False(t, store.Has(artifacts.KindCorpus))
}
