package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/brandgraph/internal/domain/entities"
)

func TestExtractContexts_MatchesAcrossPunctuation(t *testing.T) {
	docs := []Document{
		{Label: "post", Text: "I finally bought a pair of Iron-Heart jeans and they are fantastic."},
	}

	contexts := ExtractContexts(docs, "Iron Heart", 100)

	require.Len(t, contexts, 1)
	assert.Contains(t, Normalize(contexts[0]), "ironheart")
}

func TestExtractContexts_EveryContextContainsNeedle(t *testing.T) {
	docs := []Document{
		{Label: "title", Text: "Levis 501 review after ten years of daily wear"},
		{Label: "post", Text: "My levi's have outlasted everything. Another vote for Levis here, nothing beats levis denim."},
		{Label: "comment_0", Text: "No brands mentioned in this one at all."},
	}

	contexts := ExtractContexts(docs, "Levi's", 40)

	require.NotEmpty(t, contexts)
	for _, c := range contexts {
		assert.Contains(t, Normalize(c), "levis")
	}
}

func TestExtractContexts_EmptyNeedleMatchesNothing(t *testing.T) {
	docs := []Document{
		{Label: "post", Text: "Plenty of text that would match an empty needle everywhere."},
	}

	// "?!" normalizes to the empty string; an unguarded substring scan would
	// match at every position.
	assert.Empty(t, ExtractContexts(docs, "?!", 100))
	assert.Empty(t, ExtractContexts(docs, "", 100))
}

func TestExtractContexts_WindowClippedToBounds(t *testing.T) {
	text := "Uniqlo at the very start of a short document."
	contexts := ExtractContexts([]Document{{Label: "post", Text: text}}, "Uniqlo", 200)

	require.Len(t, contexts, 1)
	assert.Equal(t, text, contexts[0])
}

func TestExtractContexts_ShortContextsDropped(t *testing.T) {
	// Whole document shorter than the minimum context length.
	contexts := ExtractContexts([]Document{{Label: "title", Text: "Uniqlo"}}, "Uniqlo", 100)
	assert.Empty(t, contexts)
}

func TestExtractContexts_AdjacentOccurrences(t *testing.T) {
	// Occurrences may abut but not overlap; the scan restarts right after
	// each match.
	docs := []Document{{Label: "post", Text: "gap Gap GAP is mentioned three times here"}}
	contexts := ExtractContexts(docs, "Gap", 100)
	assert.Len(t, contexts, 3)
}

func TestExtractContexts_DocumentThenOccurrenceOrder(t *testing.T) {
	docs := []Document{
		{Label: "title", Text: "first doc mentions Patagonia once for the record"},
		{Label: "post", Text: "second doc mentions Patagonia too, buried further along"},
	}
	contexts := ExtractContexts(docs, "Patagonia", 100)

	require.Len(t, contexts, 2)
	assert.True(t, strings.HasPrefix(contexts[0], "first doc"))
	assert.True(t, strings.HasPrefix(contexts[1], "second doc"))
}

func TestCollectBrandContexts(t *testing.T) {
	corpus := []entities.Thread{
		{
			Post:         entities.Post{Title: "Darn Tough socks megathread for the winter season"},
			FullSelftext: "Nothing in the body about the brand.",
			Comments: []entities.Comment{
				{Body: "Darn Tough is the only sock brand with a real lifetime warranty."},
				{Body: ""},
			},
		},
	}

	contexts := CollectBrandContexts(corpus, "Darn Tough", 100)
	assert.Len(t, contexts, 2)
}
