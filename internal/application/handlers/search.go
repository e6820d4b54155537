// Package handlers orchestrates the pipeline phases: each handler loads its
// input artifacts, drives the domain services and external collaborators, and
// persists its output artifacts.
package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ersonp/brandgraph/internal/domain/ports"
	"github.com/ersonp/brandgraph/internal/infrastructure/artifacts"
)

// SearchHandler runs the search phase: query the content source and persist
// the matching posts.
type SearchHandler struct {
	source ports.ContentSource
	store  *artifacts.Store
	log    *zap.SugaredLogger
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(source ports.ContentSource, store *artifacts.Store, log *zap.SugaredLogger) *SearchHandler {
	return &SearchHandler{source: source, store: store, log: log}
}

// SearchResult summarizes one search phase.
type SearchResult struct {
	Posts int
	Path  string
}

// Handle executes the phase.
func (h *SearchHandler) Handle(ctx context.Context, q ports.Query) (*SearchResult, error) {
	h.log.Infow("searching posts",
		"term", q.Term,
		"subreddit", q.Subreddit,
		"sort", q.Sort,
		"time_filter", q.TimeFilter,
		"limit", q.Limit)

	posts, err := h.source.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("searching posts: %w", err)
	}

	if err := h.store.SavePosts(posts); err != nil {
		return nil, fmt.Errorf("saving posts: %w", err)
	}

	path := h.store.Path(artifacts.KindPosts)
	h.log.Infow("search phase complete", "posts", len(posts), "file", path)
	return &SearchResult{Posts: len(posts), Path: path}, nil
}
