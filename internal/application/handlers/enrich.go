package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ersonp/brandgraph/internal/domain/entities"
	"github.com/ersonp/brandgraph/internal/domain/ports"
	"github.com/ersonp/brandgraph/internal/infrastructure/artifacts"
)

// EnrichHandler runs the enrichment phase: fetch the full body and expanded
// comment tree for every searched post.
type EnrichHandler struct {
	source ports.ContentSource
	store  *artifacts.Store
	log    *zap.SugaredLogger
}

// NewEnrichHandler creates a new enrich handler.
func NewEnrichHandler(source ports.ContentSource, store *artifacts.Store, log *zap.SugaredLogger) *EnrichHandler {
	return &EnrichHandler{source: source, store: store, log: log}
}

// EnrichResult summarizes one enrichment phase.
type EnrichResult struct {
	PostsIn  int
	Threads  int
	Comments int
	Skipped  int
	Path     string
}

// Handle executes the phase. Per-post fetch failures are logged and skipped;
// a missing posts artifact aborts the phase.
func (h *EnrichHandler) Handle(ctx context.Context) (*EnrichResult, error) {
	posts, err := h.store.LoadPosts()
	if err != nil {
		return nil, err
	}
	h.log.Infow("enriching posts", "posts", len(posts))

	result := &EnrichResult{PostsIn: len(posts)}
	corpus := make([]entities.Thread, 0, len(posts))
	for i, post := range posts {
		if post.ID == "" {
			h.log.Warnw("post has no ID, skipping", "index", i)
			result.Skipped++
			continue
		}

		thread, err := h.source.FetchThread(ctx, post.ID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			h.log.Warnw("fetching thread failed, skipping", "post_id", post.ID, "error", err)
			result.Skipped++
			continue
		}

		corpus = append(corpus, *thread)
		result.Comments += len(thread.Comments)
		h.log.Infow("thread fetched",
			"post_id", post.ID,
			"progress", fmt.Sprintf("%d/%d", i+1, len(posts)),
			"comments", len(thread.Comments))
	}

	if err := h.store.SaveCorpus(corpus); err != nil {
		return nil, fmt.Errorf("saving corpus: %w", err)
	}

	result.Threads = len(corpus)
	result.Path = h.store.Path(artifacts.KindCorpus)
	h.log.Infow("enrich phase complete",
		"threads", result.Threads,
		"comments", result.Comments,
		"skipped", result.Skipped,
		"file", result.Path)
	return result, nil
}
