package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ersonp/brandgraph/internal/domain/ports"
)

// CheckHandler probes both upstream collaborators before a run.
type CheckHandler struct {
	source     ports.ContentSource
	classifier ports.Classifier
	log        *zap.SugaredLogger
}

// NewCheckHandler creates a new check handler.
func NewCheckHandler(source ports.ContentSource, classifier ports.Classifier, log *zap.SugaredLogger) *CheckHandler {
	return &CheckHandler{source: source, classifier: classifier, log: log}
}

// Handle probes the content source and the classifier with minimal requests.
func (h *CheckHandler) Handle(ctx context.Context, q ports.Query) error {
	q.Limit = 1
	if _, err := h.source.Search(ctx, q); err != nil {
		return fmt.Errorf("content source check failed: %w", err)
	}
	h.log.Infow("content source reachable", "subreddit", q.Subreddit)

	if _, err := h.classifier.ExtractBrands(ctx, "Title: connectivity check\n\nPost: mentions of Acme Corp.\n\nComments:\n"); err != nil {
		return fmt.Errorf("classifier check failed: %w", err)
	}
	h.log.Infow("classifier reachable")
	return nil
}
