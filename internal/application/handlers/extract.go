package handlers

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ersonp/brandgraph/internal/domain/entities"
	"github.com/ersonp/brandgraph/internal/domain/ports"
	"github.com/ersonp/brandgraph/internal/domain/services"
	"github.com/ersonp/brandgraph/internal/infrastructure/artifacts"
	"github.com/ersonp/brandgraph/internal/infrastructure/ratelimit"
)

// ExtractHandler runs the brand-extraction phase: classify every corpus
// thread, accumulate raw observations, and build the per-run subject ledger.
type ExtractHandler struct {
	classifier ports.Classifier
	pacer      ports.Pacer
	store      *artifacts.Store
	log        *zap.SugaredLogger
}

// NewExtractHandler creates a new extract handler.
func NewExtractHandler(classifier ports.Classifier, pacer ports.Pacer, store *artifacts.Store, log *zap.SugaredLogger) *ExtractHandler {
	return &ExtractHandler{classifier: classifier, pacer: pacer, store: store, log: log}
}

// ExtractOptions controls extraction behavior.
type ExtractOptions struct {
	// SearchTerm is the run's search subject, located in the accumulated
	// brand list by normalized name match.
	SearchTerm string
	// MinMentions drops brands below this total before ID assignment.
	// Values <= 1 disable the filter.
	MinMentions int
}

// ExtractResult summarizes one extraction phase.
type ExtractResult struct {
	ThreadsIn    int
	Skipped      int
	Brands       int
	SubjectID    int
	RunMentions  int
	BrandsPath   string
	MentionsPath string
}

// Handle executes the phase. A malformed or failed classification skips that
// thread and continues; a missing corpus artifact aborts the phase.
func (h *ExtractHandler) Handle(ctx context.Context, opts ExtractOptions) (*ExtractResult, error) {
	corpus, err := h.store.LoadCorpus()
	if err != nil {
		return nil, err
	}
	h.log.Infow("extracting brands", "threads", len(corpus))

	result := &ExtractResult{ThreadsIn: len(corpus)}
	acc := services.NewAccumulator()
	for i := range corpus {
		thread := &corpus[i]
		text := threadText(thread)

		if err := h.pacer.Wait(ctx, ratelimit.EstimateTokens(text)); err != nil {
			return nil, err
		}

		observations, err := h.classifier.ExtractBrands(ctx, text)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			h.log.Warnw("classifying thread failed, skipping",
				"post_id", thread.PostID,
				"progress", fmt.Sprintf("%d/%d", i+1, len(corpus)),
				"error", err)
			result.Skipped++
			continue
		}

		acc.AddAll(observations)
		h.log.Infow("thread classified",
			"post_id", thread.PostID,
			"progress", fmt.Sprintf("%d/%d", i+1, len(corpus)),
			"brands", len(observations))
	}

	brands := acc.Entities(services.ByMentionsDesc, opts.MinMentions)
	if err := h.store.SaveRawBrands(brands); err != nil {
		return nil, fmt.Errorf("saving raw brands: %w", err)
	}

	subjectID := services.FindSubject(brands, opts.SearchTerm)
	if subjectID == 0 {
		h.log.Warnw("search subject not found among extracted brands", "term", opts.SearchTerm)
	}
	var mentions []entities.SearchMention
	if subjectID != 0 {
		mentions = services.BuildRunLedger(brands, subjectID)
	}
	if err := h.store.SaveRunMentions(mentions); err != nil {
		return nil, fmt.Errorf("saving run mentions: %w", err)
	}

	result.Brands = len(brands)
	result.SubjectID = subjectID
	result.RunMentions = len(mentions)
	result.BrandsPath = h.store.Path(artifacts.KindRawBrands)
	result.MentionsPath = h.store.Path(artifacts.KindRunMentions)
	h.log.Infow("extract phase complete",
		"brands", result.Brands,
		"subject_id", subjectID,
		"run_mentions", result.RunMentions,
		"skipped", result.Skipped,
		"file", result.BrandsPath)
	return result, nil
}

// threadText flattens a thread into one classification unit: title, body,
// then every comment.
func threadText(thread *entities.Thread) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Title: %s\n\nPost: %s\n\nComments:\n", thread.Post.Title, thread.FullSelftext)
	for _, comment := range thread.Comments {
		if comment.Body == "" {
			continue
		}
		fmt.Fprintf(&sb, "- %s\n", comment.Body)
	}
	return sb.String()
}
