package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ersonp/brandgraph/internal/domain/ports"
	"github.com/ersonp/brandgraph/internal/infrastructure/artifacts"
	classifier "github.com/ersonp/brandgraph/internal/infrastructure/classifier/openai"
	"github.com/ersonp/brandgraph/internal/infrastructure/config"
	"github.com/ersonp/brandgraph/internal/infrastructure/ratelimit"
	"github.com/ersonp/brandgraph/internal/infrastructure/reddit"
)

// Deps holds shared dependencies for commands. Phase collaborators that need
// credentials (content source, classifier) are built on demand so that
// offline phases keep working without them.
type Deps struct {
	Config *config.Config
	Log    *zap.SugaredLogger
	Store  *artifacts.Store
}

// withDeps loads config and builds shared dependencies, then calls the
// provided function. It flushes the logger on the way out.
func withDeps(fn func(*Deps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	d := &Deps{
		Config: cfg,
		Log:    log,
		Store:  artifacts.NewStore(cfg.RunDir(), cfg.MasterDir()),
	}
	return fn(d)
}

// newLogger builds a console logger tagged with a fresh run ID, so log lines
// from interleaved runs against the same output directory stay attributable.
func newLogger() (*zap.SugaredLogger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	log, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return log.Sugar().With("run_id", uuid.NewString()), nil
}

// Source builds the Reddit content source from the configured credentials.
func (d *Deps) Source() (ports.ContentSource, error) {
	src, err := reddit.NewClient(d.Config.Reddit)
	if err != nil {
		return nil, fmt.Errorf("creating content source: %w", err)
	}
	return src, nil
}

// Classifier builds the LLM classification client from the configured key.
func (d *Deps) Classifier() (ports.Classifier, error) {
	cl, err := classifier.NewClient(d.Config.LLM)
	if err != nil {
		return nil, fmt.Errorf("creating classifier: %w", err)
	}
	return cl, nil
}

// Pacer builds the classifier rate pacer from the configured token budget.
func (d *Deps) Pacer() ports.Pacer {
	return ratelimit.New(ratelimit.DefaultMinDelay, ratelimit.DefaultWindow, d.Config.LLM.TokensPerMinute)
}

// Query builds the search query for this run from configuration.
func (d *Deps) Query() ports.Query {
	return ports.Query{
		Term:       d.Config.Search.Term,
		Subreddit:  d.Config.Search.Subreddit,
		Sort:       d.Config.Search.Sort,
		TimeFilter: d.Config.Search.TimeFilter,
		Limit:      d.Config.Search.Limit,
	}
}
