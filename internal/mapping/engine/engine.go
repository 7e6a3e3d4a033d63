// Package engine composes extractors, knowledge bases, matchers and rule
// chains into per-family mapping engines.
package engine

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/logger"
	"github.com/custodia-labs/devmap/internal/mapping"
	"github.com/custodia-labs/devmap/internal/mapping/lexicon"
	"github.com/custodia-labs/devmap/internal/mapping/rules"
)

// Metadata keys recorded on the mapping context.
const (
	MetaEngine         = "engine"
	MetaStrategy       = "strategy"
	MetaMatchersTried  = "matchers_tried"
	MetaEmptiedBy      = "emptied_by"
	MetaSuggestedModel = "suggested_model"
)

// Config wires one family engine.
type Config struct {
	// Name identifies the engine in results and logs.
	Name string

	// Family is the family handled.
	Family domain.DeviceFamily

	// Extractor parses raw text.
	Extractor mapping.Extractor

	// Knowledge enriches extracted features.
	Knowledge mapping.KnowledgeBase

	// Matchers run in priority order; the first non-empty result wins.
	Matchers []mapping.Matcher

	// Rules narrows matcher candidates.
	Rules *rules.Chain
}

// Option configures an Engine.
type Option func(*Engine)

// WithIDGenerator overrides how mapping context ids are generated.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) { e.newID = fn }
}

// WithLogSink overrides where context entries are mirrored. The default
// mirrors them to the verbose logger.
func WithLogSink(fn func(id string, entry domain.LogEntry)) Option {
	return func(e *Engine) { e.sink = fn }
}

// Engine runs the mapping pipeline for one family.
type Engine struct {
	cfg   Config
	lex   *lexicon.Lexicon
	newID func() string
	sink  func(id string, entry domain.LogEntry)
}

var _ mapping.Engine = (*Engine)(nil)

// New creates an engine from its parts.
func New(cfg Config, opts ...Option) *Engine {
	if cfg.Rules == nil {
		cfg.Rules = rules.NewChain()
	}
	e := &Engine{
		cfg:   cfg,
		lex:   lexicon.For(cfg.Family),
		newID: uuid.NewString,
		sink: func(id string, entry domain.LogEntry) {
			logger.Entry(string(entry.Level), id, entry.Message)
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the engine name.
func (e *Engine) Name() string { return e.cfg.Name }

// Family returns the family handled.
func (e *Engine) Family() domain.DeviceFamily { return e.cfg.Family }

// CanHandle reports whether the display name carries the family marker.
func (e *Engine) CanHandle(input domain.MappingInput) bool {
	return e.lex != nil && e.lex.Marker.MatchString(input.ModelName())
}

// Map runs extraction, enrichment, matching and filtering. It never panics:
// failures become ERROR results.
func (e *Engine) Map(ctx context.Context, input domain.MappingInput) (result *domain.MatchResult) {
	id := e.newID()
	var sink func(domain.LogEntry)
	if e.sink != nil {
		sink = func(entry domain.LogEntry) { e.sink(id, entry) }
	}
	mctx := domain.NewMappingContext(id, sink)
	mctx.SetMeta(MetaEngine, e.cfg.Name)

	defer func() {
		if r := recover(); r != nil {
			mctx.Error("unexpected failure: %v", r)
			logger.Debug("engine %s panic stack:\n%s", e.cfg.Name, debug.Stack())
			result = domain.NewErrorResult(domain.ErrorCodeMappingError,
				fmt.Sprintf("%v: %v", domain.ErrMapping, r))
		}
		mctx.Info("finished %s in %s", result.Status, mctx.Duration())
		mctx.Close()
		result.Engine = e.cfg.Name
		result.Context = mctx
	}()

	return e.run(ctx, input, mctx)
}

func (e *Engine) run(ctx context.Context, input domain.MappingInput, mctx *domain.MappingContext) *domain.MatchResult {
	mctx.Info("mapping %q with %s", input.ModelName(), e.cfg.Name)

	f := e.cfg.Extractor.Extract(input, mctx)
	if !f.HasFamily() {
		mctx.Error("extraction found no %s marker", e.cfg.Family)
		r := domain.NewErrorResult(domain.ErrorCodeExtractionFailed,
			fmt.Sprintf("could not extract %s features from %q", e.cfg.Family, input.ModelName()))
		r.Features = f
		return r
	}
	mctx.Debug("extracted: %s", f.Summary())

	f = e.cfg.Knowledge.Enrich(f, mctx)
	mctx.Debug("enriched: %s (confidence %.2f)", f.Summary(), f.Confidence)

	cands, strategy, err := e.runMatchers(ctx, f, mctx)
	if err != nil {
		mctx.Error("matching failed: %v", err)
		r := domain.NewErrorResult(domain.ErrorCodeMappingError, err.Error())
		r.Features = f
		return r
	}
	if len(cands) == 0 {
		return domain.NewNoMatchResult(
			fmt.Sprintf("no catalog candidates for %s", describe(f)), f, nil)
	}
	mctx.SetMeta(MetaStrategy, string(strategy))

	outcome := e.cfg.Rules.Apply(cands, f, mctx)
	if len(outcome.Survivors) == 0 {
		mctx.SetMeta(MetaEmptiedBy, outcome.EmptiedBy)
		r := domain.NewNoMatchResult(
			fmt.Sprintf("%d candidates for %s, none passed the %s rule", len(cands), describe(f), outcome.EmptiedBy),
			f, cands)
		if s := e.suggestCapacity(ctx, f, mctx); s != nil {
			r.Suggestion = s
			r.ErrorMessage = fmt.Sprintf("model %q exists without capacity %s", s.ModelDescription, s.CapacityLabel)
		}
		return r
	}

	best := outcome.Survivors[0]
	mctx.Info("matched model %d %q capacity %d %q (%.2f, %s)",
		best.Model.ID, best.Model.Description, best.Capacity.ID, best.Capacity.Size, best.Score, best.Strategy)
	return domain.NewSuccessResult(best, f, cands)
}

// runMatchers tries matchers in priority order and stops at the first
// non-empty result, even if the rules later remove all of it.
func (e *Engine) runMatchers(ctx context.Context, f *domain.ExtractedFeatures, mctx *domain.MappingContext) ([]domain.MatchCandidate, domain.Strategy, error) {
	var tried []string
	defer func() { mctx.SetMeta(MetaMatchersTried, strings.Join(tried, ",")) }()

	for _, m := range e.cfg.Matchers {
		if !m.Applicable(f) {
			mctx.Debug("matcher %s: not applicable", m.Strategy())
			continue
		}
		tried = append(tried, string(m.Strategy()))
		cands, err := m.FindCandidates(ctx, f, mctx)
		if err != nil {
			return nil, domain.StrategyNone, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
		}
		if len(cands) > 0 {
			mctx.Info("matcher %s produced %d candidates", m.Strategy(), len(cands))
			return cands, m.Strategy(), nil
		}
		mctx.Debug("matcher %s: no candidates", m.Strategy())
	}
	mctx.Info("no matcher produced candidates")
	return nil, domain.StrategyNone, nil
}

func describe(f *domain.ExtractedFeatures) string {
	parts := []string{string(f.Family)}
	if f.Variant != "" {
		parts = append(parts, f.Variant)
	}
	if f.Generation > 0 {
		parts = append(parts, fmt.Sprintf("gen %d", f.Generation))
	}
	if f.Chip != "" {
		parts = append(parts, f.Chip)
	}
	if f.Year > 0 {
		parts = append(parts, fmt.Sprint(f.Year))
	}
	if f.StorageGB > 0 {
		parts = append(parts, domain.FormatCapacity(f.StorageGB))
	}
	return strings.Join(parts, " ")
}
