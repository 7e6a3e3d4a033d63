// Package mapping defines the roles of the device mapping pipeline.
//
// A family Engine composes one Extractor, one KnowledgeBase, an ordered list
// of Matchers and an ordered Rule chain. Implementations live in the
// subpackages:
//
//   - extract: raw text to ExtractedFeatures
//   - knowledge: static generation tables that fill in release year and chip
//   - match: catalog queries that emit scored candidates
//   - rules: business-rule filters that narrow candidates
//   - engine: the per-family orchestration
//
// Every step is deterministic and records its decisions on the
// MappingContext passed to it.
package mapping

import (
	"context"

	"github.com/custodia-labs/devmap/internal/core/domain"
)

// Extractor parses raw vendor text into features. It is a pure function of
// its input and static tables; it never touches the catalog.
type Extractor interface {
	// Family returns the family this extractor recognises.
	Family() domain.DeviceFamily

	// Extract parses the input. It returns an empty feature bag when the
	// family marker is absent.
	Extract(input domain.MappingInput, mctx *domain.MappingContext) *domain.ExtractedFeatures
}

// KnowledgeBase fills in facts the raw text never states. Enrichment never
// overwrites a populated field, so running it twice is a no-op.
type KnowledgeBase interface {
	// Enrich adds release year, chip and related facts in place and returns
	// the same feature bag.
	Enrich(f *domain.ExtractedFeatures, mctx *domain.MappingContext) *domain.ExtractedFeatures

	// ExpectedCapacities returns the capacities (GB) commonly sold for the
	// features' product line, ascending.
	ExpectedCapacities(f *domain.ExtractedFeatures) []int
}

// Matcher queries the catalog and returns scored candidates, best first.
type Matcher interface {
	// Strategy names the matcher.
	Strategy() domain.Strategy

	// Applicable reports whether the matcher's precondition holds.
	Applicable(f *domain.ExtractedFeatures) bool

	// FindCandidates returns one candidate per (model, active capacity) pair.
	FindCandidates(ctx context.Context, f *domain.ExtractedFeatures, mctx *domain.MappingContext) ([]domain.MatchCandidate, error)

	// FindModels returns the models the matcher would consider, ignoring any
	// capacity constraint. Used to build capacity-creation suggestions.
	FindModels(ctx context.Context, f *domain.ExtractedFeatures, mctx *domain.MappingContext) ([]domain.CatalogModel, error)
}

// Rule is one filter in a family's rule chain.
type Rule interface {
	// Name identifies the rule in logs and chain manipulation.
	Name() string

	// Applicable reports whether the rule has anything to filter on.
	Applicable(f *domain.ExtractedFeatures) bool

	// Apply removes every candidate failing the rule. It may return an
	// empty slice; the engine decides what zero survivors means.
	Apply(cands []domain.MatchCandidate, f *domain.ExtractedFeatures, mctx *domain.MappingContext) []domain.MatchCandidate
}

// Engine resolves inputs for one device family.
type Engine interface {
	// Name identifies the engine.
	Name() string

	// Family returns the family the engine handles.
	Family() domain.DeviceFamily

	// CanHandle is a cheap keyword predicate used for engine selection.
	CanHandle(input domain.MappingInput) bool

	// Map runs the full pipeline. It never panics or returns an error;
	// failures are reported through the result status.
	Map(ctx context.Context, input domain.MappingInput) *domain.MatchResult
}
