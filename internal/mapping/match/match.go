// Package match implements the catalog matchers. Each matcher builds a
// CatalogQuery from the features, narrows the returned models, and expands
// every surviving model into one candidate per active capacity.
package match

import (
	"context"
	"fmt"
	"math"

	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/core/ports/driven"
	"github.com/custodia-labs/devmap/internal/mapping/lexicon"
)

// Option configures a matcher.
type Option func(*base)

// WithStorageFilter makes the matcher drop capacities that do not denote the
// requested storage size. Engines leave this off so the capacity rule can
// tell "right model, wrong capacity" apart from "no model".
func WithStorageFilter() Option {
	return func(b *base) { b.filterStorage = true }
}

// base holds what every matcher shares.
type base struct {
	catalog       driven.CatalogReader
	lex           *lexicon.Lexicon
	filterStorage bool
}

func newBase(catalog driven.CatalogReader, family domain.DeviceFamily, opts []Option) base {
	b := base{catalog: catalog, lex: lexicon.For(family)}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// scoreFunc scores one model and returns the contributions for audit.
type scoreFunc func(m domain.CatalogModel) (float64, map[string]any)

// query executes q and logs the outcome.
func (b base) query(ctx context.Context, strategy domain.Strategy, q domain.CatalogQuery, mctx *domain.MappingContext) ([]domain.CatalogModel, error) {
	models, err := b.catalog.FindModels(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%s query: %w", strategy, err)
	}
	mctx.Debug("%s: catalog returned %d models for %s", strategy, len(models), describeQuery(q))
	return models, nil
}

// expand turns models into (model, active capacity) candidates, best first.
func (b base) expand(strategy domain.Strategy, models []domain.CatalogModel, f *domain.ExtractedFeatures, score scoreFunc, mctx *domain.MappingContext) []domain.MatchCandidate {
	var out []domain.MatchCandidate
	for _, m := range models {
		s, details := score(m)
		for _, c := range m.Capacities {
			if !c.Active {
				continue
			}
			if b.filterStorage && f.StorageGB > 0 && !domain.CapacityMatches(c.Size, f.StorageGB) {
				continue
			}
			out = append(out, domain.MatchCandidate{
				Model:    m,
				Capacity: c,
				Score:    s,
				Strategy: strategy,
				Details:  copyDetails(details),
			})
		}
	}
	domain.SortCandidates(out)
	if len(out) > 0 {
		mctx.Debug("%s: %d candidates, best %.2f %q %s",
			strategy, len(out), out[0].Score, out[0].Model.Description, out[0].Capacity.Size)
	}
	return out
}

// capScore rounds the sum to two decimals and caps it at the ceiling.
func capScore(sum, ceiling float64) float64 {
	return math.Min(ceiling, math.Round(sum*100)/100)
}

func copyDetails(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func describeQuery(q domain.CatalogQuery) string {
	s := fmt.Sprintf("family=%s", q.Family)
	if q.Year > 0 {
		s += fmt.Sprintf(" year=%d", q.Year)
	}
	if q.IdentifierContains != "" {
		s += " identifier=" + q.IdentifierContains
	}
	if len(q.Tokens) > 0 {
		s += fmt.Sprintf(" tokens=%q", q.Tokens)
	}
	if q.Brand != "" {
		s += " brand=" + q.Brand
	}
	return s
}
