package match

import (
	"context"

	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/core/ports/driven"
	"github.com/custodia-labs/devmap/internal/mapping"
)

// GenerationCeiling caps generation+year scores.
const GenerationCeiling = 1.0

// Generation is the general-purpose fallback: family rows of the inferred
// year (or recording no year), narrowed in-matcher by variant exclusion and
// generation spelling.
type Generation struct {
	base
}

var _ mapping.Matcher = (*Generation)(nil)

// NewGeneration creates a generation+year matcher for a family.
func NewGeneration(catalog driven.CatalogReader, family domain.DeviceFamily, opts ...Option) *Generation {
	return &Generation{base: newBase(catalog, family, opts)}
}

// Strategy returns domain.StrategyGenerationYear.
func (m *Generation) Strategy() domain.Strategy { return domain.StrategyGenerationYear }

// Applicable requires only the family.
func (m *Generation) Applicable(f *domain.ExtractedFeatures) bool {
	return f.HasFamily()
}

// FindModels returns the family rows that pass variant exclusion and, unless
// the row's year confirms it, mention the generation.
func (m *Generation) FindModels(ctx context.Context, f *domain.ExtractedFeatures, mctx *domain.MappingContext) ([]domain.CatalogModel, error) {
	q := domain.CatalogQuery{Family: f.Family, Year: f.Year}
	if m.lex.CatalogToken != "" {
		q.Tokens = []string{m.lex.CatalogToken}
	}
	models, err := m.query(ctx, m.Strategy(), q, mctx)
	if err != nil {
		return nil, err
	}

	kept := models[:0:0]
	for _, model := range models {
		if !m.lex.VariantMatches(model.Description, f.Variant) {
			continue
		}
		yearConfirms := f.Year > 0 && model.Year == f.Year
		if f.Generation > 0 && !yearConfirms && !m.lex.MentionsGeneration(model.Description, f.Generation, f.Variant) {
			continue
		}
		kept = append(kept, model)
	}
	if dropped := len(models) - len(kept); dropped > 0 {
		mctx.Debug("%s: %d models dropped by variant/generation checks", m.Strategy(), dropped)
	}
	return kept, nil
}

// FindCandidates scores every (model, capacity) pair of FindModels.
func (m *Generation) FindCandidates(ctx context.Context, f *domain.ExtractedFeatures, mctx *domain.MappingContext) ([]domain.MatchCandidate, error) {
	models, err := m.FindModels(ctx, f, mctx)
	if err != nil {
		return nil, err
	}
	return m.expand(m.Strategy(), models, f, func(model domain.CatalogModel) (float64, map[string]any) {
		details := map[string]any{"variant": 0.2}
		sum := 0.2
		if model.Type == f.Family {
			sum += 0.2
			details["type"] = 0.2
		}
		switch {
		case !model.HasYear():
			sum += 0.2
			details["year"] = 0.2
		case f.Year > 0 && model.Year == f.Year:
			sum += 0.3
			details["year"] = 0.3
		}
		if f.Generation > 0 && m.lex.MentionsGeneration(model.Description, f.Generation, f.Variant) {
			sum += 0.3
			details["generation"] = 0.3
		}
		return capScore(sum, GenerationCeiling), details
	}, mctx), nil
}
