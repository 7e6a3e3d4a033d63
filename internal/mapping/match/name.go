package match

import (
	"context"

	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/core/ports/driven"
	"github.com/custodia-labs/devmap/internal/mapping"
	"github.com/custodia-labs/devmap/internal/mapping/lexicon"
)

// NameCeiling caps name-exact scores.
const NameCeiling = 0.80

// Name matches rows whose description contains every token of the
// constructed display name. It targets SKUs newer than the knowledge base,
// so it only runs when enrichment produced no release year.
type Name struct {
	base
}

var _ mapping.Matcher = (*Name)(nil)

// NewName creates a name-exact matcher for a family.
func NewName(catalog driven.CatalogReader, family domain.DeviceFamily, opts ...Option) *Name {
	return &Name{base: newBase(catalog, family, opts)}
}

// Strategy returns domain.StrategyNameExact.
func (m *Name) Strategy() domain.Strategy { return domain.StrategyNameExact }

// Applicable requires generation or variant, and no known release year.
func (m *Name) Applicable(f *domain.ExtractedFeatures) bool {
	if !f.HasFamily() || f.Year > 0 {
		return false
	}
	if f.Generation == 0 && f.Variant == "" {
		return false
	}
	return len(m.lex.NameTokens(f)) > 0
}

// FindModels returns the models whose description contains every name token
// as a whole word.
func (m *Name) FindModels(ctx context.Context, f *domain.ExtractedFeatures, mctx *domain.MappingContext) ([]domain.CatalogModel, error) {
	tokens := m.lex.NameTokens(f)
	models, err := m.query(ctx, m.Strategy(), domain.CatalogQuery{Family: f.Family, Tokens: tokens}, mctx)
	if err != nil {
		return nil, err
	}
	kept := models[:0:0]
	for _, model := range models {
		if lexicon.ContainsAllWords(model.Description, tokens) {
			kept = append(kept, model)
		}
	}
	return kept, nil
}

// FindCandidates scores every (model, capacity) pair of FindModels.
func (m *Name) FindCandidates(ctx context.Context, f *domain.ExtractedFeatures, mctx *domain.MappingContext) ([]domain.MatchCandidate, error) {
	models, err := m.FindModels(ctx, f, mctx)
	if err != nil {
		return nil, err
	}
	return m.expand(m.Strategy(), models, f, func(model domain.CatalogModel) (float64, map[string]any) {
		details := map[string]any{"tokens": 0.4}
		sum := 0.4
		if model.Type == f.Family {
			sum += 0.2
			details["type"] = 0.2
		}
		if m.lex.VariantMatches(model.Description, f.Variant) {
			sum += 0.2
			details["variant"] = 0.2
		}
		return capScore(sum, NameCeiling), details
	}, mctx), nil
}
