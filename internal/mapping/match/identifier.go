package match

import (
	"context"

	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/core/ports/driven"
	"github.com/custodia-labs/devmap/internal/mapping"
)

// IdentifierCeiling caps identifier scores. Codes are shared by sibling
// SKUs, so an identifier hit alone never reaches full confidence.
const IdentifierCeiling = 0.85

// Identifier matches catalog rows whose description contains the physical
// identifier code.
type Identifier struct {
	base
}

var _ mapping.Matcher = (*Identifier)(nil)

// NewIdentifier creates an identifier-exact matcher for a family.
func NewIdentifier(catalog driven.CatalogReader, family domain.DeviceFamily, opts ...Option) *Identifier {
	return &Identifier{base: newBase(catalog, family, opts)}
}

// Strategy returns domain.StrategyIdentifierExact.
func (m *Identifier) Strategy() domain.Strategy { return domain.StrategyIdentifierExact }

// Applicable requires an identifier code.
func (m *Identifier) Applicable(f *domain.ExtractedFeatures) bool {
	return f.HasFamily() && f.Identifier != ""
}

// FindModels returns the models carrying the identifier, narrowed by year.
func (m *Identifier) FindModels(ctx context.Context, f *domain.ExtractedFeatures, mctx *domain.MappingContext) ([]domain.CatalogModel, error) {
	return m.query(ctx, m.Strategy(), domain.CatalogQuery{
		Family:             f.Family,
		Year:               f.Year,
		IdentifierContains: f.Identifier,
	}, mctx)
}

// FindCandidates scores every (model, capacity) pair of FindModels.
func (m *Identifier) FindCandidates(ctx context.Context, f *domain.ExtractedFeatures, mctx *domain.MappingContext) ([]domain.MatchCandidate, error) {
	models, err := m.FindModels(ctx, f, mctx)
	if err != nil {
		return nil, err
	}
	return m.expand(m.Strategy(), models, f, func(model domain.CatalogModel) (float64, map[string]any) {
		details := map[string]any{"identifier": 0.45}
		sum := 0.45
		if model.Type == f.Family {
			sum += 0.1
			details["type"] = 0.1
		}
		if f.Year > 0 && model.Year == f.Year {
			sum += 0.1
			details["year"] = 0.1
		}
		if f.Generation > 0 && m.lex.MentionsGeneration(model.Description, f.Generation, f.Variant) {
			sum += 0.1
			details["generation"] = 0.1
		}
		if f.Variant != "" && m.lex.VariantMatches(model.Description, f.Variant) {
			sum += 0.1
			details["variant"] = 0.1
		}
		return capScore(sum, IdentifierCeiling), details
	}, mctx), nil
}
