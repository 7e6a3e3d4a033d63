package rules

import (
	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/mapping"
	"github.com/custodia-labs/devmap/internal/mapping/lexicon"
)

// Variant applies the variant exclusion semantics. It runs even when no
// variant was requested, to exclude variant-bearing rows.
type Variant struct {
	lex *lexicon.Lexicon
}

var _ mapping.Rule = (*Variant)(nil)

// NewVariant creates a variant rule for a family.
func NewVariant(family domain.DeviceFamily) *Variant {
	return &Variant{lex: lexicon.For(family)}
}

// Name returns NameVariant.
func (r *Variant) Name() string { return NameVariant }

// Applicable holds whenever the family is known.
func (r *Variant) Applicable(f *domain.ExtractedFeatures) bool {
	return r.lex != nil && f.HasFamily()
}

// Apply keeps candidates whose description satisfies the requested variant.
func (r *Variant) Apply(cands []domain.MatchCandidate, f *domain.ExtractedFeatures, _ *domain.MappingContext) []domain.MatchCandidate {
	return keep(cands, func(c domain.MatchCandidate) bool {
		return r.lex.VariantMatches(c.Model.Description, f.Variant)
	})
}
