package rules

import (
	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/mapping"
)

// Year keeps rows of the requested release year. Rows recording no year are
// wildcards.
type Year struct{}

var _ mapping.Rule = Year{}

// NewYear creates a year rule.
func NewYear() Year { return Year{} }

// Name returns NameYear.
func (Year) Name() string { return NameYear }

// Applicable requires a known year.
func (Year) Applicable(f *domain.ExtractedFeatures) bool {
	return f.Year > 0
}

// Apply keeps rows of the same year or without one.
func (Year) Apply(cands []domain.MatchCandidate, f *domain.ExtractedFeatures, _ *domain.MappingContext) []domain.MatchCandidate {
	return keep(cands, func(c domain.MatchCandidate) bool {
		return !c.Model.HasYear() || c.Model.Year == f.Year
	})
}
