package rules

import (
	"strings"

	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/mapping"
	"github.com/custodia-labs/devmap/internal/mapping/chip"
)

// Chip keeps candidates whose description names the same (chip family,
// chip sub-variant) pair as the request. Descriptions naming no chip are
// removed. It separates sibling SKUs that share an identifier code.
type Chip struct{}

var _ mapping.Rule = Chip{}

// NewChip creates a chip-variant rule.
func NewChip() Chip { return Chip{} }

// Name returns NameChip.
func (Chip) Name() string { return NameChip }

// Applicable requires a parseable chip.
func (Chip) Applicable(f *domain.ExtractedFeatures) bool {
	_, ok := chip.Parse(f.Chip)
	return ok
}

// Apply keeps exact signature matches.
func (Chip) Apply(cands []domain.MatchCandidate, f *domain.ExtractedFeatures, mctx *domain.MappingContext) []domain.MatchCandidate {
	want, _ := chip.Parse(f.Chip)
	return keep(cands, func(c domain.MatchCandidate) bool {
		got, ok := chip.Parse(c.Model.Description)
		if !ok {
			mctx.Debug("chip: %q names no chip", c.Model.Description)
			return false
		}
		return sameChip(want, got)
	})
}

// sameChip compares signatures. An Intel request naming no clock or core
// count matches any configuration of its chip family.
func sameChip(want, got chip.Signature) bool {
	if want.Silicon != got.Silicon {
		return false
	}
	if !want.Silicon && want.Variant == "" {
		return strings.EqualFold(want.Family, got.Family)
	}
	return want.Equal(got)
}
