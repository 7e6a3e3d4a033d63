package rules

import (
	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/mapping"
)

// Capacity keeps candidates whose capacity string denotes exactly the
// requested size in one of its accepted notations.
type Capacity struct{}

var _ mapping.Rule = Capacity{}

// NewCapacity creates a capacity rule.
func NewCapacity() Capacity { return Capacity{} }

// Name returns NameCapacity.
func (Capacity) Name() string { return NameCapacity }

// Applicable requires a requested storage size.
func (Capacity) Applicable(f *domain.ExtractedFeatures) bool {
	return f.StorageGB > 0
}

// Apply keeps exact capacity matches.
func (Capacity) Apply(cands []domain.MatchCandidate, f *domain.ExtractedFeatures, mctx *domain.MappingContext) []domain.MatchCandidate {
	out := keep(cands, func(c domain.MatchCandidate) bool {
		return domain.CapacityMatches(c.Capacity.Size, f.StorageGB)
	})
	if len(out) == 0 && len(cands) > 0 {
		mctx.Info("no candidate offers %s", domain.FormatCapacity(f.StorageGB))
	}
	return out
}
