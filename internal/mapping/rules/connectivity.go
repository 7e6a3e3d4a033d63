package rules

import (
	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/mapping"
	"github.com/custodia-labs/devmap/internal/mapping/extract"
)

// Connectivity separates Wi-Fi-only rows from cellular rows. A row is
// cellular when it names a cellular keyword; everything else is Wi-Fi.
type Connectivity struct{}

var _ mapping.Rule = Connectivity{}

// NewConnectivity creates a connectivity rule.
func NewConnectivity() Connectivity { return Connectivity{} }

// Name returns NameConnectivity.
func (Connectivity) Name() string { return NameConnectivity }

// Applicable requires extracted connectivity.
func (Connectivity) Applicable(f *domain.ExtractedFeatures) bool {
	return f.Connectivity != domain.ConnectivityUnknown
}

// Apply keeps rows of the requested connectivity.
func (Connectivity) Apply(cands []domain.MatchCandidate, f *domain.ExtractedFeatures, _ *domain.MappingContext) []domain.MatchCandidate {
	wantCellular := f.Connectivity == domain.ConnectivityCellular
	return keep(cands, func(c domain.MatchCandidate) bool {
		cellular := extract.ParseConnectivity(c.Model.Description) == domain.ConnectivityCellular
		return cellular == wantCellular
	})
}
