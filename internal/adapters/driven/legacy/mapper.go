// Package legacy implements the v3 mapping engine that the family engines
// replace: a single token-overlap search over the catalog. It is kept behind
// the compatibility boundary for system=v3 and as the system=auto fallback.
package legacy

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/core/ports/driven"
	"github.com/custodia-labs/devmap/internal/mapping/lexicon"
)

// EngineName identifies v3 results.
const EngineName = "v3_legacy"

// DefaultThreshold is the minimum token overlap accepted.
const DefaultThreshold = 0.5

var (
	tokenRE    = regexp.MustCompile(`[\p{L}\p{N}]+`)
	capacityRE = regexp.MustCompile(`(?i)^\d+(?:gb|tb)$`)
)

// families is the order the v3 engine tried family keywords in.
var families = []domain.DeviceFamily{
	domain.FamilyIPhone,
	domain.FamilyIPad,
	domain.FamilyMac,
	domain.FamilyPixel,
}

// Mapper is the v3 token-overlap engine.
type Mapper struct {
	catalog   driven.CatalogReader
	threshold float64
}

var _ driven.LegacyMapper = (*Mapper)(nil)

// NewMapper creates a v3 mapper over catalog. A non-positive threshold uses
// DefaultThreshold.
func NewMapper(catalog driven.CatalogReader, threshold float64) *Mapper {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Mapper{catalog: catalog, threshold: threshold}
}

// Map returns the catalog row whose description shares the most tokens with
// the display name. It returns nil, nil when nothing clears the threshold.
func (m *Mapper) Map(ctx context.Context, input domain.MappingInput) (*domain.MatchResult, error) {
	family := detectFamily(input.ModelName())
	if family == domain.FamilyUnknown {
		return nil, nil
	}

	models, err := m.catalog.FindModels(ctx, domain.CatalogQuery{Family: family})
	if err != nil {
		return nil, fmt.Errorf("v3 catalog query: %w", err)
	}

	want := tokens(input.ModelName())
	gb, hasCapacity := requestedCapacity(input)

	var (
		best      domain.MatchCandidate
		bestFound bool
	)
	for _, model := range models {
		score := overlap(want, tokens(model.Description))
		if score < m.threshold {
			continue
		}
		for _, c := range model.Capacities {
			if hasCapacity && !domain.CapacityMatches(c.Size, gb) {
				continue
			}
			cand := domain.MatchCandidate{Model: model, Capacity: c, Score: score, Strategy: domain.StrategyLegacy}
			if !bestFound || better(cand, best) {
				best, bestFound = cand, true
			}
		}
	}
	if !bestFound {
		return nil, nil
	}

	r := domain.NewSuccessResult(best, &domain.ExtractedFeatures{Family: family, StorageGB: gb}, []domain.MatchCandidate{best})
	r.Engine = EngineName
	return r, nil
}

func better(a, b domain.MatchCandidate) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Model.ID != b.Model.ID {
		return a.Model.ID < b.Model.ID
	}
	return a.Capacity.ID < b.Capacity.ID
}

func detectFamily(name string) domain.DeviceFamily {
	for _, f := range families {
		if lexicon.For(f).Marker.MatchString(name) {
			return f
		}
	}
	return domain.FamilyUnknown
}

func requestedCapacity(input domain.MappingInput) (int, bool) {
	if gb, ok := domain.ParseCapacityGB(input.Capacity()); ok {
		return gb, true
	}
	return domain.ParseCapacityGB(input.ModelName())
}

// tokens lowercases words and drops capacity tokens, which v3 matched
// separately.
func tokens(s string) map[string]bool {
	out := make(map[string]bool)
	for _, t := range tokenRE.FindAllString(strings.ToLower(s), -1) {
		if capacityRE.MatchString(t) || t == "gb" || t == "tb" {
			continue
		}
		out[t] = true
	}
	return out
}

// overlap is the Jaccard index of two token sets, rounded to two decimals.
func overlap(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range a {
		if b[t] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return math.Round(float64(inter)/float64(union)*100) / 100
}
