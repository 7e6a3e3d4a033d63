package domain

import "sort"

// Strategy names the matcher that produced a candidate.
type Strategy string

// Matcher strategies in priority order.
const (
	StrategyNone            Strategy = ""
	StrategyIdentifierExact Strategy = "identifier_exact"
	StrategyNameExact       Strategy = "name_exact"
	StrategyGenerationYear  Strategy = "generation_year"
	StrategyLegacy          Strategy = "v3_legacy"
)

// String returns the string representation.
func (s Strategy) String() string {
	return string(s)
}

// MatchCandidate is one (catalog model, catalog capacity) pair with its score.
type MatchCandidate struct {
	// Model is the catalog model row.
	Model CatalogModel

	// Capacity is the catalog capacity row. Zero-valued for model-only
	// candidates built while looking for a capacity-creation suggestion.
	Capacity CatalogCapacity

	// Score is the match score, 0.0-1.0.
	Score float64

	// Strategy is the matcher that produced the candidate.
	Strategy Strategy

	// Details holds the score contributions for audit.
	Details map[string]any
}

// Description returns the catalog model description.
func (c MatchCandidate) Description() string {
	return c.Model.Description
}

// SortCandidates orders candidates by score descending. Ties are broken by
// lowest model id, then lowest capacity id, so the order never depends on
// catalog row order.
func SortCandidates(cands []MatchCandidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Model.ID != b.Model.ID {
			return a.Model.ID < b.Model.ID
		}
		return a.Capacity.ID < b.Capacity.ID
	})
}
