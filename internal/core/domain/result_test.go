package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSuccessResult(t *testing.T) {
	best := MatchCandidate{
		Model:    CatalogModel{ID: 3, Description: "iPhone 13 Pro"},
		Capacity: CatalogCapacity{ID: 30, Size: "128 GB"},
		Score:    0.95,
		Strategy: StrategyGenerationYear,
	}
	f := &ExtractedFeatures{Family: FamilyIPhone}

	r := NewSuccessResult(best, f, []MatchCandidate{best})

	assert.True(t, r.Succeeded())
	assert.Equal(t, int64(3), r.ModelID)
	assert.Equal(t, int64(30), r.CapacityID)
	assert.Equal(t, "iPhone 13 Pro", r.ModelDescription)
	assert.Equal(t, "128 GB", r.CapacitySize)
	assert.InDelta(t, 0.95, r.Confidence, 0.001)
	assert.Equal(t, StrategyGenerationYear, r.Strategy)
	assert.Same(t, f, r.Features)
	assert.False(t, r.NeedsCapacityCreation())
}

func TestNewNoMatchResult(t *testing.T) {
	r := NewNoMatchResult("nothing", nil, nil)

	assert.False(t, r.Succeeded())
	assert.Equal(t, StatusNoMatch, r.Status)
	assert.Equal(t, ErrorCodeNoMatch, r.ErrorCode)
	assert.Equal(t, "nothing", r.ErrorMessage)

	r.Suggestion = &CapacitySuggestion{StorageGB: 512}
	assert.True(t, r.NeedsCapacityCreation())
}

func TestNewErrorResult(t *testing.T) {
	r := NewErrorResult(ErrorCodeNoEngine, "no engine")
	assert.Equal(t, StatusError, r.Status)
	assert.Equal(t, ErrorCodeNoEngine, r.ErrorCode)
	assert.Equal(t, "error", r.Status.String())
}

func TestMatchResult_NilSafe(t *testing.T) {
	var r *MatchResult
	assert.False(t, r.Succeeded())
	assert.False(t, r.NeedsCapacityCreation())
}

func TestSortCandidates_TieBreak(t *testing.T) {
	cands := []MatchCandidate{
		{Model: CatalogModel{ID: 9}, Capacity: CatalogCapacity{ID: 91}, Score: 0.8},
		{Model: CatalogModel{ID: 5}, Capacity: CatalogCapacity{ID: 52}, Score: 0.9},
		{Model: CatalogModel{ID: 5}, Capacity: CatalogCapacity{ID: 51}, Score: 0.9},
		{Model: CatalogModel{ID: 2}, Capacity: CatalogCapacity{ID: 21}, Score: 0.9},
	}

	SortCandidates(cands)

	got := make([]int64, len(cands))
	for i, c := range cands {
		got[i] = c.Capacity.ID
	}
	assert.Equal(t, []int64{21, 51, 52, 91}, got)
	assert.Equal(t, "identifier_exact", StrategyIdentifierExact.String())
}

func TestCatalogModel(t *testing.T) {
	m := CatalogModel{
		Year: 2023,
		Capacities: []CatalogCapacity{
			{Size: "256 GB"}, {Size: "1 TB"},
		},
	}
	assert.True(t, m.HasYear())
	assert.Equal(t, []string{"256 GB", "1 TB"}, m.CapacityLabels())
	assert.False(t, CatalogModel{}.HasYear())
	assert.Empty(t, CatalogModel{}.CapacityLabels())
}

func TestBatchSummary_Add(t *testing.T) {
	var s BatchSummary
	s.Add(&MatchResult{Status: StatusSuccess})
	s.Add(NewNoMatchResult("none", nil, nil))
	s.Add(&MatchResult{Status: StatusNoMatch, Suggestion: &CapacitySuggestion{}})
	s.Add(NewErrorResult(ErrorCodeNoEngine, "no engine"))
	s.Add(nil)

	assert.Equal(t, BatchSummary{Total: 5, Succeeded: 1, NoMatch: 2, CapacitySuggested: 1, Errors: 2}, s)
}
