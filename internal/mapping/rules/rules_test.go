package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/mapping"
)

func newContext() *domain.MappingContext {
	return domain.NewMappingContext("test", nil)
}

func cand(modelID int64, description string, year int, capID int64, size string) domain.MatchCandidate {
	return domain.MatchCandidate{
		Model:    domain.CatalogModel{ID: modelID, Description: description, Year: year},
		Capacity: domain.CatalogCapacity{ID: capID, ModelID: modelID, Size: size, Active: true},
		Score:    0.9,
	}
}

func sizes(cands []domain.MatchCandidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Capacity.Size
	}
	return out
}

func descriptions(cands []domain.MatchCandidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Model.Description
	}
	return out
}

func TestCapacity_Exact(t *testing.T) {
	cands := []domain.MatchCandidate{
		cand(1, "iPhone 13 Pro", 2021, 1, "256 GB"),
		cand(1, "iPhone 13 Pro", 2021, 2, "512GB"),
		cand(1, "iPhone 13 Pro", 2021, 3, "1 TB"),
		cand(1, "iPhone 13 Pro", 2021, 4, "5120 GB"),
	}

	got := NewCapacity().Apply(cands, &domain.ExtractedFeatures{StorageGB: 512}, newContext())
	assert.Equal(t, []string{"512GB"}, sizes(got))

	got = NewCapacity().Apply(cands, &domain.ExtractedFeatures{StorageGB: 1024}, newContext())
	assert.Equal(t, []string{"1 TB"}, sizes(got))
}

func TestCapacity_NoNeighbourFallback(t *testing.T) {
	cands := []domain.MatchCandidate{
		cand(1, "iPhone 13 Pro", 2021, 1, "128 GB"),
		cand(1, "iPhone 13 Pro", 2021, 2, "256 GB"),
	}
	mctx := newContext()

	got := NewCapacity().Apply(cands, &domain.ExtractedFeatures{StorageGB: 512}, mctx)
	assert.Empty(t, got)
	assert.NotEmpty(t, mctx.Entries())
}

func TestCapacity_Applicable(t *testing.T) {
	assert.False(t, NewCapacity().Applicable(&domain.ExtractedFeatures{}))
	assert.True(t, NewCapacity().Applicable(&domain.ExtractedFeatures{StorageGB: 64}))
}

func TestVariant_Exclusivity(t *testing.T) {
	cands := []domain.MatchCandidate{
		cand(1, "iPhone 13", 2021, 1, "128 GB"),
		cand(2, "iPhone 13 Pro", 2021, 2, "128 GB"),
		cand(3, "iPhone 13 Pro Max", 2021, 3, "128 GB"),
		cand(4, "iPhone 13 mini", 2021, 4, "128 GB"),
	}
	rule := NewVariant(domain.FamilyIPhone)

	tests := []struct {
		variant string
		want    []string
	}{
		{"", []string{"iPhone 13"}},
		{"Pro", []string{"iPhone 13 Pro"}},
		{"Pro Max", []string{"iPhone 13 Pro Max"}},
		{"mini", []string{"iPhone 13 mini"}},
	}

	for _, tt := range tests {
		t.Run("variant "+tt.variant, func(t *testing.T) {
			f := &domain.ExtractedFeatures{Family: domain.FamilyIPhone, Variant: tt.variant}
			require.True(t, rule.Applicable(f))
			assert.Equal(t, tt.want, descriptions(rule.Apply(cands, f, newContext())))
		})
	}
}

func TestChip_SeparatesSiblings(t *testing.T) {
	cands := []domain.MatchCandidate{
		cand(1, "Mac mini (2023) M2 10-Core CPU A2816", 2023, 1, "512 GB"),
		cand(2, "Mac mini (2023) M2 Pro 12-Core CPU A2816", 2023, 2, "512 GB"),
		cand(3, "Mac mini A2816", 2023, 3, "512 GB"),
	}

	got := NewChip().Apply(cands, &domain.ExtractedFeatures{Chip: "M2"}, newContext())
	assert.Equal(t, []string{"Mac mini (2023) M2 10-Core CPU A2816"}, descriptions(got))

	got = NewChip().Apply(cands, &domain.ExtractedFeatures{Chip: "M2 Pro"}, newContext())
	assert.Equal(t, []string{"Mac mini (2023) M2 Pro 12-Core CPU A2816"}, descriptions(got))
}

func TestChip_IntelFamilyOnly(t *testing.T) {
	cands := []domain.MatchCandidate{
		cand(1, "MacBook Pro 13 Intel Core i5 2.0GHz Quad-Core", 2020, 1, "512 GB"),
		cand(2, "MacBook Pro 13 Intel Core i5 1.4GHz Quad-Core", 2020, 2, "512 GB"),
		cand(3, "MacBook Pro 13 Intel Core i7 2.3GHz Quad-Core", 2020, 3, "512 GB"),
		cand(4, "MacBook Pro 13 M1", 2020, 4, "512 GB"),
	}

	got := NewChip().Apply(cands, &domain.ExtractedFeatures{Chip: "Intel Core i5"}, newContext())
	assert.Len(t, got, 2)

	got = NewChip().Apply(cands, &domain.ExtractedFeatures{Chip: "Intel Core i5 2.0GHz 4-Core"}, newContext())
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].Model.ID)

	assert.False(t, NewChip().Applicable(&domain.ExtractedFeatures{Chip: "A15 Bionic"}))
}

func TestCores(t *testing.T) {
	cands := []domain.MatchCandidate{
		cand(1, "Mac mini M2 Pro 10-Core CPU 16-Core GPU", 2023, 1, "512 GB"),
		cand(2, "Mac mini M2 Pro 12-Core CPU 19-Core GPU", 2023, 2, "512 GB"),
		cand(3, "Mac mini M2 Pro", 2023, 3, "512 GB"),
	}

	got := NewCPUCores().Apply(cands, &domain.ExtractedFeatures{CPUCores: 12}, newContext())
	assert.Equal(t, []int64{2, 3}, modelIDs(got))

	got = NewGPUCores().Apply(cands, &domain.ExtractedFeatures{GPUCores: 16}, newContext())
	assert.Equal(t, []int64{1, 3}, modelIDs(got))

	assert.False(t, NewCPUCores().Applicable(&domain.ExtractedFeatures{GPUCores: 16}))
	assert.Equal(t, NameGPUCores, NewGPUCores().Name())
}

func TestScreenSize(t *testing.T) {
	cands := []domain.MatchCandidate{
		cand(1, "iPad Pro 11\" M4", 2024, 1, "256 GB"),
		cand(2, "iPad Pro 13 pulgadas M4", 2024, 2, "256 GB"),
		cand(3, "iPad Pro M4", 2024, 3, "256 GB"),
		cand(4, "iPad Pro 12.9 M2", 2022, 4, "256 GB"),
	}
	f := &domain.ExtractedFeatures{ScreenSize: 11}

	assert.Equal(t, []int64{1}, modelIDs(NewScreenSize(true).Apply(cands, f, newContext())))
	assert.Equal(t, []int64{1, 3}, modelIDs(NewScreenSize(false).Apply(cands, f, newContext())))

	f = &domain.ExtractedFeatures{ScreenSize: 12.9}
	assert.Equal(t, []int64{4}, modelIDs(NewScreenSize(true).Apply(cands, f, newContext())))
}

func TestScreenSize_OneDecimalPlace(t *testing.T) {
	cands := []domain.MatchCandidate{
		cand(1, "MacBook Air 13.3\" M1", 2020, 1, "256 GB"),
		cand(2, "MacBook Air 13\" M2", 2022, 2, "256 GB"),
	}

	got := NewScreenSize(true).Apply(cands, &domain.ExtractedFeatures{ScreenSize: 13.33}, newContext())
	assert.Equal(t, []int64{1}, modelIDs(got))

	got = NewScreenSize(true).Apply(cands, &domain.ExtractedFeatures{ScreenSize: 13}, newContext())
	assert.Equal(t, []int64{2}, modelIDs(got))
}

func TestScreenSize_SkipsInferredSizes(t *testing.T) {
	rule := NewScreenSize(false)

	assert.True(t, rule.Applicable(&domain.ExtractedFeatures{ScreenSize: 14}))
	assert.False(t, rule.Applicable(&domain.ExtractedFeatures{ScreenSize: 14.2, ScreenInferred: true}))
}

func TestScreenSizes(t *testing.T) {
	assert.Equal(t, []float64{13.3}, ScreenSizes("MacBook Air 13.3\" M1"))
	assert.Equal(t, []float64{12.9}, ScreenSizes("iPad Pro 12.9 M2"))
	assert.Empty(t, ScreenSizes("MacBook Pro Intel Core i5 2.0 GHz"))
	assert.Empty(t, ScreenSizes("iPhone 13 Pro 128 GB"))
}

func TestConnectivity(t *testing.T) {
	cands := []domain.MatchCandidate{
		cand(1, "iPad (10th generation) Wi-Fi", 2022, 1, "64 GB"),
		cand(2, "iPad (10th generation) Wi-Fi + Cellular", 2022, 2, "64 GB"),
		cand(3, "iPad (10th generation)", 2022, 3, "64 GB"),
	}

	wifi := &domain.ExtractedFeatures{Connectivity: domain.ConnectivityWiFi}
	assert.Equal(t, []int64{1, 3}, modelIDs(NewConnectivity().Apply(cands, wifi, newContext())))

	cell := &domain.ExtractedFeatures{Connectivity: domain.ConnectivityCellular}
	assert.Equal(t, []int64{2}, modelIDs(NewConnectivity().Apply(cands, cell, newContext())))

	assert.False(t, NewConnectivity().Applicable(&domain.ExtractedFeatures{}))
}

func TestYear(t *testing.T) {
	cands := []domain.MatchCandidate{
		cand(1, "iPhone 13", 2021, 1, "128 GB"),
		cand(2, "iPhone 13", 2022, 2, "128 GB"),
		cand(3, "iPhone 13", 0, 3, "128 GB"),
	}
	got := NewYear().Apply(cands, &domain.ExtractedFeatures{Year: 2021}, newContext())
	assert.Equal(t, []int64{1, 3}, modelIDs(got))
}

func TestChain_StopsAtFirstEmptyingRule(t *testing.T) {
	cands := []domain.MatchCandidate{
		cand(1, "iPhone 13 Pro", 2021, 1, "128 GB"),
		cand(1, "iPhone 13 Pro", 2021, 2, "256 GB"),
	}
	f := &domain.ExtractedFeatures{Family: domain.FamilyIPhone, Variant: "Pro", Year: 2021, StorageGB: 512}
	chain := NewChain(NewYear(), NewVariant(domain.FamilyIPhone), NewCapacity())

	out := chain.Apply(cands, f, newContext())
	assert.Empty(t, out.Survivors)
	assert.Equal(t, NameCapacity, out.EmptiedBy)

	f.StorageGB = 256
	out = chain.Apply(cands, f, newContext())
	require.Len(t, out.Survivors, 1)
	assert.Empty(t, out.EmptiedBy)
	assert.Equal(t, int64(2), out.Survivors[0].Capacity.ID)
}

func TestChain_SkipsInapplicableRules(t *testing.T) {
	cands := []domain.MatchCandidate{cand(1, "iPhone 13", 0, 1, "128 GB")}
	f := &domain.ExtractedFeatures{Family: domain.FamilyIPhone}
	chain := NewChain(NewYear(), NewCapacity(), NewChip())

	out := chain.Apply(cands, f, newContext())
	assert.Len(t, out.Survivors, 1)
}

func TestChain_Without(t *testing.T) {
	chain := NewChain(NewChip(), NewYear(), NewVariant(domain.FamilyMac), NewCapacity())

	assert.Equal(t, []string{NameChip, NameYear, NameVariant, NameCapacity}, chain.Names())
	assert.Equal(t, []string{NameChip, NameYear, NameVariant}, chain.Without(NameCapacity).Names())
	assert.Equal(t, []string{NameChip, NameYear, NameVariant, NameCapacity}, chain.Names(), "original chain untouched")
}

func TestRules_ImplementInterface(t *testing.T) {
	for _, r := range []mapping.Rule{
		NewCapacity(), NewChip(), NewConnectivity(), NewCPUCores(), NewGPUCores(),
		NewScreenSize(true), NewVariant(domain.FamilyIPad), NewYear(),
	} {
		assert.NotEmpty(t, r.Name())
	}
}

func modelIDs(cands []domain.MatchCandidate) []int64 {
	out := make([]int64, len(cands))
	for i, c := range cands {
		out[i] = c.Model.ID
	}
	return out
}
