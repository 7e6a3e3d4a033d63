package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/mapping"
)

func newContext() *domain.MappingContext {
	return domain.NewMappingContext("test", nil)
}

func TestIPhone_Enrich(t *testing.T) {
	tests := []struct {
		name    string
		in      domain.ExtractedFeatures
		year    int
		chip    string
		gen     int
		warning bool
	}{
		{"pro", domain.ExtractedFeatures{Family: domain.FamilyIPhone, Generation: 13, Variant: "Pro"}, 2021, "A15 Bionic", 13, false},
		{"base", domain.ExtractedFeatures{Family: domain.FamilyIPhone, Generation: 16}, 2024, "A18", 16, false},
		{"xr", domain.ExtractedFeatures{Family: domain.FamilyIPhone, Generation: 10, Variant: "XR"}, 2018, "A12 Bionic", 10, false},
		{"se by ordinal", domain.ExtractedFeatures{Family: domain.FamilyIPhone, Generation: 3, Variant: "SE"}, 2022, "A15 Bionic", 3, false},
		{"se by year", domain.ExtractedFeatures{Family: domain.FamilyIPhone, Variant: "SE", Year: 2020}, 2020, "A13 Bionic", 2, false},
		{"invalid variant", domain.ExtractedFeatures{Family: domain.FamilyIPhone, Generation: 13, Variant: "Plus"}, 2021, "A15 Bionic", 13, true},
		{"unknown generation", domain.ExtractedFeatures{Family: domain.FamilyIPhone, Generation: 19}, 0, "", 19, false},
		{"no generation", domain.ExtractedFeatures{Family: domain.FamilyIPhone}, 0, "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.in
			mctx := newContext()
			NewIPhone().Enrich(&f, mctx)

			assert.Equal(t, tt.year, f.Year)
			assert.Equal(t, tt.chip, f.Chip)
			assert.Equal(t, tt.gen, f.Generation)
			assert.Equal(t, tt.warning, hasLevel(mctx, domain.LogWarn))
		})
	}
}

func TestPixel_Enrich(t *testing.T) {
	f := domain.ExtractedFeatures{Family: domain.FamilyPixel, Generation: 7, Variant: "a"}
	NewPixel().Enrich(&f, newContext())
	assert.Equal(t, 2023, f.Year)
	assert.Equal(t, "Tensor G2", f.Chip)

	fold := domain.ExtractedFeatures{Family: domain.FamilyPixel, Variant: "Fold"}
	NewPixel().Enrich(&fold, newContext())
	assert.Equal(t, 2023, fold.Year)
	assert.Zero(t, fold.Generation)
}

func TestIPad_Enrich(t *testing.T) {
	t.Run("by generation", func(t *testing.T) {
		f := domain.ExtractedFeatures{Family: domain.FamilyIPad, Generation: 10}
		NewIPad().Enrich(&f, newContext())
		assert.Equal(t, 2022, f.Year)
		assert.Equal(t, "A14 Bionic", f.Chip)
	})

	t.Run("by chip", func(t *testing.T) {
		f := domain.ExtractedFeatures{Family: domain.FamilyIPad, Variant: "Air", Chip: "M2"}
		NewIPad().Enrich(&f, newContext())
		assert.Equal(t, 6, f.Generation)
		assert.Equal(t, 2024, f.Year)
		assert.Equal(t, "M2", f.Chip)
	})

	t.Run("pro screen class", func(t *testing.T) {
		f := domain.ExtractedFeatures{Family: domain.FamilyIPad, Variant: "Pro", Chip: "M4", ScreenSize: 13}
		NewIPad().Enrich(&f, newContext())
		assert.False(t, f.ScreenInferred)
		assert.Equal(t, 7, f.Generation)
		assert.Equal(t, 2024, f.Year)
	})

	t.Run("pro without screen keeps generation open", func(t *testing.T) {
		f := domain.ExtractedFeatures{Family: domain.FamilyIPad, Variant: "Pro", Chip: "M4"}
		NewIPad().Enrich(&f, newContext())
		assert.Zero(t, f.Generation)
		assert.Equal(t, 2024, f.Year)
		assert.Zero(t, f.ScreenSize)
	})
}

func TestMac_Enrich(t *testing.T) {
	t.Run("identifier fills series, chip and year", func(t *testing.T) {
		f := domain.ExtractedFeatures{Family: domain.FamilyMac, Identifier: "A2337"}
		NewMac().Enrich(&f, newContext())
		assert.Equal(t, "MacBook Air", f.Variant)
		assert.Equal(t, "M1", f.Chip)
		assert.Equal(t, 2020, f.Year)
		assert.Equal(t, 1, f.Generation)
		assert.InDelta(t, 13.3, f.ScreenSize, 0.01)
		assert.True(t, f.ScreenInferred)
	})

	t.Run("shared identifier leaves chip open", func(t *testing.T) {
		f := domain.ExtractedFeatures{Family: domain.FamilyMac, Identifier: "A2816"}
		NewMac().Enrich(&f, newContext())
		assert.Equal(t, "Mac mini", f.Variant)
		assert.Empty(t, f.Chip)
		assert.Equal(t, 2023, f.Year)
	})

	t.Run("series chip table", func(t *testing.T) {
		f := domain.ExtractedFeatures{Family: domain.FamilyMac, Variant: "MacBook Pro", Chip: "M1 Pro"}
		NewMac().Enrich(&f, newContext())
		assert.Equal(t, 2021, f.Year)
		assert.Equal(t, 1, f.Generation)
	})

	t.Run("chip family fallback", func(t *testing.T) {
		f := domain.ExtractedFeatures{Family: domain.FamilyMac, Variant: "Mac mini", Chip: "M4 Pro"}
		NewMac().Enrich(&f, newContext())
		assert.Equal(t, 2024, f.Year)
	})

	t.Run("mismatched series warns and keeps string", func(t *testing.T) {
		f := domain.ExtractedFeatures{Family: domain.FamilyMac, Variant: "iMac", Identifier: "A2816", Chip: "M2"}
		mctx := newContext()
		NewMac().Enrich(&f, mctx)
		assert.Equal(t, "iMac", f.Variant)
		assert.True(t, hasLevel(mctx, domain.LogWarn))
	})
}

func TestEnrich_NeverOverwrites(t *testing.T) {
	f := domain.ExtractedFeatures{Family: domain.FamilyIPhone, Generation: 13, Variant: "Pro", Year: 2030, Chip: "Custom"}
	NewIPhone().Enrich(&f, newContext())
	assert.Equal(t, 2030, f.Year)
	assert.Equal(t, "Custom", f.Chip)
}

func TestEnrich_Idempotent(t *testing.T) {
	kbs := []struct {
		kb mapping.KnowledgeBase
		f  domain.ExtractedFeatures
	}{
		{NewIPhone(), domain.ExtractedFeatures{Family: domain.FamilyIPhone, Generation: 13, Variant: "Pro", StorageGB: 128}},
		{NewIPhone(), domain.ExtractedFeatures{Family: domain.FamilyIPhone, Variant: "SE", Year: 2022}},
		{NewPixel(), domain.ExtractedFeatures{Family: domain.FamilyPixel, Generation: 8, Variant: "Pro"}},
		{NewIPad(), domain.ExtractedFeatures{Family: domain.FamilyIPad, Variant: "mini", Generation: 6}},
		{NewMac(), domain.ExtractedFeatures{Family: domain.FamilyMac, Identifier: "A2779", Chip: "M2 Max"}},
	}

	for _, tt := range kbs {
		t.Run(tt.f.Summary(), func(t *testing.T) {
			f := tt.f
			once := tt.kb.Enrich(&f, newContext()).Clone()
			twice := tt.kb.Enrich(&f, newContext())
			assert.Equal(t, once, twice)
		})
	}
}

func TestEnrich_UpdatesConfidence(t *testing.T) {
	f := domain.ExtractedFeatures{Family: domain.FamilyIPhone, Generation: 13, Variant: "Pro", StorageGB: 128}
	f.ComputeConfidence(domain.WeightsFor(f.Family))
	before := f.Confidence

	NewIPhone().Enrich(&f, newContext())
	assert.Greater(t, f.Confidence, before)
	assert.InDelta(t, 1.0, f.Confidence, 0.001)
}

func TestExpectedCapacities(t *testing.T) {
	assert.Equal(t, []int{128, 256, 512, 1024},
		NewIPhone().ExpectedCapacities(&domain.ExtractedFeatures{Generation: 13, Variant: "Pro"}))
	assert.Equal(t, []int{64, 128, 256, 512, 1024},
		NewIPhone().ExpectedCapacities(&domain.ExtractedFeatures{Generation: 30}))
	assert.Equal(t, []int{256, 512, 1024, 2048, 4096, 8192},
		NewMac().ExpectedCapacities(&domain.ExtractedFeatures{Variant: "Mac mini"}))
	assert.Equal(t, []int{256, 512},
		NewPixel().ExpectedCapacities(&domain.ExtractedFeatures{Variant: "Fold"}))
	assert.Equal(t, []int{64, 256},
		NewIPad().ExpectedCapacities(&domain.ExtractedFeatures{Generation: 10}))
}

func hasLevel(mctx *domain.MappingContext, level domain.LogLevel) bool {
	for _, e := range mctx.Entries() {
		if e.Level == level {
			return true
		}
	}
	return false
}
