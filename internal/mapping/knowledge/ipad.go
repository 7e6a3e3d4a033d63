package knowledge

import (
	"strings"

	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/mapping"
)

// iPadReleases is keyed by (variant, generation[, screen]). iPad Pro
// generations are counted per screen class.
var iPadReleases = []release{
	{Generation: 5, Year: 2017, Chip: "A9", Capacities: []int{32, 128}},
	{Generation: 6, Year: 2018, Chip: "A10 Fusion", Capacities: []int{32, 128}},
	{Generation: 7, Year: 2019, Chip: "A10 Fusion", Capacities: []int{32, 128}},
	{Generation: 8, Year: 2020, Chip: "A12 Bionic", Capacities: []int{32, 128}},
	{Generation: 9, Year: 2021, Chip: "A13 Bionic", Capacities: []int{64, 256}},
	{Generation: 10, Year: 2022, Chip: "A14 Bionic", Capacities: []int{64, 256}},
	{Generation: 11, Year: 2025, Chip: "A16", Capacities: []int{128, 256, 512}},
	{Generation: 3, Variant: "Air", Year: 2019, Chip: "A12 Bionic", Capacities: []int{64, 256}},
	{Generation: 4, Variant: "Air", Year: 2020, Chip: "A14 Bionic", Capacities: []int{64, 256}},
	{Generation: 5, Variant: "Air", Year: 2022, Chip: "M1", Capacities: []int{64, 256}},
	{Generation: 6, Variant: "Air", Year: 2024, Chip: "M2", Capacities: []int{128, 256, 512, 1024}},
	{Generation: 7, Variant: "Air", Year: 2025, Chip: "M3", Capacities: []int{128, 256, 512, 1024}},
	{Generation: 5, Variant: "mini", Year: 2019, Chip: "A12 Bionic", Capacities: []int{64, 256}},
	{Generation: 6, Variant: "mini", Year: 2021, Chip: "A15 Bionic", Capacities: []int{64, 256}},
	{Generation: 7, Variant: "mini", Year: 2024, Chip: "A17 Pro", Capacities: []int{128, 256, 512}},
	{Generation: 1, Variant: "Pro", Screen: 11, Year: 2018, Chip: "A12X Bionic", Capacities: []int{64, 256, 512, 1024}},
	{Generation: 2, Variant: "Pro", Screen: 11, Year: 2020, Chip: "A12Z Bionic", Capacities: []int{128, 256, 512, 1024}},
	{Generation: 3, Variant: "Pro", Screen: 11, Year: 2021, Chip: "M1", Capacities: []int{128, 256, 512, 1024, 2048}},
	{Generation: 4, Variant: "Pro", Screen: 11, Year: 2022, Chip: "M2", Capacities: []int{128, 256, 512, 1024, 2048}},
	{Generation: 5, Variant: "Pro", Screen: 11, Year: 2024, Chip: "M4", Capacities: []int{256, 512, 1024, 2048}},
	{Generation: 3, Variant: "Pro", Screen: 12.9, Year: 2018, Chip: "A12X Bionic", Capacities: []int{64, 256, 512, 1024}},
	{Generation: 4, Variant: "Pro", Screen: 12.9, Year: 2020, Chip: "A12Z Bionic", Capacities: []int{128, 256, 512, 1024}},
	{Generation: 5, Variant: "Pro", Screen: 12.9, Year: 2021, Chip: "M1", Capacities: []int{128, 256, 512, 1024, 2048}},
	{Generation: 6, Variant: "Pro", Screen: 12.9, Year: 2022, Chip: "M2", Capacities: []int{128, 256, 512, 1024, 2048}},
	{Generation: 7, Variant: "Pro", Screen: 13, Year: 2024, Chip: "M4", Capacities: []int{256, 512, 1024, 2048}},
}

// IPad is the iPad knowledge base.
type IPad struct{}

var _ mapping.KnowledgeBase = IPad{}

// NewIPad creates the iPad knowledge base.
func NewIPad() IPad { return IPad{} }

// Enrich resolves the release row by generation, or by chip when the vendor
// string names the chip instead of the generation ("iPad Air (M2)").
func (IPad) Enrich(f *domain.ExtractedFeatures, mctx *domain.MappingContext) *domain.ExtractedFeatures {
	r, unique, ok := findIPadRelease(f)
	if !ok {
		if f.Generation == 0 && f.Chip == "" {
			mctx.Debug("knowledge base: no generation or chip, nothing to enrich")
		} else {
			mctx.Info("knowledge base has no iPad %s row for generation %d chip %q",
				displayVariant(f.Variant), f.Generation, f.Chip)
		}
		return f
	}

	setGeneration(f, r.Generation, "iPad chip table", mctx)
	setYear(f, r.Year, "iPad release table", mctx)
	setChip(f, r.Chip, "iPad release table", mctx)
	if f.ScreenSize == 0 && r.Screen > 0 && unique {
		f.ScreenSize = r.Screen
		f.ScreenInferred = true
		f.AddNote("screen: %.1f in (iPad release table)", r.Screen)
	}
	return finish(f)
}

// findIPadRelease returns the matching row, whether it was the only
// candidate, and whether any row matched.
func findIPadRelease(f *domain.ExtractedFeatures) (release, bool, bool) {
	var matches []release
	for _, r := range iPadReleases {
		if !strings.EqualFold(r.Variant, f.Variant) {
			continue
		}
		switch {
		case f.Generation > 0 && r.Generation != f.Generation:
			continue
		case f.Generation == 0 && (f.Chip == "" || !strings.EqualFold(firstWord(r.Chip), firstWord(f.Chip))):
			continue
		}
		if f.ScreenSize > 0 && r.Screen > 0 && !sameScreenClass(f.ScreenSize, r.Screen) {
			continue
		}
		matches = append(matches, r)
	}
	if len(matches) == 0 {
		return release{}, false, false
	}
	// Several Pro screen classes share a generation number; without a size
	// the row is only trusted when all candidates agree on the year.
	r := matches[0]
	for _, m := range matches[1:] {
		if m.Year != r.Year {
			return release{}, false, false
		}
		if m.Generation != r.Generation {
			r.Generation = 0
		}
	}
	return r, len(matches) == 1, true
}

func sameScreenClass(extracted, class float64) bool {
	diff := extracted - class
	return diff > -0.6 && diff < 0.6
}

func firstWord(s string) string {
	if i := strings.IndexByte(s, ' '); i > 0 {
		return s[:i]
	}
	return s
}

// ExpectedCapacities returns the capacities sold for the iPad line.
func (IPad) ExpectedCapacities(f *domain.ExtractedFeatures) []int {
	if r, _, ok := findIPadRelease(f); ok {
		return sortedUnique(r.Capacities)
	}
	return []int{64, 128, 256, 512, 1024}
}
