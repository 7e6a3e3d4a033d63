package knowledge

import (
	"strings"

	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/mapping"
)

var iPhoneReleases = []release{
	{Generation: 7, Year: 2016, Chip: "A10 Fusion", Capacities: []int{32, 128, 256}},
	{Generation: 7, Variant: "Plus", Year: 2016, Chip: "A10 Fusion", Capacities: []int{32, 128, 256}},
	{Generation: 8, Year: 2017, Chip: "A11 Bionic", Capacities: []int{64, 128, 256}},
	{Generation: 8, Variant: "Plus", Year: 2017, Chip: "A11 Bionic", Capacities: []int{64, 128, 256}},
	{Generation: 10, Year: 2017, Chip: "A11 Bionic", Capacities: []int{64, 256}},
	{Generation: 10, Variant: "XR", Year: 2018, Chip: "A12 Bionic", Capacities: []int{64, 128, 256}},
	{Generation: 10, Variant: "XS", Year: 2018, Chip: "A12 Bionic", Capacities: []int{64, 256, 512}},
	{Generation: 10, Variant: "XS Max", Year: 2018, Chip: "A12 Bionic", Capacities: []int{64, 256, 512}},
	{Generation: 11, Year: 2019, Chip: "A13 Bionic", Capacities: []int{64, 128, 256}},
	{Generation: 11, Variant: "Pro", Year: 2019, Chip: "A13 Bionic", Capacities: []int{64, 256, 512}},
	{Generation: 11, Variant: "Pro Max", Year: 2019, Chip: "A13 Bionic", Capacities: []int{64, 256, 512}},
	{Generation: 12, Year: 2020, Chip: "A14 Bionic", Capacities: []int{64, 128, 256}},
	{Generation: 12, Variant: "mini", Year: 2020, Chip: "A14 Bionic", Capacities: []int{64, 128, 256}},
	{Generation: 12, Variant: "Pro", Year: 2020, Chip: "A14 Bionic", Capacities: []int{128, 256, 512}},
	{Generation: 12, Variant: "Pro Max", Year: 2020, Chip: "A14 Bionic", Capacities: []int{128, 256, 512}},
	{Generation: 13, Year: 2021, Chip: "A15 Bionic", Capacities: []int{128, 256, 512}},
	{Generation: 13, Variant: "mini", Year: 2021, Chip: "A15 Bionic", Capacities: []int{128, 256, 512}},
	{Generation: 13, Variant: "Pro", Year: 2021, Chip: "A15 Bionic", Capacities: []int{128, 256, 512, 1024}},
	{Generation: 13, Variant: "Pro Max", Year: 2021, Chip: "A15 Bionic", Capacities: []int{128, 256, 512, 1024}},
	{Generation: 14, Year: 2022, Chip: "A15 Bionic", Capacities: []int{128, 256, 512}},
	{Generation: 14, Variant: "Plus", Year: 2022, Chip: "A15 Bionic", Capacities: []int{128, 256, 512}},
	{Generation: 14, Variant: "Pro", Year: 2022, Chip: "A16 Bionic", Capacities: []int{128, 256, 512, 1024}},
	{Generation: 14, Variant: "Pro Max", Year: 2022, Chip: "A16 Bionic", Capacities: []int{128, 256, 512, 1024}},
	{Generation: 15, Year: 2023, Chip: "A16 Bionic", Capacities: []int{128, 256, 512}},
	{Generation: 15, Variant: "Plus", Year: 2023, Chip: "A16 Bionic", Capacities: []int{128, 256, 512}},
	{Generation: 15, Variant: "Pro", Year: 2023, Chip: "A17 Pro", Capacities: []int{128, 256, 512, 1024}},
	{Generation: 15, Variant: "Pro Max", Year: 2023, Chip: "A17 Pro", Capacities: []int{256, 512, 1024}},
	{Generation: 16, Year: 2024, Chip: "A18", Capacities: []int{128, 256, 512}},
	{Generation: 16, Variant: "Plus", Year: 2024, Chip: "A18", Capacities: []int{128, 256, 512}},
	{Generation: 16, Variant: "Pro", Year: 2024, Chip: "A18 Pro", Capacities: []int{128, 256, 512, 1024}},
	{Generation: 16, Variant: "Pro Max", Year: 2024, Chip: "A18 Pro", Capacities: []int{256, 512, 1024}},
}

var iPhoneSEReleases = []release{
	{Generation: 1, Variant: "SE", Year: 2016, Chip: "A9", Capacities: []int{16, 32, 64, 128}},
	{Generation: 2, Variant: "SE", Year: 2020, Chip: "A13 Bionic", Capacities: []int{64, 128, 256}},
	{Generation: 3, Variant: "SE", Year: 2022, Chip: "A15 Bionic", Capacities: []int{64, 128, 256}},
}

// IPhone is the iPhone knowledge base.
type IPhone struct{}

var _ mapping.KnowledgeBase = IPhone{}

// NewIPhone creates the iPhone knowledge base.
func NewIPhone() IPhone { return IPhone{} }

// Enrich fills year and chip from the release tables. The SE line is keyed
// by its ordinal generation, or by year when the ordinal is missing.
func (IPhone) Enrich(f *domain.ExtractedFeatures, mctx *domain.MappingContext) *domain.ExtractedFeatures {
	if f.Variant == "SE" {
		enrichSE(f, mctx)
		return finish(f)
	}
	if f.Generation == 0 {
		mctx.Debug("knowledge base: no generation, nothing to enrich")
		return f
	}

	r, ok, genKnown := lookup(iPhoneReleases, f.Generation, f.Variant)
	switch {
	case ok:
	case genKnown:
		mctx.Warn("variant %q not sold for iPhone generation %d (valid: %s)",
			displayVariant(f.Variant), f.Generation, strings.Join(validVariants(iPhoneReleases, f.Generation), ", "))
		r, _ = firstOfGeneration(iPhoneReleases, f.Generation)
	default:
		mctx.Info("knowledge base has no iPhone generation %d", f.Generation)
		return f
	}

	setYear(f, r.Year, "iPhone release table", mctx)
	setChip(f, r.Chip, "iPhone release table", mctx)
	return finish(f)
}

func enrichSE(f *domain.ExtractedFeatures, mctx *domain.MappingContext) {
	if f.Generation == 0 && f.Year != 0 {
		for _, r := range iPhoneSEReleases {
			if r.Year == f.Year {
				setGeneration(f, r.Generation, "SE year table", mctx)
				break
			}
		}
	}
	if f.Generation == 0 {
		mctx.Info("iPhone SE without generation or year")
		return
	}
	r, ok, _ := lookup(iPhoneSEReleases, f.Generation, "SE")
	if !ok {
		mctx.Info("knowledge base has no iPhone SE generation %d", f.Generation)
		return
	}
	setYear(f, r.Year, "SE release table", mctx)
	setChip(f, r.Chip, "SE release table", mctx)
}

// ExpectedCapacities returns the capacities sold for the generation/variant,
// falling back to the common iPhone range.
func (IPhone) ExpectedCapacities(f *domain.ExtractedFeatures) []int {
	table := iPhoneReleases
	if f.Variant == "SE" {
		table = iPhoneSEReleases
	}
	if r, ok, _ := lookup(table, f.Generation, f.Variant); ok {
		return sortedUnique(r.Capacities)
	}
	return []int{64, 128, 256, 512, 1024}
}
