package knowledge

import (
	"strings"

	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/mapping"
)

var pixelReleases = []release{
	{Generation: 1, Year: 2016, Chip: "Snapdragon 821", Capacities: []int{32, 128}},
	{Generation: 1, Variant: "XL", Year: 2016, Chip: "Snapdragon 821", Capacities: []int{32, 128}},
	{Generation: 2, Year: 2017, Chip: "Snapdragon 835", Capacities: []int{64, 128}},
	{Generation: 2, Variant: "XL", Year: 2017, Chip: "Snapdragon 835", Capacities: []int{64, 128}},
	{Generation: 3, Year: 2018, Chip: "Snapdragon 845", Capacities: []int{64, 128}},
	{Generation: 3, Variant: "XL", Year: 2018, Chip: "Snapdragon 845", Capacities: []int{64, 128}},
	{Generation: 3, Variant: "a", Year: 2019, Chip: "Snapdragon 670", Capacities: []int{64}},
	{Generation: 4, Year: 2019, Chip: "Snapdragon 855", Capacities: []int{64, 128}},
	{Generation: 4, Variant: "XL", Year: 2019, Chip: "Snapdragon 855", Capacities: []int{64, 128}},
	{Generation: 4, Variant: "a", Year: 2020, Chip: "Snapdragon 730G", Capacities: []int{128}},
	{Generation: 5, Year: 2020, Chip: "Snapdragon 765G", Capacities: []int{128}},
	{Generation: 5, Variant: "a", Year: 2021, Chip: "Snapdragon 765G", Capacities: []int{128}},
	{Generation: 6, Year: 2021, Chip: "Tensor", Capacities: []int{128, 256}},
	{Generation: 6, Variant: "Pro", Year: 2021, Chip: "Tensor", Capacities: []int{128, 256, 512}},
	{Generation: 6, Variant: "a", Year: 2022, Chip: "Tensor", Capacities: []int{128}},
	{Generation: 7, Year: 2022, Chip: "Tensor G2", Capacities: []int{128, 256}},
	{Generation: 7, Variant: "Pro", Year: 2022, Chip: "Tensor G2", Capacities: []int{128, 256, 512}},
	{Generation: 7, Variant: "a", Year: 2023, Chip: "Tensor G2", Capacities: []int{128}},
	{Generation: 8, Year: 2023, Chip: "Tensor G3", Capacities: []int{128, 256}},
	{Generation: 8, Variant: "Pro", Year: 2023, Chip: "Tensor G3", Capacities: []int{128, 256, 512, 1024}},
	{Generation: 8, Variant: "a", Year: 2024, Chip: "Tensor G3", Capacities: []int{128, 256}},
	{Generation: 9, Year: 2024, Chip: "Tensor G4", Capacities: []int{128, 256}},
	{Generation: 9, Variant: "Pro", Year: 2024, Chip: "Tensor G4", Capacities: []int{128, 256, 512, 1024}},
	{Generation: 9, Variant: "Pro XL", Year: 2024, Chip: "Tensor G4", Capacities: []int{128, 256, 512, 1024}},
	{Generation: 9, Variant: "Pro Fold", Year: 2024, Chip: "Tensor G4", Capacities: []int{256, 512}},
	{Generation: 9, Variant: "a", Year: 2025, Chip: "Tensor G4", Capacities: []int{128, 256}},
}

// Lines identified only by a keyword, with no generation number.
var pixelKeywordLines = map[string]release{
	"Fold": {Variant: "Fold", Year: 2023, Chip: "Tensor G2", Capacities: []int{256, 512}},
}

// Pixel is the Google Pixel knowledge base.
type Pixel struct{}

var _ mapping.KnowledgeBase = Pixel{}

// NewPixel creates the Pixel knowledge base.
func NewPixel() Pixel { return Pixel{} }

// Enrich fills year and chip. Keyword-only lines are looked up by keyword.
func (Pixel) Enrich(f *domain.ExtractedFeatures, mctx *domain.MappingContext) *domain.ExtractedFeatures {
	if f.Generation == 0 {
		r, ok := pixelKeywordLines[f.Variant]
		if !ok {
			mctx.Debug("knowledge base: no generation, nothing to enrich")
			return f
		}
		setYear(f, r.Year, "Pixel "+f.Variant+" keyword table", mctx)
		setChip(f, r.Chip, "Pixel "+f.Variant+" keyword table", mctx)
		return finish(f)
	}

	r, ok, genKnown := lookup(pixelReleases, f.Generation, f.Variant)
	switch {
	case ok:
	case genKnown:
		mctx.Warn("variant %q not sold for Pixel generation %d (valid: %s)",
			displayVariant(f.Variant), f.Generation, strings.Join(validVariants(pixelReleases, f.Generation), ", "))
		r, _ = firstOfGeneration(pixelReleases, f.Generation)
	default:
		mctx.Info("knowledge base has no Pixel generation %d", f.Generation)
		return f
	}

	setYear(f, r.Year, "Pixel release table", mctx)
	setChip(f, r.Chip, "Pixel release table", mctx)
	return finish(f)
}

// ExpectedCapacities returns the capacities sold for the line.
func (Pixel) ExpectedCapacities(f *domain.ExtractedFeatures) []int {
	if f.Generation == 0 {
		if r, ok := pixelKeywordLines[f.Variant]; ok {
			return sortedUnique(r.Capacities)
		}
	}
	if r, ok, _ := lookup(pixelReleases, f.Generation, f.Variant); ok {
		return sortedUnique(r.Capacities)
	}
	return []int{128, 256, 512}
}
