package knowledge

import (
	"strings"

	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/mapping"
	"github.com/custodia-labs/devmap/internal/mapping/chip"
)

type macChip struct {
	Name string
	Year int
}

// macIdentity is what an identifier code says about a Mac. One code is
// frequently shared by sibling chip configurations.
type macIdentity struct {
	Series string
	Screen float64
	Chips  []macChip
}

var macIdentifiers = map[string]macIdentity{
	"A2348": {Series: "Mac mini", Chips: []macChip{{"M1", 2020}}},
	"A2686": {Series: "Mac mini", Chips: []macChip{{"M2", 2023}}},
	"A2816": {Series: "Mac mini", Chips: []macChip{{"M2", 2023}, {"M2 Pro", 2023}}},
	"A3238": {Series: "Mac mini", Chips: []macChip{{"M4", 2024}, {"M4 Pro", 2024}}},
	"A2179": {Series: "MacBook Air", Screen: 13.3, Chips: []macChip{{"Intel Core i3", 2020}, {"Intel Core i5", 2020}, {"Intel Core i7", 2020}}},
	"A2337": {Series: "MacBook Air", Screen: 13.3, Chips: []macChip{{"M1", 2020}}},
	"A2681": {Series: "MacBook Air", Screen: 13.6, Chips: []macChip{{"M2", 2022}}},
	"A2941": {Series: "MacBook Air", Screen: 15.3, Chips: []macChip{{"M2", 2023}}},
	"A3113": {Series: "MacBook Air", Screen: 13.6, Chips: []macChip{{"M3", 2024}}},
	"A3114": {Series: "MacBook Air", Screen: 15.3, Chips: []macChip{{"M3", 2024}}},
	"A2141": {Series: "MacBook Pro", Screen: 16, Chips: []macChip{{"Intel Core i7", 2019}, {"Intel Core i9", 2019}}},
	"A2251": {Series: "MacBook Pro", Screen: 13.3, Chips: []macChip{{"Intel Core i5", 2020}, {"Intel Core i7", 2020}}},
	"A2338": {Series: "MacBook Pro", Screen: 13.3, Chips: []macChip{{"M1", 2020}, {"M2", 2022}}},
	"A2442": {Series: "MacBook Pro", Screen: 14.2, Chips: []macChip{{"M1 Pro", 2021}, {"M1 Max", 2021}}},
	"A2485": {Series: "MacBook Pro", Screen: 16.2, Chips: []macChip{{"M1 Pro", 2021}, {"M1 Max", 2021}}},
	"A2779": {Series: "MacBook Pro", Screen: 14.2, Chips: []macChip{{"M2 Pro", 2023}, {"M2 Max", 2023}}},
	"A2780": {Series: "MacBook Pro", Screen: 16.2, Chips: []macChip{{"M2 Pro", 2023}, {"M2 Max", 2023}}},
	"A2918": {Series: "MacBook Pro", Screen: 14.2, Chips: []macChip{{"M3", 2023}}},
	"A2992": {Series: "MacBook Pro", Screen: 14.2, Chips: []macChip{{"M3 Pro", 2023}, {"M3 Max", 2023}}},
	"A2991": {Series: "MacBook Pro", Screen: 16.2, Chips: []macChip{{"M3 Pro", 2023}, {"M3 Max", 2023}}},
	"A2438": {Series: "iMac", Screen: 24, Chips: []macChip{{"M1", 2021}}},
	"A2873": {Series: "iMac", Screen: 24, Chips: []macChip{{"M3", 2023}}},
	"A2615": {Series: "Mac Studio", Chips: []macChip{{"M1 Max", 2022}, {"M1 Ultra", 2022}}},
	"A2901": {Series: "Mac Studio", Chips: []macChip{{"M2 Max", 2023}, {"M2 Ultra", 2023}}},
}

// macSeriesYears maps (series, chip) to the release year. A chip family
// entry ("M2") applies to every sub-variant without its own entry.
var macSeriesYears = map[string]map[string]int{
	"Mac mini":    {"M1": 2020, "M2": 2023, "M4": 2024},
	"MacBook Air": {"M1": 2020, "M2": 2022, "M3": 2024, "M4": 2025},
	"MacBook Pro": {"M1": 2020, "M1 Pro": 2021, "M1 Max": 2021, "M2": 2022, "M2 Pro": 2023, "M2 Max": 2023, "M3": 2023, "M4": 2024},
	"iMac":        {"M1": 2021, "M3": 2023, "M4": 2024},
	"Mac Studio":  {"M1": 2022, "M2": 2023, "M4 Max": 2025, "M3 Ultra": 2025},
	"Mac Pro":     {"M2": 2023},
}

var macSeriesCapacities = map[string][]int{
	"Mac mini":    {256, 512, 1024, 2048, 4096, 8192},
	"MacBook Air": {256, 512, 1024, 2048},
	"MacBook Pro": {256, 512, 1024, 2048, 4096, 8192},
	"MacBook":     {256, 512},
	"iMac":        {256, 512, 1024, 2048},
	"Mac Studio":  {512, 1024, 2048, 4096, 8192},
	"Mac Pro":     {1024, 2048, 4096, 8192},
}

// Mac is the Mac knowledge base.
type Mac struct{}

var _ mapping.KnowledgeBase = Mac{}

// NewMac creates the Mac knowledge base.
func NewMac() Mac { return Mac{} }

// Enrich resolves series, chip and year from the identifier code, then the
// year from the (series, chip) table, then the generation from the chip.
func (Mac) Enrich(f *domain.ExtractedFeatures, mctx *domain.MappingContext) *domain.ExtractedFeatures {
	if id, ok := macIdentifiers[f.Identifier]; ok {
		enrichFromIdentifier(f, id, mctx)
	} else if f.Identifier != "" {
		mctx.Info("identifier %s not in the Mac identifier table", f.Identifier)
	}

	sig, hasChip := chip.Parse(f.Chip)
	if f.Year == 0 && hasChip && sig.Silicon {
		if years, ok := macSeriesYears[f.Variant]; ok {
			year, found := years[sig.String()]
			if !found {
				year = years[sig.Family]
			}
			setYear(f, year, f.Variant+" chip table", mctx)
		}
	}
	if hasChip && sig.Silicon {
		setGeneration(f, sig.Generation(), "chip", mctx)
	}
	return finish(f)
}

func enrichFromIdentifier(f *domain.ExtractedFeatures, id macIdentity, mctx *domain.MappingContext) {
	source := "identifier " + f.Identifier
	if f.Variant != "" && f.Variant != id.Series {
		mctx.Warn("identifier %s belongs to %s, string says %s", f.Identifier, id.Series, f.Variant)
	}
	setVariant(f, id.Series, source, mctx)

	if f.ScreenSize == 0 && id.Screen > 0 {
		f.ScreenSize = id.Screen
		f.ScreenInferred = true
		f.AddNote("screen: %.1f in (%s)", id.Screen, source)
	}

	if f.Chip == "" {
		if len(id.Chips) == 1 {
			setChip(f, id.Chips[0].Name, source, mctx)
			setYear(f, id.Chips[0].Year, source, mctx)
			return
		}
		names := make([]string, len(id.Chips))
		for i, c := range id.Chips {
			names[i] = c.Name
		}
		mctx.Debug("identifier %s is shared by %s; chip left open", f.Identifier, strings.Join(names, ", "))
		if year, same := commonYear(id.Chips); same {
			setYear(f, year, source, mctx)
		}
		return
	}

	want, _ := chip.Parse(f.Chip)
	for _, c := range id.Chips {
		if got, ok := chip.Parse(c.Name); ok && got.Family == want.Family && (!want.Silicon || got.Variant == want.Variant) {
			setYear(f, c.Year, source, mctx)
			return
		}
	}
	mctx.Warn("identifier %s is not listed with chip %s", f.Identifier, f.Chip)
}

func commonYear(chips []macChip) (int, bool) {
	if len(chips) == 0 {
		return 0, false
	}
	for _, c := range chips[1:] {
		if c.Year != chips[0].Year {
			return 0, false
		}
	}
	return chips[0].Year, true
}

// ExpectedCapacities returns the SSD options of the series.
func (Mac) ExpectedCapacities(f *domain.ExtractedFeatures) []int {
	if sizes, ok := macSeriesCapacities[f.Variant]; ok {
		return sortedUnique(sizes)
	}
	return []int{256, 512, 1024, 2048, 4096, 8192}
}
