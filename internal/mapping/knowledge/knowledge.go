// Package knowledge holds the hand-maintained product-generation tables of
// each family. Enrichment fills release year, chip and related facts that
// vendor strings never state; it never overwrites a populated field, so
// enriching twice is a no-op.
package knowledge

import (
	"sort"
	"strings"

	"github.com/custodia-labs/devmap/internal/core/domain"
)

// release is one (generation, variant) row of a family table.
type release struct {
	Generation int
	Variant    string
	Year       int
	Chip       string
	Screen     float64
	Capacities []int
}

func setYear(f *domain.ExtractedFeatures, year int, source string, mctx *domain.MappingContext) {
	if f.Year != 0 || year == 0 {
		return
	}
	f.Year = year
	f.AddNote("year: %d (%s)", year, source)
	mctx.Debug("knowledge base: year %d from %s", year, source)
}

func setChip(f *domain.ExtractedFeatures, chip, source string, mctx *domain.MappingContext) {
	if f.Chip != "" || chip == "" {
		return
	}
	f.Chip = chip
	f.AddNote("chip: %s (%s)", chip, source)
	mctx.Debug("knowledge base: chip %s from %s", chip, source)
}

func setGeneration(f *domain.ExtractedFeatures, gen int, source string, mctx *domain.MappingContext) {
	if f.Generation != 0 || gen == 0 {
		return
	}
	f.Generation = gen
	f.AddNote("generation: %d (%s)", gen, source)
	mctx.Debug("knowledge base: generation %d from %s", gen, source)
}

func setVariant(f *domain.ExtractedFeatures, variant, source string, mctx *domain.MappingContext) {
	if f.Variant != "" || variant == "" {
		return
	}
	f.Variant = variant
	f.AddNote("variant: %s (%s)", variant, source)
	mctx.Debug("knowledge base: variant %s from %s", variant, source)
}

// lookup returns the row for (generation, variant) and whether the
// generation exists at all, so callers can warn about invalid variants.
func lookup(table []release, gen int, variant string) (release, bool, bool) {
	genKnown := false
	for _, r := range table {
		if r.Generation != gen {
			continue
		}
		genKnown = true
		if strings.EqualFold(r.Variant, variant) {
			return r, true, true
		}
	}
	return release{}, false, genKnown
}

// validVariants lists the variants sold for a generation.
func validVariants(table []release, gen int) []string {
	var out []string
	for _, r := range table {
		if r.Generation == gen {
			out = append(out, displayVariant(r.Variant))
		}
	}
	return out
}

// firstOfGeneration returns the earliest row of a generation.
func firstOfGeneration(table []release, gen int) (release, bool) {
	for _, r := range table {
		if r.Generation == gen {
			return r, true
		}
	}
	return release{}, false
}

func displayVariant(v string) string {
	if v == "" {
		return "base"
	}
	return v
}

func sortedUnique(sizes []int) []int {
	seen := make(map[int]bool, len(sizes))
	out := make([]int, 0, len(sizes))
	for _, s := range sizes {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Ints(out)
	return out
}

func finish(f *domain.ExtractedFeatures) *domain.ExtractedFeatures {
	f.ComputeConfidence(domain.WeightsFor(f.Family))
	return f
}
