package rules

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/mapping"
	"github.com/custodia-labs/devmap/internal/mapping/extract"
)

var (
	bareSizeRE   = regexp.MustCompile(`\b(\d{1,2}[.,]\d)\b`)
	bareSuffixRE = regexp.MustCompile(`(?i)^\s*(?:GHz|GB|TB|MHz|%|\d)`)
)

// ScreenSize compares the requested diagonal with the sizes a description
// states. Strict mode removes descriptions stating no size; lenient mode
// keeps them.
type ScreenSize struct {
	strict bool
}

var _ mapping.Rule = ScreenSize{}

// NewScreenSize creates a screen-size rule.
func NewScreenSize(strict bool) ScreenSize { return ScreenSize{strict: strict} }

// Name returns NameScreenSize.
func (ScreenSize) Name() string { return NameScreenSize }

// Applicable requires a screen size read from the input. Knowledge tables
// hold exact diagonals (14.2) while catalogs write the class (14-inch).
func (ScreenSize) Applicable(f *domain.ExtractedFeatures) bool {
	return f.ScreenSize > 0 && !f.ScreenInferred
}

// Apply keeps rows stating exactly the requested size, compared at one
// decimal place.
func (r ScreenSize) Apply(cands []domain.MatchCandidate, f *domain.ExtractedFeatures, _ *domain.MappingContext) []domain.MatchCandidate {
	return keep(cands, func(c domain.MatchCandidate) bool {
		sizes := ScreenSizes(c.Model.Description)
		if len(sizes) == 0 {
			return !r.strict
		}
		for _, s := range sizes {
			if tenths(s) == tenths(f.ScreenSize) {
				return true
			}
		}
		return false
	})
}

// ScreenSizes returns the diagonals stated in a description, with an inch
// unit ("13.3\"", "11-inch", "12,9 pulgadas") or as a bare decimal ("12.9").
func ScreenSizes(description string) []float64 {
	var out []float64
	if v, ok := extract.ParseScreenSize(description); ok {
		out = append(out, v)
	}
	for _, loc := range bareSizeRE.FindAllStringSubmatchIndex(description, -1) {
		if bareSuffixRE.MatchString(description[loc[1]:]) {
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(description[loc[2]:loc[3]], ",", "."), 64)
		if err != nil || v < 5 || v > 40 || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func tenths(v float64) int {
	return int(math.Round(v * 10))
}
