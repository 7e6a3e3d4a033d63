package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/mapping"
	"github.com/custodia-labs/devmap/internal/mapping/lexicon"
)

var (
	iPadNumberRE = regexp.MustCompile(`(?i)\biPad(?:\s+(?:Air|mini))?\s+(\d{1,2})\b`)
	iPadChipRE   = regexp.MustCompile(`(?i)\b(M[1-9]|A1\d[XZ]?(?:\s+(?:Pro|Bionic))?)\b`)
	unitAfterRE  = regexp.MustCompile(`(?i)^\s*(?:[.,]\d|"|”|''|-?\s?inch|-?\s?in\b|\s?pulgadas)`)
)

var iPadGenerations = genRange{1, 13}

// IPad extracts features from iPad strings.
type IPad struct {
	lex *lexicon.Lexicon
}

var _ mapping.Extractor = (*IPad)(nil)

// NewIPad creates an iPad extractor.
func NewIPad() *IPad {
	return &IPad{lex: lexicon.For(domain.FamilyIPad)}
}

// Family returns domain.FamilyIPad.
func (e *IPad) Family() domain.DeviceFamily { return domain.FamilyIPad }

// Extract parses an iPad string.
func (e *IPad) Extract(input domain.MappingInput, mctx *domain.MappingContext) *domain.ExtractedFeatures {
	f := &domain.ExtractedFeatures{}
	text := input.ModelName()
	if !confirmFamily(e.lex, text, f, mctx) {
		return f
	}

	extractVariant(e.lex, text, f, mctx)
	e.extractGeneration(text, f, mctx)
	extractStorage(input, false, f, mctx)

	extractScreenSize(text, f)
	extractConnectivity(text, f)
	if m := iPadChipRE.FindStringSubmatch(text); m != nil {
		f.Chip = strings.ToUpper(m[1][:1]) + m[1][1:]
		f.AddNote("chip: %s", f.Chip)
	}
	extractIdentifier(input, f)
	extractYear(text, f)

	return finish(f, domain.WeightsFor(domain.FamilyIPad), mctx)
}

// extractGeneration prefers the ordinal form. A bare number is only read
// for non-Pro lines, because "iPad Pro 11" names a screen size.
func (e *IPad) extractGeneration(text string, f *domain.ExtractedFeatures, mctx *domain.MappingContext) {
	if n, ok := ordinalGeneration(text); ok {
		acceptGeneration(n, iPadGenerations, "ordinal", f, mctx)
		return
	}
	if f.Variant == "Pro" {
		return
	}
	loc := iPadNumberRE.FindStringSubmatchIndex(text)
	if loc == nil {
		return
	}
	if unitAfterRE.MatchString(text[loc[3]:]) {
		mctx.Debug("number after iPad is a screen size, not a generation")
		return
	}
	n, _ := strconv.Atoi(text[loc[2]:loc[3]])
	acceptGeneration(n, iPadGenerations, "number", f, mctx)
}
