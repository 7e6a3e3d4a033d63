package extract

import (
	"regexp"
	"strconv"

	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/mapping"
	"github.com/custodia-labs/devmap/internal/mapping/lexicon"
)

var pixelNumberRE = regexp.MustCompile(`(?i)\bPixel\s*(\d{1,3})(?:a\b|[^\d]|$)`)

var pixelNumbered = genRange{1, 12}

// Pixel extracts features from Google Pixel strings.
type Pixel struct {
	lex *lexicon.Lexicon
}

var _ mapping.Extractor = (*Pixel)(nil)

// NewPixel creates a Pixel extractor.
func NewPixel() *Pixel {
	return &Pixel{lex: lexicon.For(domain.FamilyPixel)}
}

// Family returns domain.FamilyPixel.
func (e *Pixel) Family() domain.DeviceFamily { return domain.FamilyPixel }

// Extract parses a Pixel string. "Pixel Fold" carries no number and is left
// for the knowledge base's keyword lookup.
func (e *Pixel) Extract(input domain.MappingInput, mctx *domain.MappingContext) *domain.ExtractedFeatures {
	f := &domain.ExtractedFeatures{}
	text := input.ModelName()
	if !confirmFamily(e.lex, text, f, mctx) {
		return f
	}

	extractVariant(e.lex, text, f, mctx)
	if m := pixelNumberRE.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		acceptGeneration(n, pixelNumbered, "number", f, mctx)
	} else if f.Variant == "Fold" {
		mctx.Debug("keyword-only line %q, generation left empty", f.Variant)
	}
	extractStorage(input, false, f, mctx)

	return finish(f, domain.WeightsFor(f.Family), mctx)
}
