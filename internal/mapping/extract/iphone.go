package extract

import (
	"regexp"
	"strconv"

	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/mapping"
	"github.com/custodia-labs/devmap/internal/mapping/lexicon"
)

var (
	iPhoneNumberRE = regexp.MustCompile(`(?i)\biPhone\s*(\d{1,3})(?:[^\d]|$)`)
	iPhoneXRE      = regexp.MustCompile(`(?i)\biPhone\s*X\b`)
)

var (
	iPhoneNumbered = genRange{4, 20}
	iPhoneSE       = genRange{1, 5}
)

// IPhone extracts features from iPhone strings.
type IPhone struct {
	lex *lexicon.Lexicon
}

var _ mapping.Extractor = (*IPhone)(nil)

// NewIPhone creates an iPhone extractor.
func NewIPhone() *IPhone {
	return &IPhone{lex: lexicon.For(domain.FamilyIPhone)}
}

// Family returns domain.FamilyIPhone.
func (e *IPhone) Family() domain.DeviceFamily { return domain.FamilyIPhone }

// Extract parses an iPhone string.
func (e *IPhone) Extract(input domain.MappingInput, mctx *domain.MappingContext) *domain.ExtractedFeatures {
	f := &domain.ExtractedFeatures{}
	text := input.ModelName()
	if !confirmFamily(e.lex, text, f, mctx) {
		return f
	}

	extractVariant(e.lex, text, f, mctx)
	e.extractGeneration(text, f, mctx)
	extractStorage(input, false, f, mctx)
	extractIdentifier(input, f)

	// An SE without an ordinal is usually sold as "iPhone SE 2020"; the
	// knowledge base turns that year into a generation.
	if f.Variant == "SE" && f.Generation == 0 {
		extractYear(text, f)
	}

	return finish(f, domain.WeightsFor(f.Family), mctx)
}

func (e *IPhone) extractGeneration(text string, f *domain.ExtractedFeatures, mctx *domain.MappingContext) {
	switch f.Variant {
	case "XR", "XS", "XS Max":
		f.Generation = lexicon.LegacyIPhoneGeneration
		f.AddNote("generation: %d (fixed for %s)", f.Generation, f.Variant)
		return
	case "SE":
		if n, ok := ordinalGeneration(text); ok {
			acceptGeneration(n, iPhoneSE, "ordinal", f, mctx)
		}
		return
	}

	if iPhoneXRE.MatchString(text) {
		f.Generation = lexicon.LegacyIPhoneGeneration
		f.AddNote("generation: %d (fixed for X)", f.Generation)
		return
	}

	if m := iPhoneNumberRE.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		acceptGeneration(n, iPhoneNumbered, "number", f, mctx)
	}
}
