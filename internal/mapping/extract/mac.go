package extract

import (
	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/mapping"
	"github.com/custodia-labs/devmap/internal/mapping/chip"
	"github.com/custodia-labs/devmap/internal/mapping/lexicon"
)

var macGenerations = genRange{1, 9}

// Mac extracts features from MacBook, iMac, Mac mini, Mac Studio and Mac Pro
// strings. The generation of an Apple silicon Mac is its chip generation.
type Mac struct {
	lex *lexicon.Lexicon
}

var _ mapping.Extractor = (*Mac)(nil)

// NewMac creates a Mac extractor.
func NewMac() *Mac {
	return &Mac{lex: lexicon.For(domain.FamilyMac)}
}

// Family returns domain.FamilyMac.
func (e *Mac) Family() domain.DeviceFamily { return domain.FamilyMac }

// Extract parses a Mac string.
func (e *Mac) Extract(input domain.MappingInput, mctx *domain.MappingContext) *domain.ExtractedFeatures {
	f := &domain.ExtractedFeatures{}
	text := input.ModelName()
	if !confirmFamily(e.lex, text, f, mctx) {
		return f
	}

	extractVariant(e.lex, text, f, mctx)

	sig, ok := chip.Parse(text)
	if ok {
		f.Chip = sig.String()
		f.AddNote("chip: %s", f.Chip)
		if sig.Silicon {
			acceptGeneration(sig.Generation(), macGenerations, "chip", f, mctx)
		}
	} else {
		mctx.Debug("no chip naming in %q", text)
	}

	extractStorage(input, true, f, mctx)

	extractCores(text, f)
	if f.Variant != "Mac mini" && f.Variant != "Mac Studio" && f.Variant != "Mac Pro" {
		extractScreenSize(text, f)
	}
	extractIdentifier(input, f)
	extractYear(text, f)

	return finish(f, domain.WeightsFor(domain.FamilyMac), mctx)
}
