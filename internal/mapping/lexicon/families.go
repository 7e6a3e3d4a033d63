package lexicon

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/devmap/internal/core/domain"
)

// LegacyIPhoneGeneration is the generation assigned to iPhone X, XR, XS and
// XS Max, which carry no number in their names.
const LegacyIPhoneGeneration = 10

var iPhone = &Lexicon{
	Family:       domain.FamilyIPhone,
	Marker:       regexp.MustCompile(`(?i)\biPhone\b`),
	CatalogToken: "iPhone",
	Variants: []Keyword{
		kw("Pro Max", `\bPro\s*Max\b`, ""),
		kw("XS Max", `\bXS\s*Max\b`, ""),
		kw("XS", `\bXS\b`, `\bMax\b`),
		kw("XR", `\bXR\b`, ""),
		kw("SE", `\bSE\b`, ""),
		kw("Pro", `\bPro\b`, `\bMax\b`),
		kw("Plus", `\bPlus\b`, ""),
		kw("mini", `\bmini\b`, ""),
	},
	BaseExcludesVariants: true,
	generationForms: func(gen int, variant string) []string {
		if gen == LegacyIPhoneGeneration {
			switch variant {
			case "XR":
				return []string{"XR"}
			case "XS", "XS Max":
				return []string{"XS"}
			}
			return []string{"X", "10"}
		}
		if variant == "SE" {
			return []string{Ordinal(gen)}
		}
		return []string{fmt.Sprint(gen)}
	},
	nameTokens: func(f *domain.ExtractedFeatures) []string {
		tokens := []string{"iPhone"}
		switch {
		case f.Generation == LegacyIPhoneGeneration && f.Variant == "":
			tokens = append(tokens, "X")
		case f.Generation == LegacyIPhoneGeneration, f.Generation == 0:
		case f.Variant == "SE":
			tokens = append(tokens, Ordinal(f.Generation))
		default:
			tokens = append(tokens, fmt.Sprint(f.Generation))
		}
		return append(tokens, strings.Fields(f.Variant)...)
	},
}

var pixel = &Lexicon{
	Family:       domain.FamilyPixel,
	Marker:       regexp.MustCompile(`(?i)\bPixel\b`),
	CatalogToken: "Pixel",
	Variants: []Keyword{
		kw("Pro XL", `\bPro\s*XL\b`, ""),
		kw("Pro Fold", `\bPro\s*Fold\b`, ""),
		kw("Pro", `\bPro\b`, `\b(?:XL|Fold)\b`),
		kw("XL", `\bXL\b`, `\bPro\b`),
		kw("a", `\b\d{1,2}a\b`, ""),
		kw("Fold", `\bFold\b`, `\bPro\b`),
	},
	BaseExcludesVariants: true,
	generationForms: func(gen int, variant string) []string {
		if variant == "a" {
			return []string{fmt.Sprintf("%da", gen)}
		}
		return []string{fmt.Sprint(gen)}
	},
	nameTokens: func(f *domain.ExtractedFeatures) []string {
		tokens := []string{"Pixel"}
		switch {
		case f.Variant == "a" && f.Generation > 0:
			return append(tokens, fmt.Sprintf("%da", f.Generation))
		case f.Generation > 0:
			tokens = append(tokens, fmt.Sprint(f.Generation))
		}
		return append(tokens, strings.Fields(f.Variant)...)
	},
}

var iPad = &Lexicon{
	Family:       domain.FamilyIPad,
	Marker:       regexp.MustCompile(`(?i)\biPad\b`),
	CatalogToken: "iPad",
	Variants: []Keyword{
		kw("Pro", `\biPad\s*Pro\b`, `\b(?:mini|Air)\b`),
		kw("Air", `\bAir\b`, ""),
		kw("mini", `\bmini\b`, ""),
	},
	BaseExcludesVariants: true,
	generationForms: func(gen int, _ string) []string {
		return []string{Ordinal(gen)}
	},
	nameTokens: func(f *domain.ExtractedFeatures) []string {
		tokens := []string{"iPad"}
		tokens = append(tokens, strings.Fields(f.Variant)...)
		if f.Generation > 0 {
			tokens = append(tokens, Ordinal(f.Generation))
		}
		return tokens
	},
}

var mac = &Lexicon{
	Family: domain.FamilyMac,
	Marker: regexp.MustCompile(`(?i)\b(?:MacBook|iMac|Mac)\b`),
	Variants: []Keyword{
		kw("MacBook Air", `\bMacBook\s*Air\b`, ""),
		kw("MacBook Pro", `\bMacBook\s*Pro\b`, ""),
		kw("MacBook", `\bMacBook\b`, `\bMacBook\s*(?:Air|Pro)\b`),
		kw("Mac mini", `\bMac\s*mini\b`, ""),
		kw("Mac Studio", `\bMac\s*Studio\b`, ""),
		kw("Mac Pro", `\bMac\s*Pro\b`, ""),
		kw("iMac", `\biMac\b`, ""),
	},
	generationForms: func(gen int, _ string) []string {
		return []string{fmt.Sprintf("M%d", gen)}
	},
	nameTokens: func(f *domain.ExtractedFeatures) []string {
		tokens := strings.Fields(f.Variant)
		if f.Chip != "" && !strings.HasPrefix(f.Chip, "Intel") {
			tokens = append(tokens, strings.Fields(f.Chip)...)
		}
		return tokens
	},
}
