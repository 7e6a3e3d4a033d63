// Package lexicon holds the per-family vocabulary shared by extractors,
// matchers and rules: family markers, variant keywords with their exclusion
// rules, generation spellings and display-name tokens.
package lexicon

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/devmap/internal/core/domain"
)

// Keyword is one named variant of a family.
type Keyword struct {
	// Name is the canonical variant label stored in ExtractedFeatures.Variant.
	Name string

	// Pattern detects the variant in free text.
	Pattern *regexp.Regexp

	// Exclude, when set, rejects descriptions that carry a compound form of
	// this variant (e.g. "Max" for a "Pro" request).
	Exclude *regexp.Regexp
}

// Lexicon is the vocabulary of one device family.
type Lexicon struct {
	// Family is the family described.
	Family domain.DeviceFamily

	// Marker detects the family keyword as a whole word.
	Marker *regexp.Regexp

	// CatalogToken is the word every catalog description of the family
	// contains. Empty when the family spans several product words.
	CatalogToken string

	// Variants are ordered most specific first.
	Variants []Keyword

	// BaseExcludesVariants makes an empty variant request reject every
	// description carrying a known variant keyword.
	BaseExcludesVariants bool

	generationForms func(gen int, variant string) []string
	nameTokens      func(f *domain.ExtractedFeatures) []string
}

// DetectVariant returns the first (most specific) variant found in text.
func (l *Lexicon) DetectVariant(text string) (string, bool) {
	for _, kw := range l.Variants {
		if kw.Pattern.MatchString(text) {
			return kw.Name, true
		}
	}
	return "", false
}

// Keyword looks up a variant by name, case-insensitively.
func (l *Lexicon) Keyword(name string) (Keyword, bool) {
	for _, kw := range l.Variants {
		if strings.EqualFold(kw.Name, name) {
			return kw, true
		}
	}
	return Keyword{}, false
}

// VariantMatches applies the variant exclusion semantics to a catalog
// description:
//
//   - requested "" keeps descriptions carrying no known variant keyword
//     (when BaseExcludesVariants is set, otherwise everything)
//   - requested "Pro" keeps descriptions containing "Pro" but not the
//     compound suffix of a longer variant ("Pro Max")
func (l *Lexicon) VariantMatches(description, requested string) bool {
	if requested == "" {
		if !l.BaseExcludesVariants {
			return true
		}
		for _, kw := range l.Variants {
			if kw.Pattern.MatchString(description) {
				return false
			}
		}
		return true
	}

	kw, ok := l.Keyword(requested)
	if !ok {
		return ContainsWord(description, requested)
	}
	if !kw.Pattern.MatchString(description) {
		return false
	}
	return kw.Exclude == nil || !kw.Exclude.MatchString(description)
}

// GenerationForms returns the spellings of a generation as it may appear in
// a catalog description: cardinal ("13"), ordinal ("3rd") and family aliases
// ("X", "M2").
func (l *Lexicon) GenerationForms(gen int, variant string) []string {
	if gen <= 0 {
		return nil
	}
	if l.generationForms != nil {
		return l.generationForms(gen, variant)
	}
	return []string{fmt.Sprint(gen), Ordinal(gen)}
}

// MentionsGeneration reports whether description spells the generation in
// any accepted form.
func (l *Lexicon) MentionsGeneration(description string, gen int, variant string) bool {
	for _, form := range l.GenerationForms(gen, variant) {
		if ContainsWord(description, form) {
			return true
		}
	}
	return false
}

// NameTokens returns the tokens of the constructed display name
// ("<Family> <Generation> <Variant>").
func (l *Lexicon) NameTokens(f *domain.ExtractedFeatures) []string {
	if l.nameTokens != nil {
		return l.nameTokens(f)
	}
	tokens := []string{string(l.Family)}
	if f.Generation > 0 {
		tokens = append(tokens, fmt.Sprint(f.Generation))
	}
	return append(tokens, strings.Fields(f.Variant)...)
}

// For returns the lexicon of a family, or nil for unknown families.
func For(family domain.DeviceFamily) *Lexicon {
	switch family {
	case domain.FamilyIPhone:
		return iPhone
	case domain.FamilyPixel:
		return pixel
	case domain.FamilyIPad:
		return iPad
	case domain.FamilyMac:
		return mac
	default:
		return nil
	}
}

// ContainsWord reports whether word occurs in s as a whole word, ignoring case.
func ContainsWord(s, word string) bool {
	if word == "" {
		return false
	}
	s, word = strings.ToLower(s), strings.ToLower(word)
	for from := 0; from < len(s); {
		i := strings.Index(s[from:], word)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(word)
		before, _ := utf8.DecodeLastRuneInString(s[:start])
		after, _ := utf8.DecodeRuneInString(s[end:])
		if (start == 0 || !isWordRune(before)) && (end == len(s) || !isWordRune(after)) {
			return true
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		from = start + size
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

// ContainsAllWords reports whether every word occurs in s.
func ContainsAllWords(s string, words []string) bool {
	for _, w := range words {
		if !ContainsWord(s, w) {
			return false
		}
	}
	return true
}

// Ordinal returns the English ordinal of n ("1st", "2nd", "3rd", "11th").
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

func kw(name, pattern, exclude string) Keyword {
	k := Keyword{Name: name, Pattern: regexp.MustCompile(`(?i)` + pattern)}
	if exclude != "" {
		k.Exclude = regexp.MustCompile(`(?i)` + exclude)
	}
	return k
}
