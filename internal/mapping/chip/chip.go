// Package chip parses processor naming into a comparable signature.
//
// Two naming schemes are recognised: integrated Apple silicon ("M2",
// "M2 Pro", "M3 Max") and legacy Intel naming that distinguishes siblings by
// core count and clock speed ("Intel Core i5 2.0 GHz Quad-Core").
package chip

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// BaseVariant is the sub-variant of a chip named without a suffix.
const BaseVariant = "base"

var (
	siliconRE   = regexp.MustCompile(`(?i)\bM([1-9])(?:\s+(Pro|Max|Ultra))?\b`)
	intelRE     = regexp.MustCompile(`(?i)\b(?:Intel\s+)?(Core\s+(?:i[3579]|m[357])|Xeon(?:\s+W)?)\b`)
	clockRE     = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*GHz\b`)
	coreCountRE = regexp.MustCompile(`(?i)\b(Dual|Quad|Hexa|Six|Octa|Eight|\d{1,2})[\s-]?Core\b`)
)

var coreWords = map[string]int{
	"dual":  2,
	"quad":  4,
	"hexa":  6,
	"six":   6,
	"octa":  8,
	"eight": 8,
}

// Signature is a (chip family, chip sub-variant) pair.
type Signature struct {
	// Family is "M2", "Core i5", "Xeon W"...
	Family string

	// Variant is "base", "Pro", "Max", "Ultra" for Apple silicon, or the
	// clock/core description for Intel ("2.0GHz 4-Core"). May be empty for
	// Intel chips named without either.
	Variant string

	// Silicon marks Apple silicon.
	Silicon bool

	generation int
}

// Parse extracts the first chip signature mentioned in text.
func Parse(text string) (Signature, bool) {
	if m := siliconRE.FindStringSubmatch(text); m != nil {
		gen, _ := strconv.Atoi(m[1])
		variant := BaseVariant
		if m[2] != "" {
			variant = canonicalSuffix(m[2])
		}
		return Signature{
			Family:     "M" + m[1],
			Variant:    variant,
			Silicon:    true,
			generation: gen,
		}, true
	}

	if m := intelRE.FindStringSubmatch(text); m != nil {
		family := canonicalIntel(m[1])
		var parts []string
		if c := clockRE.FindStringSubmatch(text); c != nil {
			if ghz, err := strconv.ParseFloat(strings.ReplaceAll(c[1], ",", "."), 64); err == nil {
				parts = append(parts, fmt.Sprintf("%.1fGHz", ghz))
			}
		}
		if n := coreCount(text); n > 0 {
			parts = append(parts, fmt.Sprintf("%d-Core", n))
		}
		return Signature{Family: family, Variant: strings.Join(parts, " ")}, true
	}

	return Signature{}, false
}

// String renders the signature as stored in ExtractedFeatures.Chip.
func (s Signature) String() string {
	if s.Silicon {
		if s.Variant == BaseVariant {
			return s.Family
		}
		return s.Family + " " + s.Variant
	}
	if s.Variant == "" {
		return "Intel " + s.Family
	}
	return "Intel " + s.Family + " " + s.Variant
}

// Generation returns the Apple silicon generation, or 0 for Intel chips.
func (s Signature) Generation() int {
	return s.generation
}

// Equal reports whether two signatures name the same chip configuration.
func (s Signature) Equal(o Signature) bool {
	return strings.EqualFold(s.Family, o.Family) && strings.EqualFold(s.Variant, o.Variant)
}

func canonicalSuffix(s string) string {
	switch strings.ToLower(s) {
	case "pro":
		return "Pro"
	case "max":
		return "Max"
	case "ultra":
		return "Ultra"
	default:
		return s
	}
}

func canonicalIntel(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		switch strings.ToLower(f) {
		case "core":
			fields[i] = "Core"
		case "xeon":
			fields[i] = "Xeon"
		default:
			fields[i] = strings.ToLower(f)
			if fields[i] == "w" {
				fields[i] = "W"
			}
		}
	}
	return strings.Join(fields, " ")
}

// coreCount returns the CPU core count of legacy naming. Counts followed by
// "GPU" describe graphics and are skipped.
func coreCount(text string) int {
	for _, loc := range coreCountRE.FindAllStringSubmatchIndex(text, -1) {
		rest := strings.TrimSpace(text[loc[1]:])
		if len(rest) >= 3 && strings.EqualFold(rest[:3], "GPU") {
			continue
		}
		word := strings.ToLower(text[loc[2]:loc[3]])
		if n, ok := coreWords[word]; ok {
			return n
		}
		if n, err := strconv.Atoi(word); err == nil {
			return n
		}
	}
	return 0
}
