package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/mapping/lexicon"
)

var (
	identifierRE   = regexp.MustCompile(`\b(A\d{4})\b`)
	yearRE         = regexp.MustCompile(`\b(20[0-3]\d)\b`)
	ordinalGenRE   = regexp.MustCompile(`(?i)\(?\b(\d{1,2})\s*(?:st|nd|rd|th)\s+gen(?:eration)?\b\)?`)
	ssdCapacityRE  = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?\s*(?:TB|GB))\s*(?:SSD|storage|almacenamiento)`)
	cpuCoresRE     = regexp.MustCompile(`(?i)\b(\d{1,2})[\s-]?core\s*CPU\b`)
	gpuCoresRE     = regexp.MustCompile(`(?i)\b(\d{1,2})[\s-]?core\s*GPU\b`)
	cellularRE     = regexp.MustCompile(`(?i)\b(?:cellular|4G|5G|LTE)\b`)
	wifiRE         = regexp.MustCompile(`(?i)\bWi-?Fi\b`)
	screenInchesRE = regexp.MustCompile(`(?i)(\d{1,2}(?:[.,]\d)?)\s*(?:"|”|''|-?\s?inch(?:es)?\b|-?\s?in\b|\s?pulgadas\b)`)
)

// Generation ranges accepted per line; numbers outside are discarded.
type genRange struct{ min, max int }

func (r genRange) contains(n int) bool { return n >= r.min && n <= r.max }

// confirmFamily runs step 1. It logs and returns false when the marker is
// absent.
func confirmFamily(lex *lexicon.Lexicon, text string, f *domain.ExtractedFeatures, mctx *domain.MappingContext) bool {
	if !lex.Marker.MatchString(text) {
		mctx.Warn("%s marker not found in %q", lex.Family, text)
		return false
	}
	f.Family = lex.Family
	f.AddNote("family: %s", lex.Family)
	return true
}

// extractVariant runs step 2.
func extractVariant(lex *lexicon.Lexicon, text string, f *domain.ExtractedFeatures, mctx *domain.MappingContext) {
	if v, ok := lex.DetectVariant(text); ok {
		f.Variant = v
		f.AddNote("variant: %s", v)
		mctx.Debug("variant detected: %s", v)
	}
}

// acceptGeneration validates a parsed generation against its range.
func acceptGeneration(n int, r genRange, source string, f *domain.ExtractedFeatures, mctx *domain.MappingContext) bool {
	if !r.contains(n) {
		mctx.Warn("generation %d from %s outside %d..%d, discarded", n, source, r.min, r.max)
		return false
	}
	f.Generation = n
	f.AddNote("generation: %d (%s)", n, source)
	return true
}

// ordinalGeneration finds "(3rd generation)" / "3rd gen".
func ordinalGeneration(text string) (int, bool) {
	m := ordinalGenRE.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	return n, err == nil
}

// extractStorage runs step 4. A separately reported capacity wins over one
// embedded in the name. With preferSSD, a size tagged as storage wins, then
// the largest size, so RAM figures are skipped.
func extractStorage(input domain.MappingInput, preferSSD bool, f *domain.ExtractedFeatures, mctx *domain.MappingContext) {
	if gb, ok := domain.ParseCapacityGB(input.Capacity()); ok {
		f.StorageGB = gb
		f.AddNote("storage: %dGB (capacity field)", gb)
		return
	}

	text := input.ModelName()
	if preferSSD {
		if m := ssdCapacityRE.FindStringSubmatch(text); m != nil {
			if gb, ok := domain.ParseCapacityGB(m[1]); ok {
				f.StorageGB = gb
				f.AddNote("storage: %dGB (tagged)", gb)
				return
			}
		}
		largest := 0
		for _, gb := range domain.ParseAllCapacitiesGB(text) {
			if gb > largest {
				largest = gb
			}
		}
		if largest > 0 {
			f.StorageGB = largest
			f.AddNote("storage: %dGB (largest size)", largest)
		}
		return
	}

	if gb, ok := domain.ParseCapacityGB(text); ok {
		f.StorageGB = gb
		f.AddNote("storage: %dGB", gb)
		return
	}
	mctx.Debug("no storage capacity in %q", text)
}

// extractIdentifier prefers the feed's identifier column over text.
func extractIdentifier(input domain.MappingInput, f *domain.ExtractedFeatures) {
	if code := strings.ToUpper(strings.TrimSpace(input.Identifier())); code != "" {
		f.Identifier = code
		f.AddNote("identifier: %s (identifier field)", code)
		return
	}
	if m := identifierRE.FindStringSubmatch(input.ModelName()); m != nil {
		f.Identifier = m[1]
		f.AddNote("identifier: %s", m[1])
	}
}

// extractYear reads an explicit release year ("January 2023", "(2023)").
func extractYear(text string, f *domain.ExtractedFeatures) {
	if m := yearRE.FindStringSubmatch(text); m != nil {
		y, _ := strconv.Atoi(m[1])
		f.Year = y
		f.AddNote("year: %d (text)", y)
	}
}

func extractCores(text string, f *domain.ExtractedFeatures) {
	if m := cpuCoresRE.FindStringSubmatch(text); m != nil {
		f.CPUCores, _ = strconv.Atoi(m[1])
		f.AddNote("cpu cores: %d", f.CPUCores)
	}
	if m := gpuCoresRE.FindStringSubmatch(text); m != nil {
		f.GPUCores, _ = strconv.Atoi(m[1])
		f.AddNote("gpu cores: %d", f.GPUCores)
	}
}

// ParseScreenSize returns the first size in inches written with a unit
// ("13.3\"", "11-inch", "10,9 pulgadas").
func ParseScreenSize(text string) (float64, bool) {
	m := screenInchesRE.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil || v < 5 || v > 40 {
		return 0, false
	}
	return v, true
}

func extractScreenSize(text string, f *domain.ExtractedFeatures) {
	if v, ok := ParseScreenSize(text); ok {
		f.ScreenSize = v
		f.AddNote("screen: %.1f in", v)
	}
}

// ParseConnectivity classifies text as cellular when it names a cellular
// keyword, as Wi-Fi when it names Wi-Fi only.
func ParseConnectivity(text string) domain.Connectivity {
	switch {
	case cellularRE.MatchString(text):
		return domain.ConnectivityCellular
	case wifiRE.MatchString(text):
		return domain.ConnectivityWiFi
	default:
		return domain.ConnectivityUnknown
	}
}

func extractConnectivity(text string, f *domain.ExtractedFeatures) {
	if c := ParseConnectivity(text); c != domain.ConnectivityUnknown {
		f.Connectivity = c
		f.AddNote("connectivity: %s", c)
	}
}

// finish runs step 6.
func finish(f *domain.ExtractedFeatures, w domain.ConfidenceWeights, mctx *domain.MappingContext) *domain.ExtractedFeatures {
	f.ComputeConfidence(w)
	mctx.Info("extracted %s (confidence %.2f)", f.Summary(), f.Confidence)
	return f
}
