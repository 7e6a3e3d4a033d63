package domain

import (
	"fmt"
	"math"
)

// DeviceFamily is a top-level device category with its own extraction and
// matching rules. The value doubles as the catalog model type.
type DeviceFamily string

// Supported families.
const (
	FamilyUnknown DeviceFamily = ""
	FamilyIPhone  DeviceFamily = "iPhone"
	FamilyPixel   DeviceFamily = "Pixel"
	FamilyIPad    DeviceFamily = "iPad"
	FamilyMac     DeviceFamily = "Mac"
)

// String returns the string representation.
func (f DeviceFamily) String() string {
	return string(f)
}

// IsValid returns true if the family is recognised.
func (f DeviceFamily) IsValid() bool {
	switch f {
	case FamilyIPhone, FamilyPixel, FamilyIPad, FamilyMac:
		return true
	default:
		return false
	}
}

// Connectivity distinguishes Wi-Fi-only devices from cellular ones.
type Connectivity string

// Connectivity values.
const (
	ConnectivityUnknown  Connectivity = ""
	ConnectivityWiFi     Connectivity = "wifi"
	ConnectivityCellular Connectivity = "cellular"
)

// Confidence weights applied when a field is populated.
// Families may supply their own weights to ExtractedFeatures.ComputeConfidence.
var DefaultConfidenceWeights = ConfidenceWeights{
	Family:     0.3,
	Generation: 0.3,
	Storage:    0.2,
	Variant:    0.1,
	Year:       0.1,
}

// WeightsFor returns the confidence weights used for a family. iPad and Mac
// strings carry more distinguishing fields than phones, so the family and
// generation weights are spread over them.
func WeightsFor(family DeviceFamily) ConfidenceWeights {
	switch family {
	case FamilyIPad:
		return ConfidenceWeights{
			Family:       0.25,
			Generation:   0.2,
			Storage:      0.2,
			Variant:      0.1,
			Year:         0.1,
			ScreenSize:   0.1,
			Connectivity: 0.05,
		}
	case FamilyMac:
		return ConfidenceWeights{
			Family:     0.25,
			Generation: 0.15,
			Storage:    0.2,
			Variant:    0.15,
			Year:       0.1,
			Chip:       0.1,
			Identifier: 0.05,
		}
	default:
		return DefaultConfidenceWeights
	}
}

// ConfidenceWeights assigns a fixed contribution to each populated field.
type ConfidenceWeights struct {
	Family       float64
	Generation   float64
	Storage      float64
	Variant      float64
	Year         float64
	Chip         float64
	CPUCores     float64
	GPUCores     float64
	ScreenSize   float64
	Identifier   float64
	Connectivity float64
}

// ExtractedFeatures is the typed feature bag populated by an Extractor and
// then a KnowledgeBase. It is owned by a single mapping call.
type ExtractedFeatures struct {
	// Family is the device family tag. Mandatory for matching.
	Family DeviceFamily

	// Generation is the numeric generation (e.g. 13 for "iPhone 13", 10 for
	// "iPad (10th generation)", 2 for an M2 Mac).
	Generation int

	// Variant is the named sub-model ("Pro Max", "Air", "Mac mini"...).
	// Empty means the base model.
	Variant string

	// Year is the release year, usually supplied by the knowledge base.
	Year int

	// Chip is the chip or CPU identifier ("M2 Pro", "A15",
	// "Intel Core i5 2.0GHz Quad-Core").
	Chip string

	// CPUCores is the CPU core count.
	CPUCores int

	// GPUCores is the GPU core count.
	GPUCores int

	// ScreenSize is the diagonal in inches.
	ScreenSize float64

	// ScreenInferred marks a ScreenSize taken from a knowledge table rather
	// than read from the input.
	ScreenInferred bool

	// StorageGB is the storage capacity in GB, 1 TB = 1024 GB.
	StorageGB int

	// Identifier is the physical identifier code (e.g. "A2816").
	Identifier string

	// Connectivity is Wi-Fi-only versus cellular.
	Connectivity Connectivity

	// Notes is the audit trail of successful extractions and enrichments.
	Notes []string

	// Confidence is the self-reported extraction confidence, 0.0-1.0.
	Confidence float64
}

// AddNote appends a formatted audit note.
func (f *ExtractedFeatures) AddNote(format string, args ...any) {
	f.Notes = append(f.Notes, fmt.Sprintf(format, args...))
}

// HasFamily reports whether the mandatory family field is populated.
func (f *ExtractedFeatures) HasFamily() bool {
	return f != nil && f.Family != FamilyUnknown
}

// ComputeConfidence recomputes Confidence from the populated fields.
// The result is capped at 1.0.
func (f *ExtractedFeatures) ComputeConfidence(w ConfidenceWeights) float64 {
	score := 0.0
	add := func(populated bool, weight float64) {
		if populated {
			score += weight
		}
	}
	add(f.Family != FamilyUnknown, w.Family)
	add(f.Generation > 0, w.Generation)
	add(f.StorageGB > 0, w.Storage)
	add(f.Variant != "", w.Variant)
	add(f.Year > 0, w.Year)
	add(f.Chip != "", w.Chip)
	add(f.CPUCores > 0, w.CPUCores)
	add(f.GPUCores > 0, w.GPUCores)
	add(f.ScreenSize > 0, w.ScreenSize)
	add(f.Identifier != "", w.Identifier)
	add(f.Connectivity != ConnectivityUnknown, w.Connectivity)

	f.Confidence = math.Min(1.0, math.Round(score*100)/100)
	return f.Confidence
}

// Clone returns a deep copy.
func (f *ExtractedFeatures) Clone() *ExtractedFeatures {
	if f == nil {
		return nil
	}
	c := *f
	c.Notes = append([]string(nil), f.Notes...)
	return &c
}

// Summary returns a compact one-line description for logs.
func (f *ExtractedFeatures) Summary() string {
	if f == nil {
		return "<nil>"
	}
	return fmt.Sprintf("family=%s gen=%d variant=%q year=%d chip=%q cpu=%d gpu=%d screen=%.1f storage=%dGB id=%q conn=%s",
		f.Family, f.Generation, f.Variant, f.Year, f.Chip, f.CPUCores, f.GPUCores,
		f.ScreenSize, f.StorageGB, f.Identifier, f.Connectivity)
}
