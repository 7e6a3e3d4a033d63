package domain

// MatchStatus is the terminal state of a mapping call.
type MatchStatus string

// Terminal states.
const (
	StatusSuccess MatchStatus = "success"
	StatusNoMatch MatchStatus = "no_match"
	StatusError   MatchStatus = "error"
)

// String returns the string representation.
func (s MatchStatus) String() string {
	return string(s)
}

// MatchResult is the typed outcome of one mapping call.
type MatchResult struct {
	// Status is the terminal state.
	Status MatchStatus

	// Engine names the family engine that handled the input.
	Engine string

	// ModelID and CapacityID identify the chosen catalog rows on success.
	ModelID    int64
	CapacityID int64

	// ModelDescription and CapacitySize are the chosen rows' display strings.
	ModelDescription string
	CapacitySize     string

	// Confidence is the winning candidate's score.
	Confidence float64

	// Strategy is the matcher that produced the winning candidate.
	Strategy Strategy

	// Features is the full extracted feature bag.
	Features *ExtractedFeatures

	// Candidates is every candidate the matcher returned, for audit.
	Candidates []MatchCandidate

	// ErrorMessage is a human-readable failure reason.
	ErrorMessage string

	// ErrorCode is the machine-readable failure code.
	ErrorCode ErrorCode

	// Suggestion is set when the right model exists without the requested capacity.
	Suggestion *CapacitySuggestion

	// Context is the decision trail of the call.
	Context *MappingContext
}

// Succeeded reports whether the call resolved to a catalog row.
func (r *MatchResult) Succeeded() bool {
	return r != nil && r.Status == StatusSuccess
}

// NeedsCapacityCreation reports whether the result suggests creating a capacity.
func (r *MatchResult) NeedsCapacityCreation() bool {
	return r != nil && r.Suggestion != nil
}

// CapacitySuggestion tells an operator exactly which capacity row is missing.
type CapacitySuggestion struct {
	// ModelID and ModelDescription identify the matched model.
	ModelID          int64
	ModelDescription string

	// StorageGB is the requested capacity in GB.
	StorageGB int

	// CapacityLabel is the preferred display string for the new row.
	CapacityLabel string

	// Extracted attributes.
	Family       DeviceFamily
	Generation   int
	Variant      string
	Year         int
	Chip         string
	CPUCores     int
	GPUCores     int
	ScreenSize   float64
	Identifier   string
	Connectivity Connectivity

	// ExistingCapacities are the model's active capacity strings.
	ExistingCapacities []string

	// ExpectedCapacities are the capacities commonly sold for the family.
	ExpectedCapacities []string

	// MissingCapacities are expected or requested capacities the model lacks.
	MissingCapacities []string
}

// NewSuccessResult builds a SUCCESS result from the winning candidate.
func NewSuccessResult(best MatchCandidate, features *ExtractedFeatures, cands []MatchCandidate) *MatchResult {
	return &MatchResult{
		Status:           StatusSuccess,
		ModelID:          best.Model.ID,
		CapacityID:       best.Capacity.ID,
		ModelDescription: best.Model.Description,
		CapacitySize:     best.Capacity.Size,
		Confidence:       best.Score,
		Strategy:         best.Strategy,
		Features:         features,
		Candidates:       cands,
	}
}

// NewNoMatchResult builds a NO_MATCH result.
func NewNoMatchResult(message string, features *ExtractedFeatures, cands []MatchCandidate) *MatchResult {
	return &MatchResult{
		Status:       StatusNoMatch,
		ErrorMessage: message,
		ErrorCode:    ErrorCodeNoMatch,
		Features:     features,
		Candidates:   cands,
	}
}

// NewErrorResult builds an ERROR result.
func NewErrorResult(code ErrorCode, message string) *MatchResult {
	return &MatchResult{
		Status:       StatusError,
		ErrorCode:    code,
		ErrorMessage: message,
	}
}
