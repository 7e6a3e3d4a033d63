package domain

// BatchItem is one feed row and its mapping outcome.
type BatchItem struct {
	// Line is the 1-based feed line the row came from.
	Line int

	// Input is the validated row. Zero when validation failed.
	Input MappingInput

	// Result is the mapping outcome.
	Result *MatchResult
}

// BatchSummary counts outcomes of a batch run.
type BatchSummary struct {
	// RunID identifies the run.
	RunID string

	Total             int
	Succeeded         int
	NoMatch           int
	CapacitySuggested int
	Errors            int
}

// Add counts one result.
func (s *BatchSummary) Add(r *MatchResult) {
	s.Total++
	switch {
	case r == nil || r.Status == StatusError:
		s.Errors++
	case r.Status == StatusSuccess:
		s.Succeeded++
	default:
		s.NoMatch++
		if r.Suggestion != nil {
			s.CapacitySuggested++
		}
	}
}
