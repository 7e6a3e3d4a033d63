package domain

import "errors"

// Domain errors represent mapping failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a malformed mapping request, such as a blank display name.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoEngineAvailable indicates no registered family engine claims the input.
	ErrNoEngineAvailable = errors.New("no engine available")

	// ErrNoMatch indicates an engine ran fully but no catalog row survived.
	ErrNoMatch = errors.New("no match")

	// ErrMapping indicates an unexpected failure during extraction, enrichment,
	// matching or filtering.
	ErrMapping = errors.New("mapping error")

	// ErrLegacyUnavailable indicates the v3 engine is not wired into this process.
	ErrLegacyUnavailable = errors.New("legacy engine unavailable")

	// ErrCatalogUnavailable indicates the catalog could not be queried.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// ErrorCode is the stable, machine-readable failure code exposed at the
// dict-shaped compatibility boundary.
type ErrorCode string

// Error codes.
const (
	ErrorCodeNone             ErrorCode = ""
	ErrorCodeInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrorCodeNoEngine         ErrorCode = "NO_ENGINE"
	ErrorCodeNoMatch          ErrorCode = "NO_MATCH"
	ErrorCodeExtractionFailed ErrorCode = "EXTRACTION_FAILED"
	ErrorCodeMappingError     ErrorCode = "MAPPING_ERROR"
	ErrorCodeV3NotAvailable   ErrorCode = "V3_NOT_AVAILABLE"
	ErrorCodeV3Error          ErrorCode = "V3_ERROR"
)

// String returns the string representation.
func (c ErrorCode) String() string {
	return string(c)
}

// CodeFor maps a domain error to its boundary error code.
// Unknown errors map to MAPPING_ERROR.
func CodeFor(err error) ErrorCode {
	switch {
	case err == nil:
		return ErrorCodeNone
	case errors.Is(err, ErrInvalidInput):
		return ErrorCodeInvalidInput
	case errors.Is(err, ErrNoEngineAvailable):
		return ErrorCodeNoEngine
	case errors.Is(err, ErrNoMatch):
		return ErrorCodeNoMatch
	case errors.Is(err, ErrLegacyUnavailable):
		return ErrorCodeV3NotAvailable
	default:
		return ErrorCodeMappingError
	}
}
