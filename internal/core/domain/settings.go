package domain

// MappingSystem selects which engine serves a compatibility-boundary request.
type MappingSystem string

// Available systems.
const (
	// SystemV4 forces the family-engine pipeline.
	SystemV4 MappingSystem = "v4"

	// SystemV3 forces the legacy engine.
	SystemV3 MappingSystem = "v3"

	// SystemAuto runs v4 and falls back to v3 when v4 finds nothing and is
	// not suggesting a capacity be created.
	SystemAuto MappingSystem = "auto"
)

// IsValid returns true if the system is recognised.
func (s MappingSystem) IsValid() bool {
	switch s {
	case SystemV4, SystemV3, SystemAuto:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s MappingSystem) String() string {
	return string(s)
}

// Description returns a human-readable description of the system.
func (s MappingSystem) Description() string {
	switch s {
	case SystemV4:
		return "v4 (family engines only)"
	case SystemV3:
		return "v3 (legacy engine only)"
	case SystemAuto:
		return "auto (v4 with v3 fallback)"
	default:
		return "Unknown"
	}
}

// MappingSettings configures engine selection at the compatibility boundary.
type MappingSettings struct {
	// System is the default system when a request does not name one.
	System MappingSystem

	// V4Enabled turns the family-engine pipeline on or off process-wide.
	V4Enabled bool

	// RolloutPercent is the share (0-100) of inputs routed to v4 when the
	// request does not force a system.
	RolloutPercent int
}

// BatchSettings configures batch feed runs.
type BatchSettings struct {
	// Workers is the number of concurrent mapping calls.
	Workers int

	// RatePerSecond throttles mapping calls; zero disables throttling.
	RatePerSecond float64
}

// CatalogSettings locates the catalog database.
type CatalogSettings struct {
	// DataDir holds the SQLite catalog. Empty means ~/.devmap/data.
	DataDir string
}

// AppSettings aggregates all persisted settings.
type AppSettings struct {
	Mapping MappingSettings
	Batch   BatchSettings
	Catalog CatalogSettings
}

// DefaultAppSettings returns the built-in defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Mapping: MappingSettings{
			System:         SystemAuto,
			V4Enabled:      true,
			RolloutPercent: 100,
		},
		Batch: BatchSettings{
			Workers: 4,
		},
	}
}

// Validate checks settings ranges.
func (s AppSettings) Validate() error {
	if !s.Mapping.System.IsValid() {
		return ErrInvalidInput
	}
	if s.Mapping.RolloutPercent < 0 || s.Mapping.RolloutPercent > 100 {
		return ErrInvalidInput
	}
	if s.Batch.Workers < 1 {
		return ErrInvalidInput
	}
	if s.Batch.RatePerSecond < 0 {
		return ErrInvalidInput
	}
	return nil
}
