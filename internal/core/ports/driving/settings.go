package driving

import "github.com/custodia-labs/devmap/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetSystem updates the default mapping system.
	SetSystem(system domain.MappingSystem) error

	// SetRollout updates the v4 switch and rollout percentage.
	SetRollout(enabled bool, percent int) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
