package services

import (
	"fmt"

	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/core/ports/driven"
	"github.com/custodia-labs/devmap/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keySystem         = "mapping.system"
	keyV4Enabled      = "mapping.v4_enabled"
	keyRolloutPercent = "mapping.rollout_percent"
	keyBatchWorkers   = "batch.workers"
	keyBatchRate      = "batch.rate_per_second"
	keyCatalogDataDir = "catalog.data_dir"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing or invalid values
// fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Mapping: domain.MappingSettings{
			System:         s.getSystem(defaults.Mapping.System),
			V4Enabled:      s.getBool(keyV4Enabled, defaults.Mapping.V4Enabled),
			RolloutPercent: s.getPercent(defaults.Mapping.RolloutPercent),
		},
		Batch: domain.BatchSettings{
			Workers:       s.getWorkers(defaults.Batch.Workers),
			RatePerSecond: s.getRate(defaults.Batch.RatePerSecond),
		},
		Catalog: domain.CatalogSettings{
			DataDir: s.configStore.GetString(keyCatalogDataDir),
		},
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings are nil", domain.ErrInvalidInput)
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("validate settings: %w", err)
	}

	writes := []struct {
		key   string
		value any
	}{
		{keySystem, settings.Mapping.System.String()},
		{keyV4Enabled, settings.Mapping.V4Enabled},
		{keyRolloutPercent, settings.Mapping.RolloutPercent},
		{keyBatchWorkers, settings.Batch.Workers},
		{keyBatchRate, settings.Batch.RatePerSecond},
		{keyCatalogDataDir, settings.Catalog.DataDir},
	}
	for _, w := range writes {
		if err := s.configStore.Set(w.key, w.value); err != nil {
			return fmt.Errorf("save %s: %w", w.key, err)
		}
	}

	return nil
}

// SetSystem updates the default mapping system.
func (s *SettingsService) SetSystem(system domain.MappingSystem) error {
	if !system.IsValid() {
		return fmt.Errorf("%w: unknown mapping system %q", domain.ErrInvalidInput, system)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Mapping.System = system
	return s.Save(settings)
}

// SetRollout updates the v4 switch and rollout percentage.
func (s *SettingsService) SetRollout(enabled bool, percent int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("%w: rollout percent %d outside 0-100", domain.ErrInvalidInput, percent)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Mapping.V4Enabled = enabled
	settings.Mapping.RolloutPercent = percent
	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getSystem(defaultVal domain.MappingSystem) domain.MappingSystem {
	system := domain.MappingSystem(s.configStore.GetString(keySystem))
	if !system.IsValid() {
		return defaultVal
	}
	return system
}

// getPercent keeps an explicit zero, which parks every request on v3.
func (s *SettingsService) getPercent(defaultVal int) int {
	if _, exists := s.configStore.Get(keyRolloutPercent); !exists {
		return defaultVal
	}
	val := s.configStore.GetInt(keyRolloutPercent)
	if val < 0 || val > 100 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getWorkers(defaultVal int) int {
	val := s.configStore.GetInt(keyBatchWorkers)
	if val < 1 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getRate(defaultVal float64) float64 {
	val := s.configStore.GetFloat(keyBatchRate)
	if val < 0 {
		return defaultVal
	}
	return val
}
