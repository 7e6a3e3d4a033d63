package memory

import (
	"fmt"
	"maps"
	"sync"

	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps dotted configuration keys in memory. It backs tests and
// DEVMAP_EPHEMERAL runs, where settings changes must not touch disk.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
	saves  int
}

// NewConfigStore creates a store seeded with a copy of values.
func NewConfigStore(values map[string]any) *ConfigStore {
	s := &ConfigStore{values: make(map[string]any, len(values))}
	maps.Copy(s.values, values)
	return s
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

// GetString returns the string at key, or "".
func (s *ConfigStore) GetString(key string) string {
	val, _ := s.Get(key)
	str, _ := val.(string)
	return str
}

// GetInt returns the integer at key. Floats are truncated.
func (s *ConfigStore) GetInt(key string) int {
	val, _ := s.Get(key)
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// GetFloat returns the number at key, widening integers.
func (s *ConfigStore) GetFloat(key string) float64 {
	val, _ := s.Get(key)
	switch v := val.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

// GetBool returns the boolean at key, or false.
func (s *ConfigStore) GetBool(key string) bool {
	val, _ := s.Get(key)
	b, _ := val.(bool)
	return b
}

// Set stores a configuration value.
func (s *ConfigStore) Set(key string, value any) error {
	if key == "" {
		return fmt.Errorf("%w: empty config key", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.saves++
	return nil
}

// Save is a no-op; values live only as long as the store.
func (s *ConfigStore) Save() error {
	return nil
}

// Load is a no-op.
func (s *ConfigStore) Load() error {
	return nil
}

// Path returns ":memory:".
func (s *ConfigStore) Path() string {
	return ":memory:"
}

// Writes reports how many Set calls succeeded.
func (s *ConfigStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// Snapshot returns a copy of every stored key.
func (s *ConfigStore) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.values)
}
