// Package catalogfile reads and writes catalog snapshots as TOML. Snapshots
// seed the SQLite catalog (devmap catalog import) and the in-memory catalog
// used in tests.
//
// A snapshot lists models with their capacities:
//
//	[[models]]
//	id          = 1
//	description = "iPhone 13 Pro"
//	type        = "iPhone"
//	year        = 2021
//
//	  [[models.capacities]]
//	  id   = 10
//	  size = "128 GB"
package catalogfile

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/devmap/internal/core/domain"
)

type snapshot struct {
	Models []modelEntry `toml:"models"`
}

type modelEntry struct {
	ID          int64           `toml:"id"`
	Description string          `toml:"description"`
	Type        string          `toml:"type"`
	Brand       string          `toml:"brand,omitempty"`
	Year        int             `toml:"year,omitempty"`
	Capacities  []capacityEntry `toml:"capacities"`
}

type capacityEntry struct {
	ID     int64  `toml:"id"`
	Size   string `toml:"size"`
	Active *bool  `toml:"active,omitempty"`
}

// Decode parses a snapshot. Capacities default to active and brands to
// domain.DefaultBrand.
func Decode(r io.Reader) ([]domain.CatalogModel, error) {
	var snap snapshot
	if err := toml.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decoding catalog snapshot: %w", err)
	}

	models := make([]domain.CatalogModel, 0, len(snap.Models))
	for i, e := range snap.Models {
		if strings.TrimSpace(e.Description) == "" {
			return nil, fmt.Errorf("model %d: %w: empty description", i+1, domain.ErrInvalidInput)
		}
		family := domain.DeviceFamily(e.Type)
		if !family.IsValid() {
			return nil, fmt.Errorf("model %q: %w: unknown type %q", e.Description, domain.ErrInvalidInput, e.Type)
		}
		brand := e.Brand
		if brand == "" {
			brand = domain.DefaultBrand
		}
		m := domain.CatalogModel{
			ID:          e.ID,
			Description: e.Description,
			Type:        family,
			Brand:       brand,
			Year:        e.Year,
		}
		for _, c := range e.Capacities {
			active := c.Active == nil || *c.Active
			m.Capacities = append(m.Capacities, domain.CatalogCapacity{
				ID:      c.ID,
				ModelID: e.ID,
				Size:    c.Size,
				Active:  active,
			})
		}
		models = append(models, m)
	}
	return models, nil
}

// DecodeFile parses the snapshot at path.
func DecodeFile(path string) ([]domain.CatalogModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog snapshot: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Encode writes models as a snapshot.
func Encode(w io.Writer, models []domain.CatalogModel) error {
	snap := snapshot{Models: make([]modelEntry, 0, len(models))}
	for _, m := range models {
		e := modelEntry{
			ID:          m.ID,
			Description: m.Description,
			Type:        string(m.Type),
			Brand:       m.Brand,
			Year:        m.Year,
		}
		for _, c := range m.Capacities {
			active := c.Active
			e.Capacities = append(e.Capacities, capacityEntry{ID: c.ID, Size: c.Size, Active: &active})
		}
		snap.Models = append(snap.Models, e)
	}
	if err := toml.NewEncoder(w).Encode(snap); err != nil {
		return fmt.Errorf("encoding catalog snapshot: %w", err)
	}
	return nil
}
