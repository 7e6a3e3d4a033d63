package mcp

import (
	"context"

	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/core/ports/driven"
)

// Mapper is the compatibility boundary the map_device tool drives.
// It is satisfied by *compat.Adapter.
type Mapper interface {
	// Resolve maps input with the requested system and reports the system used.
	Resolve(ctx context.Context, input domain.MappingInput, system domain.MappingSystem) (*domain.MatchResult, domain.MappingSystem)

	// Families lists the supported device families.
	Families() []domain.DeviceFamily
}

// Ports aggregates the dependencies of the MCP server.
type Ports struct {
	// Mapper resolves map_device calls.
	Mapper Mapper

	// Catalog backs the model resource. Optional.
	Catalog driven.CatalogReader
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Mapper == nil {
		return ErrMissingMapper
	}
	return nil
}
