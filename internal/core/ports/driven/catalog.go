package driven

import (
	"context"

	"github.com/custodia-labs/devmap/internal/core/domain"
)

// CatalogReader is the read-only catalog the mapping engine queries.
// Backed by SQLite in production and by memory in tests.
type CatalogReader interface {
	// FindModels returns models matching the query, each carrying its active
	// capacity rows. Results are ordered by model id.
	FindModels(ctx context.Context, q domain.CatalogQuery) ([]domain.CatalogModel, error)

	// GetModel retrieves one model with its active capacities.
	// Returns domain.ErrNotFound if the model does not exist.
	GetModel(ctx context.Context, id int64) (*domain.CatalogModel, error)
}

// CatalogWriter maintains the catalog for operator tooling (devmap catalog
// import). The mapping core never writes.
type CatalogWriter interface {
	// SaveModel inserts or replaces a model and its capacity rows.
	SaveModel(ctx context.Context, model domain.CatalogModel) error

	// ListModels returns every model of a family, all families when empty,
	// with active and inactive capacities, ordered by id.
	ListModels(ctx context.Context, family domain.DeviceFamily) ([]domain.CatalogModel, error)
}

// CatalogStore is a catalog that can be both queried and maintained.
type CatalogStore interface {
	CatalogReader
	CatalogWriter
}
