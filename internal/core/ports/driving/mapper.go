package driving

import (
	"context"

	"github.com/custodia-labs/devmap/internal/core/domain"
)

// DeviceMapper resolves vendor rows to catalog rows.
// It never returns an error: callers branch on MatchResult.Status.
type DeviceMapper interface {
	// Map resolves one input.
	Map(ctx context.Context, input domain.MappingInput) *domain.MatchResult

	// Families lists the device families the registered engines support,
	// in registration order.
	Families() []domain.DeviceFamily
}

// BatchMapper maps a whole feed concurrently.
type BatchMapper interface {
	// MapAll maps every item and returns them in input order with a summary.
	// Items with a zero Input are reported as INVALID_INPUT errors.
	MapAll(ctx context.Context, items []domain.BatchItem) ([]domain.BatchItem, domain.BatchSummary, error)
}
