package driven

import (
	"context"

	"github.com/custodia-labs/devmap/internal/core/domain"
)

// LegacyMapper is the v3 engine being phased out. It is consulted only at the
// compatibility boundary, when a caller forces system=v3 or when system=auto
// falls back.
type LegacyMapper interface {
	// Map resolves an input the v3 way. A nil result with a nil error means
	// the legacy engine found nothing.
	Map(ctx context.Context, input domain.MappingInput) (*domain.MatchResult, error)
}
