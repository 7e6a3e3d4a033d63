package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/core/ports/driving"
	"github.com/custodia-labs/devmap/internal/logger"
)

// Ensure BatchService implements the interface.
var _ driving.BatchMapper = (*BatchService)(nil)

// BatchService fans a feed out over a fixed worker pool. Each row is an
// independent Map call, so workers share nothing but the mapper.
type BatchService struct {
	mapper  driving.DeviceMapper
	workers int
	limiter *rate.Limiter
	newID   func() string
}

// NewBatchService creates a batch service from batch settings.
// Workers below one are raised to one; a zero rate disables throttling.
func NewBatchService(mapper driving.DeviceMapper, cfg domain.BatchSettings) *BatchService {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		burst := int(cfg.RatePerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}

	return &BatchService{
		mapper:  mapper,
		workers: workers,
		limiter: limiter,
		newID:   uuid.NewString,
	}
}

// MapAll maps every item and returns them in input order. The only error
// is context cancellation; per-row failures are carried in each Result.
func (s *BatchService) MapAll(ctx context.Context, items []domain.BatchItem) ([]domain.BatchItem, domain.BatchSummary, error) {
	summary := domain.BatchSummary{RunID: s.newID()}
	out := make([]domain.BatchItem, len(items))
	copy(out, items)

	logger.Section(fmt.Sprintf("batch %s: %d rows, %d workers", summary.RunID, len(items), s.workers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i := range out {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if s.limiter != nil {
				if err := s.limiter.Wait(gctx); err != nil {
					return fmt.Errorf("batch throttle: %w", err)
				}
			}
			out[i].Result = s.mapOne(gctx, out[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, summary, err
	}
	if err := ctx.Err(); err != nil {
		return nil, summary, fmt.Errorf("batch %s: %w", summary.RunID, err)
	}

	for _, item := range out {
		summary.Add(item.Result)
	}
	logger.Info("batch %s: %d ok, %d no match (%d capacity suggestions), %d errors",
		summary.RunID, summary.Succeeded, summary.NoMatch, summary.CapacitySuggested, summary.Errors)

	return out, summary, nil
}

func (s *BatchService) mapOne(ctx context.Context, item domain.BatchItem) *domain.MatchResult {
	if item.Input.IsZero() {
		msg := fmt.Sprintf("%v: line %d has no model name", domain.ErrInvalidInput, item.Line)
		if item.Result != nil && item.Result.ErrorMessage != "" {
			msg = item.Result.ErrorMessage
		}
		return domain.NewErrorResult(domain.ErrorCodeInvalidInput, msg)
	}
	return s.mapper.Map(ctx, item.Input)
}
