package compat

import (
	"context"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/core/ports/driven"
	"github.com/custodia-labs/devmap/internal/core/ports/driving"
	"github.com/custodia-labs/devmap/internal/logger"
)

// Ensure Adapter can stand in for the façade, e.g. under a BatchService.
var _ driving.DeviceMapper = (*Adapter)(nil)

// Adapter routes requests to the v4 façade or the v3 legacy engine.
type Adapter struct {
	v4       driving.DeviceMapper
	v3       driven.LegacyMapper
	settings domain.MappingSettings
}

// NewAdapter creates the boundary. legacy may be nil, in which case forced
// v3 requests fail with V3_NOT_AVAILABLE and auto never falls back.
func NewAdapter(v4 driving.DeviceMapper, legacy driven.LegacyMapper, settings domain.MappingSettings) *Adapter {
	if !settings.System.IsValid() {
		settings.System = domain.SystemAuto
	}
	return &Adapter{v4: v4, v3: legacy, settings: settings}
}

// Map resolves input with the configured default system.
func (a *Adapter) Map(ctx context.Context, input domain.MappingInput) *domain.MatchResult {
	result, _ := a.Resolve(ctx, input, "")
	return result
}

// Families returns the v4 families.
func (a *Adapter) Families() []domain.DeviceFamily {
	return a.v4.Families()
}

// Resolve maps input with the requested system and reports which engine
// generation produced the result. An empty system uses the configured
// default and is subject to the rollout percentage; an explicit system is
// not. Disabling v4 sends everything to v3.
func (a *Adapter) Resolve(ctx context.Context, input domain.MappingInput, requested domain.MappingSystem) (*domain.MatchResult, domain.MappingSystem) {
	if requested != "" && !requested.IsValid() {
		return domain.NewErrorResult(domain.ErrorCodeInvalidInput,
			fmt.Sprintf("%v: unknown system %q (want v4, v3 or auto)", domain.ErrInvalidInput, requested)), requested
	}
	if input.IsZero() {
		return domain.NewErrorResult(domain.ErrorCodeInvalidInput,
			fmt.Sprintf("%v: model name is empty", domain.ErrInvalidInput)), domain.SystemV4
	}

	system := a.selectSystem(input, requested)
	logger.Debug("compat: %q -> %s (requested %q)", input.ModelName(), system, requested)

	switch system {
	case domain.SystemV3:
		return a.mapV3(ctx, input), domain.SystemV3
	case domain.SystemV4:
		return a.v4.Map(ctx, input), domain.SystemV4
	}

	result := a.v4.Map(ctx, input)
	if !shouldFallBack(result) || a.v3 == nil {
		return result, domain.SystemV4
	}

	legacy := a.mapV3(ctx, input)
	if !legacy.Succeeded() {
		logger.Debug("compat: v3 fallback for %q found nothing, keeping v4 result", input.ModelName())
		return result, domain.SystemV4
	}
	return legacy, domain.SystemV3
}

func (a *Adapter) selectSystem(input domain.MappingInput, requested domain.MappingSystem) domain.MappingSystem {
	if !a.settings.V4Enabled {
		return domain.SystemV3
	}
	if requested != "" {
		return requested
	}
	if a.settings.System != domain.SystemV3 && !InRollout(input.ModelName(), a.settings.RolloutPercent) {
		return domain.SystemV3
	}
	return a.settings.System
}

// shouldFallBack reports whether auto mode may consult v3. A capacity
// suggestion is never replaced by a legacy guess.
func shouldFallBack(r *domain.MatchResult) bool {
	switch {
	case r == nil:
		return true
	case r.Status == domain.StatusNoMatch:
		return r.Suggestion == nil
	case r.Status == domain.StatusError:
		return r.ErrorCode == domain.ErrorCodeNoEngine
	default:
		return false
	}
}

func (a *Adapter) mapV3(ctx context.Context, input domain.MappingInput) *domain.MatchResult {
	if a.v3 == nil {
		return domain.NewErrorResult(domain.ErrorCodeV3NotAvailable, domain.ErrLegacyUnavailable.Error())
	}

	result, err := a.v3.Map(ctx, input)
	if err != nil {
		logger.Warn("compat: v3 failed for %q: %v", input.ModelName(), err)
		return domain.NewErrorResult(domain.ErrorCodeV3Error, fmt.Sprintf("v3 engine: %v", err))
	}
	if result == nil {
		return domain.NewNoMatchResult("v3 engine found no match", nil, nil)
	}
	return result
}

// InRollout reports whether name falls inside the first percent of the
// 100 rollout buckets. The bucket depends only on the lowercased name, so
// the same row always lands on the same engine.
func InRollout(name string, percent int) bool {
	if percent >= 100 {
		return true
	}
	if percent <= 0 {
		return false
	}
	bucket := xxhash.Sum64String(strings.ToLower(strings.TrimSpace(name))) % 100
	return bucket < uint64(percent)
}
