package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/core/ports/driving"
	"github.com/custodia-labs/devmap/internal/logger"
	"github.com/custodia-labs/devmap/internal/mapping"
)

// Ensure DeviceMapperService implements the interface.
var _ driving.DeviceMapper = (*DeviceMapperService)(nil)

// DeviceMapperService routes each input to the first registered family
// engine that claims it. It holds no per-call state and is safe for
// concurrent use.
type DeviceMapperService struct {
	engines []mapping.Engine
}

// NewDeviceMapperService creates a façade over engines. Registration order
// is significant: the first engine whose CanHandle returns true wins.
func NewDeviceMapperService(engines ...mapping.Engine) *DeviceMapperService {
	return &DeviceMapperService{engines: append([]mapping.Engine(nil), engines...)}
}

// Map resolves one input. A zero input is rejected before engine selection.
func (s *DeviceMapperService) Map(ctx context.Context, input domain.MappingInput) *domain.MatchResult {
	if input.IsZero() {
		return domain.NewErrorResult(domain.ErrorCodeInvalidInput,
			fmt.Sprintf("%v: model name is empty", domain.ErrInvalidInput))
	}

	for _, e := range s.engines {
		if e.CanHandle(input) {
			logger.Debug("mapper: %q routed to %s", input.ModelName(), e.Name())
			return e.Map(ctx, input)
		}
	}

	logger.Debug("mapper: no engine for %q", input.ModelName())
	return domain.NewErrorResult(domain.ErrorCodeNoEngine,
		fmt.Sprintf("%v for %q (supported families: %s)",
			domain.ErrNoEngineAvailable, input.ModelName(), s.familyList()))
}

// Families lists the families of the registered engines in order.
func (s *DeviceMapperService) Families() []domain.DeviceFamily {
	out := make([]domain.DeviceFamily, 0, len(s.engines))
	for _, e := range s.engines {
		out = append(out, e.Family())
	}
	return out
}

func (s *DeviceMapperService) familyList() string {
	names := make([]string, 0, len(s.engines))
	for _, f := range s.Families() {
		names = append(names, f.String())
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}
