package compat

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/devmap/internal/core/domain"
)

// Request keys.
const (
	KeyModelName  = "model_name"
	KeyIdentifier = "identifier"
	KeyCapacity   = "capacity"
	KeyPrice      = "price"
	KeyBrand      = "brand"
	KeySystem     = "system"
)

// MapDevice is the dict-in, dict-out entry point. It always returns a map
// with at least success, engine and system_used set.
func (a *Adapter) MapDevice(ctx context.Context, req map[string]any) map[string]any {
	input, system, err := ParseRequest(req)
	if err != nil {
		out := ToDict(domain.NewErrorResult(domain.CodeFor(err), err.Error()))
		out["system_used"] = string(system)
		return out
	}

	result, used := a.Resolve(ctx, input, system)
	out := ToDict(result)
	out["system_used"] = string(used)
	return out
}

// ParseRequest converts a request map to a typed input and the requested
// system (empty when the caller did not name one).
func ParseRequest(req map[string]any) (domain.MappingInput, domain.MappingSystem, error) {
	system := domain.MappingSystem(strings.ToLower(stringField(req, KeySystem)))
	if system != "" && !system.IsValid() {
		return domain.MappingInput{}, system,
			fmt.Errorf("%w: unknown system %q (want v4, v3 or auto)", domain.ErrInvalidInput, system)
	}

	var opts []domain.InputOption
	if v := stringField(req, KeyIdentifier); v != "" {
		opts = append(opts, domain.WithIdentifier(v))
	}
	if v := stringField(req, KeyCapacity); v != "" {
		opts = append(opts, domain.WithCapacity(v))
	}
	if v := stringField(req, KeyBrand); v != "" {
		opts = append(opts, domain.WithBrand(v))
	}
	if raw, ok := req[KeyPrice]; ok && raw != nil {
		price, err := toFloat(raw)
		if err != nil {
			return domain.MappingInput{}, system, fmt.Errorf("%w: price: %v", domain.ErrInvalidInput, err)
		}
		opts = append(opts, domain.WithPrice(price))
	}

	input, err := domain.NewMappingInput(stringField(req, KeyModelName), opts...)
	if err != nil {
		return domain.MappingInput{}, system, err
	}
	return input, system, nil
}

// ToDict serialises a typed result. Success keys and failure keys are
// mutually exclusive.
func ToDict(r *domain.MatchResult) map[string]any {
	if r == nil {
		r = domain.NewErrorResult(domain.ErrorCodeMappingError, domain.ErrMapping.Error())
	}

	out := map[string]any{
		"success": r.Succeeded(),
		"engine":  r.Engine,
	}

	if r.Succeeded() {
		out["capacidad_id"] = r.CapacityID
		out["modelo_id"] = r.ModelID
		out["modelo_descripcion"] = r.ModelDescription
		out["capacidad_tamanio"] = r.CapacitySize
		out["confidence"] = r.Confidence
		out["strategy"] = r.Strategy.String()
	} else {
		code := r.ErrorCode
		if code == domain.ErrorCodeNone {
			code = domain.ErrorCodeMappingError
			if r.Status == domain.StatusNoMatch {
				code = domain.ErrorCodeNoMatch
			}
		}
		out["error_message"] = r.ErrorMessage
		out["error_code"] = code.String()
		if r.Suggestion != nil {
			out["needs_capacity_creation"] = true
			out["suggested_capacity"] = suggestionDict(r.Suggestion)
		}
	}

	if r.Context != nil {
		out["mapping_id"] = r.Context.ID
		out["processing_time_ms"] = r.Context.Duration().Milliseconds()
		entries := r.Context.Entries()
		trail := make([]string, 0, len(entries))
		for _, e := range entries {
			trail = append(trail, fmt.Sprintf("%s: %s", e.Level, e.Message))
		}
		out["mapping_log"] = trail
	}

	return out
}

func suggestionDict(s *domain.CapacitySuggestion) map[string]any {
	return map[string]any{
		"model_id":            s.ModelID,
		"model_description":   s.ModelDescription,
		"storage_gb":          s.StorageGB,
		"capacity_label":      s.CapacityLabel,
		"family":              s.Family.String(),
		"generation":          s.Generation,
		"variant":             s.Variant,
		"year":                s.Year,
		"chip":                s.Chip,
		"cpu_cores":           s.CPUCores,
		"gpu_cores":           s.GPUCores,
		"screen_size":         s.ScreenSize,
		"identifier":          s.Identifier,
		"connectivity":        string(s.Connectivity),
		"existing_capacities": nonNil(s.ExistingCapacities),
		"expected_capacities": nonNil(s.ExpectedCapacities),
		"missing_capacities":  nonNil(s.MissingCapacities),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func stringField(req map[string]any, key string) string {
	switch v := req[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case fmt.Stringer:
		return strings.TrimSpace(v.String())
	default:
		return ""
	}
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, errors.New("empty")
		}
		return strconv.ParseFloat(s, 64)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}
