package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/devmap/internal/core/domain"
)

// MapDeviceInput is the input schema for the map_device tool.
type MapDeviceInput struct {
	ModelName  string   `json:"model_name" jsonschema:"full vendor display name, e.g. iPhone 13 Pro 128GB"`
	Identifier string   `json:"identifier,omitempty" jsonschema:"vendor identifier code such as A2816"`
	Capacity   string   `json:"capacity,omitempty" jsonschema:"capacity reported separately by the feed, e.g. 512GB"`
	Price      *float64 `json:"price,omitempty" jsonschema:"vendor price"`
	Brand      string   `json:"brand,omitempty" jsonschema:"brand name (default Apple)"`
	System     string   `json:"system,omitempty" jsonschema:"v4, v3 or auto; empty uses the configured default"`
}

// MapDeviceOutput mirrors the dict contract of the compatibility boundary.
type MapDeviceOutput struct {
	Success               bool              `json:"success"`
	CapacityID            int64             `json:"capacidad_id,omitempty"`
	ModelID               int64             `json:"modelo_id,omitempty"`
	ModelDescription      string            `json:"modelo_descripcion,omitempty"`
	CapacitySize          string            `json:"capacidad_tamanio,omitempty"`
	Confidence            float64           `json:"confidence,omitempty"`
	Strategy              string            `json:"strategy,omitempty"`
	ErrorMessage          string            `json:"error_message,omitempty"`
	ErrorCode             string            `json:"error_code,omitempty"`
	NeedsCapacityCreation bool              `json:"needs_capacity_creation,omitempty"`
	SuggestedCapacity     *SuggestionOutput `json:"suggested_capacity,omitempty"`
	Engine                string            `json:"engine"`
	SystemUsed            string            `json:"system_used"`
	Trail                 []string          `json:"mapping_log,omitempty"`
}

// SuggestionOutput describes a capacity row an operator should create.
type SuggestionOutput struct {
	ModelID            int64    `json:"model_id"`
	ModelDescription   string   `json:"model_description"`
	StorageGB          int      `json:"storage_gb"`
	CapacityLabel      string   `json:"capacity_label"`
	Family             string   `json:"family"`
	Generation         int      `json:"generation,omitempty"`
	Variant            string   `json:"variant,omitempty"`
	Year               int      `json:"year,omitempty"`
	Chip               string   `json:"chip,omitempty"`
	CPUCores           int      `json:"cpu_cores,omitempty"`
	GPUCores           int      `json:"gpu_cores,omitempty"`
	ScreenSize         float64  `json:"screen_size,omitempty"`
	Identifier         string   `json:"identifier,omitempty"`
	Connectivity       string   `json:"connectivity,omitempty"`
	ExistingCapacities []string `json:"existing_capacities"`
	ExpectedCapacities []string `json:"expected_capacities"`
	MissingCapacities  []string `json:"missing_capacities"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "map_device",
		Description: "Resolve a vendor device row (display name, identifier, capacity) to a catalog model and capacity",
	}, s.handleMapDevice)
}

// handleMapDevice handles the map_device tool invocation. Mapping failures
// are reported in the output, not as tool errors.
func (s *Server) handleMapDevice(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MapDeviceInput,
) (*mcp.CallToolResult, MapDeviceOutput, error) {
	system := domain.MappingSystem(input.System)
	if system != "" && !system.IsValid() {
		return nil, MapDeviceOutput{}, fmt.Errorf("unknown system %q (want v4, v3 or auto)", input.System)
	}

	opts := []domain.InputOption{
		domain.WithIdentifier(input.Identifier),
		domain.WithCapacity(input.Capacity),
		domain.WithBrand(input.Brand),
	}
	if input.Price != nil {
		opts = append(opts, domain.WithPrice(*input.Price))
	}

	mappingInput, err := domain.NewMappingInput(input.ModelName, opts...)
	if err != nil {
		return nil, MapDeviceOutput{
			ErrorMessage: err.Error(),
			ErrorCode:    domain.CodeFor(err).String(),
			SystemUsed:   string(system),
		}, nil
	}

	result, used := s.ports.Mapper.Resolve(ctx, mappingInput, system)
	return nil, toOutput(result, used), nil
}

func toOutput(r *domain.MatchResult, used domain.MappingSystem) MapDeviceOutput {
	out := MapDeviceOutput{
		Success:    r.Succeeded(),
		Engine:     r.Engine,
		SystemUsed: string(used),
	}

	if r.Succeeded() {
		out.CapacityID = r.CapacityID
		out.ModelID = r.ModelID
		out.ModelDescription = r.ModelDescription
		out.CapacitySize = r.CapacitySize
		out.Confidence = r.Confidence
		out.Strategy = r.Strategy.String()
	} else {
		out.ErrorMessage = r.ErrorMessage
		out.ErrorCode = r.ErrorCode.String()
	}

	if sg := r.Suggestion; sg != nil {
		out.NeedsCapacityCreation = true
		out.SuggestedCapacity = &SuggestionOutput{
			ModelID:            sg.ModelID,
			ModelDescription:   sg.ModelDescription,
			StorageGB:          sg.StorageGB,
			CapacityLabel:      sg.CapacityLabel,
			Family:             sg.Family.String(),
			Generation:         sg.Generation,
			Variant:            sg.Variant,
			Year:               sg.Year,
			Chip:               sg.Chip,
			CPUCores:           sg.CPUCores,
			GPUCores:           sg.GPUCores,
			ScreenSize:         sg.ScreenSize,
			Identifier:         sg.Identifier,
			Connectivity:       string(sg.Connectivity),
			ExistingCapacities: orEmpty(sg.ExistingCapacities),
			ExpectedCapacities: orEmpty(sg.ExpectedCapacities),
			MissingCapacities:  orEmpty(sg.MissingCapacities),
		}
	}

	if r.Context != nil {
		for _, e := range r.Context.Entries() {
			out.Trail = append(out.Trail, fmt.Sprintf("%s: %s", e.Level, e.Message))
		}
	}

	return out
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
