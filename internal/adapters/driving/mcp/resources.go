package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/devmap/internal/core/domain"
)

// uriScheme is the custom URI scheme for devmap resources.
const uriScheme = "devmap://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "families",
		Name:        "families",
		Description: "Device families the mapping engines support, in routing order",
		MIMEType:    "application/json",
	}, s.handleFamiliesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "models/{modelId}",
		Name:        "catalog-model",
		Description: "A catalog model with its active capacities",
		MIMEType:    "application/json",
	}, s.handleModelResource)
}

// handleFamiliesResource returns the supported families.
func (s *Server) handleFamiliesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	families := s.ports.Mapper.Families()
	names := make([]string, len(families))
	for i, f := range families {
		names[i] = f.String()
	}
	return jsonResource(req.Params.URI, names)
}

// handleModelResource returns one catalog model.
func (s *Server) handleModelResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Catalog == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	id, ok := extractModelID(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	model, err := s.ports.Catalog.GetModel(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting model: %w", err)
	}

	type modelInfo struct {
		ID          int64    `json:"id"`
		Description string   `json:"description"`
		Family      string   `json:"family"`
		Brand       string   `json:"brand"`
		Year        int      `json:"year,omitempty"`
		Capacities  []string `json:"capacities"`
	}

	return jsonResource(req.Params.URI, modelInfo{
		ID:          model.ID,
		Description: model.Description,
		Family:      model.Type.String(),
		Brand:       model.Brand,
		Year:        model.Year,
		Capacities:  orEmpty(model.CapacityLabels()),
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractModelID parses the id from a URI like devmap://models/{modelId}.
func extractModelID(uri string) (int64, bool) {
	const prefix = uriScheme + "models/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(uri, prefix), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
