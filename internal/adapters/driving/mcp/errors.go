// Package mcp provides an MCP (Model Context Protocol) server adapter for devmap.
// It lets assistants and operator tooling map vendor rows and inspect the
// catalog without going through the CLI.
package mcp

import "errors"

// ErrMissingMapper is returned when the mapper is not provided.
var ErrMissingMapper = errors.New("mcp: device mapper is required")
