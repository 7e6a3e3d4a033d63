// Package domain defines the core entities of the device mapping engine.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - MappingInput: A vendor price-list row to resolve
//   - ExtractedFeatures: The typed feature bag parsed from the raw text
//   - CatalogModel / CatalogCapacity: Read-only rows of the device catalog
//   - MatchCandidate: One scored (model, capacity) pair
//   - MatchResult: The terminal outcome of a mapping call
//   - MappingContext: The per-call decision trail
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
