// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CatalogReader: Read-only device catalog queries
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LegacyMapper: The v3 engine. Without it, system=v3 requests fail
//     with V3_NOT_AVAILABLE and system=auto never falls back.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or mapping package
package driven
