// Package sqlite provides the SQLite-backed device catalog.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements driven.CatalogStore:
// the read-only queries the mapping engines issue, and the writes used by
// operator tooling to import catalog snapshots.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.devmap/data/catalog.db
//
// # Thread Safety
//
// All operations are thread-safe. Concurrent batch workers share one
// connection pool; SQLite in WAL mode serialises writers.
package sqlite
