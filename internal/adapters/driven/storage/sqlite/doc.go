// Package sqlite provides SQLite-based implementations of the storage
// driven ports.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. Unlike a single shared
// database, each tracked directory gets its own files:
//
//   - <dir>/.batchman/exports.db: export records for that directory
//   - <dir>/.batchman/rucksack.db: project-scope rucksack items
//   - ~/.batchman/rucksack.db: user-scope rucksack items
//
// # Schema
//
// Schemas are managed through versioned migrations embedded from the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files; the exports/ and rucksack/ subsets are applied independently.
//
// # Recovery
//
// A database file that cannot be opened or migrated is renamed with a
// .corrupt suffix and replaced by an empty one. Incremental state is
// rebuildable, so losing it costs a full re-export at worst.
//
// # Thread Safety
//
// All operations are thread-safe. The stores use database-level locking
// provided by SQLite in WAL mode.
package sqlite
