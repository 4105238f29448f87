package sqlite

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/atelier-tools/batchman/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/atelier-tools/batchman/internal/core/domain"
	"github.com/atelier-tools/batchman/internal/logger"
)

// Store wraps one SQLite database file. Export records and rucksack
// items live in separate files with separate schemas; both go through
// this type.
type Store struct {
	db   *sql.DB
	path string
}

// openStore opens (or creates) the database at path and applies the
// migration set named by schemaDir. A database that cannot be opened or
// migrated is sidelined with a .corrupt suffix and replaced by a fresh
// empty one, so a damaged file never blocks the tool.
func openStore(path, schemaDir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	store, err := tryOpen(path, schemaDir)
	if err == nil {
		return store, nil
	}
	if _, statErr := os.Stat(path); statErr != nil {
		// Nothing to sideline; the open itself is broken.
		return nil, err
	}

	logger.Warn("store %s unusable (%v), sidelining and starting empty", path, err)
	if err := sideline(path); err != nil {
		return nil, err
	}
	store, err = tryOpen(path, schemaDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrStoreCorrupt, path, err)
	}
	return store, nil
}

func tryOpen(path, schemaDir string) (*Store, error) {
	// WAL mode for concurrent readers during an export batch.
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(migrations.FS, schemaDir); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// sideline renames a damaged database file, including its WAL siblings.
func sideline(path string) error {
	if err := os.Rename(path, path+".corrupt"); err != nil {
		return fmt.Errorf("sidelining corrupt store: %w", err)
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		os.Rename(path+suffix, path+suffix+".corrupt")
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations from one schema directory.
func (s *Store) migrate(fsys embed.FS, schemaDir string) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, schemaDir)
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, schemaDir+"/"+name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
