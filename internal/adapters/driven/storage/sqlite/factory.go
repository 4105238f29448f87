package sqlite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/atelier-tools/batchman/internal/core/domain"
	"github.com/atelier-tools/batchman/internal/core/ports/driven"
)

// storeDirName is the per-directory metadata directory.
const storeDirName = ".batchman"

// Ensure StoreFactory implements the interface.
var _ driven.StoreFactory = (*StoreFactory)(nil)

// StoreFactory opens SQLite stores on demand and caches the handles so
// repeated lookups for the same directory share one connection.
type StoreFactory struct {
	userDir string

	mu       sync.Mutex
	exports  map[string]*ExportRecordStore
	projects map[string]*RucksackStore
	user     *RucksackStore
}

// NewStoreFactory creates a store factory. userDir is where the
// user-scope rucksack lives; if empty it defaults to ~/.batchman.
func NewStoreFactory(userDir string) (*StoreFactory, error) {
	if userDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		userDir = filepath.Join(home, storeDirName)
	}
	return &StoreFactory{
		userDir:  userDir,
		exports:  make(map[string]*ExportRecordStore),
		projects: make(map[string]*RucksackStore),
	}, nil
}

// ExportRecords returns the export record store for a tracked directory,
// backed by <dir>/.batchman/exports.db.
func (f *StoreFactory) ExportRecords(dir string) (driven.ExportRecordStore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	dir = filepath.Clean(dir)
	if store, ok := f.exports[dir]; ok {
		return store, nil
	}
	store, err := OpenExportRecordStore(filepath.Join(dir, storeDirName, "exports.db"))
	if err != nil {
		return nil, err
	}
	f.exports[dir] = store
	return store, nil
}

// ProjectRucksack returns the project-scope rucksack store for a tracked
// directory, backed by <dir>/.batchman/rucksack.db.
func (f *StoreFactory) ProjectRucksack(dir string) (driven.RucksackStore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	dir = filepath.Clean(dir)
	if store, ok := f.projects[dir]; ok {
		return store, nil
	}
	store, err := OpenRucksackStore(filepath.Join(dir, storeDirName, "rucksack.db"), domain.ScopeProject)
	if err != nil {
		return nil, err
	}
	f.projects[dir] = store
	return store, nil
}

// UserRucksack returns the user-scope rucksack store.
func (f *StoreFactory) UserRucksack() (driven.RucksackStore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.user != nil {
		return f.user, nil
	}
	store, err := OpenRucksackStore(filepath.Join(f.userDir, "rucksack.db"), domain.ScopeUser)
	if err != nil {
		return nil, err
	}
	f.user = store
	return store, nil
}

// Close closes every store the factory opened.
func (f *StoreFactory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var errs []error
	for _, store := range f.exports {
		errs = append(errs, store.Close())
	}
	for _, store := range f.projects {
		errs = append(errs, store.Close())
	}
	if f.user != nil {
		errs = append(errs, f.user.Close())
	}
	f.exports = make(map[string]*ExportRecordStore)
	f.projects = make(map[string]*RucksackStore)
	f.user = nil
	return errors.Join(errs...)
}
