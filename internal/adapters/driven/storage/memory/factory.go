package memory

import (
	"sync"

	"github.com/atelier-tools/batchman/internal/core/domain"
	"github.com/atelier-tools/batchman/internal/core/ports/driven"
)

// Ensure StoreFactory implements the interface.
var _ driven.StoreFactory = (*StoreFactory)(nil)

// StoreFactory hands out in-memory stores keyed by directory. Stores
// survive across calls for the factory's lifetime, which mirrors the
// persistence the SQLite factory provides within a single process.
type StoreFactory struct {
	mu       sync.Mutex
	exports  map[string]*ExportRecordStore
	projects map[string]*RucksackStore
	user     *RucksackStore
}

// NewStoreFactory creates a new in-memory store factory.
func NewStoreFactory() *StoreFactory {
	return &StoreFactory{
		exports:  make(map[string]*ExportRecordStore),
		projects: make(map[string]*RucksackStore),
		user:     NewRucksackStore(domain.ScopeUser),
	}
}

// ExportRecords returns the export record store for a directory.
func (f *StoreFactory) ExportRecords(dir string) (driven.ExportRecordStore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	store, ok := f.exports[dir]
	if !ok {
		store = NewExportRecordStore()
		f.exports[dir] = store
	}
	return store, nil
}

// ProjectRucksack returns the project-scope rucksack store for a directory.
func (f *StoreFactory) ProjectRucksack(dir string) (driven.RucksackStore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	store, ok := f.projects[dir]
	if !ok {
		store = NewRucksackStore(domain.ScopeProject)
		f.projects[dir] = store
	}
	return store, nil
}

// UserRucksack returns the user-scope rucksack store.
func (f *StoreFactory) UserRucksack() (driven.RucksackStore, error) {
	return f.user, nil
}

// Close releases nothing; in-memory stores have no resources.
func (f *StoreFactory) Close() error {
	return nil
}
