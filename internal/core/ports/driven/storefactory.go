package driven

import "github.com/atelier-tools/batchman/internal/core/domain"

// StoreFactory opens the directory-scoped and user-scoped stores.
// Implementations cache open handles; Close releases them all.
//
// Opening a store never fails on corrupt persisted state: corrupt
// backing files are sidelined and the store comes up empty.
type StoreFactory interface {
	// ExportRecords returns the export record store for a tracked directory.
	ExportRecords(dir string) (ExportRecordStore, error)

	// ProjectRucksack returns the project-scope rucksack store for a
	// tracked directory.
	ProjectRucksack(dir string) (RucksackStore, error)

	// UserRucksack returns the user-scope rucksack store.
	UserRucksack() (RucksackStore, error)

	// Close releases all open stores.
	Close() error
}

// ExportConfigStore loads and saves the per-directory export configuration.
type ExportConfigStore interface {
	// LoadExportConfig reads the directory's export configuration.
	// A missing or unreadable file yields the defaults.
	LoadExportConfig(dir string) (domain.ExportConfig, error)

	// SaveExportConfig persists the directory's export configuration.
	SaveExportConfig(dir string, cfg domain.ExportConfig) error
}
