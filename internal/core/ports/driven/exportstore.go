package driven

import (
	"context"

	"github.com/atelier-tools/batchman/internal/core/domain"
)

// ExportRecordStore persists per-directory export records.
//
// Records are monotonic: a path's stored fingerprint only advances to one
// that was actually exported. Implementations must make Record atomic per
// path so concurrent failed attempts never regress or corrupt prior state.
// A missing or unreadable backing store behaves as empty ("never
// exported") rather than failing.
type ExportRecordStore interface {
	// Get retrieves the record for a document path (relative to the
	// tracked directory). Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, path string) (*domain.ExportRecord, error)

	// Record stores or overwrites a record after a successful export.
	Record(ctx context.Context, rec domain.ExportRecord) error

	// List returns all records for the directory.
	List(ctx context.Context) ([]domain.ExportRecord, error)

	// Delete removes the record for a path.
	Delete(ctx context.Context, path string) error
}
