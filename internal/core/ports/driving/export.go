package driving

import (
	"context"

	"github.com/atelier-tools/batchman/internal/core/domain"
)

// ExportService drives incremental export for tracked directories.
type ExportService interface {
	// Plan returns the minimal job set needed to bring the directory's
	// targets in sync, without executing anything.
	Plan(ctx context.Context, dir string) ([]domain.ExportJob, error)

	// Export plans and executes in one call, returning the batch report.
	// Returns domain.ErrExportInProgress if a batch is already running
	// for the directory.
	Export(ctx context.Context, dir string) (*domain.ExportReport, error)

	// Status returns progress for the directory's running batch, or an
	// idle status when none is running.
	Status(ctx context.Context, dir string) (*ExportStatus, error)
}

// ExportStatus represents the current state of an export batch.
type ExportStatus struct {
	// Dir identifies the tracked directory.
	Dir string

	// Running indicates if a batch is currently in progress.
	Running bool

	// Processed is the count of jobs completed so far.
	Processed int

	// Failures is the number of isolated job failures so far.
	Failures int

	// Planned is the total number of jobs in the batch.
	Planned int
}
