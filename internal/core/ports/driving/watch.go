package driving

import "context"

// AutoExporter keeps a directory's targets in sync by re-running the
// export cycle whenever tracked documents change on disk.
type AutoExporter interface {
	// Run blocks, exporting on changes, until ctx is cancelled.
	Run(ctx context.Context, dir string) error
}
