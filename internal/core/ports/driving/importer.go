package driving

import (
	"context"

	"github.com/atelier-tools/batchman/internal/core/domain"
)

// ImportService converts external image files into new editable documents.
type ImportService interface {
	// ImportBatch imports each source into dir, one result per source.
	// Item failures are isolated; the batch always runs to completion.
	ImportBatch(ctx context.Context, sources []string, dir string, opts domain.ImportOptions) []domain.ImportResult
}
