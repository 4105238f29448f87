package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atelier-tools/batchman/internal/core/domain"
	"github.com/atelier-tools/batchman/internal/core/ports/driven"
	"github.com/atelier-tools/batchman/internal/core/ports/driving"
	"github.com/atelier-tools/batchman/internal/logger"
)

var _ driving.ImportService = (*Importer)(nil)

// Importer converts batches of flat image files into editable documents
// inside a tracked directory.
type Importer struct {
	factory driven.DocumentFactory
	docExt  string
}

// NewImporter creates a new importer. The factory is optional - if nil,
// every import fails with ErrNotImplemented.
func NewImporter(factory driven.DocumentFactory, docExt string) *Importer {
	return &Importer{factory: factory, docExt: domain.NormalizeExtension(docExt)}
}

// ImportBatch imports each source independently. One failing source never
// aborts the batch; the result slice is positionally aligned with sources.
func (i *Importer) ImportBatch(ctx context.Context, sources []string, dir string, opts domain.ImportOptions) []domain.ImportResult {
	results := make([]domain.ImportResult, 0, len(sources))
	for _, source := range sources {
		if ctx.Err() != nil {
			results = append(results, domain.ImportResult{Source: source, Err: ctx.Err()})
			continue
		}
		results = append(results, i.importOne(ctx, source, dir, opts))
	}
	return results
}

func (i *Importer) importOne(ctx context.Context, source, dir string, opts domain.ImportOptions) domain.ImportResult {
	result := domain.ImportResult{Source: source}

	if i.factory == nil {
		result.Err = domain.ErrNotImplemented
		return result
	}
	if !domain.IsImportable(source) {
		result.Err = fmt.Errorf("%s: %w", source, domain.ErrUnsupportedFormat)
		return result
	}
	if _, err := os.Stat(source); err != nil {
		result.Err = fmt.Errorf("stat source: %w", err)
		return result
	}

	dest, err := uniqueDestination(dir, source, i.docExt)
	if err != nil {
		result.Err = err
		return result
	}

	if err := i.factory.CreateFromImage(ctx, source, dest, opts); err != nil {
		result.Err = fmt.Errorf("create document: %w", err)
		return result
	}

	logger.Debug("imported %s -> %s", source, dest)
	result.Dest = dest
	return result
}

// uniqueDestination derives the document path for a source image,
// appending a numeric suffix when the plain name is already taken.
func uniqueDestination(dir, source, docExt string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	dest := filepath.Join(dir, base+docExt)
	if _, err := os.Stat(dest); os.IsNotExist(err) {
		return dest, nil
	}
	for n := 1; n < 1000; n++ {
		dest = filepath.Join(dir, fmt.Sprintf("%s-%d%s", base, n, docExt))
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			return dest, nil
		}
	}
	return "", fmt.Errorf("no free name for %s in %s", base, dir)
}
