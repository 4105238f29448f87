// Package localfs implements the document listing driven port on the
// local filesystem.
package localfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/atelier-tools/batchman/internal/core/domain"
	"github.com/atelier-tools/batchman/internal/core/ports/driven"
	"github.com/atelier-tools/batchman/internal/logger"
)

// Ensure Lister implements the interface.
var _ driven.DocumentLister = (*Lister)(nil)

// Lister scans a single directory level for documents with the tracked
// extension. Subdirectories, hidden files and the metadata directory are
// skipped.
type Lister struct {
	ext string
}

// NewLister creates a lister for the given document extension.
func NewLister(ext string) *Lister {
	return &Lister{ext: domain.NormalizeExtension(ext)}
}

// ListDocuments returns the tracked documents in dir, sorted by name.
// Individual files that cannot be stat'd are skipped with a warning;
// only an unreadable directory fails the listing.
func (l *Lister) ListDocuments(ctx context.Context, dir string) ([]domain.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var docs []domain.Document
	for _, entry := range entries {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if !strings.EqualFold(filepath.Ext(name), l.ext) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			logger.Warn("stat %s: %v, skipping", name, err)
			continue
		}
		docs = append(docs, domain.Document{
			Path:    filepath.Join(dir, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	return docs, nil
}
