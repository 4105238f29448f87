package domain

import (
	"path/filepath"
	"strings"
)

// importableExtensions are the raster/vector source formats the batch
// import pipeline accepts, matched case-insensitively by extension.
var importableExtensions = map[string]struct{}{
	".avif": {}, ".bmp": {}, ".heif": {}, ".jpeg": {}, ".jpg": {},
	".jxl": {}, ".ora": {}, ".png": {}, ".psd": {}, ".tiff": {},
	".webp": {},
}

// IsImportable reports whether the path has an importable image extension.
func IsImportable(path string) bool {
	_, ok := importableExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// ImportOptions are passed through to the host when creating documents
// from external images.
type ImportOptions struct {
	// DPI is the resolution assigned to the created document.
	DPI int
}

// DefaultImportOptions returns the default import options.
func DefaultImportOptions() ImportOptions {
	return ImportOptions{DPI: 72}
}

// ImportResult describes the outcome for one source file in a batch
// import. Failures are isolated; the batch continues and nothing is
// rolled back.
type ImportResult struct {
	// Source is the external image file.
	Source string

	// Dest is the created document path. Empty when the item failed.
	Dest string

	// Err is the isolated failure cause, nil on success.
	Err error
}

// OK reports whether the item imported successfully.
func (r ImportResult) OK() bool {
	return r.Err == nil
}
