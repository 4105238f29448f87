package driven

import (
	"context"

	"github.com/atelier-tools/batchman/internal/core/domain"
)

// DocumentLister supplies the read-only directory scan for files matching
// the tracked document extension. A failure to read the directory itself
// is the one fatal listing error and is surfaced whole, never per file.
type DocumentLister interface {
	// ListDocuments returns the tracked documents in a directory.
	ListDocuments(ctx context.Context, dir string) ([]domain.Document, error)
}

// Renderer is the host's render-and-write capability. It is synchronous
// from the core's point of view: the executor awaits completion before
// recording fingerprints.
type Renderer interface {
	// RenderAndSave renders the document and writes the target named by
	// the job under the given configuration.
	RenderAndSave(ctx context.Context, job domain.ExportJob, cfg domain.ExportConfig) error
}

// DocumentFactory creates editable documents from external image files.
type DocumentFactory interface {
	// CreateFromImage builds a new document from an external image and
	// saves it at dest. The options are passed through to the host.
	CreateFromImage(ctx context.Context, source, dest string, opts domain.ImportOptions) error
}

// FragmentHost captures fragments from, and inserts fragments into, the
// host's active document.
type FragmentHost interface {
	// CaptureFragment extracts the currently selected fragment of the
	// given kind from the active document.
	CaptureFragment(ctx context.Context, kind domain.FragmentKind) ([]byte, error)

	// InsertFragment applies a resolved payload to the active document.
	InsertFragment(ctx context.Context, kind domain.FragmentKind, payload []byte) error
}

// Optimizer post-processes a written export target (e.g. an external PNG
// optimizer). Optional: nil disables optimisation.
type Optimizer interface {
	// Optimize rewrites the target file in place.
	Optimize(ctx context.Context, targetPath string, cfg domain.ExportConfig) error
}
