package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ExportFormat identifies the output format for exported targets.
type ExportFormat string

// Available export formats.
const (
	// FormatPNG exports lossless PNG.
	FormatPNG ExportFormat = "png"

	// FormatWebPLossless exports lossless WebP.
	FormatWebPLossless ExportFormat = "webp-lossless"

	// FormatWebPLossy exports lossy WebP.
	FormatWebPLossy ExportFormat = "webp-lossy"
)

// IsValid returns true if the export format is recognised.
func (f ExportFormat) IsValid() bool {
	switch f {
	case FormatPNG, FormatWebPLossless, FormatWebPLossy:
		return true
	default:
		return false
	}
}

// Extension returns the target file extension without the dot.
func (f ExportFormat) Extension() string {
	switch f {
	case FormatWebPLossless, FormatWebPLossy:
		return "webp"
	default:
		return "png"
	}
}

// String returns the string representation.
func (f ExportFormat) String() string {
	return string(f)
}

// ExportConfig is the per-directory export configuration.
// The planner treats the format options as opaque; they only feed the
// configuration fingerprint and are passed through to the renderer.
type ExportConfig struct {
	// TargetDir is the directory exported targets are written to.
	TargetDir string

	// Format selects the output encoding.
	Format ExportFormat

	// PNGCompression is the PNG compression level (1-9).
	PNGCompression int

	// WebPMethod is the WebP effort setting (0-6).
	WebPMethod int

	// Optimize runs the configured post-export optimizer on PNG targets.
	Optimize bool
}

// DefaultExportConfig returns a config with the default format options.
// The target directory is left empty and must be set before planning.
func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		Format:         FormatPNG,
		PNGCompression: 9,
		WebPMethod:     5,
	}
}

// Validate checks that the configuration is usable for planning.
func (c ExportConfig) Validate() error {
	if c.TargetDir == "" {
		return fmt.Errorf("%w: export target directory not set", ErrInvalidInput)
	}
	if !c.Format.IsValid() {
		return fmt.Errorf("%w: unknown export format %q", ErrInvalidInput, string(c.Format))
	}
	if c.PNGCompression < 1 || c.PNGCompression > 9 {
		return fmt.Errorf("%w: png compression %d out of range 1-9", ErrInvalidInput, c.PNGCompression)
	}
	if c.WebPMethod < 0 || c.WebPMethod > 6 {
		return fmt.Errorf("%w: webp method %d out of range 0-6", ErrInvalidInput, c.WebPMethod)
	}
	return nil
}

// Fingerprint returns the configuration fingerprint: a digest over the
// canonical serialisation of every format-relevant option, including the
// target directory. Any change invalidates all records planned under it.
func (c ExportConfig) Fingerprint() Fingerprint {
	canonical := strings.Join([]string{
		"target=" + filepath.Clean(c.TargetDir),
		"format=" + string(c.Format),
		fmt.Sprintf("png_compression=%d", c.PNGCompression),
		fmt.Sprintf("webp_method=%d", c.WebPMethod),
		fmt.Sprintf("optimize=%t", c.Optimize),
	}, "\n")
	return FingerprintBytes([]byte(canonical))
}

// TargetPath returns the target file path for a source document name.
func (c ExportConfig) TargetPath(docName string) string {
	stem := strings.TrimSuffix(docName, filepath.Ext(docName))
	return filepath.Join(c.TargetDir, stem+"."+c.Format.Extension())
}

// ScheduleReason explains why the planner scheduled a document.
type ScheduleReason string

// Schedule reasons, in rough order of frequency.
const (
	// ReasonNeverExported means no export record exists for the path.
	ReasonNeverExported ScheduleReason = "never-exported"

	// ReasonContentChanged means the document fingerprint differs from
	// the recorded one.
	ReasonContentChanged ScheduleReason = "content-changed"

	// ReasonConfigChanged means the export configuration fingerprint
	// differs from the recorded one.
	ReasonConfigChanged ScheduleReason = "config-changed"

	// ReasonTargetMissing means the recorded target no longer exists.
	ReasonTargetMissing ScheduleReason = "target-missing"
)

// ExportJob is a pending (source document, target) pair requiring a
// render-and-save operation.
type ExportJob struct {
	// Source is the document to render.
	Source Document

	// RelPath is the document path relative to the tracked directory.
	// Export records are keyed by it.
	RelPath string

	// Fingerprint is the document's content fingerprint at planning time.
	Fingerprint Fingerprint

	// TargetPath is where the rendered output will be written.
	TargetPath string

	// ConfigFingerprint is the configuration fingerprint at planning time.
	ConfigFingerprint Fingerprint

	// Reason explains why this job was scheduled.
	Reason ScheduleReason
}

// ExportRecord is the persisted per-path export state. It is owned by the
// export record store, written only after a successful export, and never
// mutated on a failed or skipped one.
type ExportRecord struct {
	// Path is the document path relative to the tracked directory.
	Path string

	// Fingerprint is the document fingerprint that was actually exported.
	Fingerprint Fingerprint

	// ConfigFingerprint is the configuration fingerprint the export ran under.
	ConfigFingerprint Fingerprint

	// TargetPath is the absolute path of the written target.
	TargetPath string

	// TargetFingerprint is the fingerprint of the written target.
	TargetFingerprint Fingerprint

	// ExportedAt is when the export completed.
	ExportedAt time.Time
}

// ExportSuccess describes one successfully exported document.
type ExportSuccess struct {
	// Path is the document path relative to the tracked directory.
	Path string

	// TargetPath is the written target.
	TargetPath string

	// Reason is the schedule reason the job carried.
	Reason ScheduleReason
}

// ExportFailure describes one failed export. Failures are isolated:
// they never abort sibling jobs.
type ExportFailure struct {
	// Path is the document path relative to the tracked directory.
	Path string

	// Err is the failure cause.
	Err error
}

// ExportReport is the union of successes and failures for one batch.
// Callers must inspect it rather than relying on an overall yes/no.
type ExportReport struct {
	// ID uniquely identifies the batch.
	ID string

	// Dir is the tracked directory the batch ran for.
	Dir string

	// Succeeded lists completed exports.
	Succeeded []ExportSuccess

	// Failed lists isolated per-document failures.
	Failed []ExportFailure

	// StartedAt and FinishedAt bound the batch execution.
	StartedAt  time.Time
	FinishedAt time.Time
}

// AllSucceeded reports whether every job in the batch completed.
func (r *ExportReport) AllSucceeded() bool {
	return len(r.Failed) == 0
}
