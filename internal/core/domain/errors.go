package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrItemNotFound indicates a rucksack lookup missed in both scopes.
	// Surfaced to the caller, never silently ignored.
	ErrItemNotFound = errors.New("rucksack item not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrStoreCorrupt indicates persisted state could not be read.
	// Callers recover by treating the store as empty; the error is
	// logged, never fatal.
	ErrStoreCorrupt = errors.New("store corrupt")

	// ErrTargetMissing indicates an export target was deleted externally.
	// Treated as "not yet exported": the document is rescheduled rather
	// than the operation erroring.
	ErrTargetMissing = errors.New("export target missing")

	// ErrUnsupportedFormat indicates a source file's extension is not an
	// importable image format.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrExportInProgress indicates an export batch is already running
	// for the directory. Planning must not start until the in-flight
	// execution has settled.
	ErrExportInProgress = errors.New("export in progress")
)
