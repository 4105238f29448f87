// Package domain defines the core business entities for batchman.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An editable source document inside a tracked directory
//   - Fingerprint: A content-derived identity used to detect change
//   - ExportConfig / ExportJob / ExportRecord: The incremental export model
//   - RucksackItem / RucksackView: Reusable document fragments and their
//     merged two-scope view
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
