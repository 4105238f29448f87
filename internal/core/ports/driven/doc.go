// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DocumentLister: Read-only directory scan for tracked documents
//   - ExportRecordStore: Per-directory export record persistence
//   - RucksackStore: Per-scope fragment persistence
//   - ConfigStore: Application configuration
//   - Renderer: The host's render-and-write capability
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - DocumentFactory: Creates documents from external images. Without it,
//     batch import is disabled.
//   - FragmentHost: Captures and inserts fragments in the active document.
//     Without it, rucksack capture/insert is disabled (listing still works).
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
