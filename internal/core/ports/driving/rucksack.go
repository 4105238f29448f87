package driving

import (
	"context"

	"github.com/atelier-tools/batchman/internal/core/domain"
)

// RucksackService manages the two-tier fragment store and its merged view.
// The dir argument selects the project scope; the user scope is global.
type RucksackService interface {
	// Put persists an item in the given scope, overwriting silently
	// within (scope, kind, name).
	Put(ctx context.Context, dir string, item domain.RucksackItem) error

	// CaptureAndPut pulls the payload for kind from the host's active
	// document and stores it under (scope, kind, name).
	CaptureAndPut(ctx context.Context, dir string, scope domain.RucksackScope, kind domain.FragmentKind, name string) error

	// View builds a fresh merged, immutable snapshot of both scopes.
	View(ctx context.Context, dir string) (*domain.RucksackView, error)

	// ResolveAndInsert resolves (kind, name) in the view, project shadow
	// first, and hands the payload to the host's active document.
	// Returns domain.ErrItemNotFound when absent from both scopes.
	ResolveAndInsert(ctx context.Context, view *domain.RucksackView, kind domain.FragmentKind, name string) error

	// Delete removes an item from exactly one scope. A shadowed item in
	// the other scope re-emerges on the next View.
	Delete(ctx context.Context, dir string, scope domain.RucksackScope, kind domain.FragmentKind, name string) error

	// Move transfers an item between scopes, payload intact.
	Move(ctx context.Context, dir string, from, to domain.RucksackScope, kind domain.FragmentKind, name string) error
}
