package driven

import (
	"context"

	"github.com/atelier-tools/batchman/internal/core/domain"
)

// RucksackStore persists fragments for one scope (a project directory or
// the user-global store). Identity is (kind, name); Put overwrites
// silently within the scope, last write wins. Cross-scope shadowing is a
// view-time concern handled by the service, never by the store.
type RucksackStore interface {
	// Scope returns the scope this store persists.
	Scope() domain.RucksackScope

	// Put stores or overwrites an item.
	Put(ctx context.Context, item domain.RucksackItem) error

	// Get retrieves an item by kind and name.
	// Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, kind domain.FragmentKind, name string) (*domain.RucksackItem, error)

	// List returns all items in the scope.
	List(ctx context.Context) ([]domain.RucksackItem, error)

	// Delete removes an item. Deleting an absent item is not an error.
	Delete(ctx context.Context, kind domain.FragmentKind, name string) error
}
