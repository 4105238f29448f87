package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atelier-tools/batchman/internal/core/domain"
	"github.com/atelier-tools/batchman/internal/core/ports/driven"
	"github.com/atelier-tools/batchman/internal/core/ports/driving"
	"github.com/atelier-tools/batchman/internal/logger"
)

var _ driving.RucksackService = (*Rucksack)(nil)

// Rucksack manages reusable document fragments across the project and
// user scopes.
type Rucksack struct {
	stores driven.StoreFactory
	host   driven.FragmentHost
}

// NewRucksack creates a new rucksack service. The fragment host is
// optional - if nil, capture and insert degrade to ErrNotImplemented
// while plain store operations keep working.
func NewRucksack(stores driven.StoreFactory, host driven.FragmentHost) *Rucksack {
	return &Rucksack{stores: stores, host: host}
}

func (r *Rucksack) store(dir string, scope domain.RucksackScope) (driven.RucksackStore, error) {
	switch scope {
	case domain.ScopeProject:
		return r.stores.ProjectRucksack(dir)
	case domain.ScopeUser:
		return r.stores.UserRucksack()
	default:
		return nil, fmt.Errorf("scope %q: %w", scope, domain.ErrInvalidInput)
	}
}

// Put stores an item in the scope it names, replacing any existing item
// with the same kind and name.
func (r *Rucksack) Put(ctx context.Context, dir string, item domain.RucksackItem) error {
	if !item.Kind.IsValid() {
		return fmt.Errorf("kind %q: %w", item.Kind, domain.ErrInvalidInput)
	}
	if item.Name == "" {
		return fmt.Errorf("empty item name: %w", domain.ErrInvalidInput)
	}
	store, err := r.store(dir, item.Scope)
	if err != nil {
		return err
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = time.Now()
	}
	return store.Put(ctx, item)
}

// CaptureAndPut reads the current fragment of the given kind from the
// host and stores it under the given name.
func (r *Rucksack) CaptureAndPut(ctx context.Context, dir string, scope domain.RucksackScope, kind domain.FragmentKind, name string) error {
	if r.host == nil {
		return domain.ErrNotImplemented
	}
	payload, err := r.host.CaptureFragment(ctx, kind)
	if err != nil {
		return fmt.Errorf("capture fragment: %w", err)
	}
	return r.Put(ctx, dir, domain.RucksackItem{
		Scope:   scope,
		Kind:    kind,
		Name:    name,
		Payload: payload,
	})
}

// View builds the merged read view for the directory. An unreachable
// scope contributes nothing instead of failing the whole view.
func (r *Rucksack) View(ctx context.Context, dir string) (*domain.RucksackView, error) {
	user := r.listScope(ctx, dir, domain.ScopeUser)
	project := r.listScope(ctx, dir, domain.ScopeProject)
	return domain.NewRucksackView(user, project), nil
}

func (r *Rucksack) listScope(ctx context.Context, dir string, scope domain.RucksackScope) []domain.RucksackItem {
	store, err := r.store(dir, scope)
	if err != nil {
		logger.Warn("open %s rucksack: %v", scope, err)
		return nil
	}
	items, err := store.List(ctx)
	if err != nil {
		logger.Warn("list %s rucksack: %v", scope, err)
		return nil
	}
	return items
}

// ResolveAndInsert looks an item up in the merged view and hands its
// payload to the host for insertion into the active document.
func (r *Rucksack) ResolveAndInsert(ctx context.Context, view *domain.RucksackView, kind domain.FragmentKind, name string) error {
	if r.host == nil {
		return domain.ErrNotImplemented
	}
	item, err := view.Resolve(kind, name)
	if err != nil {
		return err
	}
	if err := r.host.InsertFragment(ctx, kind, item.Payload); err != nil {
		return fmt.Errorf("insert fragment: %w", err)
	}
	return nil
}

// Delete removes an item from exactly the scope it names. Deleting an
// absent item is not an error.
func (r *Rucksack) Delete(ctx context.Context, dir string, scope domain.RucksackScope, kind domain.FragmentKind, name string) error {
	store, err := r.store(dir, scope)
	if err != nil {
		return err
	}
	return store.Delete(ctx, kind, name)
}

// Move transfers an item between scopes: copy to the destination first,
// delete from the source only once the copy succeeded.
func (r *Rucksack) Move(ctx context.Context, dir string, from, to domain.RucksackScope, kind domain.FragmentKind, name string) error {
	if from == to {
		return fmt.Errorf("source and destination scope are both %q: %w", from, domain.ErrInvalidInput)
	}
	src, err := r.store(dir, from)
	if err != nil {
		return err
	}
	dst, err := r.store(dir, to)
	if err != nil {
		return err
	}

	item, err := src.Get(ctx, kind, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%s %q in %s scope: %w", kind, name, from, domain.ErrItemNotFound)
		}
		return err
	}

	item.Scope = to
	item.UpdatedAt = time.Now()
	if err := dst.Put(ctx, *item); err != nil {
		return fmt.Errorf("store in %s scope: %w", to, err)
	}
	if err := src.Delete(ctx, kind, name); err != nil {
		return fmt.Errorf("remove from %s scope: %w", from, err)
	}
	logger.Debug("moved %s %q from %s to %s scope", kind, name, from, to)
	return nil
}
