package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/atelier-tools/batchman/internal/core/domain"
	"github.com/atelier-tools/batchman/internal/core/ports/driven"
)

// Ensure RucksackStore implements the interface.
var _ driven.RucksackStore = (*RucksackStore)(nil)

type rucksackKey struct {
	kind domain.FragmentKind
	name string
}

// RucksackStore is an in-memory implementation of driven.RucksackStore.
type RucksackStore struct {
	scope domain.RucksackScope

	mu    sync.RWMutex
	items map[rucksackKey]domain.RucksackItem
}

// NewRucksackStore creates a new in-memory rucksack store for one scope.
func NewRucksackStore(scope domain.RucksackScope) *RucksackStore {
	return &RucksackStore{
		scope: scope,
		items: make(map[rucksackKey]domain.RucksackItem),
	}
}

// Scope returns the scope this store holds.
func (s *RucksackStore) Scope() domain.RucksackScope {
	return s.scope
}

// Put stores or replaces an item.
func (s *RucksackStore) Put(_ context.Context, item domain.RucksackItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item.Scope = s.scope
	s.items[rucksackKey{kind: item.Kind, name: item.Name}] = item
	return nil
}

// Get retrieves an item by kind and name.
func (s *RucksackStore) Get(_ context.Context, kind domain.FragmentKind, name string) (*domain.RucksackItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[rucksackKey{kind: kind, name: name}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

// List returns all items sorted by kind then name.
func (s *RucksackStore) List(_ context.Context) ([]domain.RucksackItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]domain.RucksackItem, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Kind != items[j].Kind {
			return items[i].Kind < items[j].Kind
		}
		return items[i].Name < items[j].Name
	})
	return items, nil
}

// Delete removes an item. Absent items are not an error.
func (s *RucksackStore) Delete(_ context.Context, kind domain.FragmentKind, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, rucksackKey{kind: kind, name: name})
	return nil
}
