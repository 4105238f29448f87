package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/atelier-tools/batchman/internal/core/domain"
	"github.com/atelier-tools/batchman/internal/core/ports/driven"
)

// Ensure RucksackStore implements the interface.
var _ driven.RucksackStore = (*RucksackStore)(nil)

// RucksackStore is a SQLite-backed implementation of driven.RucksackStore.
// One database file holds one scope.
type RucksackStore struct {
	store *Store
	scope domain.RucksackScope
}

// OpenRucksackStore opens the rucksack database at path for one scope.
func OpenRucksackStore(path string, scope domain.RucksackScope) (*RucksackStore, error) {
	store, err := openStore(path, "rucksack")
	if err != nil {
		return nil, err
	}
	return &RucksackStore{store: store, scope: scope}, nil
}

// Close closes the underlying database.
func (s *RucksackStore) Close() error {
	return s.store.Close()
}

// Scope returns the scope this store holds.
func (s *RucksackStore) Scope() domain.RucksackScope {
	return s.scope
}

// Put stores or replaces an item.
func (s *RucksackStore) Put(ctx context.Context, item domain.RucksackItem) error {
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO rucksack_items (kind, name, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(kind, name) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, string(item.Kind), item.Name, item.Payload, item.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving rucksack item: %w", err)
	}
	return nil
}

// Get retrieves an item by kind and name.
func (s *RucksackStore) Get(ctx context.Context, kind domain.FragmentKind, name string) (*domain.RucksackItem, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT kind, name, payload, updated_at
		FROM rucksack_items WHERE kind = ? AND name = ?
	`, string(kind), name)
	return s.scanItem(row)
}

// List returns all items ordered by kind then name.
func (s *RucksackStore) List(ctx context.Context) ([]domain.RucksackItem, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT kind, name, payload, updated_at
		FROM rucksack_items ORDER BY kind, name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying rucksack items: %w", err)
	}
	defer rows.Close()

	var items []domain.RucksackItem
	for rows.Next() {
		item, err := s.scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// Delete removes an item. Absent items are not an error.
func (s *RucksackStore) Delete(ctx context.Context, kind domain.FragmentKind, name string) error {
	_, err := s.store.db.ExecContext(ctx,
		"DELETE FROM rucksack_items WHERE kind = ? AND name = ?", string(kind), name)
	if err != nil {
		return fmt.Errorf("deleting rucksack item: %w", err)
	}
	return nil
}

func (s *RucksackStore) scanItem(row scanner) (*domain.RucksackItem, error) {
	var item domain.RucksackItem
	var kind string
	var updatedAt sql.NullTime
	if err := row.Scan(&kind, &item.Name, &item.Payload, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning rucksack item: %w", err)
	}
	item.Kind = domain.FragmentKind(kind)
	item.Scope = s.scope
	if updatedAt.Valid {
		item.UpdatedAt = updatedAt.Time
	}
	return &item, nil
}
