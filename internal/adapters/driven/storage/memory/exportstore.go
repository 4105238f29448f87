package memory

import (
	"context"
	"sync"

	"github.com/atelier-tools/batchman/internal/core/domain"
	"github.com/atelier-tools/batchman/internal/core/ports/driven"
)

// Ensure ExportRecordStore implements the interface.
var _ driven.ExportRecordStore = (*ExportRecordStore)(nil)

// ExportRecordStore is an in-memory implementation of driven.ExportRecordStore.
type ExportRecordStore struct {
	mu      sync.RWMutex
	records map[string]domain.ExportRecord
}

// NewExportRecordStore creates a new in-memory export record store.
func NewExportRecordStore() *ExportRecordStore {
	return &ExportRecordStore{
		records: make(map[string]domain.ExportRecord),
	}
}

// Get retrieves the export record for a document path.
func (s *ExportRecordStore) Get(_ context.Context, path string) (*domain.ExportRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

// Record stores or replaces the export record for a document path.
func (s *ExportRecordStore) Record(_ context.Context, rec domain.ExportRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.Path] = rec
	return nil
}

// List returns all export records.
func (s *ExportRecordStore) List(_ context.Context) ([]domain.ExportRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]domain.ExportRecord, 0, len(s.records))
	for _, rec := range s.records {
		records = append(records, rec)
	}
	return records, nil
}

// Delete removes the export record for a document path.
func (s *ExportRecordStore) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, path)
	return nil
}
