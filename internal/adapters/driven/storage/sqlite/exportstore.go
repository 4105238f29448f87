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

// Ensure ExportRecordStore implements the interface.
var _ driven.ExportRecordStore = (*ExportRecordStore)(nil)

// ExportRecordStore is a SQLite-backed implementation of
// driven.ExportRecordStore. One database file tracks one directory.
type ExportRecordStore struct {
	store *Store
}

// OpenExportRecordStore opens the export records database at path.
func OpenExportRecordStore(path string) (*ExportRecordStore, error) {
	store, err := openStore(path, "exports")
	if err != nil {
		return nil, err
	}
	return &ExportRecordStore{store: store}, nil
}

// Close closes the underlying database.
func (s *ExportRecordStore) Close() error {
	return s.store.Close()
}

// Get retrieves the export record for a document path.
func (s *ExportRecordStore) Get(ctx context.Context, path string) (*domain.ExportRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT path, fingerprint, config_fingerprint, target_path, target_fingerprint, exported_at
		FROM export_records WHERE path = ?
	`, path)
	return scanExportRecord(row)
}

// Record stores or replaces the export record for a document path.
func (s *ExportRecordStore) Record(ctx context.Context, rec domain.ExportRecord) error {
	if rec.ExportedAt.IsZero() {
		rec.ExportedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO export_records (path, fingerprint, config_fingerprint, target_path, target_fingerprint, exported_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			fingerprint = excluded.fingerprint,
			config_fingerprint = excluded.config_fingerprint,
			target_path = excluded.target_path,
			target_fingerprint = excluded.target_fingerprint,
			exported_at = excluded.exported_at
	`, rec.Path, string(rec.Fingerprint), string(rec.ConfigFingerprint),
		rec.TargetPath, string(rec.TargetFingerprint), rec.ExportedAt)

	if err != nil {
		return fmt.Errorf("saving export record: %w", err)
	}
	return nil
}

// List returns all export records ordered by path.
func (s *ExportRecordStore) List(ctx context.Context) ([]domain.ExportRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT path, fingerprint, config_fingerprint, target_path, target_fingerprint, exported_at
		FROM export_records ORDER BY path
	`)
	if err != nil {
		return nil, fmt.Errorf("querying export records: %w", err)
	}
	defer rows.Close()

	var records []domain.ExportRecord
	for rows.Next() {
		rec, err := scanExportRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// Delete removes the export record for a document path.
func (s *ExportRecordStore) Delete(ctx context.Context, path string) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM export_records WHERE path = ?", path); err != nil {
		return fmt.Errorf("deleting export record: %w", err)
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows for the scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

func scanExportRecord(row scanner) (*domain.ExportRecord, error) {
	var rec domain.ExportRecord
	var fingerprint, configFingerprint, targetFingerprint string
	var exportedAt sql.NullTime
	if err := row.Scan(&rec.Path, &fingerprint, &configFingerprint,
		&rec.TargetPath, &targetFingerprint, &exportedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning export record: %w", err)
	}
	rec.Fingerprint = domain.Fingerprint(fingerprint)
	rec.ConfigFingerprint = domain.Fingerprint(configFingerprint)
	rec.TargetFingerprint = domain.Fingerprint(targetFingerprint)
	if exportedAt.Valid {
		rec.ExportedAt = exportedAt.Time
	}
	return &rec, nil
}
