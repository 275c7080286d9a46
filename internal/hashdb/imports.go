package hashdb

import (
	"context"
	"database/sql"
	"errors"
)

// ImportRecord notes that a source path has been considered for the target.
type ImportRecord struct {
	TargetDir  string
	SourcePath string
	Hash       string
	FilePath   string
}

// RecordImport stores an ImportRecord unless one already exists for the
// source path; the first write wins.
func (s *Store) RecordImport(ctx context.Context, sourcePath, hash, relPath string) error {
	_, err := s.exec(ctx,
		`INSERT OR IGNORE INTO imports (target_dir, source_path, hash, file_path) VALUES (?, ?, ?, ?)`,
		s.target, sourcePath, hash, nullableString(relPath),
	)
	if err != nil {
		return storageError("record import", err)
	}
	return nil
}

// GetImport returns the ImportRecord for a source path, or nil.
func (s *Store) GetImport(ctx context.Context, sourcePath string) (*ImportRecord, error) {
	var (
		rec      ImportRecord
		filePath sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT target_dir, source_path, hash, file_path FROM imports WHERE target_dir = ? AND source_path = ?`,
		s.target, sourcePath,
	).Scan(&rec.TargetDir, &rec.SourcePath, &rec.Hash, &filePath)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storageError("get import", err)
	}
	rec.FilePath = filePath.String
	return &rec, nil
}

// UpdateImport overwrites the hash and path of an existing ImportRecord.
func (s *Store) UpdateImport(ctx context.Context, sourcePath, hash, relPath string) error {
	_, err := s.exec(ctx,
		`UPDATE imports SET hash = ?, file_path = ? WHERE target_dir = ? AND source_path = ?`,
		hash, nullableString(relPath), s.target, sourcePath,
	)
	if err != nil {
		return storageError("update import", err)
	}
	return nil
}

// ImportCount returns the number of ImportRecords in the target.
func (s *Store) ImportCount(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM imports WHERE target_dir = ?`, s.target).Scan(&count); err != nil {
		return 0, storageError("count imports", err)
	}
	return count, nil
}
