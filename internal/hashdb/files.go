package hashdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// DateTakenLayout is the storage format of the date_taken column.
const DateTakenLayout = "2006:01:02 15:04:05"

// FileRecord is one file known to exist at a relative path in the target.
type FileRecord struct {
	TargetDir  string
	Hash       string
	FileSize   int64
	FilePath   string
	DateTaken  *time.Time
	ImportDate time.Time
	SourcePath string
}

// HashCount is a hash stored at more than one path.
type HashCount struct {
	Hash  string
	Count int
}

const fileColumns = "target_dir, hash, file_size, file_path, date_taken, import_date, source_path"

// Insert adds a FileRecord. A zero ImportDate is set to now. An existing
// (target, hash, path) row yields ErrIntegrityViolation.
func (s *Store) Insert(ctx context.Context, rec FileRecord) error {
	importDate := rec.ImportDate
	if importDate.IsZero() {
		importDate = time.Now()
	}
	_, err := s.exec(ctx,
		`INSERT INTO files (`+fileColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.target,
		rec.Hash,
		rec.FileSize,
		rec.FilePath,
		nullableDate(rec.DateTaken),
		importDate.Format(time.RFC3339Nano),
		nullableString(rec.SourcePath),
	)
	if err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("%w: file %s with hash %s already recorded in %s", ErrIntegrityViolation, rec.FilePath, rec.Hash, s.target)
		}
		return storageError("insert file", err)
	}
	return nil
}

// HashExists reports whether any file in the target has this content.
func (s *Store) HashExists(ctx context.Context, hash string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM files WHERE target_dir = ? AND hash = ?)`,
		s.target, hash,
	).Scan(&exists)
	if err != nil {
		return false, storageError("hash exists", err)
	}
	return exists == 1, nil
}

// GetByHash returns every record with the given hash, ordered by path.
func (s *Store) GetByHash(ctx context.Context, hash string) ([]FileRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+fileColumns+` FROM files WHERE target_dir = ? AND hash = ? ORDER BY file_path`,
		s.target, hash,
	)
	if err != nil {
		return nil, storageError("get by hash", err)
	}
	defer rows.Close()

	var records []FileRecord
	for rows.Next() {
		rec, err := scanFileRecord(rows)
		if err != nil {
			return nil, storageError("scan file", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("iterate files", err)
	}
	return records, nil
}

// Count returns the number of FileRecords in the target.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM files WHERE target_dir = ?`, s.target).Scan(&count); err != nil {
		return 0, storageError("count files", err)
	}
	return count, nil
}

// FindDuplicates lists hashes stored at more than one path in the target.
func (s *Store) FindDuplicates(ctx context.Context) ([]HashCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT hash, COUNT(*) AS cnt FROM files WHERE target_dir = ?
         GROUP BY hash HAVING cnt > 1 ORDER BY cnt DESC, hash`,
		s.target,
	)
	if err != nil {
		return nil, storageError("find duplicates", err)
	}
	defer rows.Close()

	var out []HashCount
	for rows.Next() {
		var hc HashCount
		if err := rows.Scan(&hc.Hash, &hc.Count); err != nil {
			return nil, storageError("scan duplicate", err)
		}
		out = append(out, hc)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("iterate duplicates", err)
	}
	return out, nil
}

// DeleteByPath removes every record at the relative path.
func (s *Store) DeleteByPath(ctx context.Context, relPath string) error {
	if _, err := s.exec(ctx, `DELETE FROM files WHERE target_dir = ? AND file_path = ?`, s.target, relPath); err != nil {
		return storageError("delete by path", err)
	}
	return nil
}

// DeleteByHashAndPath removes exactly one record.
func (s *Store) DeleteByHashAndPath(ctx context.Context, hash, relPath string) error {
	_, err := s.exec(ctx,
		`DELETE FROM files WHERE target_dir = ? AND hash = ? AND file_path = ?`,
		s.target, hash, relPath,
	)
	if err != nil {
		return storageError("delete by hash and path", err)
	}
	return nil
}

func scanFileRecord(scanner interface{ Scan(dest ...any) error }) (FileRecord, error) {
	var (
		rec        FileRecord
		dateTaken  sql.NullString
		importDate string
		sourcePath sql.NullString
	)
	if err := scanner.Scan(
		&rec.TargetDir,
		&rec.Hash,
		&rec.FileSize,
		&rec.FilePath,
		&dateTaken,
		&importDate,
		&sourcePath,
	); err != nil {
		return FileRecord{}, err
	}
	if dateTaken.Valid {
		if parsed, err := time.ParseInLocation(DateTakenLayout, dateTaken.String, time.Local); err == nil {
			rec.DateTaken = &parsed
		}
	}
	if parsed, err := parseTimeString(importDate); err == nil {
		rec.ImportDate = parsed
	}
	rec.SourcePath = sourcePath.String
	return rec, nil
}
