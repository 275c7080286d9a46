package hashdb

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"undisorder/internal/hasher"
)

// Rebuild regenerates every FileRecord of the target by walking the target
// tree and rehashing each non-hidden file, including symlinks to files. A
// missing target yields an empty index. ImportRecords are not touched. It
// returns the number of records written.
func (s *Store) Rebuild(ctx context.Context) (int, error) {
	type entry struct {
		rel  string
		hash string
		size int64
	}
	var entries []entry

	err := filepath.WalkDir(s.target, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == s.target && errors.Is(walkErr, fs.ErrNotExist) {
				return filepath.SkipAll
			}
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == s.target {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		info, err := fileInfo(path, d)
		if err != nil || info == nil {
			return err
		}
		digest, err := hasher.HashFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(s.target, path)
		if err != nil {
			return err
		}
		entries = append(entries, entry{rel: filepath.ToSlash(rel), hash: digest, size: info.Size()})
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walk target %s: %w", s.target, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, storageError("begin rebuild", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM files WHERE target_dir = ?`, s.target); err != nil {
		return 0, storageError("clear files", err)
	}
	now := time.Now().Format(time.RFC3339Nano)
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO files (`+fileColumns+`) VALUES (?, ?, ?, ?, NULL, ?, NULL)`,
			s.target, e.hash, e.size, e.rel, now,
		); err != nil {
			return 0, storageError("insert rebuilt file", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, storageError("commit rebuild", err)
	}
	return len(entries), nil
}

// fileInfo returns the info of a regular file or of the regular file a
// symlink points to, and nil for anything else. Symlinked directories are
// not descended into and dangling links are ignored.
func fileInfo(path string, d fs.DirEntry) (fs.FileInfo, error) {
	switch {
	case d.Type().IsRegular():
		return d.Info()
	case d.Type()&fs.ModeSymlink != 0:
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			return nil, nil
		}
		return info, nil
	default:
		return nil, nil
	}
}
