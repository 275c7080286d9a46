package hashdb_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"undisorder/internal/hashdb"
	"undisorder/internal/hasher"
)

func openStore(t *testing.T, dbPath, target string) *hashdb.Store {
	t.Helper()
	store, err := hashdb.Open(context.Background(), dbPath, target)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestInsertDuplicateIsIntegrityViolation(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, filepath.Join(t.TempDir(), "index.db"), t.TempDir())

	rec := hashdb.FileRecord{Hash: "abc", FileSize: 3, FilePath: "2024/a.jpg"}
	if err := store.Insert(ctx, rec); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	err := store.Insert(ctx, rec)
	if !errors.Is(err, hashdb.ErrIntegrityViolation) {
		t.Fatalf("expected ErrIntegrityViolation, got %v", err)
	}
	if errors.Is(err, hashdb.ErrStorage) {
		t.Fatal("integrity violation must not be reported as storage failure")
	}

	// Same hash at a second path is a valid duplicate.
	rec.FilePath = "2024/b.jpg"
	if err := store.Insert(ctx, rec); err != nil {
		t.Fatalf("Insert at second path failed: %v", err)
	}
	dupes, err := store.FindDuplicates(ctx)
	if err != nil {
		t.Fatalf("FindDuplicates failed: %v", err)
	}
	if len(dupes) != 1 || dupes[0].Hash != "abc" || dupes[0].Count != 2 {
		t.Fatalf("unexpected duplicates: %+v", dupes)
	}
}

func TestGetByHashReturnsStoredFields(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, filepath.Join(t.TempDir(), "index.db"), t.TempDir())

	taken := time.Date(2023, 6, 1, 12, 30, 0, 0, time.Local)
	if err := store.Insert(ctx, hashdb.FileRecord{
		Hash:       "h1",
		FileSize:   42,
		FilePath:   "2023/2023-06/x.jpg",
		DateTaken:  &taken,
		SourcePath: "/src/x.jpg",
	}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	records, err := store.GetByHash(ctx, "h1")
	if err != nil {
		t.Fatalf("GetByHash failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	got := records[0]
	if got.FileSize != 42 || got.SourcePath != "/src/x.jpg" || got.TargetDir != store.Target() {
		t.Fatalf("unexpected record: %+v", got)
	}
	if got.DateTaken == nil || !got.DateTaken.Equal(taken) {
		t.Fatalf("unexpected date taken: %v", got.DateTaken)
	}
	if got.ImportDate.IsZero() {
		t.Fatal("expected import date to be set")
	}

	exists, err := store.HashExists(ctx, "h1")
	if err != nil || !exists {
		t.Fatalf("HashExists = %v, %v", exists, err)
	}
	exists, err = store.HashExists(ctx, "missing")
	if err != nil || exists {
		t.Fatalf("HashExists(missing) = %v, %v", exists, err)
	}
}

func TestDeleteByHashAndPathRemovesOnlyOneRecord(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, filepath.Join(t.TempDir(), "index.db"), t.TempDir())

	for _, rec := range []hashdb.FileRecord{
		{Hash: "old", FileSize: 1, FilePath: "a.mp3"},
		{Hash: "old", FileSize: 1, FilePath: "b.mp3"},
		{Hash: "other", FileSize: 2, FilePath: "a.mp3"},
	} {
		if err := store.Insert(ctx, rec); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}
	if err := store.DeleteByHashAndPath(ctx, "old", "a.mp3"); err != nil {
		t.Fatalf("DeleteByHashAndPath failed: %v", err)
	}
	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 records after delete, got %d", count)
	}

	if err := store.DeleteByPath(ctx, "a.mp3"); err != nil {
		t.Fatalf("DeleteByPath failed: %v", err)
	}
	records, err := store.GetByHash(ctx, "other")
	if err != nil {
		t.Fatalf("GetByHash failed: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected path delete to remove every hash at a.mp3, got %+v", records)
	}
}

func TestRecordImportFirstWriteWins(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, filepath.Join(t.TempDir(), "index.db"), t.TempDir())

	if err := store.RecordImport(ctx, "/src/a.jpg", "h1", "2024/a.jpg"); err != nil {
		t.Fatalf("RecordImport failed: %v", err)
	}
	if err := store.RecordImport(ctx, "/src/a.jpg", "h2", ""); err != nil {
		t.Fatalf("second RecordImport failed: %v", err)
	}
	rec, err := store.GetImport(ctx, "/src/a.jpg")
	if err != nil {
		t.Fatalf("GetImport failed: %v", err)
	}
	if rec == nil || rec.Hash != "h1" || rec.FilePath != "2024/a.jpg" {
		t.Fatalf("expected first write to win, got %+v", rec)
	}

	if err := store.UpdateImport(ctx, "/src/a.jpg", "h3", ""); err != nil {
		t.Fatalf("UpdateImport failed: %v", err)
	}
	rec, err = store.GetImport(ctx, "/src/a.jpg")
	if err != nil {
		t.Fatalf("GetImport failed: %v", err)
	}
	if rec.Hash != "h3" || rec.FilePath != "" {
		t.Fatalf("expected updated import, got %+v", rec)
	}

	missing, err := store.GetImport(ctx, "/src/none.jpg")
	if err != nil || missing != nil {
		t.Fatalf("GetImport(missing) = %+v, %v", missing, err)
	}
}

func TestStoresAreScopedByTarget(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "index.db")
	photos := openStore(t, dbPath, t.TempDir())

	if err := photos.Insert(ctx, hashdb.FileRecord{Hash: "shared", FileSize: 1, FilePath: "x"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := photos.RecordImport(ctx, "/src/x", "shared", "x"); err != nil {
		t.Fatalf("RecordImport failed: %v", err)
	}
	if err := photos.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	music := openStore(t, dbPath, t.TempDir())
	exists, err := music.HashExists(ctx, "shared")
	if err != nil {
		t.Fatalf("HashExists failed: %v", err)
	}
	if exists {
		t.Fatal("hash from another target must not be visible")
	}
	rec, err := music.GetImport(ctx, "/src/x")
	if err != nil {
		t.Fatalf("GetImport failed: %v", err)
	}
	if rec != nil {
		t.Fatalf("import from another target must not be visible, got %+v", rec)
	}
}

func TestCanonicalTargetResolvesSymlinks(t *testing.T) {
	realDir := t.TempDir()
	link := filepath.Join(t.TempDir(), "link")
	if err := os.Symlink(realDir, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	resolvedReal, err := hashdb.CanonicalTarget(realDir)
	if err != nil {
		t.Fatalf("CanonicalTarget failed: %v", err)
	}
	resolvedLink, err := hashdb.CanonicalTarget(link)
	if err != nil {
		t.Fatalf("CanonicalTarget failed: %v", err)
	}
	if resolvedReal != resolvedLink {
		t.Fatalf("expected symlink to resolve to %q, got %q", resolvedReal, resolvedLink)
	}
}

func TestCanonicalTargetIsStableAcrossCreation(t *testing.T) {
	realDir := t.TempDir()
	link := filepath.Join(t.TempDir(), "link")
	if err := os.Symlink(realDir, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	target := filepath.Join(link, "photos", "2024")
	before, err := hashdb.CanonicalTarget(target)
	if err != nil {
		t.Fatalf("CanonicalTarget failed: %v", err)
	}
	if err := os.MkdirAll(target, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	after, err := hashdb.CanonicalTarget(target)
	if err != nil {
		t.Fatalf("CanonicalTarget failed: %v", err)
	}
	if before != after {
		t.Fatalf("identity changed after creation: %q then %q", before, after)
	}
}

func TestIdentificationCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, filepath.Join(t.TempDir(), "index.db"), t.TempDir())

	entry, err := store.GetIdentification(ctx, "h1")
	if err != nil || entry != nil {
		t.Fatalf("expected empty cache, got %+v, %v", entry, err)
	}

	if err := store.PutIdentification(ctx, hashdb.IdentificationEntry{
		FileHash:    "h1",
		Fingerprint: "AQAA",
		Duration:    201.5,
		ExternalID:  "rec-1",
		Artist:      "Artist",
		Title:       "Song",
		TrackNumber: 3,
	}); err != nil {
		t.Fatalf("PutIdentification failed: %v", err)
	}
	// A later lookup replaces the cached one.
	if err := store.PutIdentification(ctx, hashdb.IdentificationEntry{
		FileHash:    "h1",
		Fingerprint: "AQAA",
		Duration:    201.5,
		ExternalID:  "rec-2",
		Artist:      "Artist",
		Title:       "Song (Live)",
	}); err != nil {
		t.Fatalf("PutIdentification replace failed: %v", err)
	}

	entry, err = store.GetIdentification(ctx, "h1")
	if err != nil {
		t.Fatalf("GetIdentification failed: %v", err)
	}
	if entry == nil || entry.ExternalID != "rec-2" || entry.Title != "Song (Live)" || entry.TrackNumber != 0 {
		t.Fatalf("unexpected cache entry: %+v", entry)
	}
	if entry.Duration != 201.5 || entry.LookupDate.IsZero() {
		t.Fatalf("unexpected duration or lookup date: %+v", entry)
	}
}

func TestRebuildMatchesTargetTree(t *testing.T) {
	ctx := context.Background()
	target := t.TempDir()
	files := map[string]string{
		"2024/2024-01/a.jpg": "alpha",
		"2024/2024-01/b.jpg": "alpha",
		"misc/c.mp3":         "gamma",
		".hidden/d.jpg":      "delta",
		"2024/.e.jpg":        "epsilon",
	}
	for rel, content := range files {
		path := filepath.Join(target, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	store := openStore(t, filepath.Join(t.TempDir(), "index.db"), target)
	if err := store.Insert(ctx, hashdb.FileRecord{Hash: "stale", FileSize: 9, FilePath: "gone.jpg"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.RecordImport(ctx, "/src/gone.jpg", "stale", "gone.jpg"); err != nil {
		t.Fatalf("RecordImport failed: %v", err)
	}

	count, err := store.Rebuild(ctx)
	if err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 rebuilt records, got %d", count)
	}

	alpha, err := hasher.HashFile(filepath.Join(target, "2024", "2024-01", "a.jpg"))
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}
	records, err := store.GetByHash(ctx, alpha)
	if err != nil {
		t.Fatalf("GetByHash failed: %v", err)
	}
	if len(records) != 2 || records[0].FilePath != "2024/2024-01/a.jpg" || records[1].FilePath != "2024/2024-01/b.jpg" {
		t.Fatalf("unexpected rebuilt records: %+v", records)
	}
	if exists, _ := store.HashExists(ctx, "stale"); exists {
		t.Fatal("stale record should be gone after rebuild")
	}
	if rec, _ := store.GetImport(ctx, "/src/gone.jpg"); rec == nil {
		t.Fatal("rebuild must keep import records")
	}
}

func TestRebuildFollowsFileSymlinks(t *testing.T) {
	ctx := context.Background()
	target := t.TempDir()
	outside := filepath.Join(t.TempDir(), "original.jpg")
	if err := os.WriteFile(outside, []byte("linked"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.Symlink(outside, filepath.Join(target, "link.jpg")); err != nil {
		t.Fatalf("symlink: %v", err)
	}
	if err := os.Symlink(filepath.Join(target, "missing.jpg"), filepath.Join(target, "dangling.jpg")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	store := openStore(t, filepath.Join(t.TempDir(), "index.db"), target)
	count, err := store.Rebuild(ctx)
	if err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected the linked file only, got %d records", count)
	}
	digest, err := hasher.HashFile(outside)
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}
	records, err := store.GetByHash(ctx, digest)
	if err != nil || len(records) != 1 || records[0].FilePath != "link.jpg" || records[0].FileSize != int64(len("linked")) {
		t.Fatalf("unexpected records: %+v %v", records, err)
	}
}

func TestRebuildOfMissingTargetClearsIndex(t *testing.T) {
	ctx := context.Background()
	target := filepath.Join(t.TempDir(), "not-created")
	store := openStore(t, filepath.Join(t.TempDir(), "index.db"), target)
	if err := store.Insert(ctx, hashdb.FileRecord{Hash: "stale", FileSize: 1, FilePath: "a.jpg"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	count, err := store.Rebuild(ctx)
	if err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no records, got %d", count)
	}
	if n, _ := store.Count(ctx); n != 0 {
		t.Fatalf("expected stale records cleared, got %d", n)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "index.db")
	store := openStore(t, dbPath, t.TempDir())
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump schema version: %v", err)
	}
	_ = db.Close()

	_, err = hashdb.Open(context.Background(), dbPath, t.TempDir())
	if !errors.Is(err, hashdb.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
