package importer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"undisorder/internal/hashdb"
)

func TestClassifyError(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&panicError{value: "boom"}, ErrorTypePanic},
		{fmt.Errorf("insert: %w", hashdb.ErrIntegrityViolation), ErrorTypeIntegrityViolation},
		{&fs.PathError{Op: "open", Path: "/x", Err: fs.ErrNotExist}, ErrorTypeNotFound},
		{&fs.PathError{Op: "open", Path: "/x", Err: fs.ErrPermission}, ErrorTypePermissionDenied},
		{&os.LinkError{Op: "rename", Old: "a", New: "b", Err: errors.New("cross-device")}, ErrorTypeIOError},
		{errors.New("something else"), ErrorTypeError},
	}
	for _, tc := range cases {
		if got := classifyError(tc.err); got != tc.want {
			t.Fatalf("classifyError(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}

func TestTracebackListsWrappedChain(t *testing.T) {
	err := fmt.Errorf("copy: %w", &fs.PathError{Op: "open", Path: "/x", Err: fs.ErrNotExist})
	got := traceback(err)
	if lines := strings.Split(got, "\n"); len(lines) != 3 {
		t.Fatalf("expected three chain entries, got %q", got)
	}
	if !strings.Contains(got, "*fs.PathError") {
		t.Fatalf("expected error types in traceback, got %q", got)
	}

	stack := traceback(&panicError{value: "boom", stack: []byte("goroutine 1 [running]")})
	if stack != "goroutine 1 [running]" {
		t.Fatalf("expected panic stack, got %q", stack)
	}
}

func TestAppendAndReadFailures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "import_failures.jsonl")
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	b := batch{RelDir: "vacation", Files: []string{"/src/vacation/a.jpg", "/src/vacation/b.jpg"}}

	if err := appendFailure(path, newFailureRecord(now, b, MediaPhotoVideo, errors.New("first"))); err != nil {
		t.Fatalf("appendFailure: %v", err)
	}
	if err := appendFailure(path, newFailureRecord(now, b, MediaAudio, &panicError{value: "second"})); err != nil {
		t.Fatalf("appendFailure: %v", err)
	}

	records, err := ReadFailures(path)
	if err != nil {
		t.Fatalf("ReadFailures: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	first := records[0]
	if first.SourceDir != "vacation" || first.MediaType != "photo_video" || len(first.Files) != 2 || first.ErrorMessage != "first" {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if !first.Timestamp.Equal(now) {
		t.Fatalf("unexpected timestamp: %v", first.Timestamp)
	}
	if records[1].ErrorType != ErrorTypePanic || records[1].MediaType != "audio" {
		t.Fatalf("unexpected second record: %+v", records[1])
	}

	missing, err := ReadFailures(filepath.Join(t.TempDir(), "none.jsonl"))
	if err != nil || missing != nil {
		t.Fatalf("expected no records for missing log, got %v %v", missing, err)
	}
}
