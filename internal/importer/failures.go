package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"undisorder/internal/hashdb"
)

// Error classifications written to the failure log.
const (
	ErrorTypeIntegrityViolation = "IntegrityViolation"
	ErrorTypeNotFound           = "NotFound"
	ErrorTypePermissionDenied   = "PermissionDenied"
	ErrorTypeIOError            = "IOError"
	ErrorTypePanic              = "Panic"
	ErrorTypeError              = "Error"
)

// FailureRecord is one line of the failure log.
type FailureRecord struct {
	Timestamp    time.Time `json:"timestamp"`
	SourceDir    string    `json:"source_dir"`
	MediaType    string    `json:"media_type"`
	Files        []string  `json:"files"`
	ErrorType    string    `json:"error_type"`
	ErrorMessage string    `json:"error_message"`
	Traceback    string    `json:"traceback"`
}

// panicError carries a recovered panic out of a chunk.
type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func classifyError(err error) string {
	var panicErr *panicError
	var pathErr *fs.PathError
	var linkErr *os.LinkError
	var errno syscall.Errno
	switch {
	case errors.As(err, &panicErr):
		return ErrorTypePanic
	case errors.Is(err, hashdb.ErrIntegrityViolation):
		return ErrorTypeIntegrityViolation
	case errors.Is(err, fs.ErrNotExist):
		return ErrorTypeNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrorTypePermissionDenied
	case errors.As(err, &pathErr), errors.As(err, &linkErr), errors.As(err, &errno):
		return ErrorTypeIOError
	default:
		return ErrorTypeError
	}
}

// traceback renders the goroutine stack of a panic, or the chain of
// wrapped errors one per line.
func traceback(err error) string {
	var panicErr *panicError
	if errors.As(err, &panicErr) {
		return string(panicErr.stack)
	}
	var lines []string
	for current := err; current != nil; current = errors.Unwrap(current) {
		lines = append(lines, fmt.Sprintf("%T: %s", current, current.Error()))
	}
	return strings.Join(lines, "\n")
}

func newFailureRecord(now time.Time, b batch, media MediaType, err error) FailureRecord {
	return FailureRecord{
		Timestamp:    now,
		SourceDir:    b.RelDir,
		MediaType:    string(media),
		Files:        append([]string(nil), b.Files...),
		ErrorType:    classifyError(err),
		ErrorMessage: err.Error(),
		Traceback:    traceback(err),
	}
}

// appendFailure writes rec as one JSON line at the end of path.
func appendFailure(path string, rec FailureRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create failure log directory: %w", err)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode failure record: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open failure log: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write failure log: %w", err)
	}
	return nil
}

// ReadFailures parses a failure log. A missing file yields no records.
func ReadFailures(path string) ([]FailureRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var out []FailureRecord
	for i, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var rec FailureRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("failure log line %d: %w", i+1, err)
		}
		out = append(out, rec)
	}
	return out, nil
}
