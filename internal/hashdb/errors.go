package hashdb

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIntegrityViolation marks an insert that collided with an existing
	// (target, hash, path) record. It signals a caller logic error.
	ErrIntegrityViolation = errors.New("integrity violation")
	// ErrStorage marks any other database failure. Callers treat it as fatal.
	ErrStorage = errors.New("index storage failure")
)

const (
	sqliteBusyCode       = 5
	sqliteConstraintCode = 19
)

func sqliteCode(err error) (int, bool) {
	var coder interface{ Code() int }
	if errors.As(err, &coder) {
		return coder.Code(), true
	}
	return 0, false
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	if code, ok := sqliteCode(err); ok && code&0xff == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func isConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if code, ok := sqliteCode(err); ok && code&0xff == sqliteConstraintCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "SQLITE_CONSTRAINT")
}

func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
