package store

import (
	"errors"
	"fmt"
)

// ErrStaleRevision is returned by Save when the slot has been written
// since the caller loaded it. The caller should reload, reapply, and
// save again.
var ErrStaleRevision = errors.New("document revision is stale")

// StorageError wraps a persistence failure. The in-memory result of the
// operation that triggered the save is still valid; callers may retry.
type StorageError struct {
	Op  string // "open" | "load" | "save" | "import" | "export"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err is (or wraps) a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
