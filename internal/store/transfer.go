package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Export returns the raw persisted envelope bytes for backup. Fails with
// a StorageError when nothing has been persisted yet.
func (s *Store) Export(ctx context.Context) ([]byte, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM documents WHERE key = ?`, DefaultKey,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &StorageError{Op: "export", Err: errors.New("no document persisted")}
	}
	if err != nil {
		return nil, &StorageError{Op: "export", Err: err}
	}
	return []byte(payload), nil
}

// Import replaces the persisted document with a previously exported
// envelope. The payload is validated before anything is written; an
// invalid backup leaves the current value untouched.
func (s *Store) Import(ctx context.Context, payload []byte) error {
	env, err := unmarshalEnvelope(string(payload))
	if err != nil {
		return &StorageError{Op: "import", Err: err}
	}

	// Re-marshal so imported bytes are in canonical form regardless of
	// how the backup was formatted.
	env.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	data, err := marshalEnvelope(env)
	if err != nil {
		return &StorageError{Op: "import", Err: err}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &StorageError{Op: "import", Err: err}
	}
	defer tx.Rollback()

	var revision int64
	err = tx.QueryRowContext(ctx,
		`SELECT revision FROM documents WHERE key = ?`, DefaultKey,
	).Scan(&revision)
	if errors.Is(err, sql.ErrNoRows) {
		revision = 0
	} else if err != nil {
		return &StorageError{Op: "import", Err: err}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (key, revision, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			revision = excluded.revision,
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, DefaultKey, revision+1, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return &StorageError{Op: "import", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &StorageError{Op: "import", Err: err}
	}
	return nil
}
