package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/khatapp/khata/internal/model"
)

// Save atomically replaces the document under the default key.
//
// baseRevision must be the revision returned by the Load this document
// was derived from. If the slot has moved on since then, Save fails with
// ErrStaleRevision and writes nothing; the caller reloads and reapplies.
//
// When the document content is unchanged the write is skipped entirely
// and the current revision is returned, so save-after-load never rewrites
// identical bytes.
//
// Returns the revision now stored. The write happens in one transaction:
// it either fully replaces the previous value or leaves it intact.
func (s *Store) Save(ctx context.Context, doc model.Document, baseRevision int64) (int64, error) {
	return s.SaveKey(ctx, DefaultKey, doc, baseRevision)
}

// SaveKey is Save for an explicit storage key.
func (s *Store) SaveKey(ctx context.Context, key string, doc model.Document, baseRevision int64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, &StorageError{Op: "save", Err: err}
	}
	defer tx.Rollback() // No-op if committed.

	var payload string
	var revision int64
	err = tx.QueryRowContext(ctx,
		`SELECT payload, revision FROM documents WHERE key = ?`, key,
	).Scan(&payload, &revision)
	exists := true
	if errors.Is(err, sql.ErrNoRows) {
		exists = false
		revision = 0
	} else if err != nil {
		return 0, &StorageError{Op: "save", Err: err}
	}

	if revision != baseRevision {
		return revision, ErrStaleRevision
	}

	if exists {
		if env, envErr := unmarshalEnvelope(payload); envErr == nil {
			oldHash, err1 := model.ContentHash(env.Data)
			newHash, err2 := model.ContentHash(doc)
			if err1 == nil && err2 == nil && oldHash == newHash {
				return revision, nil
			}
		}
	}

	data, err := marshalEnvelope(envelope{
		Version:     envelopeVersion,
		Data:        doc,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return 0, &StorageError{Op: "save", Err: err}
	}

	next := revision + 1
	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (key, revision, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			revision = excluded.revision,
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, key, next, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, &StorageError{Op: "save", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return 0, &StorageError{Op: "save", Err: err}
	}
	return next, nil
}
