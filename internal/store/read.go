package store

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/khatapp/khata/internal/model"
)

// Load returns the document stored under the default key, plus the
// revision to pass back to Save.
//
// Per the store contract, a missing row or an unparseable payload yields
// the default empty document rather than an error: the slot may simply
// never have been written, and a corrupt payload must not brick the
// application. Revision 0 means "nothing persisted yet".
func (s *Store) Load(ctx context.Context) (model.Document, int64, error) {
	return s.LoadKey(ctx, DefaultKey)
}

// LoadKey is Load for an explicit storage key.
func (s *Store) LoadKey(ctx context.Context, key string) (model.Document, int64, error) {
	var payload string
	var revision int64
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, revision FROM documents WHERE key = ?`, key,
	).Scan(&payload, &revision)
	if errors.Is(err, sql.ErrNoRows) {
		return model.NewDocument(), 0, nil
	}
	if err != nil {
		return model.Document{}, 0, &StorageError{Op: "load", Err: err}
	}

	env, err := unmarshalEnvelope(payload)
	if err != nil {
		// Unparseable payload: fall back to the default document. The
		// stored bytes stay untouched until the next successful save.
		slog.Warn("stored document is unreadable, starting from empty",
			"key", key,
			"error", err,
		)
		return model.NewDocument(), revision, nil
	}
	return env.Data, revision, nil
}
