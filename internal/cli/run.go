package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/khatapp/khata/internal/engine"
	"github.com/khatapp/khata/internal/model"
	"github.com/khatapp/khata/internal/store"
)

// saveRetries bounds reload-and-reapply attempts when another process
// wrote the slot between our load and save.
const saveRetries = 3

// mutateFunc applies one engine operation. It returns the next document
// and the payload to print on success.
type mutateFunc func(eng *engine.Engine, doc model.Document) (model.Document, any, error)

// viewFunc computes a read-only result from a document snapshot.
type viewFunc func(doc model.Document) (any, error)

// mutate runs the standard command loop: open store, load document,
// apply the operation, save the full next document in one write.
//
// A stale revision means another writer got in between; the operation is
// reapplied on the fresh document a bounded number of times.
func mutate(cmd *cobra.Command, opts *RootOptions, fn mutateFunc) error {
	out := opts.formatter(cmd.OutOrStdout())

	st, err := store.Open(opts.DB)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open ledger", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing ledger", "error", closeErr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	eng := engine.New()

	for attempt := 0; attempt < saveRetries; attempt++ {
		doc, revision, err := st.Load(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load document", err)
		}

		next, payload, err := fn(eng, doc)
		if err != nil {
			code, details := classify(err)
			_ = out.Error(code, err.Error(), details)
			return WrapExitError(ExitFailure, "operation rejected", err)
		}

		_, err = st.Save(ctx, next, revision)
		if errors.Is(err, store.ErrStaleRevision) {
			slog.Debug("document changed underneath us, retrying", "attempt", attempt+1)
			continue
		}
		if err != nil {
			// The in-memory result is valid; the save failed. Report as
			// a storage problem so the caller can retry.
			_ = out.Error("STORAGE", err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to save document", err)
		}
		return out.Success(payload)
	}
	return NewExitError(ExitCommandError, "document kept changing concurrently, giving up")
}

// view runs a read-only command against the current snapshot.
func view(cmd *cobra.Command, opts *RootOptions, fn viewFunc) error {
	out := opts.formatter(cmd.OutOrStdout())

	st, err := store.Open(opts.DB)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open ledger", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing ledger", "error", closeErr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	doc, _, err := st.Load(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load document", err)
	}

	payload, err := fn(doc)
	if err != nil {
		code, details := classify(err)
		_ = out.Error(code, err.Error(), details)
		return WrapExitError(ExitFailure, "query rejected", err)
	}
	return out.Success(payload)
}

// classify maps an operation error to an output code plus details.
func classify(err error) (string, any) {
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return "VALIDATION", ve.Fields
	}
	if code := engine.CodeOf(err); code != "" {
		var te *engine.TransitionError
		errors.As(err, &te)
		return string(code), te.Details
	}
	if store.IsStorageError(err) {
		return "STORAGE", nil
	}
	return "ERROR", nil
}
