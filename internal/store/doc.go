// Package store persists the ERP document as a single JSON envelope in a
// durable key-value slot backed by SQLite.
//
// One row per storage key: the whole document is replaced atomically on
// every save, so readers never observe a partial write. A failed save
// leaves the previously persisted value intact. Saves carry the revision
// they were loaded at and are rejected when that revision is stale, which
// protects against a second writer (e.g. two shells on the same file).
package store
