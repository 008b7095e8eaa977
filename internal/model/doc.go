// Package model defines the persisted document and the entities it
// aggregates: products, contacts, sales, purchases, quotations, returns,
// and attendance.
//
// The Document is the single root of all persisted state. It is only ever
// mutated by replacing whole collections atomically; the transition engine
// builds a complete next document before anything is written.
//
// Serialization uses deterministic canonical JSON (see canonical.go) so
// that saving a freshly loaded document is a byte-level no-op.
package model
