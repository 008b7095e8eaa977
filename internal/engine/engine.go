package engine

import (
	"time"
)

// Engine exposes the pure document transitions plus id and timestamp
// generation for callers creating new entities.
//
// The engine holds no document state and never writes to the store: each
// Apply method takes the current document and returns the next one, and
// the caller hands the result to the store as a single atomic write.
type Engine struct {
	idGen IDGenerator
	now   func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithIDGenerator overrides the entity id generator.
// Tests use this with a FixedGenerator for deterministic documents.
func WithIDGenerator(g IDGenerator) Option {
	return func(e *Engine) {
		e.idGen = g
	}
}

// WithNow overrides the time source used for entity timestamps.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an Engine. Defaults: UUIDv7 ids, wall-clock timestamps.
func New(opts ...Option) *Engine {
	e := &Engine{
		idGen: UUIDv7Generator{},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewID generates a fresh entity id.
func (e *Engine) NewID() string {
	return e.idGen.Generate()
}

// Timestamp returns the current time as an ISO-8601 (RFC 3339) string,
// the timestamp format of the persisted document.
func (e *Engine) Timestamp() string {
	return e.now().UTC().Format(time.RFC3339)
}
