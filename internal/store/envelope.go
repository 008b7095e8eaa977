package store

import (
	"encoding/json"
	"fmt"

	"github.com/khatapp/khata/internal/model"
)

// envelopeVersion is the persisted document format version. Loads with a
// lower version run migrations; the current version is a no-op.
const envelopeVersion = 1

// envelope is the persisted JSON shape: a numeric format version, the
// document itself, and the last write timestamp.
type envelope struct {
	Version     int            `json:"version"`
	Data        model.Document `json:"data"`
	LastUpdated string         `json:"lastUpdated"`
}

// marshalEnvelope produces the canonical persisted bytes.
func marshalEnvelope(env envelope) ([]byte, error) {
	data, err := model.MarshalCanonical(env)
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}
	return data, nil
}

// unmarshalEnvelope parses persisted bytes, applying format migrations
// for envelopes older than the current version.
func unmarshalEnvelope(payload string) (envelope, error) {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return envelope{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version > envelopeVersion {
		return envelope{}, fmt.Errorf("envelope version %d is newer than supported %d", env.Version, envelopeVersion)
	}
	// version < envelopeVersion: no migrations defined yet, stamp current.
	env.Version = envelopeVersion
	return env, nil
}
