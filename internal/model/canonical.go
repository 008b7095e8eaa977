package model

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces the deterministic JSON form used for
// persistence and change detection.
//
// Differences from plain json.Marshal:
//  1. HTML escaping is disabled (< > & are stored as-is)
//  2. The output is NFC normalized, so visually identical strings that
//     differ only in Unicode composition serialize identically
//  3. No trailing newline
//
// Struct field order fixes the key order, and map[int]bool attendance
// records marshal with sorted keys, so equal documents always produce
// equal bytes. That property is what makes save-after-load a no-op.
func MarshalCanonical(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("marshal canonical: %w", err)
	}
	out := bytes.TrimRight(buf.Bytes(), "\n")
	return norm.NFC.Bytes(out), nil
}

// ContentHash returns the hex-encoded SHA-256 of the canonical form.
// The store uses it to skip writes when nothing changed.
func ContentHash(v any) (string, error) {
	data, err := MarshalCanonical(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
