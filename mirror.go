// FILE: bbconfig/mirror.go
package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// SnapshotKey is the shared store key holding the serialized configuration table.
const SnapshotKey = "BBConfig:global_config"

// SharedStore is a network cache that mirrors the whole configuration table
// under a single key.
type SharedStore interface {
	// Get returns the stored snapshot; found is false when the key is absent.
	Get(ctx context.Context, key string) (data []byte, found bool, err error)
	// Set replaces the stored snapshot.
	Set(ctx context.Context, key string, data []byte) error
}

// NopStore is a SharedStore that never holds a snapshot and accepts every write.
type NopStore struct{}

// Get always reports the snapshot as absent.
func (NopStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards data.
func (NopStore) Set(context.Context, string, []byte) error { return nil }

// EncodeSnapshot serializes a configuration table as a flat JSON object.
func EncodeSnapshot(table map[string]Value) ([]byte, error) {
	if table == nil {
		table = map[string]Value{}
	}
	data, err := json.Marshal(table)
	if err != nil {
		return nil, fmt.Errorf("failed to encode configuration snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a snapshot produced by EncodeSnapshot. Strings stay raw
// strings, integral numbers become Int and other numbers Float.
func DecodeSnapshot(data []byte) (map[string]Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode configuration snapshot: %w", err)
	}
	table := make(map[string]Value, len(raw))
	for key, item := range raw {
		v, err := ValueOf(item)
		if err != nil {
			return nil, fmt.Errorf("failed to decode snapshot key %q: %w", key, err)
		}
		table[key] = v
	}
	return table, nil
}
