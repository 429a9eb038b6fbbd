// FILE: bbconfig/error.go
package config

import "errors"

// Error taxonomy. Every fatal error returned by the package wraps exactly one of
// these sentinels and can be matched with errors.Is.
var (
	// ErrFileUnavailable is returned when the configured line source cannot be opened or read.
	ErrFileUnavailable = errors.New("configuration source unavailable")

	// ErrKeyNotFound is returned by Get for a key absent from overrides, the table and reserved defaults.
	ErrKeyNotFound = errors.New("key not found")

	// ErrCircularReference is returned when a placeholder re-enters its own expansion.
	ErrCircularReference = errors.New("circular reference detected")

	// ErrMirrorWrite is returned when pushing a snapshot to the shared store fails.
	ErrMirrorWrite = errors.New("shared store write failed")

	// ErrTypeMismatch is returned by typed accessors when the resolved value has another kind.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrUnsupportedType is returned when a Go value cannot be represented as a Value.
	ErrUnsupportedType = errors.New("unsupported value type")

	// ErrUnknownFormat is returned by Export and Save for an unknown output format.
	ErrUnknownFormat = errors.New("unknown export format")
)
