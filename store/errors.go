package store

import "errors"

// Path/IO errors (§7).
var (
	// PathExists is returned when Serialize's target already exists.
	PathExists = errors.New("store: path already exists")
	// PathDoesNotExist is returned when Load's target is missing.
	PathDoesNotExist = errors.New("store: path does not exist")
	// ReadOnlyBackend is returned when a write operation is attempted
	// against a read-only backend (HTTP).
	ReadOnlyBackend = errors.New("store: backend is read-only")
)
