// Package store defines the narrow chunked-array capability the
// engine needs from its persistence substrate (§6.3: group/array
// metadata, whole-chunk store/retrieve, subset writes) and two
// concrete Backend implementations: a BoltDB-backed FileSystemBackend
// and a read-only HTTPBackend. No backend-specific type escapes this
// package's exported surface.
package store

import "encoding/json"

// GroupMeta is the metadata stored at a group node. The engine never
// needs more than a marker that the group exists; attributes are kept
// open-ended for forward compatibility with richer group metadata.
type GroupMeta struct {
	Attributes json.RawMessage `json:"attributes,omitempty"`
}

// ArrayMeta is the metadata persisted alongside an array's chunks, as
// specified in §6.2.
type ArrayMeta struct {
	Shape          []int           `json:"shape"`
	DataType       string          `json:"data_type"`
	ChunkShape     []int           `json:"chunk_grid"`
	FillValue      uint64          `json:"fill_value"`
	DimensionNames []string        `json:"dimension_names"`
	Codecs         CodecChain      `json:"codecs"`
	Attributes     json.RawMessage `json:"attributes"`
	// LayoutKind records which Layout ("matrix" or "tabular") produced
	// this array, so Load can pick the matching layout.Kind without
	// guessing from shape alone.
	LayoutKind string `json:"layout"`

	// Presence is a serialized roaring.Bitmap of first-axis indices
	// that have at least one edge, letting a first-axis query skip the
	// backend round-trip entirely for a known-empty row. Nil on an
	// artifact serialized before this field existed.
	Presence []byte `json:"presence,omitempty"`
}

// CodecChain describes the sharding-outer/gzip-inner codec chain
// (§4.4, §6.2). ShardingFactor is the number of inner (one-row)
// chunks packaged per shard; 1 means every shard is a single chunk and
// the sharding wrapper is a no-op.
type CodecChain struct {
	ShardingFactor int `json:"sharding_factor"`
	GzipLevel      int `json:"gzip_level"`
}

// Backend is the capability the Storage engine requires of its
// persistence substrate. Implementations: FileSystemBackend (§6.1,
// read+write) and HTTPBackend (read-only).
type Backend interface {
	// ReadOnly reports whether Create* operations are rejected.
	ReadOnly() bool

	// Exists reports whether path already holds a group or array.
	Exists(path string) (bool, error)

	CreateGroup(path string, meta GroupMeta) error
	OpenGroup(path string) (GroupMeta, error)

	CreateArray(path string, meta ArrayMeta) error
	OpenArray(path string) (ArrayMeta, error)

	// StoreChunk writes the raw (already codec-encoded) bytes of the
	// chunk at the given chunk-grid index along axis 0.
	StoreChunk(arrayPath string, chunkIndex int, data []byte) error
	// RetrieveChunk reads back a chunk stored by StoreChunk.
	RetrieveChunk(arrayPath string, chunkIndex int) ([]byte, error)

	// StoreSubset writes a partial (trailing, less-than-one-chunk)
	// write starting at the given row offset.
	StoreSubset(arrayPath string, rowOffset int, data []byte) error
	// RetrieveSubset reads back a subset written by StoreSubset.
	RetrieveSubset(arrayPath string, rowOffset int) ([]byte, error)

	// Close releases any held resources (file handles, connections).
	Close() error
}
