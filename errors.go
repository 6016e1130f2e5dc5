// Package remotehdt is a storage engine for RDF knowledge graphs: it
// encodes a set of triples into a chunked, shardable, compressed
// tensor (dense Matrix or Tabular layout), persists it through a
// store.Backend, and answers point queries by subject, predicate or
// object against either the on-disk array or an eagerly materialized
// sparse matrix.
package remotehdt

import "errors"

// Parse errors (§7).
var (
	// RdfParse signals a catastrophic failure reading the RDF stream
	// (as opposed to one skipped, malformed record).
	RdfParse = errors.New("remotehdt: failed to parse RDF input")
	// EmptyGraph is returned when the parsed graph contains no triples.
	EmptyGraph = errors.New("remotehdt: graph contains no triples")
)

// Engine errors (§7).
var (
	SubjectNotFound   = errors.New("remotehdt: subject not found in dictionary")
	PredicateNotFound = errors.New("remotehdt: predicate not found in dictionary")
	ObjectNotFound    = errors.New("remotehdt: object not found in dictionary")

	EmptyArray       = errors.New("remotehdt: array has no rows")
	EmptySparseArray = errors.New("remotehdt: sparse matrix has not been built for this Storage")

	// SecondAxisUnsupported is returned when a query's term occupies
	// the second axis under the current reference system: per §4.8,
	// that axis is not directly indexable and callers are expected to
	// reserialize under a different reference system.
	SecondAxisUnsupported = errors.New("remotehdt: queried position is the second axis under this reference system; reserialize with a different reference system")

	// Operation wraps an internal retrieval failure (a decode error, a
	// shape mismatch) that isn't one of the more specific kinds above.
	Operation = errors.New("remotehdt: internal retrieval operation failed")
)
