package rdf

import "io"

// NewNTriplesDecoder returns a Decoder for N-Triples input: N-Triples
// is the subset of Turtle this package already parses (absolute IRIs,
// no directives, no prefixed names), so this is the same Decoder with
// Base left empty. Turtle-only syntax (directives, prefixed names) in
// the input is accepted, not rejected.
func NewNTriplesDecoder(r io.Reader) *Decoder {
	return NewDecoder(r)
}
