package dictionary

import (
	"fmt"
	"math"
)

// Set is one position's (subject, predicate, or object) sorted,
// deduplicated term set: ID space is [0, Len()), dense, and stable for
// the lifetime of one serialized artifact.
type Set struct {
	fc *frontCoded
}

// NewSet builds a Set from an unordered collection of lexical forms,
// typically gathered during the Storage engine's first parse pass.
func NewSet(terms []string) (*Set, error) {
	if len(terms) > math.MaxUint32 {
		return nil, fmt.Errorf("dictionary: %d terms exceeds the 32-bit ID space", len(terms))
	}
	return &Set{fc: buildFrontCoded(terms)}, nil
}

// Len returns the number of distinct terms in the set.
func (s *Set) Len() int { return s.fc.Len() }

// Locate returns the dense ID of term, or ok=false if term is absent.
func (s *Set) Locate(term string) (id uint32, ok bool) {
	i, ok := s.fc.locate(term)
	return uint32(i), ok
}

// LocateUnchecked is Locate without the presence check, for callers
// (the second parse pass) that know by construction the term is a
// member of the set.
func (s *Set) LocateUnchecked(term string) uint32 {
	id, _ := s.fc.locate(term)
	return uint32(id)
}

// At returns the term at the given ID, or ok=false if out of range.
func (s *Set) At(id uint32) (term string, ok bool) {
	if int(id) >= s.fc.Len() {
		return "", false
	}
	return s.fc.at(int(id)), true
}

// Strings decodes the whole set back into its sorted string slice, in
// index order, for attribute serialization.
func (s *Set) Strings() []string { return s.fc.strings() }

// Dictionary is the three independent, per-position term sets of one
// serialized artifact.
type Dictionary struct {
	Subjects   *Set
	Predicates *Set
	Objects    *Set
}

// Build constructs a Dictionary from the three hash sets of lexical
// forms gathered in the first parse pass over the RDF stream.
func Build(subjects, predicates, objects map[string]struct{}) (*Dictionary, error) {
	s, err := NewSet(keys(subjects))
	if err != nil {
		return nil, err
	}
	p, err := NewSet(keys(predicates))
	if err != nil {
		return nil, err
	}
	o, err := NewSet(keys(objects))
	if err != nil {
		return nil, err
	}
	return &Dictionary{Subjects: s, Predicates: p, Objects: o}, nil
}

func keys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
