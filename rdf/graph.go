package rdf

import (
	"fmt"
	"sort"
)

// Triple is an ordered (subject, predicate, object) RDF statement.
type Triple struct {
	Subj URI
	Pred URI
	Obj  Term
}

// String returns an N-Triples serialization of the Triple.
func (tr Triple) String() string {
	return fmt.Sprintf("<%s> <%s> %s .", tr.Subj, tr.Pred, Lexical(tr.Obj))
}

// Graph is an in-memory bag of triples, grouped by subject then
// predicate. It is used as the transient result of decoding a stream
// (see Decoder), never as the engine's on-disk representation — the
// engine's own adjacency structure is numeric (term IDs), built by the
// remotehdt package's Serialize directly from a Decoder's Triple stream.
type Graph struct {
	nodes map[URI]map[URI]terms
}

// NewGraph returns a new, empty Graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[URI]map[URI]terms)}
}

// Size returns the number of triples in the Graph.
func (g *Graph) Size() (n int) {
	for _, props := range g.nodes {
		for _, vals := range props {
			n += len(vals)
		}
	}
	return n
}

// Nodes returns the graph as subject -> predicate -> objects.
func (g *Graph) Nodes() map[URI]map[URI]terms {
	return g.nodes
}

// Triples flattens the Graph into a slice of Triple.
func (g *Graph) Triples() []Triple {
	trs := make([]Triple, 0, len(g.nodes))
	for subj, props := range g.nodes {
		for pred, objs := range props {
			for _, obj := range objs {
				trs = append(trs, Triple{Subj: subj, Pred: pred, Obj: obj})
			}
		}
	}
	return trs
}

// Insert adds one or more triples to the Graph, ignoring duplicates.
// It returns the number of triples actually inserted.
func (g *Graph) Insert(trs ...Triple) (n int) {
outer:
	for _, t := range trs {
		props, ok := g.nodes[t.Subj]
		if !ok {
			props = make(map[URI]terms)
			g.nodes[t.Subj] = props
		}
		objs := props[t.Pred]
		for _, o := range objs {
			if o == t.Obj {
				continue outer
			}
		}
		props[t.Pred] = append(objs, t.Obj)
		n++
	}
	return n
}

// Has reports whether tr is present in the Graph.
func (g *Graph) Has(tr Triple) bool {
	if props, ok := g.nodes[tr.Subj]; ok {
		for _, o := range props[tr.Pred] {
			if o == tr.Obj {
				return true
			}
		}
	}
	return false
}

// Eq reports whether g and other contain exactly the same set of triples.
func (g *Graph) Eq(other *Graph) bool {
	if g.Size() != other.Size() {
		return false
	}
	for subj, props := range g.nodes {
		op, ok := other.nodes[subj]
		if !ok {
			return false
		}
		for pred, objs := range props {
			oo, ok := op[pred]
			if !ok || !eqTerms(objs, oo) {
				return false
			}
		}
	}
	return true
}

func eqTerms(a, b terms) bool {
	if len(a) != len(b) {
		return false
	}
	as, bs := append(terms(nil), a...), append(terms(nil), b...)
	sort.Sort(as)
	sort.Sort(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
