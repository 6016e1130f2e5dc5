package rdf

import (
	"sort"
	"testing"
)

type triples []Triple

func (t triples) Len() int           { return len(t) }
func (t triples) Swap(i, j int)      { t[i], t[j] = t[j], t[i] }
func (t triples) Less(i, j int) bool { return t[i].String() < t[j].String() }

func eqTriples(a, b []Triple) bool {
	if len(a) != len(b) {
		return false
	}
	sort.Sort(triples(a))
	sort.Sort(triples(b))
	for i, tr := range a {
		if b[i] != tr {
			return false
		}
	}
	return true
}

func TestGraphInsert(t *testing.T) {
	g := NewGraph()

	trs := []Triple{
		{NewURI("s"), NewURI("p"), NewLiteral("a")},
		{NewURI("s"), NewURI("p"), NewLiteral(int32(100))},
		{NewURI("s"), NewURI("p"), NewLiteral("a")},
	}

	if n := g.Insert(trs...); n != 2 {
		t.Errorf("Graph.Insert(<2 triples>) => %d ; want 2", n)
	}

	if g.Size() != 2 {
		t.Errorf("Graph.Size() => %d; want 2", g.Size())
	}

	if !eqTriples(trs[:2], g.Triples()) {
		t.Errorf("Graph.Triples() => %v; want %v", g.Triples(), trs[:2])
	}

	if n := g.Insert(trs[0]); n != 0 {
		t.Errorf("Graph.Insert(%v) => %d; want 0", trs[0], n)
	}

	tests := []struct {
		tr   Triple
		want bool
	}{
		{trs[0], true},
		{trs[1], true},
		{Triple{NewURI("s"), NewURI("p"), NewLiteral("A")}, false},
		{Triple{NewURI("s"), NewURI("p2"), NewLiteral("a")}, false},
		{Triple{NewURI("s"), NewURI("p"), NewLangLiteral("a", "en")}, false},
		{Triple{NewURI("s"), NewURI("p"), NewTypedLiteral("a", NewURI("mytype"))}, false},
		{Triple{NewURI("s"), NewURI("p"), NewLiteral(int64(100))}, false},
	}

	for _, test := range tests {
		if ok := g.Has(test.tr); ok != test.want {
			t.Errorf("Graph.Has(%v) => %v; want %v", test.tr, ok, test.want)
		}
	}
}

func TestGraphEq(t *testing.T) {
	a := NewGraph()
	a.Insert(
		Triple{NewURI("s"), NewURI("p"), NewLiteral("a")},
		Triple{NewURI("s"), NewURI("p"), NewLiteral("b")},
		Triple{NewURI("s"), NewURI("p"), NewLiteral("c")},
		Triple{NewURI("s2"), NewURI("p2"), NewURI("s")},
	)
	b := NewGraph()
	b.Insert(
		Triple{NewURI("s2"), NewURI("p2"), NewURI("s")},
		Triple{NewURI("s"), NewURI("p"), NewLiteral("b")},
		Triple{NewURI("s"), NewURI("p"), NewLiteral("c")},
		Triple{NewURI("s"), NewURI("p"), NewLiteral("a")},
	)
	c := NewGraph()
	c.Insert(
		Triple{NewURI("s"), NewURI("p"), NewLiteral("a")},
		Triple{NewURI("s"), NewURI("p"), NewLiteral("b")},
		Triple{NewURI("s"), NewURI("p"), NewLiteral("c")},
		Triple{NewURI("s2"), NewURI("p2"), NewURI("s")},
		Triple{NewURI("s"), NewURI("p2"), NewURI("s2")},
	)
	d := NewGraph()
	d.Insert(
		Triple{NewURI("s"), NewURI("p"), NewLiteral("a")},
		Triple{NewURI("s"), NewURI("p"), NewLiteral("b")},
		Triple{NewURI("s"), NewURI("p"), NewLiteral("c")},
	)

	tests := []struct {
		a, b *Graph
		want bool
	}{
		{a, b, true},
		{a, c, false},
		{a, d, false},
	}

	for _, test := range tests {
		if got := test.a.Eq(test.b); got != test.want {
			t.Errorf("Eq() => %v; want %v", got, test.want)
		}
	}
}

func TestGraphNTriplesRoundtrip(t *testing.T) {
	g := NewGraph()
	trs := []Triple{
		{NewURI("s"), NewURI("p"), NewLangLiteral("a", "en")},
		{NewURI("s2"), NewURI("p2"), NewLiteral(int32(100))},
		{NewURI("s"), NewURI("p"), NewLiteral("x\ny\nz")},
		{NewURI("s3"), NewURI("p3"), NewURI("s")},
	}
	g.Insert(trs...)

	if !eqTriples(trs, g.Triples()) {
		t.Fatalf("Graph.Triples() => %v; want %v", g.Triples(), trs)
	}
}
