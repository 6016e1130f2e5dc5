package rdf

import (
	"bytes"
	"io"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		input string
		want  []Triple
	}{
		{"", nil},
		{"<s> <p> <o> .", []Triple{{NewURI("s"), NewURI("p"), NewURI("o")}}},
		{`<s> <p> "abc" .`, []Triple{{NewURI("s"), NewURI("p"), NewLiteral("abc")}}},
		{`<s> <p> "1"^^<int> .`, []Triple{{NewURI("s"), NewURI("p"), NewTypedLiteral("1", NewURI("int"))}}},
		{`<s> <p> "hei"@nb .`, []Triple{{NewURI("s"), NewURI("p"), NewLangLiteral("hei", "nb")}}},
		{`<s> <p> "x", "y" .`, []Triple{
			{NewURI("s"), NewURI("p"), NewLiteral("x")},
			{NewURI("s"), NewURI("p"), NewLiteral("y")}}},
		{`<s> <p> "a" ; <p2> "b" ; <p3>  "c" .`, []Triple{
			{NewURI("s"), NewURI("p"), NewLiteral("a")},
			{NewURI("s"), NewURI("p2"), NewLiteral("b")},
			{NewURI("s"), NewURI("p3"), NewLiteral("c")}}},
		{"_:b1 <p> <o> .", []Triple{{URI("_:b1"), NewURI("p"), NewURI("o")}}},
		{`@prefix ex: <http://example.org/> .
ex:s ex:p "a" .`, []Triple{
			{NewURI("http://example.org/s"), NewURI("http://example.org/p"), NewLiteral("a")}}},
		{`<s> a <Class> .`, []Triple{{NewURI("s"), RDFtype, NewURI("Class")}}},
	}

	for _, test := range tests {
		dec := NewDecoder(bytes.NewBufferString(test.input))
		got := NewGraph()
		for tr, err := dec.Decode(); err != io.EOF; tr, err = dec.Decode() {
			if err != nil {
				t.Fatalf("decoding %q: %v", test.input, err)
			}
			got.Insert(tr)
		}
		want := NewGraph()
		want.Insert(test.want...)

		if !got.Eq(want) {
			t.Errorf("decoding:\n%q\ngot:\n%v\nwant:\n%v", test.input, got.Triples(), want.Triples())
		}
	}
}

func TestDecodeBase(t *testing.T) {
	dec := NewDecoder(bytes.NewBufferString(`@base <http://example.org/> .
<s> <p> <o> .`))
	dec.Base = ""
	g, err := dec.DecodeAll()
	if err != nil {
		t.Fatal(err)
	}
	want := NewGraph()
	want.Insert(Triple{NewURI("http://example.org/s"), NewURI("http://example.org/p"), NewURI("http://example.org/o")})
	if !g.Eq(want) {
		t.Errorf("got:\n%v\nwant:\n%v", g.Triples(), want.Triples())
	}
}

func TestDecodeSkolemize(t *testing.T) {
	dec := NewDecoder(bytes.NewBufferString("_:b1 <p> <o> ."))
	dec.Skolemize = func(label string) URI { return NewURI("http://example.org/.well-known/genid/" + label) }
	tr, err := dec.Decode()
	if err != nil {
		t.Fatal(err)
	}
	want := URI("http://example.org/.well-known/genid/b1")
	if tr.Subj != want {
		t.Errorf("Subj => %q; want %q", tr.Subj, want)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []string{
		"<s <p> <o> .",
		"<s> <p> .",
		`<s> <p> "a" ^^ .`,
	}
	for _, input := range tests {
		dec := NewDecoder(bytes.NewBufferString(input))
		_, err := dec.DecodeAll()
		if err == nil {
			t.Errorf("decoding %q: expected error, got none", input)
		}
	}
}
