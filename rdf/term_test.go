package rdf

import (
	"strconv"
	"testing"
	"time"
)

func TestNewURI(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"<>\"{}|^`\\", ""},
		{"\x00\x01\x02\x03\x04\x05\x06\x07\x08\x09\x0A\x0B\x0C\x0D\x0E\x0F", ""},
		{"\x10\x11\x12\x13\x14\x15\x16\x17\x18\x19\x1A\x1B\x1C\x1D\x1E\x1F\x20", ""},
		{"æøå", "æøå"},
		{" http://example.org/resorce#123 ", "http://example.org/resorce#123"},
	}

	for _, test := range tests {
		if NewURI(test.in).String() != test.want {
			t.Errorf("NewURI(%q) => %q; want %q", test.in, NewURI(test.in), test.want)
		}
	}
}

func TestURIResolve(t *testing.T) {
	tests := []struct {
		u, base URI
		want    URI
	}{
		{"http://example.org/a", "http://other.org/", "http://example.org/a"},
		{"/a", "http://example.org", "http://example.org/a"},
		{"#a", "http://example.org", "http://example.org#a"},
		{"a", "http://example.org/", "http://example.org/a"},
		{"a", "http://example.org", "http://example.org/a"},
	}
	for _, test := range tests {
		if got := test.u.Resolve(test.base); got != test.want {
			t.Errorf("%q.Resolve(%q) => %q; want %q", test.u, test.base, got, test.want)
		}
	}
}

func TestNewLiteral(t *testing.T) {
	tests := []struct {
		in interface{}
		dt URI
	}{
		{false, XSDboolean},
		{true, XSDboolean},
		{"a string", XSDstring},
		{int8(1), XSDbyte},
		{int16(-32768), XSDshort},
		{int32(2147483647), XSDint},
		{int64(11), XSDlong},
		{uint8(0), XSDunsignedByte},
		{uint16(5), XSDunsignedShort},
		{uint32(999), XSDunsignedInt},
		{uint64(18446744073709551615), XSDunsignedLong},
		{float32(3.14), XSDfloat},
		{float64(0.99999), XSDdouble},
		{time.Date(1999, 12, 24, 12, 45, 0, 123, time.UTC), XSDdateTimeStamp},
	}
	for _, test := range tests {
		l := NewLiteral(test.in)
		if l.DataType() != test.dt {
			t.Errorf("NewLiteral(%v).DataType() => %q; want %q", test.in, l.DataType(), test.dt)
		}
	}
}

func TestNewLiteralArchDependent(t *testing.T) {
	intType := XSDlong
	uintType := XSDunsignedLong
	floatType := XSDdouble
	if strconv.IntSize == 32 {
		intType = XSDint
		uintType = XSDunsignedInt
	}

	tests := []struct {
		in interface{}
		dt URI
	}{
		{0, intType},
		{1234567, intType},
		{uint(99), uintType},
		{3.14, floatType},
	}

	for _, test := range tests {
		l := NewLiteral(test.in)
		if l.DataType() != test.dt {
			t.Errorf("NewLiteral(%v).DataType() => %q; want %q", test.in, l.DataType(), test.dt)
		}
	}
}

func TestNewLiteralCustomType(t *testing.T) {
	v := struct{ a, b string }{"hei", "hå"}
	l := NewLiteral(v)
	if l.DataType() != XSDstring {
		t.Errorf("NewLiteral(%v).DataType() => %s ; want %s ", v, l.DataType(), XSDstring)
	}
}

func TestNewLangLiteral(t *testing.T) {
	l := NewLangLiteral("hei", "no")
	if l.String() != "hei" {
		t.Errorf("NewLangLiteral(\"hei\", \"no\").String() => %v ; want \"hei\"", l.String())
	}
	if l.Lang() != "no" {
		t.Errorf("NewLangLiteral(\"hei\", \"no\").Lang() => %v ; want \"no\"", l.Lang())
	}
	if l.DataType() != RDFlangString {
		t.Errorf("NewLangLiteral(\"hei\", \"no\").DataType() => %v ; want %v", l.DataType(), RDFlangString)
	}
}

func TestNewTypedLiteral(t *testing.T) {
	dt := NewURI("http://example.org/class/Point")
	l := NewTypedLiteral("1,2", dt)
	if l.DataType() != dt {
		t.Errorf("NewTypeLiteral(%v, %v).DataType() => %s ; want %s ", "1,2", dt, l.DataType(), dt)
	}
	if l.String() != "1,2" {
		t.Errorf("NewTypedLiteral(%v, %v).String() => %s ; want %s ", "1,2", dt, l.String(), "1,2")
	}
}

func TestLexical(t *testing.T) {
	tests := []struct {
		in   Term
		want string
	}{
		{NewURI("http://example.org/s"), "<http://example.org/s>"},
		{NewLiteral("abc"), `"abc"`},
		{NewLangLiteral("hei", "nb"), `"hei"@nb`},
		{NewTypedLiteral("1", XSDint), `"1"^^<http://www.w3.org/2001/XMLSchema#int>`},
	}
	for _, test := range tests {
		if got := Lexical(test.in); got != test.want {
			t.Errorf("Lexical(%v) => %q; want %q", test.in, got, test.want)
		}
	}
}
