package dictionary

import (
	"sort"
	"testing"
	"testing/quick"
)

func TestSetLocateAt(t *testing.T) {
	terms := []string{"b", "a", "c", "a", "aa", ""}
	s, err := NewSet(terms)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 5 {
		t.Fatalf("Len() => %d; want 5", s.Len())
	}

	want := []string{"", "a", "aa", "b", "c"}
	for i, w := range want {
		got, ok := s.At(uint32(i))
		if !ok || got != w {
			t.Errorf("At(%d) => %q, %v; want %q, true", i, got, ok, w)
		}
	}

	for id, w := range want {
		got, ok := s.Locate(w)
		if !ok || got != uint32(id) {
			t.Errorf("Locate(%q) => %d, %v; want %d, true", w, got, ok, id)
		}
	}

	if _, ok := s.Locate("zzz"); ok {
		t.Errorf("Locate(%q) => ok=true; want false", "zzz")
	}
	if _, ok := s.At(100); ok {
		t.Errorf("At(100) => ok=true; want false")
	}
}

func TestSetSortedSameOrder(t *testing.T) {
	f := func(terms []string) bool {
		s, err := NewSet(terms)
		if err != nil {
			t.Fatal(err)
		}
		got := s.Strings()
		if !sort.StringsAreSorted(got) {
			return false
		}
		for i := 1; i < len(got); i++ {
			if got[i] == got[i-1] {
				return false // not deduplicated
			}
		}
		return true
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestSetRoundtrip(t *testing.T) {
	f := func(terms []string) bool {
		s, err := NewSet(terms)
		if err != nil {
			t.Fatal(err)
		}
		for id := 0; id < s.Len(); id++ {
			term, ok := s.At(uint32(id))
			if !ok {
				return false
			}
			gotID, ok := s.Locate(term)
			if !ok || gotID != uint32(id) {
				return false
			}
		}
		return true
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestBuildAttributesRoundtrip(t *testing.T) {
	d, err := Build(
		map[string]struct{}{"<s1>": {}, "<s2>": {}},
		map[string]struct{}{"<p1>": {}},
		map[string]struct{}{`"o1"`: {}, `"o2"`: {}},
	)
	if err != nil {
		t.Fatal(err)
	}
	attrs := d.ToAttributes("spo")

	got, rs, err := FromAttributes(attrs)
	if err != nil {
		t.Fatal(err)
	}
	if rs != "spo" {
		t.Errorf("reference_system => %q; want spo", rs)
	}
	if got.Subjects.Len() != 2 || got.Predicates.Len() != 1 || got.Objects.Len() != 2 {
		t.Errorf("Dictionary sizes => %d/%d/%d; want 2/1/2",
			got.Subjects.Len(), got.Predicates.Len(), got.Objects.Len())
	}
}

func TestFromAttributesMissingKeys(t *testing.T) {
	tests := []struct {
		attrs   Attributes
		wantErr error
	}{
		{Attributes{}, DictionaryMissing},
		{Attributes{Subjects: []string{"a"}}, ErrPredicatesNotInJSON},
		{Attributes{Subjects: []string{"a"}, Predicates: []string{"b"}}, ErrObjectsNotInJSON},
		{Attributes{Subjects: []string{"a"}, Predicates: []string{"b"}, Objects: []string{"c"}}, ErrReferenceSystemNotInJSON},
	}
	for _, test := range tests {
		if _, _, err := FromAttributes(test.attrs); err != test.wantErr {
			t.Errorf("FromAttributes(%+v) => %v; want %v", test.attrs, err, test.wantErr)
		}
	}
}
