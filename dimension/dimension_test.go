package dimension

import (
	"testing"

	"github.com/weso/remotehdt/dictionary"
	"github.com/weso/remotehdt/refsystem"
)

func TestFromDictionary(t *testing.T) {
	d, err := dictionary.Build(
		map[string]struct{}{"<s1>": {}, "<s2>": {}, "<s3>": {}},
		map[string]struct{}{"<p1>": {}},
		map[string]struct{}{"<o1>": {}, "<o2>": {}},
	)
	if err != nil {
		t.Fatal(err)
	}

	dim := FromDictionary(d, refsystem.SPO, 5)
	if dim.First != 3 || dim.Second != 1 || dim.Third != 2 {
		t.Errorf("SPO dims => %d,%d,%d; want 3,1,2", dim.First, dim.Second, dim.Third)
	}
	if dim.GraphSize != 5 {
		t.Errorf("GraphSize => %d; want 5", dim.GraphSize)
	}

	dim = FromDictionary(d, refsystem.PSO, GraphSizeUnknown)
	if dim.First != 1 || dim.Second != 3 || dim.Third != 2 {
		t.Errorf("PSO dims => %d,%d,%d; want 1,3,2", dim.First, dim.Second, dim.Third)
	}
	if dim.GraphSize != GraphSizeUnknown {
		t.Errorf("GraphSize => %d; want %d", dim.GraphSize, GraphSizeUnknown)
	}
}
