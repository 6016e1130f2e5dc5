// Package dimension derives the tensor's axis sizes from a Dictionary
// and a ReferenceSystem, plus (when available) the total triple count.
package dimension

import (
	"github.com/weso/remotehdt/dictionary"
	"github.com/weso/remotehdt/refsystem"
)

// GraphSizeUnknown marks Dimensionality.GraphSize as undefined, which
// is the case when loading a Matrix-layout array (no intermediate
// Graph is reconstructed; a Tabular array's row count is its graph size).
const GraphSizeUnknown = -1

// Dimensionality is the derived (first, second, third) axis sizes for
// one reference system over one dictionary, plus the total distinct
// triple count when known.
type Dimensionality struct {
	First, Second, Third int
	GraphSize            int
}

// FromDictionary derives axis sizes for rs over d. graphSize should be
// GraphSizeUnknown when the triple count is not known (loading a
// Matrix-layout array).
func FromDictionary(d *dictionary.Dictionary, rs refsystem.ReferenceSystem, graphSize int) Dimensionality {
	first, second, third := rs.Shape(d.Subjects.Len(), d.Predicates.Len(), d.Objects.Len())
	return Dimensionality{First: first, Second: second, Third: third, GraphSize: graphSize}
}
