// Package refsystem implements the reference-system abstraction: the
// choice of which RDF term position (subject, predicate, object) is
// the tensor's first, second, and third axis.
package refsystem

import "fmt"

// Position is one of the three RDF term positions.
type Position int

const (
	Subject Position = iota
	Predicate
	Object
)

func (p Position) String() string {
	switch p {
	case Subject:
		return "Subject"
	case Predicate:
		return "Predicate"
	case Object:
		return "Object"
	default:
		return "unknown position"
	}
}

// AxisRole is where a Position sits in the chosen ReferenceSystem.
type AxisRole int

const (
	FirstAxis AxisRole = iota
	SecondAxis
	ThirdAxis
)

// ReferenceSystem is one of the six permutations of (Subject,
// Predicate, Object), fixing which position is the tensor's primary
// (chunked) axis.
type ReferenceSystem int

const (
	SPO ReferenceSystem = iota
	SOP
	PSO
	POS
	OSP
	OPS
)

// All enumerates every reference system, in the order new queries
// should try them when no preference is given.
var All = [6]ReferenceSystem{SPO, SOP, PSO, POS, OSP, OPS}

var axisOrder = map[ReferenceSystem][3]Position{
	SPO: {Subject, Predicate, Object},
	SOP: {Subject, Object, Predicate},
	PSO: {Predicate, Subject, Object},
	POS: {Predicate, Object, Subject},
	OSP: {Object, Subject, Predicate},
	OPS: {Object, Predicate, Subject},
}

// Axes returns the Position occupying axis 0, 1 and 2 respectively.
func (rs ReferenceSystem) Axes() [3]Position {
	return axisOrder[rs]
}

// String returns the lowercase 3-letter tag persisted in array attributes.
func (rs ReferenceSystem) String() string {
	switch rs {
	case SPO:
		return "spo"
	case SOP:
		return "sop"
	case PSO:
		return "pso"
	case POS:
		return "pos"
	case OSP:
		return "osp"
	case OPS:
		return "ops"
	default:
		return "unknown"
	}
}

// Parse maps a persisted tag back to a ReferenceSystem.
func Parse(tag string) (ReferenceSystem, error) {
	for _, rs := range All {
		if rs.String() == tag {
			return rs, nil
		}
	}
	return 0, fmt.Errorf("refsystem: unrecognized reference_system tag %q", tag)
}

// DimensionNames returns the human-readable axis labels matching this
// reference system, in axis order, for 2-D (Matrix) layouts: the
// first and third positions in the permutation (the matrix's row and
// column axes; the second position is stored as the cell value).
func (rs ReferenceSystem) DimensionNames() [2]string {
	axes := rs.Axes()
	return [2]string{dimensionName(axes[0]), dimensionName(axes[2])}
}

// AxisNames returns the human-readable label of all three positions,
// in axis order, for 3-column (Tabular) layouts.
func (rs ReferenceSystem) AxisNames() [3]string {
	axes := rs.Axes()
	return [3]string{dimensionName(axes[0]), dimensionName(axes[1]), dimensionName(axes[2])}
}

func dimensionName(p Position) string {
	switch p {
	case Subject:
		return "Subjects"
	case Predicate:
		return "Predicates"
	case Object:
		return "Objects"
	default:
		return "Unknown"
	}
}

// AxisRoleOf reports which axis position p occupies under rs.
func (rs ReferenceSystem) AxisRoleOf(p Position) AxisRole {
	axes := rs.Axes()
	switch p {
	case axes[0]:
		return FirstAxis
	case axes[2]:
		return ThirdAxis
	default:
		return SecondAxis
	}
}

// Shape returns the (first, second, third) axis sizes given the three
// dictionary cardinalities, permuted according to rs.
func (rs ReferenceSystem) Shape(sCount, pCount, oCount int) (first, second, third int) {
	sizes := map[Position]int{Subject: sCount, Predicate: pCount, Object: oCount}
	axes := rs.Axes()
	return sizes[axes[0]], sizes[axes[1]], sizes[axes[2]]
}
