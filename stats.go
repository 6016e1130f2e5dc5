package remotehdt

import (
	"bufio"
	"fmt"
	"io"

	"github.com/weso/remotehdt/layout"
	"github.com/weso/remotehdt/refsystem"
)

// Stats is a read-only snapshot of one Storage's shape and dictionary
// sizes, generalizing the teacher's Stats struct (§7 item 1): pure
// introspection, no new query semantics.
type Stats struct {
	ReferenceSystem string
	Layout          string
	LoadMode        string

	Subjects   int
	Predicates int
	Objects    int

	First  int
	Second int
	Third  int

	// GraphSize is the distinct-triple count, or dimension.GraphSizeUnknown
	// when Storage was produced by Load of a Matrix-layout array (a
	// Tabular load takes it from the array's row count).
	GraphSize int

	TotalRows int
	ShardRows int

	Backend string
}

// Stats reports the current shape and dictionary sizes of s.
func (s *Storage) Stats() Stats {
	mode := "Zarr"
	if s.mode == Sparse {
		mode = "Sparse"
	}
	backend := "FileSystem"
	if s.backend.ReadOnly() {
		backend = "HTTP (read-only)"
	}

	return Stats{
		ReferenceSystem: s.rs.String(),
		Layout:          s.lay.Kind().String(),
		LoadMode:        mode,
		Subjects:        s.dict.Subjects.Len(),
		Predicates:      s.dict.Predicates.Len(),
		Objects:         s.dict.Objects.Len(),
		First:           s.dim.First,
		Second:          s.dim.Second,
		Third:           s.dim.Third,
		GraphSize:       s.dim.GraphSize,
		TotalRows:       s.totalRows,
		ShardRows:       s.shardRows,
		Backend:         backend,
	}
}

// DumpTriples reconstructs every triple reachable from the loaded
// array and writes it to w as N-Triples, one per line (§7 item 3): the
// inverse of Serialize, grounded in the teacher's DB.Dump. The
// dictionary already stores each term in its N-Triples lexical form
// (rdf.Lexical), so reconstruction is a lookup, not a reparse.
func (s *Storage) DumpTriples(w io.Writer) error {
	rows, err := s.retrieveRows(0, s.totalRows)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	axes := s.rs.Axes()

	emit := func(first, second, third uint32) error {
		subjLex, predLex, objLex, err := s.lexicalsFor(axes, first, second, third)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(bw, "%s %s %s .\n", subjLex, predLex, objLex)
		return err
	}

	for firstIdx, row := range rows {
		if s.lay.Kind() == layout.Matrix {
			for third, v := range row {
				if v == 0 {
					continue
				}
				if err := emit(uint32(firstIdx), uint32(v), uint32(third)); err != nil {
					return err
				}
			}
			continue
		}
		if err := emit(uint32(row[0]), uint32(row[1]), uint32(row[2])); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// lexicalsFor maps the (first, second, third) axis IDs back to the
// subject/predicate/object lexical forms, using the active reference
// system's axis assignment to know which dictionary Set each ID came
// from.
func (s *Storage) lexicalsFor(axes [3]refsystem.Position, first, second, third uint32) (subj, pred, obj string, err error) {
	values := map[refsystem.Position]uint32{axes[0]: first, axes[1]: second, axes[2]: third}

	subj, ok := s.dict.Subjects.At(values[refsystem.Subject])
	if !ok {
		return "", "", "", Operation
	}
	pred, ok = s.dict.Predicates.At(values[refsystem.Predicate])
	if !ok {
		return "", "", "", Operation
	}
	obj, ok = s.dict.Objects.At(values[refsystem.Object])
	if !ok {
		return "", "", "", Operation
	}
	return subj, pred, obj, nil
}
