package remotehdt

import (
	"gonum.org/v1/gonum/mat"

	"github.com/weso/remotehdt/layout"
	"github.com/weso/remotehdt/refsystem"
)

// OpsKind distinguishes the two shapes a query result can take,
// depending on LoadMode and Layout (§4.8).
type OpsKind int

const (
	// DenseResult carries one value per index across the full opposite
	// axis, fill value included (a Matrix row, as stored).
	DenseResult OpsKind = iota
	// SparseResult carries only the present (index, value) pairs.
	SparseResult
)

// SparseEntry is one non-absent coordinate of a SparseResult.
type SparseEntry struct {
	Index int
	Value uint64
}

// OpsFormat is the Query Dispatcher's result sum type (§4.8): exactly
// one of Dense or Sparse is populated, selected by Kind.
type OpsFormat struct {
	Kind   OpsKind
	Dense  []uint64
	Sparse []SparseEntry
}

// GetSubject returns every (predicate, object) pair reachable from the
// subject term, in whatever shape the current reference system and
// load mode produce.
func (s *Storage) GetSubject(term string) (OpsFormat, error) {
	return s.queryPosition(refsystem.Subject, term)
}

// GetPredicate is the Query Dispatcher entry point for the predicate
// position. Whether it succeeds depends on AxisRoleOf(Predicate) for
// the active reference system: PSO and POS put the predicate on the
// first axis and SOP and OSP on the third, while under SPO and OPS it
// is the second axis and every call returns SecondAxisUnsupported.
func (s *Storage) GetPredicate(term string) (OpsFormat, error) {
	return s.queryPosition(refsystem.Predicate, term)
}

// GetObject is the Query Dispatcher entry point for the object position.
func (s *Storage) GetObject(term string) (OpsFormat, error) {
	return s.queryPosition(refsystem.Object, term)
}

func notFoundFor(p refsystem.Position) error {
	switch p {
	case refsystem.Subject:
		return SubjectNotFound
	case refsystem.Predicate:
		return PredicateNotFound
	default:
		return ObjectNotFound
	}
}

// queryPosition locates lexical among p's dictionary terms without
// touching the backend when it is absent (Testable Property 7), then
// dispatches on which axis p occupies under the active reference
// system.
func (s *Storage) queryPosition(p refsystem.Position, lexical string) (OpsFormat, error) {
	id, ok := setFor(s.dict, p).Locate(lexical)
	if !ok {
		return OpsFormat{}, notFoundFor(p)
	}

	switch s.rs.AxisRoleOf(p) {
	case refsystem.FirstAxis:
		return s.queryFirstAxis(id)
	case refsystem.ThirdAxis:
		return s.queryThirdAxis(id)
	default:
		// §4.8: the second axis is not directly indexable; the caller
		// is expected to have serialized under a reference system
		// that puts this position on the first or third axis instead.
		return OpsFormat{}, SecondAxisUnsupported
	}
}

// queryFirstAxis answers a query against the row-indexing axis: for
// Matrix this is a single stored row; for Tabular (Zarr mode) it
// requires a full scan, per §4.4's "Tabular requires scanning to
// answer queries unless loaded into sparse form".
func (s *Storage) queryFirstAxis(id uint32) (OpsFormat, error) {
	if s.presence != nil && !s.presence.Contains(id) {
		return s.emptyResult(), nil
	}

	if s.mode == Sparse {
		if s.sparse == nil {
			return OpsFormat{}, EmptySparseArray
		}
		return sparseRow(s.sparse, int(id), s.dim.Third), nil
	}

	if s.lay.Kind() == layout.Matrix {
		row, err := s.retrieveRow(int(id))
		if err != nil {
			return OpsFormat{}, err
		}
		return OpsFormat{Kind: DenseResult, Dense: row}, nil
	}
	return s.scanTabularFirstAxis(id)
}

// queryThirdAxis answers a query against the column axis, which no
// on-disk layout indexes directly: Matrix needs a column scan across
// every row, Tabular needs a row scan looking for a matching third ID.
func (s *Storage) queryThirdAxis(id uint32) (OpsFormat, error) {
	if s.mode == Sparse {
		if s.sparse == nil {
			return OpsFormat{}, EmptySparseArray
		}
		return sparseColumn(s.sparse, int(id), s.dim.First), nil
	}

	if s.lay.Kind() == layout.Matrix {
		return s.scanMatrixColumn(id)
	}
	return s.scanTabularThirdAxis(id)
}

func (s *Storage) scanMatrixColumn(id uint32) (OpsFormat, error) {
	rows, err := s.retrieveRows(0, s.totalRows)
	if err != nil {
		return OpsFormat{}, err
	}
	var entries []SparseEntry
	for i, row := range rows {
		if int(id) >= len(row) {
			continue
		}
		if v := row[id]; v != 0 {
			entries = append(entries, SparseEntry{Index: i, Value: v})
		}
	}
	return OpsFormat{Kind: SparseResult, Sparse: entries}, nil
}

func (s *Storage) scanTabularFirstAxis(id uint32) (OpsFormat, error) {
	rows, err := s.retrieveRows(0, s.totalRows)
	if err != nil {
		return OpsFormat{}, err
	}
	dense := make([]uint64, s.dim.Third)
	for _, row := range rows {
		if uint32(row[0]) != id {
			continue
		}
		third := row[2]
		if v := row[1]; v > dense[third] {
			dense[third] = v
		}
	}
	return OpsFormat{Kind: DenseResult, Dense: dense}, nil
}

func (s *Storage) scanTabularThirdAxis(id uint32) (OpsFormat, error) {
	rows, err := s.retrieveRows(0, s.totalRows)
	if err != nil {
		return OpsFormat{}, err
	}
	var entries []SparseEntry
	for _, row := range rows {
		if uint32(row[2]) != id {
			continue
		}
		entries = append(entries, SparseEntry{Index: int(row[0]), Value: row[1]})
	}
	return OpsFormat{Kind: SparseResult, Sparse: entries}, nil
}

func sparseRow(m mat.Matrix, row, cols int) OpsFormat {
	var entries []SparseEntry
	for j := 0; j < cols; j++ {
		if v := m.At(row, j); v != 0 {
			entries = append(entries, SparseEntry{Index: j, Value: uint64(v)})
		}
	}
	return OpsFormat{Kind: SparseResult, Sparse: entries}
}

// emptyResult is what every first-axis query branch returns for an
// index with zero edges: a Dense row of fill values, matching the
// shape a populated row would have.
func (s *Storage) emptyResult() OpsFormat {
	return OpsFormat{Kind: DenseResult, Dense: make([]uint64, s.dim.Third)}
}

func sparseColumn(m mat.Matrix, col, rows int) OpsFormat {
	var entries []SparseEntry
	for i := 0; i < rows; i++ {
		if v := m.At(i, col); v != 0 {
			entries = append(entries, SparseEntry{Index: i, Value: uint64(v)})
		}
	}
	return OpsFormat{Kind: SparseResult, Sparse: entries}
}
