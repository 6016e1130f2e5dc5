package layout

import "github.com/weso/remotehdt/refsystem"

// MatrixLayout stores one row per first-axis index; row position j
// holds the second-axis ID of the triple (i, ?, j), or 0 if absent.
// Multi-valued edges between the same (first,third) pair are lost by
// construction (§4.4's documented invariant) — see DESIGN.md for how
// this implementation resolves the Open Question of which value wins.
type MatrixLayout struct{}

func (MatrixLayout) Kind() Kind { return Matrix }

func (MatrixLayout) Shape(firstSize, thirdSize, _ int) [2]int {
	return [2]int{firstSize, thirdSize}
}

func (MatrixLayout) DataType() string { return DataTypeU64 }

func (MatrixLayout) RowWidth(thirdSize int) int { return thirdSize }

func (MatrixLayout) FillValue() uint64 { return 0 }

func (MatrixLayout) DimensionNames(rs refsystem.ReferenceSystem) []string {
	names := rs.DimensionNames()
	return []string{names[0], names[1]}
}

// Rows builds, for every first-axis index in order, a row of length
// thirdSize with each edge's Second value written at column Third. When
// two edges share a (first,third) pair, the one with the larger
// second-axis ID wins (see DESIGN.md: "keep max", the documented
// resolution of the Open Question in §9).
func (MatrixLayout) Rows(adj *Adjacency, thirdSize int) [][]uint64 {
	rows := make([][]uint64, adj.Len())
	for i := 0; i < adj.Len(); i++ {
		row := make([]uint64, thirdSize)
		for _, e := range adj.Edges(i) {
			if v := uint64(e.Second); v > row[e.Third] {
				row[e.Third] = v
			}
		}
		rows[i] = row
	}
	return rows
}

func (MatrixLayout) DecodeRow(row []uint64, firstID uint32, sink TripleSink) {
	for third, v := range row {
		if v == 0 {
			continue
		}
		sink.Add(firstID, uint32(v), uint32(third))
	}
}

func (MatrixLayout) ShardingFactor(strategy ChunkingStrategy) int {
	return ShardRows(strategy)
}
