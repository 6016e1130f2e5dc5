package layout

import "github.com/weso/remotehdt/refsystem"

// TabularLayout stores one row per triple, literally (first, second,
// third) IDs: no information loss, denser for sparse graphs, but
// requires a scan (or a Sparse load) to answer queries.
type TabularLayout struct{}

func (TabularLayout) Kind() Kind { return Tabular }

func (TabularLayout) Shape(_, _, graphSize int) [2]int {
	return [2]int{graphSize, 3}
}

func (TabularLayout) DataType() string { return DataTypeU64 }

func (TabularLayout) RowWidth(int) int { return 3 }

func (TabularLayout) FillValue() uint64 { return 0 }

func (TabularLayout) DimensionNames(rs refsystem.ReferenceSystem) []string {
	names := rs.AxisNames()
	return names[:]
}

// Rows emits one row (first, second, third) per edge, in axis-0 order.
func (TabularLayout) Rows(adj *Adjacency, _ int) [][]uint64 {
	rows := make([][]uint64, 0, adj.Size())
	for i := 0; i < adj.Len(); i++ {
		for _, e := range adj.Edges(i) {
			rows = append(rows, []uint64{uint64(i), uint64(e.Second), uint64(e.Third)})
		}
	}
	return rows
}

func (TabularLayout) DecodeRow(row []uint64, _ uint32, sink TripleSink) {
	sink.Add(uint32(row[0]), uint32(row[1]), uint32(row[2]))
}

func (TabularLayout) ShardingFactor(strategy ChunkingStrategy) int {
	return ShardRows(strategy)
}
