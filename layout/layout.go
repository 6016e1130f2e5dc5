package layout

import "github.com/weso/remotehdt/refsystem"

// Kind identifies a concrete Layout implementation, used to pick the
// arm at runtime (§9: "implement Layout as a sealed variant... switch
// at runtime"). The Storage engine persists it in array metadata as
// the "matrix"/"tabular" tag of store.ArrayMeta.LayoutKind.
type Kind int

const (
	Matrix Kind = iota
	Tabular
)

func (k Kind) String() string {
	if k == Tabular {
		return "Tabular"
	}
	return "Matrix"
}

// DataTypeU64 is the only element dtype either current layout uses.
const DataTypeU64 = "uint64"

// Layout is the abstract contract shared by MatrixLayout and
// TabularLayout (§4.4).
type Layout interface {
	Kind() Kind
	// Shape returns the array's 2-D shape given axis sizes and the
	// total distinct-triple count.
	Shape(firstSize, thirdSize, graphSize int) [2]int
	DataType() string
	// RowWidth is the fixed length of one encoded row (second
	// coordinate of chunk_shape).
	RowWidth(thirdSize int) int
	FillValue() uint64
	DimensionNames(rs refsystem.ReferenceSystem) []string
	// Rows flattens adj into the row sequence this layout persists,
	// in axis-0 order.
	Rows(adj *Adjacency, thirdSize int) [][]uint64
	// DecodeRow appends the triplets implied by one decoded row into
	// sink. firstID is the row's global row index (the shard's first
	// row plus the row's position within the shard); MatrixLayout uses
	// it as the first-axis ID, TabularLayout reads that ID from the row.
	DecodeRow(row []uint64, firstID uint32, sink TripleSink)
	// ShardingFactor is the heuristic number of inner chunks per
	// shard for this layout under strategy (§4.4, §4.5).
	ShardingFactor(strategy ChunkingStrategy) int
}

// TripleSink receives (first, second, third) axis-ID triplets
// decoded from on-disk rows, e.g. a sparse matrix builder.
type TripleSink interface {
	Add(first, second, third uint32)
}

// New returns the Layout for kind.
func New(kind Kind) Layout {
	if kind == Tabular {
		return TabularLayout{}
	}
	return MatrixLayout{}
}
