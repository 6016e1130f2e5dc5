package layout

import (
	"reflect"
	"testing"
	"testing/quick"

	"github.com/weso/remotehdt/refsystem"
)

type collectSink struct {
	triples [][3]uint32
}

func (c *collectSink) Add(first, second, third uint32) {
	c.triples = append(c.triples, [3]uint32{first, second, third})
}

func TestMatrixRowsAndDecode(t *testing.T) {
	adj := NewAdjacency(2, 3)
	adj.Add(0, 2, 1)
	adj.Add(0, 4, 2)
	adj.Add(1, 7, 0)

	m := MatrixLayout{}
	rows := m.Rows(adj, 3)
	if len(rows) != 2 {
		t.Fatalf("Rows() => %d rows; want 2", len(rows))
	}
	want0 := []uint64{0, 2, 4}
	if !reflect.DeepEqual(rows[0], want0) {
		t.Errorf("row 0 => %v; want %v", rows[0], want0)
	}

	sink := &collectSink{}
	m.DecodeRow(rows[0], 0, sink)
	m.DecodeRow(rows[1], 1, sink)
	want := [][3]uint32{{0, 2, 1}, {0, 4, 2}, {1, 7, 0}}
	if !reflect.DeepEqual(sink.triples, want) {
		t.Errorf("decoded => %v; want %v", sink.triples, want)
	}
}

func TestMatrixMultiEdgeKeepsMax(t *testing.T) {
	adj := NewAdjacency(1, 1)
	adj.Add(0, 2, 0)
	adj.Add(0, 9, 0)
	adj.Add(0, 1, 0)

	rows := MatrixLayout{}.Rows(adj, 1)
	if rows[0][0] != 9 {
		t.Errorf("row[0] => %d; want 9 (max of 2,9,1)", rows[0][0])
	}
}

func TestTabularRowsAndDecode(t *testing.T) {
	adj := NewAdjacency(2, 2)
	adj.Add(0, 2, 1)
	adj.Add(1, 7, 0)

	tab := TabularLayout{}
	rows := tab.Rows(adj, 0)
	if len(rows) != 2 {
		t.Fatalf("Rows() => %d; want 2", len(rows))
	}

	sink := &collectSink{}
	for _, row := range rows {
		tab.DecodeRow(row, 0, sink)
	}
	want := [][3]uint32{{0, 2, 1}, {1, 7, 0}}
	if !reflect.DeepEqual(sink.triples, want) {
		t.Errorf("decoded => %v; want %v", sink.triples, want)
	}
}

func TestShapeAndDimensionNames(t *testing.T) {
	m := New(Matrix)
	if got := m.Shape(3, 5, 99); got != [2]int{3, 5} {
		t.Errorf("Matrix.Shape => %v; want [3 5]", got)
	}
	if got := m.DimensionNames(refsystem.SPO); !reflect.DeepEqual(got, []string{"Subjects", "Objects"}) {
		t.Errorf("Matrix.DimensionNames(SPO) => %v", got)
	}

	tab := New(Tabular)
	if got := tab.Shape(3, 5, 7); got != [2]int{7, 3} {
		t.Errorf("Tabular.Shape => %v; want [7 3]", got)
	}
}

func TestShardRows(t *testing.T) {
	if ShardRows(ChunkStrategy) != 1 {
		t.Error("ShardRows(ChunkStrategy) != 1")
	}
	if ShardRows(BestStrategy) != bestShardSize {
		t.Error("ShardRows(BestStrategy) != bestShardSize")
	}
	if ShardRows(ShardingStrategy(32)) != 32 {
		t.Error("ShardRows(ShardingStrategy(32)) != 32")
	}
}

func TestEncodeDecodeChunkRoundtrip(t *testing.T) {
	f := func(a, b, c, d uint64) bool {
		rows := [][]uint64{{a, b}, {c, d}}
		data, err := EncodeChunk(rows, 2)
		if err != nil {
			t.Fatal(err)
		}
		got, err := DecodeChunk(data, 2)
		if err != nil {
			t.Fatal(err)
		}
		return reflect.DeepEqual(got, rows)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestEncodeChunkRejectsWrongWidth(t *testing.T) {
	_, err := EncodeChunk([][]uint64{{1, 2, 3}}, 2)
	if err == nil {
		t.Error("EncodeChunk with mismatched row width: expected error, got nil")
	}
}
