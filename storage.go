package remotehdt

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"sync"

	"github.com/RoaringBitmap/roaring"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	hdtsparse "github.com/james-bowman/sparse"

	"github.com/weso/remotehdt/dictionary"
	"github.com/weso/remotehdt/dimension"
	"github.com/weso/remotehdt/layout"
	"github.com/weso/remotehdt/rdf"
	"github.com/weso/remotehdt/refsystem"
	"github.com/weso/remotehdt/store"
)

// ArrayName is the default name of the single 2-D array persisted
// under the group node (§6.2).
const ArrayName = "RemoteHDT"

// GroupPath is the fixed path of the group node (§6.2).
const GroupPath = "/group"

// ArrayPath is the fixed path of the array node under the group.
const ArrayPath = GroupPath + "/" + ArrayName

// LoadMode selects how Load materializes the array (§4.7).
type LoadMode int

const (
	// Zarr keeps only a lazy array handle; queries retrieve per chunk.
	Zarr LoadMode = iota
	// Sparse eagerly decodes every shard into an in-memory CSC matrix.
	Sparse
)

// Storage is the end-to-end orchestrator: it owns the backend, the
// reconstructed Dictionary/ReferenceSystem/Dimensionality, and either
// a lazy array handle (Zarr) or an eagerly materialized sparse matrix
// (Sparse).
type Storage struct {
	backend store.Backend
	dict    *dictionary.Dictionary
	rs      refsystem.ReferenceSystem
	lay     layout.Layout
	dim     dimension.Dimensionality
	mode    LoadMode

	shardRows int
	totalRows int

	// presence marks which first-axis indices have at least one edge,
	// so a first-axis query on a known-empty row can return without a
	// backend round-trip. Nil when the artifact predates this field.
	presence *roaring.Bitmap

	// sparse is the eagerly materialized Sparse-mode matrix. Kept as
	// the gonum mat.Matrix interface rather than the concrete *sparse.CSC
	// type, since every consumer only needs Dims/At.
	sparse mat.Matrix

	log *logrus.Entry
}

// Serialize parses the RDF graph at rdfPath and writes it to backend
// as a chunked array under the given reference system, layout and
// chunking strategy (§4.6).
func Serialize(backend store.Backend, rdfPath string, rs refsystem.ReferenceSystem, kind layout.Kind, strategy layout.ChunkingStrategy) (*Storage, error) {
	log := logrus.WithFields(logrus.Fields{"op": "serialize", "rdf_path": rdfPath, "reference_system": rs.String()})

	if backend.ReadOnly() {
		return nil, store.ReadOnlyBackend
	}

	if err := backend.CreateGroup(GroupPath, store.GroupMeta{}); err != nil {
		return nil, errors.Wrap(err, "remotehdt: creating group")
	}

	format, err := rdf.FormatFromPath(rdfPath)
	if err != nil {
		return nil, err
	}

	subjects := make(map[string]struct{})
	predicates := make(map[string]struct{})
	objects := make(map[string]struct{})
	if err := firstPass(rdfPath, format, subjects, predicates, objects); err != nil {
		return nil, err
	}

	dict, err := dictionary.Build(subjects, predicates, objects)
	if err != nil {
		return nil, errors.Wrap(err, "remotehdt: building dictionary")
	}
	log.WithFields(logrus.Fields{
		"subjects": dict.Subjects.Len(), "predicates": dict.Predicates.Len(), "objects": dict.Objects.Len(),
	}).Info("dictionary built")

	axes := rs.Axes()
	adj := layout.NewAdjacency(setFor(dict, axes[0]).Len(), setFor(dict, axes[2]).Len())
	if err := secondPass(rdfPath, format, dict, axes, adj); err != nil {
		return nil, err
	}
	if adj.Size() == 0 {
		return nil, EmptyGraph
	}

	dim := dimension.FromDictionary(dict, rs, adj.Size())
	lay := layout.New(kind)

	shape := lay.Shape(dim.First, dim.Third, dim.GraphSize)
	rowWidth := lay.RowWidth(dim.Third)
	shardRows := lay.ShardingFactor(strategy)

	attrs := dict.ToAttributes(rs.String())
	attrsJSON, err := json.Marshal(attrs)
	if err != nil {
		return nil, errors.Wrap(err, "remotehdt: marshaling attributes")
	}

	presence := presenceBitmap(adj)
	presenceBytes, err := presence.ToBytes()
	if err != nil {
		return nil, errors.Wrap(err, "remotehdt: serializing presence bitmap")
	}

	meta := store.ArrayMeta{
		Shape:          shape[:],
		DataType:       lay.DataType(),
		ChunkShape:     []int{shardRows, rowWidth},
		FillValue:      lay.FillValue(),
		DimensionNames: lay.DimensionNames(rs),
		Codecs:         store.CodecChain{ShardingFactor: shardRows, GzipLevel: layout.GzipLevel},
		Attributes:     attrsJSON,
		LayoutKind:     kindTag(kind),
		Presence:       presenceBytes,
	}
	if err := backend.CreateArray(ArrayPath, meta); err != nil {
		return nil, errors.Wrap(err, "remotehdt: creating array")
	}

	rows := lay.Rows(adj, dim.Third)
	if err := writeShards(backend, rows, rowWidth, shardRows); err != nil {
		return nil, err
	}
	log.WithField("rows", len(rows)).Info("serialize complete")

	return &Storage{
		backend:   backend,
		dict:      dict,
		rs:        rs,
		lay:       lay,
		dim:       dim,
		mode:      Zarr,
		shardRows: shardRows,
		totalRows: len(rows),
		presence:  presence,
		log:       log,
	}, nil
}

// presenceBitmap marks every first-axis index that has at least one
// edge, so a query against a known-empty row can skip the backend.
func presenceBitmap(adj *layout.Adjacency) *roaring.Bitmap {
	bm := roaring.New()
	for i := 0; i < adj.Len(); i++ {
		if len(adj.Edges(i)) > 0 {
			bm.Add(uint32(i))
		}
	}
	return bm
}

func writeShards(backend store.Backend, rows [][]uint64, rowWidth, shardRows int) error {
	shardCounter := 0
	i := 0
	for ; i+shardRows <= len(rows); i += shardRows {
		data, err := layout.EncodeChunk(rows[i:i+shardRows], rowWidth)
		if err != nil {
			return errors.Wrap(err, "remotehdt: encoding shard")
		}
		if err := backend.StoreChunk(ArrayPath, shardCounter, data); err != nil {
			return errors.Wrap(err, "remotehdt: storing shard")
		}
		shardCounter++
	}
	if remainder := len(rows) - i; remainder > 0 {
		data, err := layout.EncodeChunk(rows[i:], rowWidth)
		if err != nil {
			return errors.Wrap(err, "remotehdt: encoding trailing subset")
		}
		if err := backend.StoreSubset(ArrayPath, shardCounter*shardRows, data); err != nil {
			return errors.Wrap(err, "remotehdt: storing trailing subset")
		}
	}
	return nil
}

// Load opens an already-serialized artifact through backend (§4.7).
func Load(backend store.Backend, mode LoadMode) (*Storage, error) {
	log := logrus.WithField("op", "load")

	if _, err := backend.OpenGroup(GroupPath); err != nil {
		return nil, err
	}
	meta, err := backend.OpenArray(ArrayPath)
	if err != nil {
		return nil, err
	}

	var attrs dictionary.Attributes
	if err := json.Unmarshal(meta.Attributes, &attrs); err != nil {
		return nil, errors.Wrap(err, "remotehdt: unmarshaling attributes")
	}
	dict, rsTag, err := dictionary.FromAttributes(attrs)
	if err != nil {
		return nil, err
	}
	rs, err := refsystem.Parse(rsTag)
	if err != nil {
		return nil, err
	}

	kind := layout.Matrix
	if meta.LayoutKind == kindTag(layout.Tabular) {
		kind = layout.Tabular
	}
	lay := layout.New(kind)

	graphSize := dimension.GraphSizeUnknown
	if kind == layout.Tabular && len(meta.Shape) > 0 {
		graphSize = meta.Shape[0]
	}
	dim := dimension.FromDictionary(dict, rs, graphSize)

	if len(meta.Shape) == 0 {
		return nil, EmptyArray
	}
	totalRows := meta.Shape[0]
	shardRows := meta.Codecs.ShardingFactor
	if shardRows < 1 {
		shardRows = 1
	}

	var presence *roaring.Bitmap
	if len(meta.Presence) > 0 {
		presence = roaring.New()
		if _, err := presence.ReadFrom(bytes.NewReader(meta.Presence)); err != nil {
			return nil, errors.Wrap(err, "remotehdt: reading presence bitmap")
		}
	}

	s := &Storage{
		backend:   backend,
		dict:      dict,
		rs:        rs,
		lay:       lay,
		dim:       dim,
		mode:      mode,
		shardRows: shardRows,
		totalRows: totalRows,
		presence:  presence,
		log:       log,
	}

	if mode == Sparse {
		if err := s.buildSparse(); err != nil {
			return nil, err
		}
	}

	log.WithFields(logrus.Fields{"mode": mode, "rows": totalRows}).Info("load complete")
	return s, nil
}

func (s *Storage) rowWidth() int { return s.lay.RowWidth(s.dim.Third) }

// retrieveRow decodes and returns the row at the given global row index.
func (s *Storage) retrieveRow(rowIndex int) ([]uint64, error) {
	rows, err := s.retrieveRows(rowIndex, rowIndex+1)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, Operation
	}
	return rows[0], nil
}

// retrieveRows decodes every shard overlapping [from, to) and returns
// the rows in that global range, in order.
func (s *Storage) retrieveRows(from, to int) ([][]uint64, error) {
	if to > s.totalRows {
		to = s.totalRows
	}
	if from >= to {
		return nil, nil
	}

	rowWidth := s.rowWidth()
	fullShards := s.totalRows / s.shardRows
	var out [][]uint64

	firstShard := from / s.shardRows
	lastShard := (to - 1) / s.shardRows
	for shard := firstShard; shard <= lastShard; shard++ {
		var data []byte
		var err error
		var base int
		if shard < fullShards {
			data, err = s.backend.RetrieveChunk(ArrayPath, shard)
			base = shard * s.shardRows
		} else {
			base = fullShards * s.shardRows
			data, err = s.backend.RetrieveSubset(ArrayPath, base)
		}
		if err != nil {
			return nil, errors.Wrap(err, "remotehdt: retrieving shard")
		}
		rows, err := layout.DecodeChunk(data, rowWidth)
		if err != nil {
			return nil, errors.Wrap(err, "remotehdt: decoding shard")
		}
		for i, row := range rows {
			global := base + i
			if global >= from && global < to {
				out = append(out, row)
			}
		}
	}
	return out, nil
}

func setFor(dict *dictionary.Dictionary, p refsystem.Position) *dictionary.Set {
	switch p {
	case refsystem.Subject:
		return dict.Subjects
	case refsystem.Predicate:
		return dict.Predicates
	default:
		return dict.Objects
	}
}

func termLexical(tr rdf.Triple, p refsystem.Position) string {
	switch p {
	case refsystem.Subject:
		return rdf.Lexical(tr.Subj)
	case refsystem.Predicate:
		return rdf.Lexical(tr.Pred)
	default:
		return rdf.Lexical(tr.Obj)
	}
}

func kindTag(k layout.Kind) string {
	if k == layout.Tabular {
		return "tabular"
	}
	return "matrix"
}

func firstPass(rdfPath string, format rdf.Format, subjects, predicates, objects map[string]struct{}) error {
	f, err := os.Open(rdfPath)
	if err != nil {
		return RdfParse
	}
	defer f.Close()

	d := rdf.NewTripleDecoder(format, f, "")
	for {
		tr, err := d.Decode()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			continue // individual parse errors are skipped, not fatal (§6.4)
		}
		subjects[rdf.Lexical(tr.Subj)] = struct{}{}
		predicates[rdf.Lexical(tr.Pred)] = struct{}{}
		objects[rdf.Lexical(tr.Obj)] = struct{}{}
	}
}

func secondPass(rdfPath string, format rdf.Format, dict *dictionary.Dictionary, axes [3]refsystem.Position, adj *layout.Adjacency) error {
	f, err := os.Open(rdfPath)
	if err != nil {
		return RdfParse
	}
	defer f.Close()

	d := rdf.NewTripleDecoder(format, f, "")
	for {
		tr, err := d.Decode()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			continue
		}
		first := setFor(dict, axes[0]).LocateUnchecked(termLexical(tr, axes[0]))
		second := setFor(dict, axes[1]).LocateUnchecked(termLexical(tr, axes[1]))
		third := setFor(dict, axes[2]).LocateUnchecked(termLexical(tr, axes[2]))
		adj.Add(first, second, third)
	}
}

// buildSparse decodes every shard (in parallel, per §5) and inserts
// each row's triplets into a single shared DOK builder guarded by one
// mutex, then converts it to CSC.
func (s *Storage) buildSparse() error {
	rowWidth := s.rowWidth()
	fullShards := s.totalRows / s.shardRows
	shardCount := fullShards
	if s.totalRows%s.shardRows != 0 {
		shardCount++
	}
	if shardCount == 0 {
		return EmptyArray
	}

	dok := hdtsparse.NewDOK(s.dim.First, s.dim.Third)
	var mu sync.Mutex
	var wg sync.WaitGroup
	errCh := make(chan error, shardCount)

	for shard := 0; shard < shardCount; shard++ {
		shard := shard
		wg.Add(1)
		go func() {
			defer wg.Done()
			var data []byte
			var err error
			var base int
			if shard < fullShards {
				data, err = s.backend.RetrieveChunk(ArrayPath, shard)
				base = shard * s.shardRows
			} else {
				base = fullShards * s.shardRows
				data, err = s.backend.RetrieveSubset(ArrayPath, base)
			}
			if err != nil {
				errCh <- errors.Wrap(err, "remotehdt: retrieving shard")
				return
			}
			rows, err := layout.DecodeChunk(data, rowWidth)
			if err != nil {
				errCh <- errors.Wrap(err, "remotehdt: decoding shard")
				return
			}

			sink := &dokSink{dok: dok, mu: &mu}
			for i, row := range rows {
				s.lay.DecodeRow(row, uint32(base+i), sink)
			}
		}()
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			return err
		}
	}

	s.sparse = dok.ToCSC()
	return nil
}

// dokSink adapts a *sparse.DOK (guarded by mu) to layout.TripleSink.
type dokSink struct {
	dok *hdtsparse.DOK
	mu  *sync.Mutex
}

func (d *dokSink) Add(first, second, third uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if v := float64(second); v > d.dok.At(int(first), int(third)) {
		d.dok.Set(int(first), int(third), v)
	}
}

// Close releases the backend's held resources.
func (s *Storage) Close() error { return s.backend.Close() }
