package layout

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
)

// GzipLevel is the inner bytes-codec compression level mandated by
// §4.4/§6.2. No store library in the dependency pack provides a
// zarr-style codec chain, so the sharding-outer/gzip-inner codec is
// implemented directly on compress/gzip + encoding/binary (see
// DESIGN.md).
const GzipLevel = gzip.BestCompression - 4 // 9 - 4 == 5; level 5 has no stdlib constant

// EncodeChunk serializes rows (each of length rowWidth, dtype u64) as
// one gzip-compressed shard: a single inner chunk if len(rows) == 1,
// or a sharding codec packaging len(rows) inner chunks otherwise. The
// wire format is the same either way (rows concatenated, gzipped);
// the sharding/chunk distinction is in how many rows the caller
// chooses to pack per call, matching §4.5's "shard fetch decompresses
// k rows" requirement.
func EncodeChunk(rows [][]uint64, rowWidth int) ([]byte, error) {
	var raw bytes.Buffer
	for _, row := range rows {
		if len(row) != rowWidth {
			return nil, fmt.Errorf("layout: row width %d != expected %d", len(row), rowWidth)
		}
		for _, v := range row {
			if err := binary.Write(&raw, binary.LittleEndian, v); err != nil {
				return nil, err
			}
		}
	}

	var out bytes.Buffer
	gw, err := gzip.NewWriterLevel(&out, GzipLevel)
	if err != nil {
		return nil, fmt.Errorf("layout: invalid gzip level %d: %w", GzipLevel, err)
	}
	if _, err := gw.Write(raw.Bytes()); err != nil {
		return nil, err
	}
	if err := gw.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// DecodeChunk reverses EncodeChunk, returning one row of rowWidth u64
// values per decompressed rowWidth*8 bytes.
func DecodeChunk(data []byte, rowWidth int) ([][]uint64, error) {
	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("layout: opening gzip chunk: %w", err)
	}
	defer gr.Close()

	raw, err := io.ReadAll(gr)
	if err != nil {
		return nil, fmt.Errorf("layout: reading gzip chunk: %w", err)
	}

	rowBytes := rowWidth * 8
	if rowBytes == 0 || len(raw)%rowBytes != 0 {
		return nil, fmt.Errorf("layout: chunk of %d bytes is not a multiple of row width %d", len(raw), rowWidth)
	}

	rows := make([][]uint64, len(raw)/rowBytes)
	for i := range rows {
		row := make([]uint64, rowWidth)
		for j := 0; j < rowWidth; j++ {
			off := i*rowBytes + j*8
			row[j] = binary.LittleEndian.Uint64(raw[off : off+8])
		}
		rows[i] = row
	}
	return rows, nil
}
