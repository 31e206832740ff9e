package vectorindex

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sort"
)

type Metric int

// Values match the metric ids stored in the index file.
const (
	MetricInnerProduct Metric = 0
	MetricL2           Metric = 1
)

// FlatIndex is an exhaustive index over every stored vector, loaded from a
// faiss IndexFlatL2 / IndexFlatIP file. It is read-only after loading.
type FlatIndex struct {
	dim     int
	count   int
	metric  Metric
	vectors []float32
}

var _ Index = (*FlatIndex)(nil)

func NewFlatIndex(dim int, metric Metric, vectors []float32) (*FlatIndex, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("invalid dimension %d", dim)
	}
	if len(vectors)%dim != 0 {
		return nil, fmt.Errorf("vector data length %d is not a multiple of dimension %d", len(vectors), dim)
	}
	return &FlatIndex{
		dim:     dim,
		count:   len(vectors) / dim,
		metric:  metric,
		vectors: vectors,
	}, nil
}

// LoadFlatIndex reads a flat index file from disk.
func LoadFlatIndex(path string) (*FlatIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	defer f.Close()
	return ReadFlatIndex(bufio.NewReader(f))
}

type flatHeader struct {
	Dim       int32
	NTotal    int64
	Dummy1    int64
	Dummy2    int64
	IsTrained uint8
	Metric    int32
}

// ReadFlatIndex decodes the little-endian faiss flat layout:
// fourcc, header, optional metric arg, then a length-prefixed float32 block.
func ReadFlatIndex(r io.Reader) (*FlatIndex, error) {
	var fourcc [4]byte
	if _, err := io.ReadFull(r, fourcc[:]); err != nil {
		return nil, fmt.Errorf("read index type: %w", err)
	}

	var hdr flatHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("read index header: %w", err)
	}
	if hdr.Metric > 1 {
		var metricArg float32
		if err := binary.Read(r, binary.LittleEndian, &metricArg); err != nil {
			return nil, fmt.Errorf("read metric arg: %w", err)
		}
	}

	metric := Metric(hdr.Metric)
	switch string(fourcc[:]) {
	case "IxF2":
		metric = MetricL2
	case "IxFI":
		metric = MetricInnerProduct
	case "IxFl":
		if metric != MetricL2 && metric != MetricInnerProduct {
			return nil, fmt.Errorf("unsupported metric %d", hdr.Metric)
		}
	default:
		return nil, fmt.Errorf("unsupported index type %q", string(fourcc[:]))
	}

	var size uint64
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return nil, fmt.Errorf("read vector block size: %w", err)
	}
	if size != uint64(hdr.Dim)*uint64(hdr.NTotal) {
		return nil, fmt.Errorf("vector block holds %d floats, header expects %d x %d", size, hdr.NTotal, hdr.Dim)
	}

	vectors := make([]float32, size)
	if err := binary.Read(r, binary.LittleEndian, vectors); err != nil {
		return nil, fmt.Errorf("read vectors: %w", err)
	}

	return NewFlatIndex(int(hdr.Dim), metric, vectors)
}

func (x *FlatIndex) Dimension() int { return x.dim }

func (x *FlatIndex) Len() int { return x.count }

func (x *FlatIndex) Search(ctx context.Context, vector []float32, k int) ([]Hit, error) {
	if len(vector) != x.dim {
		return nil, fmt.Errorf("query dimension %d does not match index dimension %d", len(vector), x.dim)
	}
	if k <= 0 {
		k = 5
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hits := make([]Hit, x.count)
	for i := 0; i < x.count; i++ {
		row := x.vectors[i*x.dim : (i+1)*x.dim]
		hits[i] = Hit{Position: i, Distance: x.score(row, vector)}
	}

	sort.SliceStable(hits, func(a, b int) bool {
		if x.metric == MetricInnerProduct {
			return hits[a].Distance > hits[b].Distance
		}
		return hits[a].Distance < hits[b].Distance
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

func (x *FlatIndex) score(row, query []float32) float32 {
	var sum float32
	if x.metric == MetricInnerProduct {
		for i := range row {
			sum += row[i] * query[i]
		}
		return sum
	}
	for i := range row {
		d := row[i] - query[i]
		sum += d * d
	}
	return sum
}
