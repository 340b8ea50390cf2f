package summary

import "github.com/wesleyorama2/seqsum/internal/metrics"

// Bucket stages values by read, lane and surface before they are
// summarized. A bucket created for fewer than two surfaces has a single
// surface slot.
type Bucket struct {
	cells        [][]float64
	readCount    int
	laneCount    int
	surfaceCount int
}

// NewBucket creates an empty bucket.
func NewBucket(readCount, laneCount, surfaceCount int) *Bucket {
	if surfaceCount < 1 {
		surfaceCount = 1
	}
	return &Bucket{
		cells:        make([][]float64, readCount*laneCount*surfaceCount),
		readCount:    readCount,
		laneCount:    laneCount,
		surfaceCount: surfaceCount,
	}
}

func (b *Bucket) offset(read, lane, surface int) int {
	return (read*b.laneCount+lane)*b.surfaceCount + surface
}

// Reserve grows every cell to hold at least n values without reallocating.
func (b *Bucket) Reserve(n int) {
	for i := range b.cells {
		if cap(b.cells[i]) < n {
			grown := make([]float64, len(b.cells[i]), n)
			copy(grown, b.cells[i])
			b.cells[i] = grown
		}
	}
}

// Push appends a value to a cell. Indices are 0-based.
func (b *Bucket) Push(read, lane, surface int, value float64) {
	o := b.offset(read, lane, surface)
	b.cells[o] = append(b.cells[o], value)
}

// At returns the values of a cell. Indices are 0-based.
func (b *Bucket) At(read, lane, surface int) []float64 {
	return b.cells[b.offset(read, lane, surface)]
}

// Clear empties every cell, keeping capacity for reuse.
func (b *Bucket) Clear() {
	for i := range b.cells {
		b.cells[i] = b.cells[i][:0]
	}
}

// ReadCount returns the number of read slots.
func (b *Bucket) ReadCount() int { return b.readCount }

// LaneCount returns the number of lane slots.
func (b *Bucket) LaneCount() int { return b.laneCount }

// SurfaceCount returns the number of surface slots.
func (b *Bucket) SurfaceCount() int { return b.surfaceCount }

// maxTilesPerLane returns the largest number of distinct tiles any lane of
// store holds, which bounds the values pushed to one cell when each tile
// contributes at most once per read.
func maxTilesPerLane[T metrics.Metric](store *metrics.Store[T]) int {
	n := 0
	for _, lane := range store.Lanes() {
		n = max(n, len(store.TileNumbersForLane(lane)))
	}
	return n
}
