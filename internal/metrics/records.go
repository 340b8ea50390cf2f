package metrics

import (
	"math"
	"time"
)

// TileKey locates a record on a tile.
type TileKey struct {
	LaneNumber int
	TileNumber int
}

// Lane returns the 1-based lane.
func (k TileKey) Lane() int { return k.LaneNumber }

// Tile returns the tile number as written by the instrument.
func (k TileKey) Tile() int { return k.TileNumber }

// CycleKey locates a record on a tile at one cycle.
type CycleKey struct {
	TileKey
	CycleNumber int
}

// Cycle returns the 1-based absolute cycle.
func (k CycleKey) Cycle() int { return k.CycleNumber }

// ReadKey locates a record on a tile for one read.
type ReadKey struct {
	TileKey
	ReadNumber int
}

// Read returns the 1-based read number.
func (k ReadKey) Read() int { return k.ReadNumber }

// AtTile builds a TileKey.
func AtTile(lane, tile int) TileKey { return TileKey{LaneNumber: lane, TileNumber: tile} }

// AtCycle builds a CycleKey.
func AtCycle(lane, tile, cycle int) CycleKey {
	return CycleKey{TileKey: AtTile(lane, tile), CycleNumber: cycle}
}

// AtRead builds a ReadKey.
func AtRead(lane, tile, read int) ReadKey {
	return ReadKey{TileKey: AtTile(lane, tile), ReadNumber: read}
}

// TileReadRecord holds the per-read values reported on a tile.
// Missing values are NaN.
type TileReadRecord struct {
	Read              int
	PercentAligned    float64
	PercentPhasing    float64
	PercentPrephasing float64
}

// TileRecord holds cluster density and counts for a tile.
type TileRecord struct {
	TileKey
	ClusterDensity   float64 // clusters per mm^2
	ClusterDensityPF float64
	ClusterCount     float64
	ClusterCountPF   float64
	Reads            []TileReadRecord
}

// PercentPF returns 100 * pass-filter clusters / clusters, NaN when no
// clusters were counted.
func (r TileRecord) PercentPF() float64 {
	if r.ClusterCount == 0 {
		return math.NaN()
	}
	return 100 * r.ClusterCountPF / r.ClusterCount
}

// Thousands converts a value to its _k unit.
func Thousands(v float64) float64 { return v / 1000 }

// ReadRecord returns the per-read values for read, if present.
func (r *TileRecord) ReadRecord(read int) (*TileReadRecord, bool) {
	for i := range r.Reads {
		if r.Reads[i].Read == read {
			return &r.Reads[i], true
		}
	}
	return nil, false
}

// UpdatePhasingIfMissing sets percent phasing and prephasing for read when
// they are not already known. A read without an entry gets a new one.
func (r *TileRecord) UpdatePhasingIfMissing(read int, phasing, prephasing float64) {
	rr, ok := r.ReadRecord(read)
	if !ok {
		r.Reads = append(r.Reads, TileReadRecord{
			Read:              read,
			PercentAligned:    math.NaN(),
			PercentPhasing:    phasing,
			PercentPrephasing: prephasing,
		})
		return
	}
	if math.IsNaN(rr.PercentPhasing) {
		rr.PercentPhasing = phasing
	}
	if math.IsNaN(rr.PercentPrephasing) {
		rr.PercentPrephasing = prephasing
	}
}

// ErrorRecord is the PhiX error rate of a tile at one cycle.
type ErrorRecord struct {
	CycleKey
	ErrorRate      float64 // percent
	MismatchCounts []uint32
}

// ExtractionRecord holds image-extraction results of a tile at one cycle.
type ExtractionRecord struct {
	CycleKey
	MaxIntensities []uint16 // one per channel, in instrument order
	FocusScores    []float64
	DateTime       time.Time
}

// MaxIntensity returns the 90th percentile intensity of a channel, 0 when
// the channel was not reported.
func (r ExtractionRecord) MaxIntensity(channel int) uint16 {
	if channel < 0 || channel >= len(r.MaxIntensities) {
		return 0
	}
	return r.MaxIntensities[channel]
}

// QRecord is the q-score histogram of a tile at one cycle.
type QRecord struct {
	CycleKey
	Histogram []uint32
}

// QCollapsedRecord is a q-score histogram reduced to the counts the summary
// needs.
type QCollapsedRecord struct {
	CycleKey
	Q20          uint64
	Q30          uint64
	Total        uint64
	MedianQScore int
}

// PercentOverQ30 returns 100 * Q30 / Total, NaN when nothing was called.
func (r QCollapsedRecord) PercentOverQ30() float64 {
	if r.Total == 0 {
		return math.NaN()
	}
	return 100 * float64(r.Q30) / float64(r.Total)
}

// PhasingRecord holds per-cycle phasing weights of a tile.
type PhasingRecord struct {
	CycleKey
	PhasingWeight    float64
	PrephasingWeight float64
}

// DynamicPhasingRecord holds the linear fit of phasing weights over a read.
type DynamicPhasingRecord struct {
	ReadKey
	PhasingSlope     float64
	PhasingOffset    float64
	PrephasingSlope  float64
	PrephasingOffset float64
}

// CorrectedIntensityRecord holds base-call counts of a tile at one cycle.
type CorrectedIntensityRecord struct {
	CycleKey
	CalledCounts  []uint32 // no-call followed by A, C, G, T
	SignalToNoise float64
}

// IndexEntry is the demultiplexed count for one index sequence.
type IndexEntry struct {
	Sequence      string
	SampleID      string
	SampleProject string
	Count         uint64
}

// IndexRecord holds the index counts of a tile for one read.
type IndexRecord struct {
	ReadKey
	Entries []IndexEntry
}

// ExtendedTileRecord holds patterned flow-cell occupancy of a tile.
type ExtendedTileRecord struct {
	TileKey
	ClusterCountOccupied float64
	PercentOccupied      float64
}

// ImageRecord holds contrast ranges of a tile image at one cycle.
type ImageRecord struct {
	CycleKey
	MinContrast []uint16
	MaxContrast []uint16
}

// SummaryRunRecord holds run-wide cluster totals reported by the instrument.
type SummaryRunRecord struct {
	RawClusterCount      float64
	OccupiedClusterCount float64
	PFClusterCount       float64
}

// PercentPF returns 100 * PF clusters / raw clusters.
func (r SummaryRunRecord) PercentPF() float64 {
	if r.RawClusterCount == 0 {
		return math.NaN()
	}
	return 100 * r.PFClusterCount / r.RawClusterCount
}

// PercentOccupied returns 100 * occupied clusters / raw clusters.
func (r SummaryRunRecord) PercentOccupied() float64 {
	if r.RawClusterCount == 0 {
		return math.NaN()
	}
	return 100 * r.OccupiedClusterCount / r.RawClusterCount
}
