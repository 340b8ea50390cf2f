package summary

import (
	"math"

	"github.com/wesleyorama2/seqsum/internal/metrics"
	"github.com/wesleyorama2/seqsum/internal/run"
	"github.com/wesleyorama2/seqsum/pkg/metricid"
)

// unboundedWindow disables the cycle-window gate.
const unboundedWindow = math.MaxInt

// errorWindow pairs a cycle window with the statistic it fills.
type errorWindow struct {
	maxCycle int
	stat     func(*StatSummary) *StatValue
}

var errorWindows = []errorWindow{
	{35, func(s *StatSummary) *StatValue { return &s.ErrorRate35 }},
	{50, func(s *StatSummary) *StatValue { return &s.ErrorRate50 }},
	{75, func(s *StatSummary) *StatValue { return &s.ErrorRate75 }},
	{100, func(s *StatSummary) *StatValue { return &s.ErrorRate100 }},
	{unboundedWindow, func(s *StatSummary) *StatValue { return &s.ErrorRate }},
}

// tileErrorKey identifies one tile within one read.
type tileErrorKey struct {
	read int
	tile metricid.ID
}

type tileError struct {
	read     int
	lane     int
	surface  int
	sum      float64
	count    int
	maxCycle int // highest cycle within read observed
}

// SummarizeErrorMetrics fills the error-rate statistics of every lane and
// surface for the 35, 50, 75, 100 and unbounded cycle windows, and the
// read, non-index and total error rates.
//
// Within a window a tile contributes the average of its error rates over the
// usable cycles of the read up to the window size. A bounded window only
// counts tiles whose data reached the end of the window.
func SummarizeErrorMetrics(store *metrics.Store[metrics.ErrorRecord],
	cycleToRead run.CycleReadMap,
	method metricid.NamingMethod,
	summary *RunSummary,
	skipMedian bool) error {
	if store.Empty() || summary.Empty() {
		return nil
	}

	laneBucket := NewBucket(summary.Size(), summary.LaneCount, 1)
	surfaceBucket := NewBucket(summary.Size(), summary.LaneCount, summary.SurfaceCount)
	tileCount := maxTilesPerLane(store)
	laneBucket.Reserve(tileCount)
	surfaceBucket.Reserve(tileCount)

	for _, window := range errorWindows {
		tiles, err := cacheErrorByTile(store, cycleToRead, window.maxCycle, method, summary)
		if err != nil {
			return err
		}
		laneBucket.Clear()
		surfaceBucket.Clear()
		for _, te := range tiles {
			if window.maxCycle != unboundedWindow && te.maxCycle < window.maxCycle {
				continue
			}
			avg := divide(te.sum, float64(te.count))
			laneBucket.Push(te.read, te.lane, 0, avg)
			if sf, ok := surfaceIndex(te.surface, summary.SurfaceCount); ok {
				surfaceBucket.Push(te.read, te.lane, sf, avg)
			}
		}

		for r := range summary.Reads {
			for l := range summary.Reads[r].Lanes {
				lane := &summary.Reads[r].Lanes[l]
				*window.stat(&lane.StatSummary) = Summarize(laneBucket.At(r, l, 0), skipMedian)
				for sf := range lane.Surfaces {
					*window.stat(&lane.Surfaces[sf].StatSummary) = Summarize(surfaceBucket.At(r, l, sf), skipMedian)
				}
			}
		}

		if window.maxCycle == unboundedWindow {
			rollUpErrorRate(laneBucket, summary)
		}
	}
	return nil
}

// cacheErrorByTile accumulates error rates per tile and read for one window,
// preserving first-seen order.
func cacheErrorByTile(store *metrics.Store[metrics.ErrorRecord],
	cycleToRead run.CycleReadMap,
	maxCycle int,
	method metricid.NamingMethod,
	summary *RunSummary) ([]*tileError, error) {
	index := make(map[tileErrorKey]int)
	var tiles []*tileError
	for _, rec := range store.Records() {
		rc, ok := cycleToRead.Lookup(rec.Cycle())
		if !ok {
			return nil, cycleOutOfBounds(rec.Cycle(), rec.Lane(), rec.Tile(), len(cycleToRead))
		}
		if rc.Number == 0 || rc.IsLastCycle || rc.CycleWithinRead > maxCycle {
			continue
		}
		if rc.Number > summary.Size() {
			return nil, readOutOfBounds(rc.Number, rec.Lane(), rec.Tile(), summary.Size())
		}
		lane, err := checkLane(rec.Lane(), rec.Tile(), summary.LaneCount)
		if err != nil {
			return nil, err
		}
		id, err := metricid.ForTile(rec.Lane(), rec.Tile())
		if err != nil {
			return nil, err
		}
		key := tileErrorKey{read: rc.Number - 1, tile: id}
		pos, seen := index[key]
		if !seen {
			pos = len(tiles)
			index[key] = pos
			tiles = append(tiles, &tileError{
				read:    rc.Number - 1,
				lane:    lane,
				surface: metricid.Surface(rec.Tile(), method),
			})
		}
		te := tiles[pos]
		te.sum += rec.ErrorRate
		te.count++
		if rc.CycleWithinRead > te.maxCycle {
			te.maxCycle = rc.CycleWithinRead
		}
	}
	return tiles, nil
}

// rollUpErrorRate sets the read, non-index and total error rates from the
// per-tile averages of the unbounded window.
func rollUpErrorRate(bucket *Bucket, summary *RunSummary) {
	var total, totalNonIndex float64
	var count, countNonIndex int
	for r := range summary.Reads {
		var byRead float64
		var countByRead int
		for l := range summary.Reads[r].Lanes {
			values := bucket.At(r, l, 0)
			byRead += sum(values)
			countByRead += len(values)
		}
		if countByRead > 0 {
			summary.Reads[r].Summary.ErrorRate = divide(byRead, float64(countByRead))
		}
		total += byRead
		count += countByRead
		if !summary.Reads[r].Read.IsIndex {
			totalNonIndex += byRead
			countNonIndex += countByRead
		}
	}
	summary.NonIndex.ErrorRate = divide(totalNonIndex, float64(countNonIndex))
	summary.Total.ErrorRate = divide(total, float64(count))
}
