package summary

import (
	"github.com/wesleyorama2/seqsum/internal/metrics"
	"github.com/wesleyorama2/seqsum/internal/run"
	"github.com/wesleyorama2/seqsum/pkg/metricid"
)

// SummarizeExtractionMetrics fills the first-cycle intensity of every lane
// and surface from the max intensity of channel on the first cycle of each
// read. The read, non-index and total values are the mean over all tiles.
func SummarizeExtractionMetrics(store *metrics.Store[metrics.ExtractionRecord],
	cycleToRead run.CycleReadMap,
	channel int,
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
	for _, rec := range store.Records() {
		rc, ok := cycleToRead.Lookup(rec.Cycle())
		if !ok {
			return cycleOutOfBounds(rec.Cycle(), rec.Lane(), rec.Tile(), len(cycleToRead))
		}
		if rc.Number == 0 || rc.CycleWithinRead != 1 {
			continue
		}
		if rc.Number > summary.Size() {
			return readOutOfBounds(rc.Number, rec.Lane(), rec.Tile(), summary.Size())
		}
		lane, err := checkLane(rec.Lane(), rec.Tile(), summary.LaneCount)
		if err != nil {
			return err
		}
		v := float64(rec.MaxIntensity(channel))
		laneBucket.Push(rc.Number-1, lane, 0, v)
		if sf, ok := surfaceIndex(metricid.Surface(rec.Tile(), method), summary.SurfaceCount); ok {
			surfaceBucket.Push(rc.Number-1, lane, sf, v)
		}
	}

	var intensity, intensityNonIndex float64
	var count, countNonIndex int
	for r := range summary.Reads {
		read := &summary.Reads[r]
		var intensityByRead float64
		var countByRead int
		for l := range read.Lanes {
			lane := &read.Lanes[l]
			values := laneBucket.At(r, l, 0)
			lane.FirstCycleIntensity = Summarize(values, skipMedian)
			for sf := range lane.Surfaces {
				lane.Surfaces[sf].FirstCycleIntensity = Summarize(surfaceBucket.At(r, l, sf), skipMedian)
			}
			intensityByRead += sum(values)
			countByRead += len(values)
		}
		read.Summary.FirstCycleIntensity = divide(intensityByRead, float64(countByRead))
		intensity += intensityByRead
		count += countByRead
		if !read.Read.IsIndex {
			intensityNonIndex += intensityByRead
			countNonIndex += countByRead
		}
	}
	summary.NonIndex.FirstCycleIntensity = divide(intensityNonIndex, float64(countNonIndex))
	summary.Total.FirstCycleIntensity = divide(intensity, float64(count))
	return nil
}
