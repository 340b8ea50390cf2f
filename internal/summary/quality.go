package summary

import (
	"math"

	"github.com/wesleyorama2/seqsum/internal/metrics"
	"github.com/wesleyorama2/seqsum/internal/run"
	"github.com/wesleyorama2/seqsum/pkg/metricid"
)

// qualityCell accumulates the calls of one read and lane.
type qualityCell struct {
	aboveQ30 uint64
	total    uint64
	metrics  int
	tiles    map[int]struct{}
}

// SummarizeCollapsedQualityMetrics fills percent >= Q30, yield and projected
// yield for every lane and read, and the non-index and total roll-ups.
//
// The last cycle of each read is excluded. Projected yield extrapolates the
// observed calls to every usable cycle of every tile seen on the lane. Tiles
// are counted separately for each read and lane, never once for the whole
// run, so one lane's tiles do not scale another lane's projection. A
// lane with no data for a read extrapolates from the per-cycle projected
// yield of earlier reads on the same lane, or reports 0 when there is none.
func SummarizeCollapsedQualityMetrics(store *metrics.Store[metrics.QCollapsedRecord],
	cycleToRead run.CycleReadMap,
	_ metricid.NamingMethod,
	summary *RunSummary) error {
	if store.Empty() || summary.Empty() {
		return nil
	}

	cells := make([][]qualityCell, summary.Size())
	for r := range cells {
		cells[r] = make([]qualityCell, summary.LaneCount)
	}
	for _, rec := range store.Records() {
		rc, ok := cycleToRead.Lookup(rec.Cycle())
		if !ok || rc.Number == 0 || rc.IsLastCycle {
			continue
		}
		if rc.Number > summary.Size() {
			return readOutOfBounds(rc.Number, rec.Lane(), rec.Tile(), summary.Size())
		}
		lane, err := checkLane(rec.Lane(), rec.Tile(), summary.LaneCount)
		if err != nil {
			return err
		}
		cell := &cells[rc.Number-1][lane]
		cell.aboveQ30 += rec.Q30
		cell.total += rec.Total
		cell.metrics++
		if cell.tiles == nil {
			cell.tiles = make(map[int]struct{})
		}
		cell.tiles[rec.Tile()] = struct{}{}
	}

	// Per-lane projected calls and usable cycles of the reads seen so far.
	priorCalls := make([]float64, summary.LaneCount)
	priorCycles := make([]int, summary.LaneCount)

	var aboveQ30, total, aboveQ30NonIndex, totalNonIndex uint64
	var yield, projected, yieldNonIndex, projectedNonIndex float64
	for r := range summary.Reads {
		read := &summary.Reads[r]
		useable := read.Read.UseableCycles()
		var aboveQ30ByRead, totalByRead uint64
		var yieldByRead, projectedByRead float64
		for l := range read.Lanes {
			lane := &read.Lanes[l]
			cell := cells[r][l]
			var projectedCalls float64
			if cell.metrics > 0 {
				aboveQ30ByRead += cell.aboveQ30
				totalByRead += cell.total
				lane.PercentGtQ30 = 100 * divide(float64(cell.aboveQ30), float64(cell.total))
				lane.YieldG = float64(cell.total) / 1e9
				factor := float64(useable*len(cell.tiles)) / float64(cell.metrics)
				projectedCalls = math.Floor(float64(cell.total)*factor + 0.5)
			} else if priorCycles[l] > 0 {
				projectedCalls = math.Floor(priorCalls[l]/float64(priorCycles[l])*float64(useable) + 0.5)
			}
			lane.ProjectedYieldG = projectedCalls / 1e9
			priorCalls[l] += projectedCalls
			priorCycles[l] += useable
			yieldByRead += lane.YieldG
			projectedByRead += lane.ProjectedYieldG
		}
		read.Summary.YieldG = yieldByRead
		read.Summary.ProjectedYieldG = projectedByRead
		read.Summary.PercentGtQ30 = 100 * divide(float64(aboveQ30ByRead), float64(totalByRead))

		aboveQ30 += aboveQ30ByRead
		total += totalByRead
		yield += yieldByRead
		projected += projectedByRead
		if !read.Read.IsIndex {
			aboveQ30NonIndex += aboveQ30ByRead
			totalNonIndex += totalByRead
			yieldNonIndex += yieldByRead
			projectedNonIndex += projectedByRead
		}
	}
	summary.NonIndex.YieldG = yieldNonIndex
	summary.NonIndex.ProjectedYieldG = projectedNonIndex
	summary.NonIndex.PercentGtQ30 = 100 * divide(float64(aboveQ30NonIndex), float64(totalNonIndex))
	summary.Total.YieldG = yield
	summary.Total.ProjectedYieldG = projected
	summary.Total.PercentGtQ30 = 100 * divide(float64(aboveQ30), float64(total))
	return nil
}
