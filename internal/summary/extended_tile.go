package summary

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/wesleyorama2/seqsum/internal/metrics"
	"github.com/wesleyorama2/seqsum/pkg/metricid"
)

// SummarizeExtendedTileMetrics fills percent occupied for every lane and
// surface, and the run-level percent occupied as occupied clusters over all
// clusters. It reads the lane cluster counts, so it runs after
// SummarizeTileMetrics.
func SummarizeExtendedTileMetrics(store *metrics.Store[metrics.ExtendedTileRecord],
	method metricid.NamingMethod,
	summary *RunSummary,
	skipMedian bool) error {
	if store.Empty() || summary.Empty() {
		return nil
	}
	surfaceCount := max(summary.SurfaceCount, 1)

	byLane := make([][]metrics.ExtendedTileRecord, summary.LaneCount)
	byLaneSurface := make([][]metrics.ExtendedTileRecord, summary.LaneCount*surfaceCount)
	for _, rec := range store.Records() {
		lane, err := checkLane(rec.Lane(), rec.Tile(), summary.LaneCount)
		if err != nil {
			return err
		}
		byLane[lane] = append(byLane[lane], rec)
		if sf, ok := surfaceIndex(metricid.Surface(rec.Tile(), method), summary.SurfaceCount); ok {
			byLaneSurface[lane*surfaceCount+sf] = append(byLaneSurface[lane*surfaceCount+sf], rec)
		}
	}

	var occupied, clusters float64
	for l := 0; l < summary.LaneCount; l++ {
		occupiedMean := nanMean(occupiedCounts(byLane[l]))
		countMean := summary.Reads[0].Lanes[l].ClusterCount.Mean
		if !math.IsNaN(occupiedMean) && !math.IsNaN(countMean) {
			occupied += occupiedMean
			clusters += countMean
		}
		laneStat, _ := NanSummarize(percentOccupied(byLane[l]), skipMedian)
		for r := range summary.Reads {
			summary.Reads[r].Lanes[l].PercentOccupied = laneStat
		}
		if summary.SurfaceCount < 2 {
			continue
		}
		for sf := 0; sf < surfaceCount; sf++ {
			surfaceStat, _ := NanSummarize(percentOccupied(byLaneSurface[l*surfaceCount+sf]), skipMedian)
			for r := range summary.Reads {
				summary.Reads[r].Lanes[l].Surfaces[sf].PercentOccupied = surfaceStat
			}
		}
	}

	percent := 100 * divide(occupied, clusters)
	for r := range summary.Reads {
		summary.Reads[r].Summary.PercentOccupied = percent
	}
	summary.NonIndex.PercentOccupied = percent
	summary.Total.PercentOccupied = percent
	return nil
}

func occupiedCounts(tiles []metrics.ExtendedTileRecord) []float64 {
	values := make([]float64, len(tiles))
	for i, t := range tiles {
		values[i] = t.ClusterCountOccupied
	}
	return values
}

func percentOccupied(tiles []metrics.ExtendedTileRecord) []float64 {
	values := make([]float64, len(tiles))
	for i, t := range tiles {
		values[i] = t.PercentOccupied
	}
	return values
}

// nanMean returns the mean of the non-NaN values, NaN when there are none.
func nanMean(values []float64) float64 {
	kept := values[:0:0]
	for _, v := range values {
		if !math.IsNaN(v) {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return math.NaN()
	}
	return stat.Mean(kept, nil)
}
