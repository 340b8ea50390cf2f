package summary

import (
	"math"

	"github.com/wesleyorama2/seqsum/internal/metrics"
	"github.com/wesleyorama2/seqsum/pkg/metricid"
)

// SummarizeTileMetrics fills density, cluster count and percent PF for every
// lane and surface, then the per-read percent aligned, phasing and
// prephasing statistics and the run-level read counts.
//
// Tile values do not depend on the read; they are computed once and copied
// into every read so each ReadSummary can be used on its own.
func SummarizeTileMetrics(store *metrics.Store[metrics.TileRecord],
	method metricid.NamingMethod,
	summary *RunSummary,
	skipMedian bool) error {
	if store.Empty() || summary.Empty() {
		return nil
	}
	surfaceCount := summary.SurfaceCount
	if surfaceCount < 1 {
		surfaceCount = 1
	}

	byLane := make([][]metrics.TileRecord, summary.LaneCount)
	byLaneSurface := make([][]metrics.TileRecord, summary.LaneCount*surfaceCount)
	readsByLane := make([][]metrics.TileReadRecord, summary.Size()*summary.LaneCount)
	readsByLaneSurface := make([][]metrics.TileReadRecord, summary.Size()*summary.LaneCount*surfaceCount)

	for _, rec := range store.Records() {
		lane, err := checkLane(rec.Lane(), rec.Tile(), summary.LaneCount)
		if err != nil {
			return err
		}
		byLane[lane] = append(byLane[lane], rec)
		sf, hasSurface := surfaceIndex(metricid.Surface(rec.Tile(), method), summary.SurfaceCount)
		if hasSurface {
			byLaneSurface[lane*surfaceCount+sf] = append(byLaneSurface[lane*surfaceCount+sf], rec)
		}
		for _, rr := range rec.Reads {
			if rr.Read < 1 || rr.Read > summary.Size() {
				return readOutOfBounds(rr.Read, rec.Lane(), rec.Tile(), summary.Size())
			}
			idx := (rr.Read-1)*summary.LaneCount + lane
			readsByLane[idx] = append(readsByLane[idx], rr)
			if hasSurface {
				sidx := idx*surfaceCount + sf
				readsByLaneSurface[sidx] = append(readsByLaneSurface[sidx], rr)
			}
		}
	}

	for l := 0; l < summary.LaneCount; l++ {
		var laneStats StatSummary
		summarizeTiles(byLane[l], &laneStats, skipMedian)
		for r := range summary.Reads {
			copyTileStats(&summary.Reads[r].Lanes[l].StatSummary, &laneStats)
		}
		if summary.SurfaceCount < 2 {
			continue
		}
		for sf := 0; sf < surfaceCount; sf++ {
			var surfaceStats StatSummary
			summarizeTiles(byLaneSurface[l*surfaceCount+sf], &surfaceStats, skipMedian)
			for r := range summary.Reads {
				copyTileStats(&summary.Reads[r].Lanes[l].Surfaces[sf].StatSummary, &surfaceStats)
			}
		}
	}

	var clusterCount, clusterCountPF float64
	for _, lane := range summary.Reads[0].Lanes {
		clusterCount += lane.Reads
		clusterCountPF += lane.ReadsPF
	}

	var aligned, alignedNonIndex float64
	var count, countNonIndex int
	for r := range summary.Reads {
		read := &summary.Reads[r]
		var alignedByRead float64
		var countByRead int
		for l := range read.Lanes {
			lane := &read.Lanes[l]
			nonNaN := summarizeTileReads(readsByLane[r*summary.LaneCount+l], &lane.StatSummary, skipMedian)
			for sf := range lane.Surfaces {
				sidx := (r*summary.LaneCount+l)*surfaceCount + sf
				summarizeTileReads(readsByLaneSurface[sidx], &lane.Surfaces[sf].StatSummary, skipMedian)
			}
			if nonNaN == 0 {
				continue
			}
			alignedByRead += lane.PercentAligned.Mean * float64(nonNaN)
			countByRead += nonNaN
		}
		read.Summary.Reads = clusterCount
		read.Summary.ReadsPF = clusterCountPF
		read.Summary.ClusterCount = clusterCount
		read.Summary.ClusterCountPF = clusterCountPF
		read.Summary.PercentAligned = divide(alignedByRead, float64(countByRead))

		aligned += alignedByRead
		count += countByRead
		if !read.Read.IsIndex {
			alignedNonIndex += alignedByRead
			countNonIndex += countByRead
		}
	}
	summary.NonIndex.PercentAligned = divide(alignedNonIndex, float64(countNonIndex))
	summary.Total.PercentAligned = divide(aligned, float64(count))
	for _, ms := range []*MetricSummary{&summary.NonIndex, &summary.Total} {
		ms.Reads = clusterCount
		ms.ReadsPF = clusterCountPF
		ms.ClusterCount = clusterCount
		ms.ClusterCountPF = clusterCountPF
	}
	return nil
}

// summarizeTiles fills the read-independent tile statistics.
func summarizeTiles(tiles []metrics.TileRecord, out *StatSummary, skipMedian bool) {
	field := func(get func(metrics.TileRecord) float64) []float64 {
		values := make([]float64, len(tiles))
		for i, t := range tiles {
			values[i] = get(t)
		}
		return values
	}
	out.Density, _ = NanSummarize(field(func(t metrics.TileRecord) float64 { return t.ClusterDensity }), skipMedian)
	out.DensityPF, _ = NanSummarize(field(func(t metrics.TileRecord) float64 { return t.ClusterDensityPF }), skipMedian)
	out.ClusterCount, _ = NanSummarize(field(func(t metrics.TileRecord) float64 { return t.ClusterCount }), skipMedian)
	out.ClusterCountPF, _ = NanSummarize(field(func(t metrics.TileRecord) float64 { return t.ClusterCountPF }), skipMedian)
	out.PercentPF, _ = NanSummarize(field(metrics.TileRecord.PercentPF), skipMedian)
	out.Reads = nanSum(field(func(t metrics.TileRecord) float64 { return t.ClusterCount }))
	out.ReadsPF = nanSum(field(func(t metrics.TileRecord) float64 { return t.ClusterCountPF }))
}

func copyTileStats(dst, src *StatSummary) {
	dst.Density = src.Density
	dst.DensityPF = src.DensityPF
	dst.ClusterCount = src.ClusterCount
	dst.ClusterCountPF = src.ClusterCountPF
	dst.PercentPF = src.PercentPF
	dst.Reads = src.Reads
	dst.ReadsPF = src.ReadsPF
}

// summarizeTileReads fills percent aligned, phasing and prephasing and
// returns the number of tiles with a percent aligned value.
func summarizeTileReads(reads []metrics.TileReadRecord, out *StatSummary, skipMedian bool) int {
	field := func(get func(metrics.TileReadRecord) float64) []float64 {
		values := make([]float64, len(reads))
		for i, r := range reads {
			values[i] = get(r)
		}
		return values
	}
	var nonNaN int
	out.PercentAligned, nonNaN = NanSummarize(field(func(r metrics.TileReadRecord) float64 { return r.PercentAligned }), skipMedian)
	out.Prephasing, _ = NanSummarize(field(func(r metrics.TileReadRecord) float64 { return r.PercentPrephasing }), skipMedian)
	out.Phasing, _ = NanSummarize(field(func(r metrics.TileReadRecord) float64 { return r.PercentPhasing }), skipMedian)
	return nonNaN
}

func nanSum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		if !math.IsNaN(v) {
			total += v
		}
	}
	return total
}
