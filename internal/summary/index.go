package summary

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/wesleyorama2/seqsum/internal/metrics"
)

// IndexCount is the demultiplexed cluster count of one index sequence.
type IndexCount struct {
	ID            int
	Sequence      string
	SampleID      string
	SampleProject string
	ClusterCount  uint64
	// PercentMapped is the share of PF clusters carrying this index.
	PercentMapped float64
}

// IndexLaneSummary summarizes demultiplexing on one lane.
type IndexLaneSummary struct {
	Lane             int
	TotalReads       uint64
	TotalPFReads     uint64
	TotalMappedReads uint64
	// PercentMapped is the share of PF clusters identified by any index.
	PercentMapped    float64
	MappedReadsCV    float64
	MinPercentMapped float64
	MaxPercentMapped float64
	Counts           []IndexCount
}

// SummarizeIndexMetrics builds one IndexLaneSummary per lane. Cluster totals
// come from the tile record of each tile reporting index counts; index
// records without a matching tile record are ignored. Counts are ordered by
// sequence and numbered from 1.
func SummarizeIndexMetrics(index *metrics.Store[metrics.IndexRecord],
	tiles *metrics.Store[metrics.TileRecord],
	laneCount int) ([]IndexLaneSummary, error) {
	if index.Empty() || tiles.Empty() {
		return nil, nil
	}
	out := make([]IndexLaneSummary, laneCount)
	for l := range out {
		out[l] = summarizeIndexLane(index, tiles, l+1)
	}
	for _, rec := range index.Records() {
		if _, err := checkLane(rec.Lane(), rec.Tile(), laneCount); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func summarizeIndexLane(index *metrics.Store[metrics.IndexRecord],
	tiles *metrics.Store[metrics.TileRecord],
	lane int) IndexLaneSummary {
	summary := IndexLaneSummary{Lane: lane}
	counts := make(map[string]*IndexCount)
	for _, rec := range index.MetricsForLane(lane) {
		tile, err := tiles.GetMetric(rec.Lane(), rec.Tile(), 0)
		if err != nil {
			continue
		}
		summary.TotalPFReads += uint64(tile.ClusterCountPF)
		summary.TotalReads += uint64(tile.ClusterCount)
		for _, e := range rec.Entries {
			c, ok := counts[e.Sequence]
			if !ok {
				c = &IndexCount{Sequence: e.Sequence, SampleID: e.SampleID, SampleProject: e.SampleProject}
				counts[e.Sequence] = c
			}
			c.ClusterCount += e.Count
			summary.TotalMappedReads += e.Count
		}
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	percents := make([]float64, len(keys))
	summary.Counts = make([]IndexCount, len(keys))
	for i, k := range keys {
		c := *counts[k]
		c.ID = i + 1
		c.PercentMapped = 100 * divide(float64(c.ClusterCount), float64(summary.TotalPFReads))
		summary.Counts[i] = c
		percents[i] = c.PercentMapped
	}
	summary.PercentMapped = 100 * divide(float64(summary.TotalMappedReads), float64(summary.TotalPFReads))

	if len(percents) == 0 {
		summary.MappedReadsCV = math.NaN()
		summary.MinPercentMapped = math.NaN()
		summary.MaxPercentMapped = math.NaN()
		return summary
	}
	mean, std := stat.PopMeanStdDev(percents, nil)
	summary.MappedReadsCV = divide(std, mean)
	summary.MinPercentMapped = percents[0]
	summary.MaxPercentMapped = percents[0]
	for _, p := range percents[1:] {
		summary.MinPercentMapped = min(summary.MinPercentMapped, p)
		summary.MaxPercentMapped = max(summary.MaxPercentMapped, p)
	}
	return summary
}
