package summary

import (
	"github.com/wesleyorama2/seqsum/internal/metrics"
	"github.com/wesleyorama2/seqsum/pkg/metricid"
)

// tileLister is the part of a metric store SummarizeTileCount reads.
type tileLister interface {
	TileNumbersForLane(lane int) []int
	TileNumbersForLaneSurface(lane, surface int, method metricid.NamingMethod) []int
}

// SummarizeTileCount sets the tile count of every lane and surface to the
// largest number of distinct tiles reported by the tile, error, extraction
// or q-score store.
func SummarizeTileCount(m *metrics.RunMetrics, summary *RunSummary) {
	if summary.Empty() {
		return
	}
	stores := []tileLister{m.Tile, m.Error, m.Extraction, m.Q}
	method := m.Info.NamingMethod
	for l := 0; l < summary.LaneCount; l++ {
		laneTiles := 0
		for _, s := range stores {
			laneTiles = max(laneTiles, len(s.TileNumbersForLane(l+1)))
		}
		surfaceTiles := make([]int, len(summary.Reads[0].Lanes[l].Surfaces))
		for sf := range surfaceTiles {
			for _, s := range stores {
				surfaceTiles[sf] = max(surfaceTiles[sf], len(s.TileNumbersForLaneSurface(l+1, sf+1, method)))
			}
		}
		for r := range summary.Reads {
			lane := &summary.Reads[r].Lanes[l]
			lane.TileCount = laneTiles
			for sf := range lane.Surfaces {
				lane.Surfaces[sf].TileCount = surfaceTiles[sf]
			}
		}
	}
}
