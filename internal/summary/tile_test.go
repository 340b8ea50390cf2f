package summary

import (
	"errors"
	"math"
	"testing"

	"github.com/wesleyorama2/seqsum/internal/metrics"
)

func tileAt(lane, tile int, density, count, countPF float64, reads ...metrics.TileReadRecord) metrics.TileRecord {
	return metrics.TileRecord{
		TileKey:          metrics.AtTile(lane, tile),
		ClusterDensity:   density,
		ClusterDensityPF: density / 2,
		ClusterCount:     count,
		ClusterCountPF:   countPF,
		Reads:            reads,
	}
}

func aligned(read int, percent float64) metrics.TileReadRecord {
	return metrics.TileReadRecord{Read: read, PercentAligned: percent, PercentPhasing: 0.1, PercentPrephasing: 0.05}
}

func TestSummarizeTileMetrics(t *testing.T) {
	info := testInfo(1, 2, read(1, 1, 10), read(2, 11, 20))
	store := metrics.NewStore[metrics.TileRecord]()
	mustInsert(t, store,
		tileAt(1, 1101, 100, 1000, 800, aligned(1, 90), aligned(2, 70)),
		tileAt(1, 2101, 200, 3000, 1500, aligned(1, 80), aligned(2, math.NaN())),
	)
	summary := newSummary(info)

	if err := SummarizeTileMetrics(store, info.NamingMethod, summary, false); err != nil {
		t.Fatalf("SummarizeTileMetrics() error = %v", err)
	}

	for r := range summary.Reads {
		lane := summary.Reads[r].Lanes[0]
		if lane.Density.Mean != 150 {
			t.Errorf("read %d Density.Mean = %v, want 150", r+1, lane.Density.Mean)
		}
		if lane.PercentPF.Mean != 65 {
			t.Errorf("read %d PercentPF.Mean = %v, want 65", r+1, lane.PercentPF.Mean)
		}
		if lane.Reads != 4000 || lane.ReadsPF != 2300 {
			t.Errorf("read %d lane reads = (%v, %v), want (4000, 2300)", r+1, lane.Reads, lane.ReadsPF)
		}
		if lane.Surfaces[0].Density.Mean != 100 || lane.Surfaces[1].Density.Mean != 200 {
			t.Errorf("read %d surface density = (%v, %v), want (100, 200)",
				r+1, lane.Surfaces[0].Density.Mean, lane.Surfaces[1].Density.Mean)
		}
	}

	if got := summary.Reads[0].Lanes[0].PercentAligned.Mean; got != 85 {
		t.Errorf("read 1 PercentAligned.Mean = %v, want 85", got)
	}
	if got := summary.Reads[1].Lanes[0].PercentAligned.Mean; got != 70 {
		t.Errorf("read 2 PercentAligned.Mean = %v, want 70 (NaN skipped)", got)
	}
	if got := summary.Reads[0].Summary.PercentAligned; got != 85 {
		t.Errorf("read 1 summary PercentAligned = %v, want 85", got)
	}
	// (90 + 80 + 70) / 3 tiles with a value
	if got := summary.Total.PercentAligned; !approx(got, 80) {
		t.Errorf("Total.PercentAligned = %v, want 80", got)
	}
	if summary.Total.Reads != 4000 || summary.NonIndex.ReadsPF != 2300 {
		t.Errorf("totals = (%v, %v), want (4000, 2300)", summary.Total.Reads, summary.NonIndex.ReadsPF)
	}
	if got := summary.Reads[0].Lanes[0].Phasing.Mean; !approx(got, 0.1) {
		t.Errorf("Phasing.Mean = %v, want 0.1", got)
	}
}

func TestSummarizeTileMetrics_ReadOutOfBounds(t *testing.T) {
	info := testInfo(1, 1, read(1, 1, 10))
	store := metrics.NewStore[metrics.TileRecord]()
	mustInsert(t, store, tileAt(1, 1101, 100, 1000, 800, aligned(3, 90)))

	err := SummarizeTileMetrics(store, info.NamingMethod, newSummary(info), false)
	if !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("error = %v, want ErrIndexOutOfBounds", err)
	}
}

func TestSummarizeExtendedTileMetrics(t *testing.T) {
	info := testInfo(1, 1, read(1, 1, 10))
	tiles := metrics.NewStore[metrics.TileRecord]()
	mustInsert(t, tiles,
		tileAt(1, 1101, 100, 1000, 800),
		tileAt(1, 1102, 100, 3000, 1500),
	)
	ext := metrics.NewStore[metrics.ExtendedTileRecord]()
	mustInsert(t, ext,
		metrics.ExtendedTileRecord{TileKey: metrics.AtTile(1, 1101), ClusterCountOccupied: 500, PercentOccupied: 50},
		metrics.ExtendedTileRecord{TileKey: metrics.AtTile(1, 1102), ClusterCountOccupied: 1500, PercentOccupied: 70},
	)
	summary := newSummary(info)

	if err := SummarizeTileMetrics(tiles, info.NamingMethod, summary, false); err != nil {
		t.Fatalf("SummarizeTileMetrics() error = %v", err)
	}
	if err := SummarizeExtendedTileMetrics(ext, info.NamingMethod, summary, false); err != nil {
		t.Fatalf("SummarizeExtendedTileMetrics() error = %v", err)
	}

	if got := summary.Reads[0].Lanes[0].PercentOccupied.Mean; got != 60 {
		t.Errorf("lane PercentOccupied.Mean = %v, want 60", got)
	}
	// mean occupied 1000 over mean cluster count 2000
	if got := summary.Total.PercentOccupied; got != 50 {
		t.Errorf("Total.PercentOccupied = %v, want 50", got)
	}
	if got := summary.Reads[0].Summary.PercentOccupied; got != 50 {
		t.Errorf("read PercentOccupied = %v, want 50", got)
	}
}

func TestSummarizeTileCount(t *testing.T) {
	info := testInfo(2, 2, read(1, 1, 10))
	m := metrics.NewRunMetrics(info)
	mustInsert(t, m.Tile, tileAt(1, 1101, 1, 1, 1))
	mustInsert(t, m.Error,
		errorAt(1, 1101, 1, 0.1),
		errorAt(1, 1102, 1, 0.1),
		errorAt(1, 2101, 1, 0.1),
	)
	summary := newSummary(info)

	SummarizeTileCount(m, summary)

	lane := summary.Reads[0].Lanes[0]
	if lane.TileCount != 3 {
		t.Errorf("lane 1 TileCount = %d, want 3", lane.TileCount)
	}
	if lane.Surfaces[0].TileCount != 2 || lane.Surfaces[1].TileCount != 1 {
		t.Errorf("surface tile counts = (%d, %d), want (2, 1)",
			lane.Surfaces[0].TileCount, lane.Surfaces[1].TileCount)
	}
	if got := summary.Reads[0].Lanes[1].TileCount; got != 0 {
		t.Errorf("lane 2 TileCount = %d, want 0", got)
	}
}

func TestTrim(t *testing.T) {
	info := testInfo(3, 1, read(1, 1, 10), read(2, 11, 20))
	summary := newSummary(info)
	for r := range summary.Reads {
		summary.Reads[r].Lanes[0].TileCount = 4
		summary.Reads[r].Lanes[2].TileCount = 4
		lanes := summary.Reads[r].Lanes
		lanes[0], lanes[2] = lanes[2], lanes[0]
	}

	Trim(summary)

	if summary.LaneCount != 3 {
		t.Errorf("LaneCount = %d, want 3", summary.LaneCount)
	}
	for r, rs := range summary.Reads {
		if len(rs.Lanes) != 2 {
			t.Fatalf("read %d has %d lanes, want 2", r+1, len(rs.Lanes))
		}
		if rs.Lanes[0].Lane != 1 || rs.Lanes[1].Lane != 3 {
			t.Errorf("read %d lanes = (%d, %d), want (1, 3)", r+1, rs.Lanes[0].Lane, rs.Lanes[1].Lane)
		}
	}
}
