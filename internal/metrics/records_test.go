package metrics

import (
	"math"
	"testing"

	"github.com/wesleyorama2/seqsum/internal/run"
)

func TestTileRecord_PercentPF(t *testing.T) {
	r := TileRecord{ClusterCount: 200, ClusterCountPF: 150, ClusterDensity: 2500}
	if got := r.PercentPF(); got != 75 {
		t.Errorf("PercentPF() = %v, want 75", got)
	}
	if got := Thousands(r.ClusterDensity); got != 2.5 {
		t.Errorf("Thousands(%v) = %v, want 2.5", r.ClusterDensity, got)
	}
	if got := (TileRecord{}).PercentPF(); !math.IsNaN(got) {
		t.Errorf("PercentPF() of empty tile = %v, want NaN", got)
	}
}

func TestTileRecord_UpdatePhasingIfMissing(t *testing.T) {
	r := TileRecord{Reads: []TileReadRecord{
		{Read: 1, PercentAligned: 90, PercentPhasing: 0.2, PercentPrephasing: math.NaN()},
	}}

	r.UpdatePhasingIfMissing(1, 5, 6)
	rr, _ := r.ReadRecord(1)
	if rr.PercentPhasing != 0.2 {
		t.Errorf("PercentPhasing = %v, want existing 0.2", rr.PercentPhasing)
	}
	if rr.PercentPrephasing != 6 {
		t.Errorf("PercentPrephasing = %v, want backfilled 6", rr.PercentPrephasing)
	}

	r.UpdatePhasingIfMissing(2, 1, 2)
	rr, ok := r.ReadRecord(2)
	if !ok {
		t.Fatal("read 2 should have been appended")
	}
	if !math.IsNaN(rr.PercentAligned) || rr.PercentPhasing != 1 || rr.PercentPrephasing != 2 {
		t.Errorf("appended read = %+v", *rr)
	}
}

func TestExtractionRecord_MaxIntensity(t *testing.T) {
	r := ExtractionRecord{MaxIntensities: []uint16{10, 20}}
	if r.MaxIntensity(1) != 20 {
		t.Errorf("MaxIntensity(1) = %d, want 20", r.MaxIntensity(1))
	}
	if r.MaxIntensity(3) != 0 {
		t.Errorf("MaxIntensity(3) = %d, want 0", r.MaxIntensity(3))
	}
}

func TestQRecord_Counts(t *testing.T) {
	// Unbinned: index i holds Q=i+1.
	hist := make([]uint32, 40)
	hist[9] = 10  // Q10
	hist[19] = 20 // Q20
	hist[29] = 30 // Q30
	hist[34] = 40 // Q35
	r := QRecord{Histogram: hist}

	if got := r.Sum(); got != 100 {
		t.Errorf("Sum() = %d, want 100", got)
	}
	if got := r.TotalOverQScore(30, nil); got != 70 {
		t.Errorf("TotalOverQScore(30) = %d, want 70", got)
	}
	if got := r.TotalOverQScore(20, nil); got != 90 {
		t.Errorf("TotalOverQScore(20) = %d, want 90", got)
	}
	// Position 51 lands in the Q30 bucket (10+20+30=60 >= 51).
	if got := r.Median(nil); got != 30 {
		t.Errorf("Median() = %d, want 30", got)
	}
}

func TestQRecord_Binned(t *testing.T) {
	bins := []QScoreBin{{0, 9, 7}, {10, 29, 20}, {30, 49, 36}}
	r := QRecord{Histogram: []uint32{5, 10, 25}}

	if got := r.TotalOverQScore(30, bins); got != 25 {
		t.Errorf("TotalOverQScore(30) = %d, want 25", got)
	}
	if got := r.TotalOverQScore(20, bins); got != 35 {
		t.Errorf("TotalOverQScore(20) = %d, want 35", got)
	}
	if got := r.Median(bins); got != 36 {
		t.Errorf("Median() = %d, want 36", got)
	}
}

func TestQCollapsedRecord_PercentOverQ30(t *testing.T) {
	r := QCollapsedRecord{Q30: 80, Total: 100}
	if got := r.PercentOverQ30(); got != 80 {
		t.Errorf("PercentOverQ30() = %v, want 80", got)
	}
	if got := (QCollapsedRecord{}).PercentOverQ30(); !math.IsNaN(got) {
		t.Errorf("PercentOverQ30() = %v, want NaN", got)
	}
}

func TestRunMetrics_Empty(t *testing.T) {
	m := NewRunMetrics(run.Info{LaneCount: 1, SurfaceCount: 1})
	if !m.Empty() {
		t.Fatal("new RunMetrics should be empty")
	}
	if err := m.Image.Insert(ImageRecord{CycleKey: AtCycle(1, 1101, 1)}); err != nil {
		t.Fatal(err)
	}
	if m.Empty() {
		t.Error("RunMetrics with an image record should not be empty")
	}
	if m.StoreSizes()["image"] != 1 {
		t.Errorf("StoreSizes()[image] = %d, want 1", m.StoreSizes()["image"])
	}

	totals := NewRunMetrics(run.Info{})
	totals.SummaryRun = &SummaryRunRecord{RawClusterCount: 10}
	if totals.Empty() {
		t.Error("RunMetrics with run totals should not be empty")
	}
}
