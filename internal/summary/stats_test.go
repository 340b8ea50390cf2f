package summary

import (
	"math"
	"testing"

	"github.com/wesleyorama2/seqsum/internal/metrics"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name       string
		values     []float64
		skipMedian bool
		wantMean   float64
		wantStdDev float64
		wantMedian float64
	}{
		{"even count", []float64{1, 2, 3, 4}, false, 2.5, math.Sqrt(1.25), 2.5},
		{"odd count", []float64{3, 1, 2}, false, 2, math.Sqrt(2.0 / 3.0), 2},
		{"single value", []float64{7}, false, 7, 0, 7},
		{"skip median", []float64{1, 2, 3, 4}, true, 2.5, math.Sqrt(1.25), math.NaN()},
		{"empty", nil, false, 0, 0, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.values, tt.skipMedian)
			if math.Abs(got.Mean-tt.wantMean) > 1e-9 {
				t.Errorf("Mean = %v, want %v", got.Mean, tt.wantMean)
			}
			if math.Abs(got.StdDev-tt.wantStdDev) > 1e-5 {
				t.Errorf("StdDev = %v, want %v", got.StdDev, tt.wantStdDev)
			}
			if math.IsNaN(tt.wantMedian) != math.IsNaN(got.Median) ||
				(!math.IsNaN(tt.wantMedian) && got.Median != tt.wantMedian) {
				t.Errorf("Median = %v, want %v", got.Median, tt.wantMedian)
			}
		})
	}
}

func TestSummarize_DoesNotReorderInput(t *testing.T) {
	values := []float64{4, 1, 3, 2}
	Summarize(values, false)
	want := []float64{4, 1, 3, 2}
	for i := range values {
		if values[i] != want[i] {
			t.Fatalf("values = %v, want %v", values, want)
		}
	}
}

func TestNanSummarize(t *testing.T) {
	got, n := NanSummarize([]float64{1, math.NaN(), 3, math.NaN()}, false)
	if n != 2 {
		t.Errorf("kept = %d, want 2", n)
	}
	if got.Mean != 2 {
		t.Errorf("Mean = %v, want 2", got.Mean)
	}
	if got.Median != 2 {
		t.Errorf("Median = %v, want 2", got.Median)
	}

	got, n = NanSummarize([]float64{math.NaN()}, false)
	if n != 0 {
		t.Errorf("kept = %d, want 0", n)
	}
	if got.Mean != 0 || !math.IsNaN(got.Median) {
		t.Errorf("all-NaN summary = %+v, want default", got)
	}
}

func TestDivide(t *testing.T) {
	tests := []struct {
		num, div, want float64
	}{
		{6, 3, 2},
		{1, 0, 0},
		{1, 1e-12, 0},
		{0, 4, 0},
	}
	for _, tt := range tests {
		if got := divide(tt.num, tt.div); got != tt.want {
			t.Errorf("divide(%v, %v) = %v, want %v", tt.num, tt.div, got, tt.want)
		}
	}
}

func TestBucket(t *testing.T) {
	b := NewBucket(2, 3, 2)
	b.Push(1, 2, 1, 5)
	b.Push(1, 2, 1, 6)
	b.Push(0, 0, 0, 1)

	if got := b.At(1, 2, 1); len(got) != 2 || got[0] != 5 || got[1] != 6 {
		t.Errorf("At(1,2,1) = %v, want [5 6]", got)
	}
	if got := b.At(1, 2, 0); len(got) != 0 {
		t.Errorf("At(1,2,0) = %v, want empty", got)
	}
	if b.ReadCount() != 2 || b.LaneCount() != 3 || b.SurfaceCount() != 2 {
		t.Errorf("dimensions = (%d,%d,%d), want (2,3,2)", b.ReadCount(), b.LaneCount(), b.SurfaceCount())
	}

	b.Reserve(16)
	if got := b.At(1, 2, 1); len(got) != 2 || cap(got) < 16 {
		t.Errorf("after Reserve At(1,2,1) = %v (cap %d), want 2 values with cap >= 16", got, cap(got))
	}
	if got := b.At(0, 1, 0); cap(got) < 16 {
		t.Errorf("after Reserve cap(At(0,1,0)) = %d, want >= 16", cap(got))
	}
	b.Clear()
	if got := b.At(0, 0, 0); len(got) != 0 {
		t.Errorf("after Clear At(0,0,0) = %v, want empty", got)
	}
}

func TestBucket_SingleSurfaceSlot(t *testing.T) {
	b := NewBucket(1, 1, 0)
	if b.SurfaceCount() != 1 {
		t.Errorf("SurfaceCount() = %d, want 1", b.SurfaceCount())
	}
	b.Push(0, 0, 0, 3)
	if got := b.At(0, 0, 0); len(got) != 1 {
		t.Errorf("At(0,0,0) = %v, want [3]", got)
	}
}

func TestMaxTilesPerLane(t *testing.T) {
	store := metrics.NewStore[metrics.ErrorRecord]()
	if got := maxTilesPerLane(store); got != 0 {
		t.Errorf("maxTilesPerLane(empty) = %d, want 0", got)
	}
	mustInsert(t, store,
		metrics.ErrorRecord{CycleKey: metrics.AtCycle(1, 1101, 1)},
		metrics.ErrorRecord{CycleKey: metrics.AtCycle(1, 1101, 2)},
		metrics.ErrorRecord{CycleKey: metrics.AtCycle(1, 1102, 1)},
		metrics.ErrorRecord{CycleKey: metrics.AtCycle(2, 1101, 1)},
		metrics.ErrorRecord{CycleKey: metrics.AtCycle(2, 1102, 1)},
		metrics.ErrorRecord{CycleKey: metrics.AtCycle(2, 2101, 1)},
	)
	if got := maxTilesPerLane(store); got != 3 {
		t.Errorf("maxTilesPerLane() = %d, want 3", got)
	}
}

func TestStatValue_Thousands(t *testing.T) {
	got := StatValue{Mean: 2500, StdDev: 100, Median: math.NaN()}.Thousands()
	if got.Mean != 2.5 || got.StdDev != 0.1 || !math.IsNaN(got.Median) {
		t.Errorf("Thousands() = %+v, want {2.5 0.1 NaN}", got)
	}
}
