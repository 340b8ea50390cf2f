package summary

import (
	"errors"
	"math"
	"testing"

	"github.com/wesleyorama2/seqsum/internal/metrics"
	"github.com/wesleyorama2/seqsum/internal/run"
	"github.com/wesleyorama2/seqsum/pkg/metricid"
)

func errorAt(lane, tile, cycle int, rate float64) metrics.ErrorRecord {
	return metrics.ErrorRecord{CycleKey: metrics.AtCycle(lane, tile, cycle), ErrorRate: rate}
}

func TestSummarizeErrorMetrics_SingleTile(t *testing.T) {
	info := testInfo(1, 1, read(1, 1, 4))
	store := metrics.NewStore[metrics.ErrorRecord]()
	mustInsert(t, store,
		errorAt(1, 1101, 1, 0.10),
		errorAt(1, 1101, 2, 0.20),
		errorAt(1, 1101, 3, 0.30),
		errorAt(1, 1101, 4, 9.00), // last cycle of the read
	)
	summary := newSummary(info)

	if err := SummarizeErrorMetrics(store, run.BuildCycleReadMap(info.Reads), info.NamingMethod, summary, false); err != nil {
		t.Fatalf("SummarizeErrorMetrics() error = %v", err)
	}

	lane := summary.Reads[0].Lanes[0]
	if !approx(lane.ErrorRate.Mean, 0.2) {
		t.Errorf("ErrorRate.Mean = %v, want 0.2", lane.ErrorRate.Mean)
	}
	if lane.ErrorRate.StdDev != 0 {
		t.Errorf("ErrorRate.StdDev = %v, want 0", lane.ErrorRate.StdDev)
	}
	if !approx(lane.ErrorRate.Median, 0.2) {
		t.Errorf("ErrorRate.Median = %v, want 0.2", lane.ErrorRate.Median)
	}
	if lane.ErrorRate35.Mean != 0 || !math.IsNaN(lane.ErrorRate35.Median) {
		t.Errorf("ErrorRate35 = %+v, want default for a 3-cycle tile", lane.ErrorRate35)
	}
	if !approx(summary.Reads[0].Summary.ErrorRate, 0.2) {
		t.Errorf("read ErrorRate = %v, want 0.2", summary.Reads[0].Summary.ErrorRate)
	}
	if !approx(summary.Total.ErrorRate, 0.2) {
		t.Errorf("Total.ErrorRate = %v, want 0.2", summary.Total.ErrorRate)
	}
	if !approx(summary.NonIndex.ErrorRate, 0.2) {
		t.Errorf("NonIndex.ErrorRate = %v, want 0.2", summary.NonIndex.ErrorRate)
	}
}

func TestSummarizeErrorMetrics_WindowGating(t *testing.T) {
	info := testInfo(1, 1, read(1, 1, 60))
	store := metrics.NewStore[metrics.ErrorRecord]()
	for c := 1; c <= 20; c++ {
		mustInsert(t, store, errorAt(1, 1101, c, 1.0))
	}
	for c := 1; c <= 40; c++ {
		mustInsert(t, store, errorAt(1, 1102, c, 2.0))
	}
	summary := newSummary(info)

	if err := SummarizeErrorMetrics(store, run.BuildCycleReadMap(info.Reads), info.NamingMethod, summary, false); err != nil {
		t.Fatalf("SummarizeErrorMetrics() error = %v", err)
	}

	lane := summary.Reads[0].Lanes[0]
	tests := []struct {
		name string
		got  StatValue
		want float64
	}{
		{"ErrorRate35", lane.ErrorRate35, 2.0},
		{"ErrorRate50", lane.ErrorRate50, 0},
		{"ErrorRate", lane.ErrorRate, 1.5},
	}
	for _, tt := range tests {
		if !approx(tt.got.Mean, tt.want) {
			t.Errorf("%s.Mean = %v, want %v", tt.name, tt.got.Mean, tt.want)
		}
	}
	if !math.IsNaN(lane.ErrorRate50.Median) {
		t.Errorf("ErrorRate50.Median = %v, want NaN", lane.ErrorRate50.Median)
	}
}

func TestSummarizeErrorMetrics_IndexReadExcludedFromNonIndex(t *testing.T) {
	info := testInfo(1, 1, read(1, 1, 3), indexRead(2, 4, 6))
	store := metrics.NewStore[metrics.ErrorRecord]()
	mustInsert(t, store,
		errorAt(1, 1101, 1, 1.0),
		errorAt(1, 1101, 4, 3.0),
	)
	summary := newSummary(info)

	if err := SummarizeErrorMetrics(store, run.BuildCycleReadMap(info.Reads), info.NamingMethod, summary, false); err != nil {
		t.Fatalf("SummarizeErrorMetrics() error = %v", err)
	}
	if summary.NonIndex.ErrorRate != 1.0 {
		t.Errorf("NonIndex.ErrorRate = %v, want 1", summary.NonIndex.ErrorRate)
	}
	if summary.Total.ErrorRate != 2.0 {
		t.Errorf("Total.ErrorRate = %v, want 2", summary.Total.ErrorRate)
	}
}

func TestSummarizeErrorMetrics_Surfaces(t *testing.T) {
	info := testInfo(1, 2, read(1, 1, 4))
	store := metrics.NewStore[metrics.ErrorRecord]()
	mustInsert(t, store,
		errorAt(1, 1101, 1, 1.0),
		errorAt(1, 2101, 1, 3.0),
	)
	summary := newSummary(info)

	if err := SummarizeErrorMetrics(store, run.BuildCycleReadMap(info.Reads), metricid.FourDigit, summary, false); err != nil {
		t.Fatalf("SummarizeErrorMetrics() error = %v", err)
	}
	lane := summary.Reads[0].Lanes[0]
	if lane.ErrorRate.Mean != 2 {
		t.Errorf("lane ErrorRate.Mean = %v, want 2", lane.ErrorRate.Mean)
	}
	if lane.Surfaces[0].ErrorRate.Mean != 1 || lane.Surfaces[1].ErrorRate.Mean != 3 {
		t.Errorf("surface means = (%v, %v), want (1, 3)",
			lane.Surfaces[0].ErrorRate.Mean, lane.Surfaces[1].ErrorRate.Mean)
	}
}

func TestSummarizeErrorMetrics_OutOfBounds(t *testing.T) {
	info := testInfo(1, 1, read(1, 1, 4))
	tests := []struct {
		name   string
		record metrics.ErrorRecord
	}{
		{"lane beyond run", errorAt(2, 1101, 1, 0.1)},
		{"cycle beyond run", errorAt(1, 1101, 9, 0.1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := metrics.NewStore[metrics.ErrorRecord]()
			mustInsert(t, store, tt.record)
			err := SummarizeErrorMetrics(store, run.BuildCycleReadMap(info.Reads), info.NamingMethod, newSummary(info), false)
			if !errors.Is(err, ErrIndexOutOfBounds) {
				t.Errorf("error = %v, want ErrIndexOutOfBounds", err)
			}
		})
	}
}
