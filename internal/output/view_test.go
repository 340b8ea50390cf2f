package output

import (
	"math"
	"testing"

	"github.com/wesleyorama2/seqsum/internal/logic"
	"github.com/wesleyorama2/seqsum/internal/run"
	"github.com/wesleyorama2/seqsum/internal/summary"
	"github.com/wesleyorama2/seqsum/pkg/metricid"
)

func testSummary() *summary.RunSummary {
	info := run.Info{
		Reads: []run.ReadInfo{
			{Number: 1, FirstCycle: 1, LastCycle: 3},
			{Number: 2, FirstCycle: 4, LastCycle: 5, IsIndex: true},
		},
		LaneCount:    1,
		SurfaceCount: 2,
		NamingMethod: metricid.FourDigit,
		Channels:     []string{"A", "C", "G", "T"},
	}
	s := &summary.RunSummary{}
	s.Initialize(info)

	lane := &s.Reads[0].Lanes[0]
	lane.TileCount = 2
	lane.Density = summary.StatValue{Mean: 1100, StdDev: 100, Median: 1100}
	lane.PercentGtQ30 = 92.5
	lane.YieldG = 0.25
	lane.Surfaces[0].TileCount = 1
	s.Reads[0].Summary.ErrorRate = 0.5
	s.Reads[0].Summary.PercentGtQ30 = 92.5
	s.Reads[0].Summary.YieldG = 0.25
	s.Total.YieldG = 0.3
	s.Total.PercentGtQ30 = 65
	s.Total.ErrorRate = 3
	s.QScores = []logic.QScorePercentiles{{Lane: 1, Calls: 100, P50: 30, P90: 37}}
	s.Index = []summary.IndexLaneSummary{{
		Lane:          1,
		TotalReads:    1000,
		TotalPFReads:  800,
		PercentMapped: 50,
		MappedReadsCV: math.NaN(),
		Counts: []summary.IndexCount{
			{ID: 1, Sequence: "ACGT", SampleID: "s1", ClusterCount: 400, PercentMapped: 50},
		},
	}}
	return s
}

func TestNum(t *testing.T) {
	tests := []struct {
		in      float64
		wantNil bool
	}{
		{1.5, false},
		{0, false},
		{math.NaN(), true},
		{math.Inf(1), true},
		{math.Inf(-1), true},
	}

	for _, tt := range tests {
		got := num(tt.in)
		if (got == nil) != tt.wantNil {
			t.Errorf("num(%v) = %v, want nil %v", tt.in, got, tt.wantNil)
		}
		if got != nil && *got != tt.in {
			t.Errorf("num(%v) = %v", tt.in, *got)
		}
	}
}

func TestNewRunView(t *testing.T) {
	v := NewRunView(testSummary())

	if len(v.Reads) != 2 {
		t.Fatalf("len(Reads) = %d, want 2", len(v.Reads))
	}
	lane := v.Reads[0].Lanes[0]
	if lane.TileCount != 2 {
		t.Errorf("TileCount = %d, want 2", lane.TileCount)
	}
	if lane.Density.Mean == nil || *lane.Density.Mean != 1100 {
		t.Errorf("Density.Mean = %v, want 1100", lane.Density.Mean)
	}
	if lane.DensityK.Mean == nil || *lane.DensityK.Mean != 1.1 || *lane.DensityK.StdDev != 0.1 {
		t.Errorf("DensityK = %+v, want 1.1 ± 0.1", lane.DensityK)
	}
	if lane.ClusterCountK.Median != nil {
		t.Errorf("ClusterCountK.Median = %v, want nil for an unset value", *lane.ClusterCountK.Median)
	}
	if lane.PercentPF.Median != nil {
		t.Errorf("PercentPF.Median = %v, want nil for an unset value", *lane.PercentPF.Median)
	}
	if len(lane.Surfaces) != 2 || lane.Surfaces[0].TileCount != 1 || lane.Surfaces[1].Surface != 2 {
		t.Errorf("Surfaces = %+v", lane.Surfaces)
	}
	if v.Reads[1].Summary.ErrorRate != nil {
		t.Errorf("read 2 ErrorRate = %v, want nil", *v.Reads[1].Summary.ErrorRate)
	}
	if len(v.Index) != 1 || v.Index[0].MappedReadsCV != nil || *v.Index[0].PercentMapped != 50 {
		t.Errorf("Index = %+v", v.Index)
	}
	if len(v.QScores) != 1 || v.QScores[0].P90 != 37 {
		t.Errorf("QScores = %+v", v.QScores)
	}
}
