package logic

import (
	"testing"

	"github.com/wesleyorama2/seqsum/internal/metrics"
)

func qAt(cycle int, hist []uint32) metrics.QRecord {
	return metrics.QRecord{CycleKey: metrics.AtCycle(1, 1101, cycle), Histogram: hist}
}

func TestCollapseQMetrics(t *testing.T) {
	hist := make([]uint32, 40)
	hist[9] = 10  // Q10
	hist[24] = 20 // Q25
	hist[34] = 70 // Q35
	q := metrics.NewStore[metrics.QRecord]()
	if err := q.Insert(qAt(1, hist)); err != nil {
		t.Fatal(err)
	}
	out := metrics.NewStore[metrics.QCollapsedRecord]()

	n, err := CollapseQMetrics(q, nil, out)
	if err != nil {
		t.Fatalf("CollapseQMetrics() error = %v", err)
	}
	if n != 1 {
		t.Errorf("inserted = %d, want 1", n)
	}
	got, err := out.GetMetric(1, 1101, 1)
	if err != nil {
		t.Fatalf("GetMetric() error = %v", err)
	}
	want := metrics.QCollapsedRecord{CycleKey: metrics.AtCycle(1, 1101, 1), Q20: 90, Q30: 70, Total: 100, MedianQScore: 35}
	if got != want {
		t.Errorf("collapsed = %+v, want %+v", got, want)
	}
}

func TestCollapseQMetrics_Binned(t *testing.T) {
	bins := []metrics.QScoreBin{
		{Lower: 1, Upper: 19, Value: 14},
		{Lower: 20, Upper: 29, Value: 25},
		{Lower: 30, Upper: 40, Value: 37},
	}
	q := metrics.NewStore[metrics.QRecord]()
	if err := q.Insert(qAt(2, []uint32{5, 15, 30})); err != nil {
		t.Fatal(err)
	}
	out := metrics.NewStore[metrics.QCollapsedRecord]()

	if _, err := CollapseQMetrics(q, bins, out); err != nil {
		t.Fatalf("CollapseQMetrics() error = %v", err)
	}
	got := out.Records()[0]
	if got.Q20 != 45 || got.Q30 != 30 || got.Total != 50 || got.MedianQScore != 37 {
		t.Errorf("collapsed = %+v, want Q20 45, Q30 30, total 50, median 37", got)
	}
}

func TestQScoreDistribution(t *testing.T) {
	q := metrics.NewStore[metrics.QRecord]()
	hist := make([]uint32, 40)
	hist[19] = 50 // Q20
	hist[37] = 50 // Q38
	for c := 1; c <= 4; c++ {
		if err := q.Insert(qAt(c, hist)); err != nil {
			t.Fatal(err)
		}
	}

	dist, err := QScoreDistribution(q, nil)
	if err != nil {
		t.Fatalf("QScoreDistribution() error = %v", err)
	}
	if len(dist) != 1 {
		t.Fatalf("len(dist) = %d, want 1", len(dist))
	}
	got := dist[0]
	if got.Lane != 1 || got.Calls != 400 {
		t.Errorf("lane/calls = (%d, %d), want (1, 400)", got.Lane, got.Calls)
	}
	if got.P50 != 20 {
		t.Errorf("P50 = %d, want 20", got.P50)
	}
	if got.P90 != 38 {
		t.Errorf("P90 = %d, want 38", got.P90)
	}
}
