package summary

import (
	"math"
	"testing"

	"github.com/wesleyorama2/seqsum/internal/metrics"
	"github.com/wesleyorama2/seqsum/internal/run"
	"github.com/wesleyorama2/seqsum/pkg/metricid"
)

func testInfo(lanes, surfaces int, reads ...run.ReadInfo) run.Info {
	return run.Info{
		Reads:        reads,
		LaneCount:    lanes,
		SurfaceCount: surfaces,
		SwathCount:   1,
		TileCount:    2,
		NamingMethod: metricid.FourDigit,
		Channels:     []string{"A", "C", "G", "T"},
	}
}

func read(number, first, last int) run.ReadInfo {
	return run.ReadInfo{Number: number, FirstCycle: first, LastCycle: last}
}

func indexRead(number, first, last int) run.ReadInfo {
	return run.ReadInfo{Number: number, FirstCycle: first, LastCycle: last, IsIndex: true}
}

func newSummary(info run.Info) *RunSummary {
	s := &RunSummary{}
	s.Initialize(info)
	return s
}

func mustInsert[T metrics.Metric](t *testing.T, s *metrics.Store[T], records ...T) {
	t.Helper()
	for _, r := range records {
		if err := s.Insert(r); err != nil {
			t.Fatalf("Insert(%+v) error = %v", r, err)
		}
	}
}

func approx(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}
