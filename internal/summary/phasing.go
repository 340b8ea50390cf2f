package summary

import (
	"github.com/wesleyorama2/seqsum/internal/metrics"
	"github.com/wesleyorama2/seqsum/pkg/metricid"
)

// phasingField pairs a dynamic phasing value with the statistic it fills.
type phasingField struct {
	value func(metrics.DynamicPhasingRecord) float64
	stat  func(*StatSummary) *StatValue
}

var phasingFields = []phasingField{
	{
		func(r metrics.DynamicPhasingRecord) float64 { return r.PhasingSlope },
		func(s *StatSummary) *StatValue { return &s.PhasingSlope },
	},
	{
		func(r metrics.DynamicPhasingRecord) float64 { return r.PhasingOffset },
		func(s *StatSummary) *StatValue { return &s.PhasingOffset },
	},
	{
		func(r metrics.DynamicPhasingRecord) float64 { return r.PrephasingSlope },
		func(s *StatSummary) *StatValue { return &s.PrephasingSlope },
	},
	{
		func(r metrics.DynamicPhasingRecord) float64 { return r.PrephasingOffset },
		func(s *StatSummary) *StatValue { return &s.PrephasingOffset },
	},
}

// SummarizePhasingMetrics fills the phasing and prephasing slope and offset
// statistics of every lane and surface from the dynamic phasing fits.
func SummarizePhasingMetrics(store *metrics.Store[metrics.DynamicPhasingRecord],
	method metricid.NamingMethod,
	summary *RunSummary,
	skipMedian bool) error {
	if store.Empty() || summary.Empty() {
		return nil
	}

	tileCount := maxTilesPerLane(store)
	laneBuckets := make([]*Bucket, len(phasingFields))
	surfaceBuckets := make([]*Bucket, len(phasingFields))
	for i := range phasingFields {
		laneBuckets[i] = NewBucket(summary.Size(), summary.LaneCount, 1)
		laneBuckets[i].Reserve(tileCount)
		surfaceBuckets[i] = NewBucket(summary.Size(), summary.LaneCount, summary.SurfaceCount)
		surfaceBuckets[i].Reserve(tileCount)
	}

	for _, rec := range store.Records() {
		if rec.Read() < 1 || rec.Read() > summary.Size() {
			return readOutOfBounds(rec.Read(), rec.Lane(), rec.Tile(), summary.Size())
		}
		lane, err := checkLane(rec.Lane(), rec.Tile(), summary.LaneCount)
		if err != nil {
			return err
		}
		read := rec.Read() - 1
		sf, hasSurface := surfaceIndex(metricid.Surface(rec.Tile(), method), summary.SurfaceCount)
		for i, f := range phasingFields {
			v := f.value(rec)
			laneBuckets[i].Push(read, lane, 0, v)
			if hasSurface {
				surfaceBuckets[i].Push(read, lane, sf, v)
			}
		}
	}

	for r := range summary.Reads {
		for l := range summary.Reads[r].Lanes {
			lane := &summary.Reads[r].Lanes[l]
			for i, f := range phasingFields {
				*f.stat(&lane.StatSummary) = Summarize(laneBuckets[i].At(r, l, 0), skipMedian)
				for sf := range lane.Surfaces {
					*f.stat(&lane.Surfaces[sf].StatSummary) = Summarize(surfaceBuckets[i].At(r, l, sf), skipMedian)
				}
			}
		}
	}
	return nil
}
