package logic

import (
	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/wesleyorama2/seqsum/internal/metrics"
)

// maxQScore bounds the q-score histogram.
const maxQScore = 100

// QScorePercentiles describes the q-score distribution of one lane.
type QScorePercentiles struct {
	Lane  int
	Calls int64
	P50   int64
	P90   int64
}

// QScoreDistribution merges the q-score histograms of every tile and cycle
// of each lane and reports the median and 90th percentile q-score. Binned
// histograms count each bin at its reported value. Lanes without calls are
// omitted.
func QScoreDistribution(q *metrics.Store[metrics.QRecord], bins []metrics.QScoreBin) ([]QScorePercentiles, error) {
	var out []QScorePercentiles
	for _, lane := range q.Lanes() {
		hist := hdrhistogram.New(1, maxQScore, 3)
		for _, rec := range q.MetricsForLane(lane) {
			for i, count := range rec.Histogram {
				if count == 0 {
					continue
				}
				value := int64(i + 1)
				if len(bins) > 0 {
					if i >= len(bins) {
						continue
					}
					value = int64(bins[i].Value)
				}
				if err := hist.RecordValues(value, int64(count)); err != nil {
					return nil, err
				}
			}
		}
		if hist.TotalCount() == 0 {
			continue
		}
		out = append(out, QScorePercentiles{
			Lane:  lane,
			Calls: hist.TotalCount(),
			P50:   hist.ValueAtQuantile(50),
			P90:   hist.ValueAtQuantile(90),
		})
	}
	return out, nil
}
