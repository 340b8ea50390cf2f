package logic

import (
	"github.com/wesleyorama2/seqsum/internal/metrics"
)

// CollapseQMetrics reduces every q-score histogram to its Q20, Q30, total
// and median and inserts the result into out. It returns the number of
// records inserted.
func CollapseQMetrics(q *metrics.Store[metrics.QRecord], bins []metrics.QScoreBin, out *metrics.Store[metrics.QCollapsedRecord]) (int, error) {
	for _, rec := range q.Records() {
		collapsed := metrics.QCollapsedRecord{
			CycleKey:     rec.CycleKey,
			Q20:          rec.TotalOverQScore(20, bins),
			Q30:          rec.TotalOverQScore(30, bins),
			Total:        rec.Sum(),
			MedianQScore: rec.Median(bins),
		}
		if err := out.Insert(collapsed); err != nil {
			return 0, err
		}
	}
	return q.Size(), nil
}
