package metrics

import "math"

// QScoreBin maps a range of q-scores onto one reported value.
type QScoreBin struct {
	Lower int
	Upper int
	Value int
}

// Sum returns the number of base calls in the histogram.
func (r QRecord) Sum() uint64 {
	var total uint64
	for _, c := range r.Histogram {
		total += uint64(c)
	}
	return total
}

// TotalOverQScore returns the number of calls with a q-score of at least q.
//
// Unbinned histograms store the count for Q=i+1 at index i. Binned
// histograms count every bin whose value is at least q.
func (r QRecord) TotalOverQScore(q int, bins []QScoreBin) uint64 {
	var total uint64
	if len(bins) == 0 {
		start := q - 1
		if start < 0 {
			start = 0
		}
		for i := start; i < len(r.Histogram); i++ {
			total += uint64(r.Histogram[i])
		}
		return total
	}
	for i, bin := range bins {
		if i < len(r.Histogram) && bin.Value >= q {
			total += uint64(r.Histogram[i])
		}
	}
	return total
}

// Median returns the median q-score of the histogram.
//
// The median position is total/2+1 for even totals and (total+1)/2 for odd
// ones. A binned histogram reports the bin value, or MaxInt32 when the
// position falls past the last bin.
func (r QRecord) Median(bins []QScoreBin) int {
	total := r.Sum()
	var position uint64
	if total%2 == 0 {
		position = total/2 + 1
	} else {
		position = (total + 1) / 2
	}
	var sum uint64
	i := 0
	for ; i < len(r.Histogram); i++ {
		sum += uint64(r.Histogram[i])
		if sum >= position {
			break
		}
	}
	if len(bins) == 0 {
		return i + 1
	}
	if i < len(bins) {
		return bins[i].Value
	}
	return math.MaxInt32
}
