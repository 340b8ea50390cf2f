package summary

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// divideEpsilon is the smallest denominator divide accepts.
const divideEpsilon = 1e-9

// Summarize computes the mean, population standard deviation and median of
// values. Empty input returns the default StatValue.
func Summarize(values []float64, skipMedian bool) StatValue {
	out := NewStatValue()
	if len(values) == 0 {
		return out
	}
	out.Mean, out.StdDev = stat.PopMeanStdDev(values, nil)
	if !skipMedian {
		out.Median = median(values)
	}
	return out
}

// NanSummarize is Summarize over the non-NaN values. It also returns how many
// values were kept, which callers use as a weight when combining lanes.
func NanSummarize(values []float64, skipMedian bool) (StatValue, int) {
	kept := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			kept = append(kept, v)
		}
	}
	return Summarize(kept, skipMedian), len(kept)
}

// median returns the central value of values, averaging the two central
// values for an even count. values is not modified.
func median(values []float64) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// divide returns num/div, or 0 when div is effectively zero.
func divide(num, div float64) float64 {
	if div < divideEpsilon {
		return 0
	}
	return num / div
}

func sum(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Sum(values)
}
