package analytics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// round1 rounds to one decimal place, the precision every emitted aggregate
// uses.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// quantile computes the q-th quantile of sorted values using linear
// interpolation at position (n-1)*q. gonum's stat.Quantile offers the
// empirical and harmonic definitions but not this interpolation rule, so it
// is written out here.
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	pos := float64(n-1) * q
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// quantileOf sorts a copy of values and returns the quantile, or nil when
// there are no values.
func quantileOf(values []float64, q float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return floatPtr(round1(quantile(sorted, q)))
}

// meanOf returns the rounded mean, or nil when there are no values.
func meanOf(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	return floatPtr(round1(stat.Mean(values, nil)))
}

// stdDevOf returns the rounded sample standard deviation (n-1 denominator),
// or nil with fewer than two values.
func stdDevOf(values []float64) *float64 {
	if len(values) < 2 {
		return nil
	}
	return floatPtr(round1(stat.StdDev(values, nil)))
}

// pearson returns the Pearson correlation of the paired values, and false
// when the correlation is undefined: fewer than three pairs, or zero
// variance in either axis.
func pearson(x, y []float64) (float64, bool) {
	if len(x) != len(y) || len(x) < 3 {
		return 0, false
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
