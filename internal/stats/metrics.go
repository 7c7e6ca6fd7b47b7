package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Metrics holds the per-call risk/return summary statistics.
type Metrics struct {
	MeanReturn  float64 // percent
	Volatility  float64 // percent (stdev of simple return)
	Sharpe      float64
	VaR5        float64 // percent, signed
	VaR1        float64 // percent, signed
	ExpShortfall5 float64 // percent, signed
	Skewness    float64
	Kurtosis    float64
	ProbProfit  float64 // percent
}

const riskFreeAnnual = 0.04
const tradingDaysPerYear = 252.0

// ComputeMetrics derives Metrics from the final-value distribution.
//
// simple_return[s] = (P[s,T]-V0)/V0, rf_scaled = 0.04/252 * T (not
// annualized via sqrt(252)). Skewness/kurtosis use raw (non-bias-corrected)
// central moments rather than an excess-kurtosis convention.
func ComputeMetrics(finalValues []float64, v0 float64, horizonSteps int) Metrics {
	n := len(finalValues)
	simpleReturns := make([]float64, n)
	for i, fv := range finalValues {
		simpleReturns[i] = (fv - v0) / v0
	}

	mean := meanOf(simpleReturns)
	sd := stdevOf(simpleReturns, mean)

	rfScaled := (riskFreeAnnual / tradingDaysPerYear) * float64(horizonSteps)

	sharpe := 0.0
	if sd > 0 {
		sharpe = (mean - rfScaled) / sd
	}

	sorted := Sorted(simpleReturns)
	var5 := Percentile(sorted, 5)
	var1 := Percentile(sorted, 1)
	es5 := lowerTailMean(sorted, 5)

	skew, kurt := rawMoments(simpleReturns, mean)

	profitable := 0
	for _, r := range simpleReturns {
		if r > 0 {
			profitable++
		}
	}

	return Metrics{
		MeanReturn:    mean * 100,
		Volatility:    sd * 100,
		Sharpe:        sharpe,
		VaR5:          var5 * 100,
		VaR1:          var1 * 100,
		ExpShortfall5: es5 * 100,
		Skewness:      skew,
		Kurtosis:      kurt,
		ProbProfit:    float64(profitable) / float64(n) * 100,
	}
}

func meanOf(xs []float64) float64 {
	// When every value is the same, return that value exactly: the summed
	// and divided mean can differ from it by rounding, which would leave a
	// tiny non-zero stdev where the spread is really zero.
	if len(xs) > 0 {
		same := true
		for _, x := range xs[1:] {
			if x != xs[0] {
				same = false
				break
			}
		}
		if same {
			return xs[0]
		}
	}
	return floats.Sum(xs) / float64(len(xs))
}

func stdevOf(xs []float64, mean float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	sumSq := 0.0
	for _, x := range xs {
		d := x - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(xs)))
}

// lowerTailMean averages the lower p-percent tail of a sorted slice.
func lowerTailMean(sorted []float64, p float64) float64 {
	n := len(sorted)
	cut := int(math.Ceil(float64(n) * p / 100))
	if cut < 1 {
		cut = 1
	}
	sum := 0.0
	for i := 0; i < cut; i++ {
		sum += sorted[i]
	}
	return sum / float64(cut)
}

// rawMoments computes skewness m3/m2^1.5 and kurtosis m4/m2^2 with no
// bias correction and no -3 excess-kurtosis adjustment.
func rawMoments(xs []float64, mean float64) (skew, kurt float64) {
	n := float64(len(xs))
	var m2, m3, m4 float64
	for _, x := range xs {
		d := x - mean
		d2 := d * d
		m2 += d2
		m3 += d2 * d
		m4 += d2 * d2
	}
	m2 /= n
	m3 /= n
	m4 /= n

	if m2 == 0 {
		return 0, 0
	}
	skew = m3 / math.Pow(m2, 1.5)
	kurt = m4 / (m2 * m2)
	return skew, kurt
}
