package stats

import "gonum.org/v1/gonum/floats"

// Drawdowns aggregates the per-path maximum-drawdown distribution. All
// values are <= 0 (drawdowns are non-positive).
type Drawdowns struct {
	Median   float64
	P10Worst float64 // 10th percentile, i.e. the worst-10% boundary
	P5Worst  float64 // 5th percentile, i.e. the worst-5% boundary
	Worst    float64 // absolute minimum (most negative)
	Mean     float64
}

// MaxDrawdownPerPath computes, for each of the S paths stored row-major in
// paths (S rows of stepsPerPath columns), the minimum over t of
// (P[t] - running_max(P[0..t])) / running_max(P[0..t]).
func MaxDrawdownPerPath(paths []float64, numPaths, stepsPerPath int) []float64 {
	out := make([]float64, numPaths)
	for s := 0; s < numPaths; s++ {
		base := s * stepsPerPath
		peak := paths[base]
		maxDD := 0.0
		for t := 0; t < stepsPerPath; t++ {
			v := paths[base+t]
			if v > peak {
				peak = v
			}
			if peak > 0 {
				dd := (v - peak) / peak
				if dd < maxDD {
					maxDD = dd
				}
			}
		}
		out[s] = maxDD
	}
	return out
}

// ComputeDrawdowns aggregates a slice of per-path max drawdowns.
func ComputeDrawdowns(perPathMaxDD []float64) Drawdowns {
	sorted := Sorted(perPathMaxDD)
	n := len(sorted)

	return Drawdowns{
		Median:   Percentile(sorted, 50),
		P10Worst: Percentile(sorted, 10),
		P5Worst:  Percentile(sorted, 5),
		Worst:    sorted[0],
		Mean:     floats.Sum(sorted) / float64(n),
	}
}
