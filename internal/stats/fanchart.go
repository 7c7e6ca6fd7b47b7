package stats

// FanChartPoint is one time-grid sample of the path-value distribution.
type FanChartPoint struct {
	Step                   int
	P10, P25, P50, P75, P90 float64
}

// ComputeFanChart down-samples paths (numPaths rows of stepsPerPath columns)
// at strides of max(1, floor((stepsPerPath-1)/50)), reporting the
// {10,25,50,75,90} percentiles of the value distribution at each sampled
// step.
func ComputeFanChart(paths []float64, numPaths, stepsPerPath int) []FanChartPoint {
	stride := (stepsPerPath - 1) / 50
	if stride < 1 {
		stride = 1
	}

	var points []FanChartPoint
	column := make([]float64, numPaths)

	for t := 0; t < stepsPerPath; t += stride {
		for s := 0; s < numPaths; s++ {
			column[s] = paths[s*stepsPerPath+t]
		}
		sorted := Sorted(column)
		points = append(points, FanChartPoint{
			Step: t,
			P10:  Percentile(sorted, 10),
			P25:  Percentile(sorted, 25),
			P50:  Percentile(sorted, 50),
			P75:  Percentile(sorted, 75),
			P90:  Percentile(sorted, 90),
		})
	}

	if points[len(points)-1].Step != stepsPerPath-1 {
		last := stepsPerPath - 1
		for s := 0; s < numPaths; s++ {
			column[s] = paths[s*stepsPerPath+last]
		}
		sorted := Sorted(column)
		points = append(points, FanChartPoint{
			Step: last,
			P10:  Percentile(sorted, 10),
			P25:  Percentile(sorted, 25),
			P50:  Percentile(sorted, 50),
			P75:  Percentile(sorted, 75),
			P90:  Percentile(sorted, 90),
		})
	}

	return points
}
