package stats

import "sort"

// SamplePaths selects n representative paths by sorting all paths by final
// value, then picking n equally spaced indices of that ordering — a
// distribution-spanning sample, unlike sampling raw path indices.
//
// paths is numPaths rows of stepsPerPath columns, row-major. Each returned
// path is a copy of length stepsPerPath.
func SamplePaths(paths []float64, numPaths, stepsPerPath, n int) [][]float64 {
	order := make([]int, numPaths)
	for i := range order {
		order[i] = i
	}
	finalOf := func(i int) float64 { return paths[order[i]*stepsPerPath+stepsPerPath-1] }
	sort.Slice(order, func(i, j int) bool { return finalOf(i) < finalOf(j) })

	if n > numPaths {
		n = numPaths
	}

	out := make([][]float64, n)
	for k := 0; k < n; k++ {
		idx := k * (numPaths - 1) / maxInt(n-1, 1)
		src := order[idx]
		path := make([]float64, stepsPerPath)
		copy(path, paths[src*stepsPerPath:(src+1)*stepsPerPath])
		out[k] = path
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
