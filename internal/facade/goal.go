package facade

import "github.com/areumfire/montecarlo-engine/internal/stats"

// GoalReport mirrors stats.GoalReport at the facade boundary.
type GoalReport = stats.GoalReport

// GoalProbability returns P(final >= target), the success count, the total
// path count, the target, and the first step at which the elementwise
// median path reaches target (nil if it never does).
func GoalProbability(result *Result, target float64) GoalReport {
	return stats.GoalProbability(result.FinalValues, result.medianPath, target)
}
