package facade

import (
	"github.com/areumfire/montecarlo-engine/internal/stats"
)

// Result is the output of a Simulate call.
type Result struct {
	RunID string `json:"runId"`

	// Paths is the full (S, T+1) tensor, row-major, present only if
	// SimulationConfig.WithPaths was set.
	Paths []float64 `json:"paths,omitempty"`
	// NumPaths and StepsPerPath describe Paths' shape even when Paths is
	// withheld, so callers can still interpret SamplePaths/FanChart.
	NumPaths     int `json:"numPaths"`
	StepsPerPath int `json:"stepsPerPath"`

	FinalValues []float64 `json:"finalValues"`

	Metrics     stats.Metrics        `json:"metrics"`
	Percentiles stats.PercentileSet  `json:"percentiles"`
	Drawdowns   stats.Drawdowns      `json:"drawdowns"`
	FanChart    []stats.FanChartPoint `json:"fanChart"`
	SamplePaths [][]float64          `json:"samplePaths"`

	// medianPath is retained internally to answer GoalProbability queries
	// without recomputing it from Paths (which may have been withheld).
	medianPath []float64
}
