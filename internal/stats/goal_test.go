package stats_test

import (
	"testing"

	"github.com/areumfire/montecarlo-engine/internal/stats"
)

func TestGoalProbabilityAllAboveTarget(t *testing.T) {
	finalValues := []float64{110, 120, 130, 140}
	medianPath := []float64{100, 105, 115, 125}
	report := stats.GoalProbability(finalValues, medianPath, 100)
	if report.Probability != 100 {
		t.Errorf("probability = %v, want 100", report.Probability)
	}
	if report.SuccessCount != 4 || report.Total != 4 {
		t.Errorf("success/total = %d/%d, want 4/4", report.SuccessCount, report.Total)
	}
	// medianPath[0] = 100 already equals the target, so the crossing is at step 0.
	if report.MedianCrossingDay == nil || *report.MedianCrossingDay != 0 {
		t.Errorf("median crossing day = %v, want 0", report.MedianCrossingDay)
	}
}

func TestGoalProbabilityNoneAboveTarget(t *testing.T) {
	finalValues := []float64{80, 85, 90}
	medianPath := []float64{100, 95, 90}
	report := stats.GoalProbability(finalValues, medianPath, 1000)
	if report.Probability != 0 {
		t.Errorf("probability = %v, want 0", report.Probability)
	}
	if report.MedianCrossingDay != nil {
		t.Errorf("median crossing day = %v, want nil (never reached)", *report.MedianCrossingDay)
	}
}

func TestGoalProbabilityMonotoneInTarget(t *testing.T) {
	finalValues := []float64{90, 100, 110, 120, 130}
	medianPath := []float64{100, 110}
	low := stats.GoalProbability(finalValues, medianPath, 95)
	high := stats.GoalProbability(finalValues, medianPath, 115)
	if high.Probability > low.Probability {
		t.Errorf("probability should be non-increasing in target: P(>=95)=%v, P(>=115)=%v", low.Probability, high.Probability)
	}
}
