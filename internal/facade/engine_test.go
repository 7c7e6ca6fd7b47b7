package facade_test

import (
	"math"
	"testing"

	"github.com/areumfire/montecarlo-engine/internal/correlation"
	"github.com/areumfire/montecarlo-engine/internal/facade"
	"github.com/areumfire/montecarlo-engine/internal/jump"
)

func seed(v int64) *int64 { return &v }

func allTogglesOffConfig() facade.SimulationConfig {
	return facade.SimulationConfig{
		InitialValue: 10000,
		Horizon:      252,
		Paths:        1000,
		Seed:         seed(1),
	}
}

// --- Core invariants that must hold for every call ---

func TestInvariantShapeAndInitialValue(t *testing.T) {
	e := facade.NewEngine(nil)
	assets := []facade.AssetParams{{ID: "a", Weight: 1, Mean: 0.0003, Volatility: 0.01}}
	cfg := allTogglesOffConfig()
	cfg.WithPaths = true
	res, err := e.Simulate(assets, cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.StepsPerPath != cfg.Horizon+1 {
		t.Errorf("stepsPerPath = %v, want %v", res.StepsPerPath, cfg.Horizon+1)
	}
	for s := 0; s < res.NumPaths; s++ {
		if res.Paths[s*res.StepsPerPath] != cfg.InitialValue {
			t.Fatalf("path %d does not start at V0", s)
		}
		if res.Paths[s*res.StepsPerPath+res.StepsPerPath-1] != res.FinalValues[s] {
			t.Fatalf("path %d final value mismatch", s)
		}
	}
}

func TestInvariantPositivityAndFiniteness(t *testing.T) {
	e := facade.NewEngine(nil)
	assets := []facade.AssetParams{
		{ID: "a", Weight: 0.6, Mean: 0.0004, Volatility: 0.02, Class: correlation.Equity},
		{ID: "b", Weight: 0.4, Mean: 0.0001, Volatility: 0.01, Class: correlation.Bond},
	}
	cfg := facade.DefaultSimulationConfig()
	cfg.Paths = 500
	cfg.Horizon = 100
	cfg.Seed = seed(7)
	cfg.WithPaths = true
	res, err := e.Simulate(assets, cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, v := range res.Paths {
		if v <= 0 {
			t.Fatalf("non-positive path value: %v", v)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite path value: %v", v)
		}
	}
}

func TestInvariantPercentileMonotonicity(t *testing.T) {
	e := facade.NewEngine(nil)
	assets := []facade.AssetParams{{ID: "a", Weight: 1, Mean: 0.0003, Volatility: 0.015}}
	cfg := facade.DefaultSimulationConfig()
	cfg.Paths = 2000
	cfg.Seed = seed(2)
	res, err := e.Simulate(assets, cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := res.Percentiles
	if !(p.Min <= p.P5 && p.P5 <= p.P10 && p.P10 <= p.P25 && p.P25 <= p.P50 && p.P50 <= p.P75 && p.P75 <= p.P90 && p.P90 <= p.P95 && p.P95 <= p.Max) {
		t.Errorf("percentile set not monotone: %+v", p)
	}
}

func TestInvariantDrawdownSign(t *testing.T) {
	e := facade.NewEngine(nil)
	assets := []facade.AssetParams{{ID: "a", Weight: 1, Mean: 0.0002, Volatility: 0.02}}
	cfg := facade.DefaultSimulationConfig()
	cfg.Paths = 500
	cfg.Seed = seed(3)
	res, err := e.Simulate(assets, cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d := res.Drawdowns
	for _, v := range []float64{d.Median, d.P10Worst, d.P5Worst, d.Worst, d.Mean} {
		if v > 0 || v < -1 {
			t.Errorf("drawdown value out of [-1, 0]: %v", v)
		}
	}
}

func TestInvariantWeightsInvariantUnderRenormalization(t *testing.T) {
	e := facade.NewEngine(nil)
	base := []facade.AssetParams{
		{ID: "a", Weight: 0.6, Mean: 0.0004, Volatility: 0.015},
		{ID: "b", Weight: 0.4, Mean: 0.0001, Volatility: 0.008},
	}
	scaled := []facade.AssetParams{
		{ID: "a", Weight: 6, Mean: 0.0004, Volatility: 0.015},
		{ID: "b", Weight: 4, Mean: 0.0001, Volatility: 0.008},
	}
	cfg := allTogglesOffConfig()
	cfg.Seed = seed(11)

	r1, err := e.Simulate(base, cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r2, err := e.Simulate(scaled, cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for s := range r1.FinalValues {
		if math.Abs(r1.FinalValues[s]-r2.FinalValues[s]) > 1e-6 {
			t.Fatalf("final value %d diverges after weight rescaling: %v vs %v", s, r1.FinalValues[s], r2.FinalValues[s])
		}
	}
}

func TestInvariantDeterminismUnderFixedSeed(t *testing.T) {
	e := facade.NewEngine(nil)
	assets := []facade.AssetParams{
		{ID: "a", Weight: 0.6, Mean: 0.0004, Volatility: 0.015, Class: correlation.Equity},
		{ID: "b", Weight: 0.4, Mean: 0.0001, Volatility: 0.008, Class: correlation.Bond},
	}
	cfg := facade.DefaultSimulationConfig()
	cfg.Paths = 500
	cfg.Seed = seed(123)

	r1, err := e.Simulate(assets, cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r2, err := e.Simulate(assets, cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for s := range r1.FinalValues {
		if r1.FinalValues[s] != r2.FinalValues[s] {
			t.Fatalf("final value %d not deterministic under a fixed seed: %v vs %v", s, r1.FinalValues[s], r2.FinalValues[s])
		}
	}
}

func TestInvariantSeedIndependenceAgreesWithinStderr(t *testing.T) {
	e := facade.NewEngine(nil)
	assets := []facade.AssetParams{{ID: "a", Weight: 1, Mean: 0.0003, Volatility: 0.015}}
	cfg := facade.DefaultSimulationConfig()
	cfg.Paths = 10000
	cfg.Seed = seed(1001)
	r1, err := e.Simulate(assets, cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg.Seed = seed(2002)
	r2, err := e.Simulate(assets, cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mean1, sd1 := meanAndStdev(r1.FinalValues)
	mean2, _ := meanAndStdev(r2.FinalValues)
	stderr := sd1 / math.Sqrt(float64(len(r1.FinalValues)))
	if math.Abs(mean1-mean2) > 3*stderr {
		t.Errorf("means across independent seeds diverge beyond 3*stderr: %v vs %v (stderr=%v)", mean1, mean2, stderr)
	}
}

func TestInvariantAllTogglesOffReducesToLognormalDiffusion(t *testing.T) {
	e := facade.NewEngine(nil)
	mu := []float64{0.0004, 0.0001}
	w := []float64{0.6, 0.4}
	sigma := []float64{0.015, 0.008}
	assets := []facade.AssetParams{
		{ID: "a", Weight: w[0], Mean: mu[0], Volatility: sigma[0]},
		{ID: "b", Weight: w[1], Mean: mu[1], Volatility: sigma[1]},
	}
	cfg := allTogglesOffConfig()
	cfg.Paths = 10000
	cfg.Seed = seed(55)
	res, err := e.Simulate(assets, cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// With no correlation, each asset's per-step shock is independent, so
	// the portfolio's per-step log-return variance is the weighted sum of
	// squared per-asset vols. E[exp(X)] for X ~ N(m, v) is exp(m + v/2);
	// the v/2 term is Jensen's convexity correction on top of the naive
	// exp(weighted mu * T) closed form, small enough here to stay within
	// a 2% tolerance for this modest-vol diversified portfolio.
	weightedMu := w[0]*mu[0] + w[1]*mu[1]
	portfolioVariancePerStep := w[0]*w[0]*sigma[0]*sigma[0] + w[1]*w[1]*sigma[1]*sigma[1]
	wantRatio := math.Exp(weightedMu*float64(cfg.Horizon) + 0.5*portfolioVariancePerStep*float64(cfg.Horizon))

	mean, _ := meanAndStdev(res.FinalValues)
	gotRatio := mean / cfg.InitialValue

	if math.Abs(gotRatio-wantRatio)/wantRatio > 0.02 {
		t.Errorf("E[P_T]/V0 = %v, want ~%v within 2%%", gotRatio, wantRatio)
	}
}

func TestInvariantGoalProbabilityMonotoneInTarget(t *testing.T) {
	e := facade.NewEngine(nil)
	assets := []facade.AssetParams{
		{ID: "a", Weight: 0.6, Mean: 0.0004, Volatility: 0.012, Class: correlation.Equity},
		{ID: "b", Weight: 0.4, Mean: 0.0001, Volatility: 0.004, Class: correlation.Bond},
	}
	cfg := facade.SimulationConfig{InitialValue: 10000, Horizon: 252, Paths: 2000, UseCorrelation: true, Seed: seed(9)}
	res, err := e.Simulate(assets, cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	low := facade.GoalProbability(res, 9000)
	high := facade.GoalProbability(res, 15000)
	if high.Probability > low.Probability {
		t.Errorf("goal probability not monotone in target: P(>=9000)=%v, P(>=15000)=%v", low.Probability, high.Probability)
	}
}

func meanAndStdev(xs []float64) (float64, float64) {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))
	sqSum := 0.0
	for _, x := range xs {
		d := x - mean
		sqSum += d * d
	}
	return mean, math.Sqrt(sqSum / float64(len(xs)-1))
}

// --- End-to-end portfolio scenarios ---

func TestScenarioS1SingleAssetZeroVol(t *testing.T) {
	e := facade.NewEngine(nil)
	assets := []facade.AssetParams{{ID: "a", Weight: 1, Mean: 0.0004, Volatility: 0}}
	cfg := facade.SimulationConfig{InitialValue: 10000, Horizon: 252, Paths: 1000, Seed: seed(1)}
	res, err := e.Simulate(assets, cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 10000 * math.Exp(0.0004*252)
	for s, v := range res.FinalValues {
		if math.Abs(v-want) > 1e-4 {
			t.Fatalf("path %d final value = %v, want %v", s, v, want)
		}
	}
	if res.Metrics.Volatility != 0 {
		t.Errorf("volatility = %v, want 0", res.Metrics.Volatility)
	}
	if res.Metrics.Sharpe != 0 {
		t.Errorf("sharpe = %v, want 0 by convention", res.Metrics.Sharpe)
	}
	if res.Metrics.VaR5 != res.Metrics.VaR1 {
		t.Errorf("VaR5 (%v) should equal VaR1 (%v)", res.Metrics.VaR5, res.Metrics.VaR1)
	}
}

// s2Correlation is the scenario's explicit equity-bond correlation of -0.2.
var s2Correlation = [][]float64{{1, -0.2}, {-0.2, 1}}

func s2Config() (assets []facade.AssetParams, cfg facade.SimulationConfig) {
	assets = []facade.AssetParams{
		{ID: "equity", Weight: 0.6, Mean: 0.0004, Volatility: 0.012, Class: correlation.Equity},
		{ID: "bond", Weight: 0.4, Mean: 0.0001, Volatility: 0.004, Class: correlation.Bond},
	}
	cfg = facade.SimulationConfig{
		InitialValue:   10000,
		Horizon:        252,
		Paths:          5000,
		UseCorrelation: true,
		Seed:           seed(42),
	}
	return
}

func TestScenarioS2TwoAssetNoAdvancedFeatures(t *testing.T) {
	e := facade.NewEngine(nil)
	assets, cfg := s2Config()
	res, err := e.Simulate(assets, cfg, s2Correlation)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mean, _ := meanAndStdev(res.FinalValues)
	if mean < 10600 || mean > 10900 {
		t.Errorf("mean final value = %v, want in [10600, 10900]", mean)
	}
	if res.Metrics.ProbProfit < 55 || res.Metrics.ProbProfit > 75 {
		t.Errorf("probProfit = %v, want in [55, 75]", res.Metrics.ProbProfit)
	}
	if res.Drawdowns.Median < -0.12 || res.Drawdowns.Median > -0.04 {
		t.Errorf("median max drawdown = %v, want in [-0.12, -0.04]", res.Drawdowns.Median)
	}
}

func TestScenarioS3FatTailStressWorsensVaRAndKurtosis(t *testing.T) {
	e := facade.NewEngine(nil)
	assets, cfg := s2Config()
	baseline, err := e.Simulate(assets, cfg, s2Correlation)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.UseFatTails = true
	cfg.StudentDF = 5
	cfg.UseJumps = true
	cfg.JumpConfig = jump.Defaults()
	stressed, err := e.Simulate(assets, cfg, s2Correlation)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stressed.Metrics.VaR5 > baseline.Metrics.VaR5-1.0 {
		t.Errorf("stressed VaR5 (%v) should be at least 1pp worse than baseline (%v)", stressed.Metrics.VaR5, baseline.Metrics.VaR5)
	}
	if stressed.Metrics.Kurtosis <= 3.5 {
		t.Errorf("stressed kurtosis = %v, want > 3.5", stressed.Metrics.Kurtosis)
	}
}

func TestScenarioS4GoalQueryFarAboveMean(t *testing.T) {
	e := facade.NewEngine(nil)
	assets, cfg := s2Config()
	res, err := e.Simulate(assets, cfg, s2Correlation)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	report := facade.GoalProbability(res, 15000)
	if report.Probability >= 5 {
		t.Errorf("probability = %v, want < 5", report.Probability)
	}
	if report.MedianCrossingDay != nil {
		t.Errorf("medianCrossingDay = %v, want nil", *report.MedianCrossingDay)
	}
}

func TestScenarioS5GoalQueryNearMean(t *testing.T) {
	e := facade.NewEngine(nil)
	assets, cfg := s2Config()
	res, err := e.Simulate(assets, cfg, s2Correlation)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	report := facade.GoalProbability(res, 10500)
	if report.Probability < 45 || report.Probability > 65 {
		t.Errorf("probability = %v, want in [45, 65]", report.Probability)
	}
	if report.MedianCrossingDay == nil {
		t.Fatalf("medianCrossingDay = nil, want a value in [1, %d]", cfg.Horizon)
	}
	if *report.MedianCrossingDay < 1 || *report.MedianCrossingDay > cfg.Horizon {
		t.Errorf("medianCrossingDay = %v, want in [1, %d]", *report.MedianCrossingDay, cfg.Horizon)
	}
}

func TestScenarioS6RegimeDominanceIsBoundedAroundInitialValue(t *testing.T) {
	e := facade.NewEngine(nil)
	assets := []facade.AssetParams{{ID: "a", Weight: 1, Mean: 0, Volatility: 0.01}}
	cfg := facade.SimulationConfig{
		InitialValue: 10000,
		Horizon:      252,
		Paths:        10000,
		UseRegime:    true,
		Seed:         seed(71),
	}
	res, err := e.Simulate(assets, cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mean, _ := meanAndStdev(res.FinalValues)
	deviation := math.Abs(mean-cfg.InitialValue) / cfg.InitialValue
	if deviation > 0.03 {
		t.Errorf("mean final value = %v, deviates from V0 by %v, want <= 3%%", mean, deviation)
	}
}
