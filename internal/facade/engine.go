package facade

import (
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/areumfire/montecarlo-engine/internal/correlation"
	"github.com/areumfire/montecarlo-engine/internal/innovation"
	"github.com/areumfire/montecarlo-engine/internal/jump"
	"github.com/areumfire/montecarlo-engine/internal/pathintegrator"
	"github.com/areumfire/montecarlo-engine/internal/regime"
	"github.com/areumfire/montecarlo-engine/internal/rng"
	"github.com/areumfire/montecarlo-engine/internal/simerr"
	"github.com/areumfire/montecarlo-engine/internal/stats"
	"github.com/areumfire/montecarlo-engine/internal/volatility"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine runs Monte Carlo portfolio simulations. It holds no state across
// calls beyond its logger; it is safe for concurrent use by multiple
// goroutines, each call allocating and releasing its own tensors.
type Engine struct {
	logger *zap.Logger
}

// NewEngine constructs an Engine with the given logger. A nil logger is
// replaced with a no-op logger.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Simulate runs one Monte Carlo portfolio simulation synchronously. A nil
// correlationMatrix triggers class-tag-based synthesis when
// cfg.UseCorrelation is set.
func (e *Engine) Simulate(assets []AssetParams, cfg SimulationConfig, correlationMatrix [][]float64) (*Result, error) {
	start := time.Now()
	cfg = cfg.withDefaults()

	if err := validateInputs(assets, cfg, correlationMatrix); err != nil {
		e.logger.Warn("simulation rejected", zap.Error(err))
		return nil, err
	}

	a := len(assets)
	weights := make([]float64, a)
	mus := make([]float64, a)
	garchParams := make([]volatility.AssetParams, a)
	classes := make([]correlation.AssetClass, a)
	for i, asset := range assets {
		weights[i] = asset.Weight
		mus[i] = asset.Mean
		classes[i] = asset.Class
		omega, alpha, beta := asset.GarchOmega, asset.GarchAlpha, asset.GarchBeta
		if omega == 0 {
			omega = cfg.GarchOmega
		}
		if alpha == 0 {
			alpha = cfg.GarchAlpha
		}
		if beta == 0 {
			beta = cfg.GarchBeta
		}
		garchParams[i] = volatility.AssetParams{
			Sigma: asset.Volatility,
			Omega: omega,
			Alpha: alpha,
			Beta:  beta,
		}
	}
	normalizeWeights(weights)

	var chol [][]float64
	if cfg.UseCorrelation {
		c := correlationMatrix
		if c == nil {
			c = correlation.Synthesize(classes)
		}
		var err error
		chol, err = correlation.Factorize(c)
		if err != nil {
			e.logger.Warn("correlation factorization failed", zap.Error(err))
			return nil, err
		}
	}

	root := int64(0)
	if cfg.Seed != nil {
		root = *cfg.Seed
	} else {
		root = rng.NewRootSeed()
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > cfg.Paths {
		workers = cfg.Paths
	}

	shardResult, err := e.runShards(assets, cfg, chol, weights, mus, garchParams, root, workers)
	if err != nil {
		e.logger.Warn("simulation failed", zap.Error(err))
		return nil, err
	}

	result, err := e.aggregate(shardResult, cfg, weights, a)
	if err != nil {
		return nil, err
	}

	e.logger.Info("simulation complete",
		zap.Int("paths", cfg.Paths),
		zap.Int("horizon", cfg.Horizon),
		zap.Int("assets", a),
		zap.Duration("elapsed", time.Since(start)),
	)

	return result, nil
}

type shardOutput struct {
	paths []float64
}

func (e *Engine) runShards(
	assets []AssetParams,
	cfg SimulationConfig,
	chol [][]float64,
	weights, mus []float64,
	garchParams []volatility.AssetParams,
	root int64,
	workers int,
) ([]shardOutput, error) {
	a := len(assets)
	t := cfg.Horizon
	shardSizes := splitShards(cfg.Paths, workers)

	outputs := make([]shardOutput, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for shard := 0; shard < workers; shard++ {
		wg.Add(1)
		go func(shard int) {
			defer wg.Done()
			shardPaths := shardSizes[shard]
			if shardPaths == 0 {
				return
			}
			stream := rng.NewShard(root, shard)

			dist := innovation.Normal
			if cfg.UseFatTails {
				dist = innovation.StudentT
			}
			raw := innovation.Generate(stream, innovation.Config{Dist: dist, StudentDF: cfg.StudentDF}, shardPaths, t, a)

			var z *innovation.Tensor
			if cfg.UseCorrelation {
				z = innovation.Correlate(raw, chol)
			} else {
				z = raw
			}

			var vol *volatility.Tensor
			if cfg.UseGARCH {
				vol = volatility.GARCH(garchParams, raw.Data, shardPaths, t)
			} else {
				vol = volatility.Constant(garchParams, shardPaths, t)
			}

			var rm *regime.Multipliers
			if cfg.UseRegime {
				rm = regime.Simulate(stream, cfg.RegimeConfig, shardPaths, t)
			} else {
				rm = regime.Disabled(shardPaths, t)
			}

			var jumps *jump.Tensor
			if cfg.UseJumps {
				jumps = jump.Simulate(stream, cfg.JumpConfig, shardPaths, t, a)
			} else {
				jumps = jump.Zero(shardPaths, t, a)
			}

			ext := pathintegrator.Extensions{
				DividendYield:             cfg.DividendYield,
				ContributionAmount:        cfg.ContributionAmount,
				ContributionIntervalSteps: cfg.ContributionIntervalSteps,
			}
			integrated := pathintegrator.Integrate(z, vol, rm, jumps, weights, mus, cfg.InitialValue, cfg.PathUpdateMode, ext)

			if err := checkFinite(integrated.Paths); err != nil {
				errs[shard] = err
				return
			}

			outputs[shard] = shardOutput{paths: integrated.Paths}
		}(shard)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return outputs, nil
}

func (e *Engine) aggregate(shards []shardOutput, cfg SimulationConfig, weights []float64, a int) (*Result, error) {
	stepsPerPath := cfg.Horizon + 1
	merged := make([]float64, 0, cfg.Paths*stepsPerPath)
	for _, sh := range shards {
		merged = append(merged, sh.paths...)
	}
	numPaths := len(merged) / stepsPerPath

	finalValues := make([]float64, numPaths)
	for s := 0; s < numPaths; s++ {
		finalValues[s] = merged[s*stepsPerPath+stepsPerPath-1]
	}

	perPathDD := stats.MaxDrawdownPerPath(merged, numPaths, stepsPerPath)
	medianPath := stats.MedianPath(merged, numPaths, stepsPerPath)

	result := &Result{
		RunID:        uuid.NewString(),
		NumPaths:     numPaths,
		StepsPerPath: stepsPerPath,
		FinalValues:  finalValues,
		Metrics:      stats.ComputeMetrics(finalValues, cfg.InitialValue, cfg.Horizon),
		Percentiles:  stats.ComputePercentiles(finalValues),
		Drawdowns:    stats.ComputeDrawdowns(perPathDD),
		FanChart:     stats.ComputeFanChart(merged, numPaths, stepsPerPath),
		SamplePaths:  stats.SamplePaths(merged, numPaths, stepsPerPath, 10),
		medianPath:   medianPath,
	}
	if cfg.WithPaths {
		result.Paths = merged
	}

	return result, nil
}

func normalizeWeights(weights []float64) {
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum == 0 {
		return
	}
	for i := range weights {
		weights[i] /= sum
	}
}

func splitShards(paths, workers int) []int {
	sizes := make([]int, workers)
	base := paths / workers
	remainder := paths % workers
	for i := range sizes {
		sizes[i] = base
		if i < remainder {
			sizes[i]++
		}
	}
	return sizes
}

func checkFinite(data []float64) error {
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &simerr.NumericError{Detail: "non-finite value produced in path tensor"}
		}
	}
	return nil
}
