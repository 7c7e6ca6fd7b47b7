// Package innovation generates the (S,T,A) tensor of unit-variance random
// shocks consumed by the volatility and path-integrator layers.
package innovation

import (
	"math"

	"github.com/areumfire/montecarlo-engine/internal/rng"
)

// Distribution selects the innovation-generating distribution.
type Distribution int

const (
	// Normal draws standard-normal shocks.
	Normal Distribution = iota
	// StudentT draws Student-t(df) shocks rescaled to unit variance.
	StudentT
)

// Config controls innovation generation.
type Config struct {
	Dist       Distribution
	StudentDF  float64 // used only when Dist == StudentT
	Correlated bool
	Cholesky   [][]float64 // lower-triangular factor, used only when Correlated
}

// Tensor holds one shard's worth of innovations, shaped (shardPaths, T, A),
// row-major with A innermost: idx(s,t,a) = (s*T+t)*A + a.
type Tensor struct {
	Data        []float64
	ShardPaths  int
	T           int
	A           int
}

// At returns the value for (path, step, asset) within the shard.
func (tn *Tensor) At(s, t, a int) float64 {
	return tn.Data[(s*tn.T+t)*tn.A+a]
}

func (tn *Tensor) set(s, t, a int, v float64) {
	tn.Data[(s*tn.T+t)*tn.A+a] = v
}

// Generate produces a shard's innovation tensor for shardPaths paths over T
// steps and A assets, optionally applying the Cholesky factor per (s,t) to
// induce cross-asset correlation.
//
// Grounded on GenerateCorrelatedTShocks(Seeded) (wasm/math.go,
// apps/mcp-server-go/internal/engine/seeded_rng.go): independent draws in a
// fixed asset order, then a lower-triangular matrix-vector multiply.
func Generate(stream *rng.Stream, cfg Config, shardPaths, t, a int) *Tensor {
	tn := &Tensor{Data: make([]float64, shardPaths*t*a), ShardPaths: shardPaths, T: t, A: a}

	independent := make([]float64, a)
	for s := 0; s < shardPaths; s++ {
		for step := 0; step < t; step++ {
			for asset := 0; asset < a; asset++ {
				independent[asset] = drawUnitVariance(stream, cfg)
			}

			if cfg.Correlated {
				applyCholesky(independent, cfg.Cholesky, tn, s, step, a)
			} else {
				for asset := 0; asset < a; asset++ {
					tn.set(s, step, asset, independent[asset])
				}
			}
		}
	}
	return tn
}

func drawUnitVariance(stream *rng.Stream, cfg Config) float64 {
	switch cfg.Dist {
	case StudentT:
		df := cfg.StudentDF
		raw := stream.StudentT(df)
		if df > 2 {
			return raw * math.Sqrt((df-2)/df)
		}
		return raw
	default:
		return stream.Normal()
	}
}

// Correlate applies a lower-triangular Cholesky factor to an already-drawn
// uncorrelated tensor, producing a new tensor of the same shape without any
// further RNG draws. Used so the path integrator's correlated shocks and the
// GARCH recurrence's uncorrelated shocks derive from the exact same
// underlying draws, per asset and (path, step).
func Correlate(raw *Tensor, l [][]float64) *Tensor {
	tn := &Tensor{Data: make([]float64, len(raw.Data)), ShardPaths: raw.ShardPaths, T: raw.T, A: raw.A}
	independent := make([]float64, raw.A)
	for s := 0; s < raw.ShardPaths; s++ {
		for step := 0; step < raw.T; step++ {
			for asset := 0; asset < raw.A; asset++ {
				independent[asset] = raw.At(s, step, asset)
			}
			applyCholesky(independent, l, tn, s, step, raw.A)
		}
	}
	return tn
}

func applyCholesky(independent []float64, l [][]float64, tn *Tensor, s, step, a int) {
	for i := 0; i < a; i++ {
		sum := 0.0
		for j := 0; j <= i; j++ {
			sum += l[i][j] * independent[j]
		}
		tn.set(s, step, i, sum)
	}
}
