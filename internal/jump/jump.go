// Package jump implements the Merton jump-diffusion layer: a Bernoulli-gated
// Gaussian shock added additively to per-asset log-returns.
package jump

import "github.com/areumfire/montecarlo-engine/internal/rng"

// Config holds the jump parameters. Each zero-valued field falls back to
// its package default via withDefaults.
type Config struct {
	Intensity float64 // default 0.02
	Mean      float64 // default -0.03
	Vol       float64 // default 0.04
}

// Defaults give the Merton jump-diffusion layer's baseline parameters.
func Defaults() Config {
	return Config{Intensity: 0.02, Mean: -0.03, Vol: 0.04}
}

// withDefaults fills each zero-valued field independently, so a caller
// overriding a single knob still gets package defaults for the rest.
func (c Config) withDefaults() Config {
	d := Defaults()
	if c.Intensity == 0 {
		c.Intensity = d.Intensity
	}
	if c.Mean == 0 {
		c.Mean = d.Mean
	}
	if c.Vol == 0 {
		c.Vol = d.Vol
	}
	return c
}

// Tensor holds a shard's jump values, shaped (shardPaths, T, A), row-major
// with A innermost.
type Tensor struct {
	Data       []float64
	ShardPaths int
	T          int
	A          int
}

func (jt *Tensor) At(s, t, a int) float64 { return jt.Data[(s*jt.T+t)*jt.A+a] }

// Zero returns an all-zero jump tensor, used when the jump layer is
// disabled.
func Zero(shardPaths, t, a int) *Tensor {
	return &Tensor{Data: make([]float64, shardPaths*t*a), ShardPaths: shardPaths, T: t, A: a}
}

// Simulate draws the jump tensor for shardPaths paths, T steps, and A
// assets: with probability cfg.Intensity, N(cfg.Mean, cfg.Vol^2), else 0.
func Simulate(stream *rng.Stream, cfg Config, shardPaths, t, a int) *Tensor {
	cfg = cfg.withDefaults()
	jt := Zero(shardPaths, t, a)
	for s := 0; s < shardPaths; s++ {
		for step := 0; step < t; step++ {
			for asset := 0; asset < a; asset++ {
				if stream.Bernoulli(cfg.Intensity) {
					jt.Data[(s*t+step)*a+asset] = cfg.Mean + cfg.Vol*stream.Normal()
				}
			}
		}
	}
	return jt
}
