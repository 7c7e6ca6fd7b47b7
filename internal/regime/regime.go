// Package regime implements the two-state (Bull/Bear) Markov chain that
// scales drift and volatility per (path, step).
package regime

import "github.com/areumfire/montecarlo-engine/internal/rng"

// State is the regime label.
type State int

const (
	Bear State = iota
	Bull
)

// Config holds the transition probabilities and multipliers. Zero-valued
// fields fall back to the package defaults via withDefaults.
type Config struct {
	PBullToBear float64 // default 0.05
	PBearToBull float64 // default 0.10

	BullDriftMult float64 // default 1.5
	BullVolMult   float64 // default 0.7
	BearDriftMult float64 // default -0.5
	BearVolMult   float64 // default 1.8
}

// Defaults give the 2-state Bull/Bear chain's baseline parameters.
func Defaults() Config {
	return Config{
		PBullToBear:   0.05,
		PBearToBull:   0.10,
		BullDriftMult: 1.5,
		BullVolMult:   0.7,
		BearDriftMult: -0.5,
		BearVolMult:   1.8,
	}
}

// withDefaults fills each zero-valued field independently, so a caller
// overriding a single knob still gets package defaults for the rest.
func (c Config) withDefaults() Config {
	d := Defaults()
	if c.PBullToBear == 0 {
		c.PBullToBear = d.PBullToBear
	}
	if c.PBearToBull == 0 {
		c.PBearToBull = d.PBearToBull
	}
	if c.BullDriftMult == 0 {
		c.BullDriftMult = d.BullDriftMult
	}
	if c.BullVolMult == 0 {
		c.BullVolMult = d.BullVolMult
	}
	if c.BearDriftMult == 0 {
		c.BearDriftMult = d.BearDriftMult
	}
	if c.BearVolMult == 0 {
		c.BearVolMult = d.BearVolMult
	}
	return c
}

// Multipliers holds the per-(path,step) drift and volatility multipliers,
// broadcast across assets, shaped (shardPaths, T) row-major.
type Multipliers struct {
	Drift      []float64
	Vol        []float64
	ShardPaths int
	T          int
}

func (m *Multipliers) at(s, t int) int { return s*m.T + t }

// DriftAt returns the drift multiplier for (path, step).
func (m *Multipliers) DriftAt(s, t int) float64 { return m.Drift[m.at(s, t)] }

// VolAt returns the volatility multiplier for (path, step).
func (m *Multipliers) VolAt(s, t int) float64 { return m.Vol[m.at(s, t)] }

// Disabled returns multipliers of 1 for every (path, step), used when the
// regime model is toggled off.
func Disabled(shardPaths, t int) *Multipliers {
	n := shardPaths * t
	drift := make([]float64, n)
	vol := make([]float64, n)
	for i := range drift {
		drift[i] = 1
		vol[i] = 1
	}
	return &Multipliers{Drift: drift, Vol: vol, ShardPaths: shardPaths, T: t}
}

// Simulate draws the regime chain for shardPaths paths over T steps,
// starting every path in Bull, and returns the broadcast multiplier
// tensors.
//
// Grounded on the two-state transition-matrix idea in
// benedict-anokye-davies-atlas-ai/internal/regime/detector.go, simplified
// to a fixed-parameter 2-state chain (no HMM re-estimation).
func Simulate(stream *rng.Stream, cfg Config, shardPaths, t int) *Multipliers {
	cfg = cfg.withDefaults()
	n := shardPaths * t
	drift := make([]float64, n)
	vol := make([]float64, n)

	for s := 0; s < shardPaths; s++ {
		state := Bull
		for step := 0; step < t; step++ {
			idx := s*t + step
			switch state {
			case Bull:
				drift[idx] = cfg.BullDriftMult
				vol[idx] = cfg.BullVolMult
				if stream.Bernoulli(cfg.PBullToBear) {
					state = Bear
				}
			case Bear:
				drift[idx] = cfg.BearDriftMult
				vol[idx] = cfg.BearVolMult
				if stream.Bernoulli(cfg.PBearToBull) {
					state = Bull
				}
			}
		}
	}
	return &Multipliers{Drift: drift, Vol: vol, ShardPaths: shardPaths, T: t}
}
