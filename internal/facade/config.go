// Package facade exposes the engine's public operations: Simulate,
// SimulateAsync, and GoalProbability.
package facade

import (
	"github.com/areumfire/montecarlo-engine/internal/correlation"
	"github.com/areumfire/montecarlo-engine/internal/jump"
	"github.com/areumfire/montecarlo-engine/internal/pathintegrator"
	"github.com/areumfire/montecarlo-engine/internal/regime"
)

// PathUpdateMode mirrors pathintegrator.Mode at the facade boundary so
// callers don't need to import an internal package.
type PathUpdateMode = pathintegrator.Mode

const (
	PathUpdateExponential = pathintegrator.Exponential
	PathUpdateAdditive    = pathintegrator.Additive
	PathUpdateGBMLogDrift = pathintegrator.GBMLogDrift
)

// AssetParams is one asset's simulation input.
type AssetParams struct {
	ID        string
	Weight    float64
	Mean      float64 // per-step log-drift
	Volatility float64 // per-step sigma

	// Class is used only for correlation synthesis when no explicit matrix
	// is supplied. Zero value (correlation.Equity) is a safe default.
	Class correlation.AssetClass

	// GARCH calibration; zero-valued fields fall back to
	// SimulationConfig.GarchOmega/Alpha/Beta, then to the package defaults.
	GarchOmega float64
	GarchAlpha float64
	GarchBeta  float64
}

// SimulationConfig is the explicit configuration record for one simulation
// run, replacing a loose untyped option bag with named, validated fields.
type SimulationConfig struct {
	InitialValue float64
	Horizon      int // T, trading-day steps
	Paths        int // S

	UseCorrelation bool
	UseFatTails    bool
	UseGARCH       bool
	UseRegime      bool
	UseJumps       bool

	StudentDF float64

	// Portfolio-wide GARCH calibration, used for any asset whose own
	// AssetParams.GarchOmega/Alpha/Beta is zero.
	GarchOmega, GarchAlpha, GarchBeta float64

	RegimeConfig regime.Config
	JumpConfig   jump.Config

	// Seed is nil for a seedless (OS-entropy) call.
	Seed *int64
	// Workers is the number of shard goroutines; 0 means runtime.NumCPU().
	Workers int

	PathUpdateMode PathUpdateMode

	// MaxTensorCells bounds S*T*A; 0 means the default ceiling.
	MaxTensorCells int64

	// WithPaths controls whether Result.Paths is populated for the caller
	// (derived statistics are always computed regardless).
	WithPaths bool

	// Supplemented extensions, off by default.
	DividendYield             float64
	ContributionAmount        float64
	ContributionIntervalSteps int
}

const defaultMaxTensorCells = 10000 * 2520 * 20

// DefaultSimulationConfig returns a config with every advanced-model toggle
// on and the package's numeric defaults. Callers build a config by starting
// from this and overriding only the fields they want to change; a bare
// SimulationConfig{} zero value has every toggle off, since Go's zero bool
// is false and there is no way to distinguish "unset" from "explicitly off"
// on a plain bool field.
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		InitialValue:   10000,
		Horizon:        252,
		Paths:          1000,
		UseCorrelation: true,
		UseFatTails:    true,
		UseGARCH:       true,
		UseRegime:      true,
		UseJumps:       true,
		StudentDF:      5,
		GarchOmega:     0,
		GarchAlpha:     0,
		GarchBeta:      0,
		RegimeConfig:   regime.Defaults(),
		JumpConfig:     jump.Defaults(),
		PathUpdateMode: PathUpdateExponential,
		MaxTensorCells: defaultMaxTensorCells,
	}
}

func (c SimulationConfig) withDefaults() SimulationConfig {
	d := DefaultSimulationConfig()
	if c.StudentDF == 0 {
		c.StudentDF = d.StudentDF
	}
	if c.MaxTensorCells == 0 {
		c.MaxTensorCells = d.MaxTensorCells
	}
	if c.RegimeConfig == (regime.Config{}) {
		c.RegimeConfig = d.RegimeConfig
	}
	if c.JumpConfig == (jump.Config{}) {
		c.JumpConfig = d.JumpConfig
	}
	return c
}
