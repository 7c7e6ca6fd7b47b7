// Package volatility computes the per-(path,step,asset) conditional
// volatility tensor, either constant or via a GARCH(1,1) recurrence.
package volatility

import "math"

// AssetParams is the per-asset GARCH(1,1) calibration; zero-valued fields
// fall back to the package defaults via WithDefaults.
type AssetParams struct {
	Sigma float64 // baseline per-step volatility, used as the GARCH seed h0 = Sigma^2
	Omega float64
	Alpha float64
	Beta  float64
}

// DefaultOmega, DefaultAlpha, DefaultBeta are the package's GARCH(1,1) defaults.
const (
	DefaultOmega = 1e-6
	DefaultAlpha = 0.10
	DefaultBeta  = 0.85
)

// WithDefaults fills zero-valued GARCH parameters with the package defaults.
func (p AssetParams) WithDefaults() AssetParams {
	if p.Omega == 0 {
		p.Omega = DefaultOmega
	}
	if p.Alpha == 0 {
		p.Alpha = DefaultAlpha
	}
	if p.Beta == 0 {
		p.Beta = DefaultBeta
	}
	return p
}

// Tensor holds a shard's volatility values, shaped (shardPaths, T, A),
// row-major with A innermost.
type Tensor struct {
	Data       []float64
	ShardPaths int
	T          int
	A          int
}

func (vt *Tensor) At(s, t, a int) float64 { return vt.Data[(s*vt.T+t)*vt.A+a] }
func (vt *Tensor) set(s, t, a int, v float64) {
	vt.Data[(s*vt.T+t)*vt.A+a] = v
}

// Constant returns a tensor broadcasting each asset's static sigma across
// every path and step.
func Constant(assets []AssetParams, shardPaths, t int) *Tensor {
	a := len(assets)
	vt := &Tensor{Data: make([]float64, shardPaths*t*a), ShardPaths: shardPaths, T: t, A: a}
	for s := 0; s < shardPaths; s++ {
		for step := 0; step < t; step++ {
			for asset := 0; asset < a; asset++ {
				vt.set(s, step, asset, assets[asset].Sigma)
			}
		}
	}
	return vt
}

func sqrtNonNeg(x float64) float64 {
	if x < 0 {
		return 0
	}
	return math.Sqrt(x)
}
