// Package pathintegrator composes innovations, volatility, regime
// multipliers, and jumps into per-asset log-returns, aggregates them by
// weight into portfolio log-returns, and compounds the result into value
// paths.
package pathintegrator

import (
	"math"

	"github.com/areumfire/montecarlo-engine/internal/innovation"
	"github.com/areumfire/montecarlo-engine/internal/jump"
	"github.com/areumfire/montecarlo-engine/internal/regime"
	"github.com/areumfire/montecarlo-engine/internal/volatility"
	"gonum.org/v1/gonum/floats"
)

// Mode selects how the value path compounds from one step's portfolio
// log-return to the next.
type Mode int

const (
	// Exponential is the default: P[t+1] = P[t]*exp(r).
	// Guarantees strict positivity.
	Exponential Mode = iota
	// Additive reproduces the original source's naive P[t+1] = P[t]*(1+r)
	// form, retained only for output parity comparisons. Not guaranteed
	// positive.
	Additive
	// GBMLogDrift replaces the aggregate log-return with the GBM log-drift
	// form (mu - sigma^2/2) + sigma*Z before exponential compounding.
	GBMLogDrift
)

// Extensions holds the off-by-default dividend/contribution config
// extensions supplemented from original_source/.
type Extensions struct {
	DividendYield             float64
	ContributionAmount        float64
	ContributionIntervalSteps int
}

// Result holds one shard's integrated output.
type Result struct {
	// Paths is (shardPaths, T+1) row-major, Paths[s*( T+1)+t].
	Paths      []float64
	ShardPaths int
	T          int
}

// Integrate runs the path integrator for one shard.
func Integrate(
	z *innovation.Tensor,
	vol *volatility.Tensor,
	rm *regime.Multipliers,
	jumps *jump.Tensor,
	weights []float64,
	mu []float64,
	v0 float64,
	mode Mode,
	ext Extensions,
) *Result {
	shardPaths, t, a := z.ShardPaths, z.T, z.A

	paths := make([]float64, shardPaths*(t+1))

	perAssetReturn := make([]float64, a)
	perAssetSigma := make([]float64, a)
	dividendDrift := ext.DividendYield / 252

	contributionInterval := ext.ContributionIntervalSteps
	if contributionInterval <= 0 {
		contributionInterval = 21
	}

	for s := 0; s < shardPaths; s++ {
		paths[s*(t+1)+0] = v0
		current := v0

		for step := 0; step < t; step++ {
			mMu := rm.DriftAt(s, step)
			mSigma := rm.VolAt(s, step)

			for asset := 0; asset < a; asset++ {
				shock := z.At(s, step, asset)
				sigma := vol.At(s, step, asset) * mSigma
				j := jumps.At(s, step, asset)
				perAssetSigma[asset] = sigma
				perAssetReturn[asset] = shock*sigma + (mu[asset]+dividendDrift)*mMu + j
			}

			rp := floats.Dot(perAssetReturn, weights)
			if mode == GBMLogDrift {
				rp = gbmLogDriftReturn(rp, mu, weights, perAssetSigma, dividendDrift, mMu)
			}
			current = compound(current, rp, mode)

			if contributionInterval > 0 && (step+1)%contributionInterval == 0 {
				current += ext.ContributionAmount
			}

			paths[s*(t+1)+step+1] = current
		}
	}

	return &Result{Paths: paths, ShardPaths: shardPaths, T: t}
}

// gbmLogDriftReturn replaces the linear drift term of rp with the GBM
// Ito-corrected form (mu - sigma^2/2), treating the rest of rp (shock and
// jump contribution) as the stochastic term. portfolioMu is the
// weight-aggregated drift; portfolioVariance is the uncorrelated
// weight-and-volatility aggregate sum(w_i^2 * sigma_i^2), sigma_i already
// folding in the regime volatility multiplier. This is a linear
// simplification appropriate only for this opt-in alternate mode.
func gbmLogDriftReturn(rp float64, mu, weights, sigma []float64, dividendDrift, mMu float64) float64 {
	portfolioMu := floats.Dot(mu, weights) + dividendDrift
	stochasticTerm := rp - portfolioMu*mMu
	portfolioVariance := 0.0
	for i := range weights {
		portfolioVariance += weights[i] * weights[i] * sigma[i] * sigma[i]
	}
	return portfolioMu*mMu - 0.5*portfolioVariance + stochasticTerm
}

func compound(current, rp float64, mode Mode) float64 {
	switch mode {
	case Additive:
		return current * (1 + rp)
	case GBMLogDrift:
		// rp already folds in the per-asset drift/vol composition; treat it
		// as the aggregate log-drift argument directly.
		return current * math.Exp(rp)
	default:
		return current * math.Exp(rp)
	}
}
