package volatility

// GARCH computes the conditional-volatility tensor from the same
// uncorrelated innovation values the path integrator consumes for each
// asset: h_t = omega + alpha*(x_{t-1}*sigma)^2 + beta*h_{t-1},
// V_t = sqrt(h_t). h_0 = sigma^2.
//
// x is the raw (uncorrelated) innovation tensor, row-major (shardPaths, T,
// A) with A innermost — the same shape innovation.Generate produces with
// Correlated: false. Using the uncorrelated shocks to drive variance even
// when the path integrator uses the correlated shocks is a deliberate
// simplification that preserves each asset's own variance contract.
//
// Grounded on the per-asset-class GARCH(1,1) recursion in
// GenerateAdvancedStochasticReturns (wasm/math.go), generalized from five
// fixed asset classes to an arbitrary asset list.
func GARCH(assets []AssetParams, x []float64, shardPaths, t int) *Tensor {
	a := len(assets)
	vt := &Tensor{Data: make([]float64, shardPaths*t*a), ShardPaths: shardPaths, T: t, A: a}

	params := make([]AssetParams, a)
	for i, p := range assets {
		params[i] = p.WithDefaults()
	}

	for s := 0; s < shardPaths; s++ {
		h := make([]float64, a)
		for i, p := range params {
			h[i] = p.Sigma * p.Sigma
		}

		for step := 0; step < t; step++ {
			for asset := 0; asset < a; asset++ {
				p := params[asset]
				vol := sqrtNonNeg(h[asset])
				vt.set(s, step, asset, vol)

				shock := x[(s*t+step)*a+asset]
				h[asset] = p.Omega + p.Alpha*(shock*p.Sigma)*(shock*p.Sigma) + p.Beta*h[asset]
			}
		}
	}
	return vt
}
