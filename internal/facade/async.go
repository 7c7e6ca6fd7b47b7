package facade

import "context"

// AsyncResult carries the outcome of a SimulateAsync call.
type AsyncResult struct {
	Result *Result
	Err    error
}

// SimulateAsync offloads Simulate to a background goroutine so the caller's
// event loop or request thread is not blocked.
// ctx is honored only before the job starts executing; once Simulate begins,
// the call is opaque and non-cancelable, since the tensor workload is short
// enough (seconds) that cooperative cancellation is not required.
//
// Grounded on the bounded-pool dispatch idea in
// benedict-anokye-davies-atlas-ai/internal/workers/pool.go, simplified to a
// single dispatched goroutine per call since Simulate already parallelizes
// internally across cfg.Workers shard goroutines.
func (e *Engine) SimulateAsync(ctx context.Context, assets []AssetParams, cfg SimulationConfig, correlationMatrix [][]float64) <-chan AsyncResult {
	out := make(chan AsyncResult, 1)

	go func() {
		defer close(out)

		select {
		case <-ctx.Done():
			out <- AsyncResult{Err: ctx.Err()}
			return
		default:
		}

		result, err := e.Simulate(assets, cfg, correlationMatrix)
		out <- AsyncResult{Result: result, Err: err}
	}()

	return out
}
