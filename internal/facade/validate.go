package facade

import (
	"math"

	"github.com/areumfire/montecarlo-engine/internal/simerr"
)

const weightSumTolerance = 1e-2

func validateInputs(assets []AssetParams, cfg SimulationConfig, correlationMatrix [][]float64) error {
	a := len(assets)
	if a < 1 || a > 20 {
		return &simerr.ValidationError{Field: "assets", Reason: "asset count must be in [1, 20]"}
	}

	weightSum := 0.0
	for _, asset := range assets {
		if asset.Volatility < 0 {
			return &simerr.ValidationError{Field: "volatility", Reason: "must be >= 0"}
		}
		weightSum += asset.Weight
	}
	if math.Abs(weightSum-1) > weightSumTolerance {
		return &simerr.ValidationError{Field: "weights", Reason: "must sum to 1 within tolerance 1e-2"}
	}

	if cfg.Paths < 100 || cfg.Paths > 10000 {
		return &simerr.ValidationError{Field: "paths", Reason: "must be in [100, 10000]"}
	}
	if cfg.Horizon < 1 || cfg.Horizon > 2520 {
		return &simerr.ValidationError{Field: "horizon", Reason: "must be in [1, 2520]"}
	}
	if cfg.InitialValue <= 0 {
		return &simerr.ValidationError{Field: "initialValue", Reason: "must be > 0"}
	}
	if cfg.StudentDF != 0 && cfg.StudentDF < 3 {
		return &simerr.ValidationError{Field: "studentDF", Reason: "must be >= 3"}
	}

	if correlationMatrix != nil {
		n := len(correlationMatrix)
		if n != a {
			return &simerr.ValidationError{Field: "correlation", Reason: "matrix dimension must match asset count"}
		}
		for i := 0; i < n; i++ {
			if len(correlationMatrix[i]) != n {
				return &simerr.ValidationError{Field: "correlation", Reason: "matrix must be square"}
			}
			if math.Abs(correlationMatrix[i][i]-1) > 1e-6 {
				return &simerr.ValidationError{Field: "correlation", Reason: "diagonal must be 1"}
			}
			for j := 0; j < n; j++ {
				if correlationMatrix[i][j] < -1 || correlationMatrix[i][j] > 1 {
					return &simerr.ValidationError{Field: "correlation", Reason: "entries must be in [-1, 1]"}
				}
				if math.Abs(correlationMatrix[i][j]-correlationMatrix[j][i]) > 1e-9 {
					return &simerr.ValidationError{Field: "correlation", Reason: "matrix must be symmetric"}
				}
			}
		}
	}

	cells := int64(cfg.Paths) * int64(cfg.Horizon) * int64(a)
	ceiling := cfg.MaxTensorCells
	if ceiling == 0 {
		ceiling = defaultMaxTensorCells
	}
	if cells > ceiling {
		return &simerr.ResourceLimit{Requested: cells, Ceiling: ceiling}
	}

	return nil
}
