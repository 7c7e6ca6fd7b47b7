package correlation

import (
	"github.com/areumfire/montecarlo-engine/internal/simerr"
	"gonum.org/v1/gonum/mat"
)

const eigenvalueFloor = 1e-8

// Factorize returns the lower-triangular Cholesky factor L such that
// L*L^T = C. On a non-positive-semidefinite C it repairs the matrix via
// symmetric eigendecomposition (clamping eigenvalues to >= eigenvalueFloor)
// and retries once. If that still fails it returns NumericError.
//
// Grounded on wasm/math.go's CholeskyDecomposition; that file's own
// failure path is a single diagonal-regularization retry, which this
// eigendecomposition repair supersedes (see DESIGN.md).
func Factorize(c [][]float64) ([][]float64, error) {
	n := len(c)
	if n == 0 {
		return nil, &simerr.ValidationError{Field: "correlation", Reason: "matrix must be non-empty"}
	}
	for i := range c {
		if len(c[i]) != n {
			return nil, &simerr.ValidationError{Field: "correlation", Reason: "matrix must be square"}
		}
	}

	sym := toSymDense(c, n)
	if l, ok := tryCholesky(sym, n); ok {
		return l, nil
	}

	repaired, err := repairPSD(sym, n)
	if err != nil {
		return nil, err
	}
	if l, ok := tryCholesky(repaired, n); ok {
		return l, nil
	}

	return nil, &simerr.NumericError{Detail: "correlation matrix is not positive semidefinite even after eigenvalue repair"}
}

func toSymDense(c [][]float64, n int) *mat.SymDense {
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			data[i*n+j] = c[i][j]
		}
	}
	return mat.NewSymDense(n, data)
}

func tryCholesky(sym *mat.SymDense, n int) ([][]float64, bool) {
	var chol mat.Cholesky
	if !chol.Factorize(sym) {
		return nil, false
	}
	var l mat.TriDense
	chol.LTo(&l)

	result := make([][]float64, n)
	for i := 0; i < n; i++ {
		result[i] = make([]float64, n)
		for j := 0; j <= i; j++ {
			result[i][j] = l.At(i, j)
		}
	}
	return result, true
}

// repairPSD clamps the eigenvalues of sym to >= eigenvalueFloor and
// reassembles C' = Q diag(lambda') Q^T.
func repairPSD(sym *mat.SymDense, n int) (*mat.SymDense, error) {
	var eig mat.EigenSym
	if !eig.Factorize(sym, true) {
		return nil, &simerr.NumericError{Detail: "eigendecomposition of correlation matrix failed to converge"}
	}

	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	clamped := make([]float64, n)
	for i, v := range values {
		if v < eigenvalueFloor {
			v = eigenvalueFloor
		}
		clamped[i] = v
	}

	// C' = Q * diag(lambda') * Q^T
	diag := mat.NewDiagDense(n, clamped)
	var qd mat.Dense
	qd.Mul(&vectors, diag)
	var reassembled mat.Dense
	reassembled.Mul(&qd, vectors.T())

	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			data[i*n+j] = reassembled.At(i, j)
		}
	}
	return mat.NewSymDense(n, data), nil
}
