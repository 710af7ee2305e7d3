package loess

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/loessgo/dataset"
	"github.com/YuminosukeSato/loessgo/pkg/errors"
)

// localFit solves the weighted least-squares polynomial for one
// neighborhood and evaluates it at x0. The x-values are centered at x0
// before building the design matrix, so the fitted value is simply the
// intercept coefficient.
//
// Rank deficiency is detected up front by counting distinct x-values among
// the neighbors that carry positive weight: a polynomial design of degree λ
// has full rank iff at least λ+1 distinct abscissas contribute. When that
// fails the degree is reduced (ultimately to the weighted mean) and the
// point is reported as degenerate, never as a fatal error.
func localFit(data dataset.Dataset, indices []int, weights []float64, degree int, x0 float64) (float64, bool) {
	// If every weight is zero (possible after aggressive robustness
	// reweighting) fall back to uniform weights over the neighborhood.
	var sumW float64
	for _, w := range weights {
		sumW += w
	}
	if sumW == 0 {
		weights = make([]float64, len(indices))
		for j := range weights {
			weights[j] = 1
		}
	}

	effDegree := degree
	if distinct := distinctWeightedX(data, indices, weights); distinct-1 < effDegree {
		effDegree = distinct - 1
		if effDegree < 0 {
			effDegree = 0
		}
	}

	degenerate := effDegree < degree
	if degenerate {
		errors.Warn(errors.NewDegenerateNeighborhoodWarning(
			x0, degree, effDegree, "not enough distinct x-values in neighborhood"))
	}

	if effDegree == 0 {
		return weightedMean(data, indices, weights), degenerate
	}

	yHat, err := solvePolynomial(data, indices, weights, effDegree, x0)
	if err != nil {
		// Near-singular design despite the distinct-x check. Recover with
		// the weighted mean and flag the point.
		errors.Warn(errors.NewDegenerateNeighborhoodWarning(
			x0, degree, 0, "local design matrix is numerically singular"))
		return weightedMean(data, indices, weights), true
	}
	return yHat, degenerate
}

// solvePolynomial fits Σ w_i (y_i - P(x_i))² by scaling each design row and
// observation by sqrt(w_i) and solving the plain least-squares system via
// QR factorization.
func solvePolynomial(data dataset.Dataset, indices []int, weights []float64, degree int, x0 float64) (float64, error) {
	k := len(indices)
	cols := degree + 1

	A := mat.NewDense(k, cols, nil)
	b := mat.NewVecDense(k, nil)
	for j, idx := range indices {
		sw := math.Sqrt(weights[j])
		t := data[idx].X - x0
		pow := 1.0
		for c := 0; c < cols; c++ {
			A.Set(j, c, sw*pow)
			pow *= t
		}
		b.SetVec(j, sw*data[idx].Y)
	}

	var qr mat.QR
	qr.Factorize(A)

	coef := mat.NewDense(cols, 1, nil)
	if err := qr.SolveTo(coef, false, b); err != nil {
		return 0, errors.Wrap(errors.ErrSingularMatrix, "loess.solvePolynomial")
	}

	// Centered design: P(x0) is the constant term.
	yHat := coef.At(0, 0)
	if err := errors.CheckScalar("loess.solvePolynomial", yHat); err != nil {
		return 0, err
	}
	return yHat, nil
}

// weightedMean is the degree-0 fit: Σ w_i y_i / Σ w_i.
func weightedMean(data dataset.Dataset, indices []int, weights []float64) float64 {
	var num, den float64
	for j, idx := range indices {
		num += weights[j] * data[idx].Y
		den += weights[j]
	}
	if den == 0 {
		// Unreachable after the uniform-weight fallback, kept as a guard.
		return 0
	}
	return num / den
}

// distinctWeightedX counts distinct x-values among neighbors with positive
// weight.
func distinctWeightedX(data dataset.Dataset, indices []int, weights []float64) int {
	seen := make(map[float64]struct{}, len(indices))
	for j, idx := range indices {
		if weights[j] <= 0 {
			continue
		}
		seen[data[idx].X] = struct{}{}
	}
	return len(seen)
}
