package loess

import (
	"github.com/YuminosukeSato/loessgo/dataset"
	"github.com/YuminosukeSato/loessgo/pkg/errors"
)

// Point is a single fitted value of a smoothed curve. Degenerate is set
// when the local design matrix was rank-deficient and the fit fell back to
// a lower degree; the value is still usable, the flag exists for fit-quality
// auditing.
type Point struct {
	X          float64
	Y          float64
	Degenerate bool
}

// FittedCurve is the ordered result of a smoothing pass, one point per
// evaluation point in input order.
type FittedCurve []Point

// Xs returns the evaluation points in order.
func (c FittedCurve) Xs() []float64 {
	xs := make([]float64, len(c))
	for i, p := range c {
		xs[i] = p.X
	}
	return xs
}

// Ys returns the fitted values in order.
func (c FittedCurve) Ys() []float64 {
	ys := make([]float64, len(c))
	for i, p := range c {
		ys[i] = p.Y
	}
	return ys
}

// DegenerateCount returns the number of points flagged as degenerate.
func (c FittedCurve) DegenerateCount() int {
	count := 0
	for _, p := range c {
		if p.Degenerate {
			count++
		}
	}
	return count
}

// Residuals returns y_i - yhat_i for a curve that was evaluated at the
// dataset's own x-values, in sample order.
func (c FittedCurve) Residuals(data dataset.Dataset) ([]float64, error) {
	if len(c) != len(data) {
		return nil, errors.NewDimensionError("FittedCurve.Residuals", len(data), len(c))
	}
	res := make([]float64, len(c))
	for i := range c {
		res[i] = data[i].Y - c[i].Y
	}
	return res, nil
}
