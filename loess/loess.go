// Package loess implements locally weighted polynomial regression
// smoothing. Given a scatter of (x, y) observations, a bandwidth fraction
// and a local degree, the smoother produces a curve that locally
// approximates the data without imposing a global functional form.
//
// For each evaluation point the smoother selects the nearest ceil(alpha*n)
// samples, weights them by a kernel of normalized distance, fits a weighted
// least-squares polynomial and evaluates it at the point. An optional
// robustness mode repeats the fit with bisquare-down-weighted residuals to
// reduce outlier influence.
package loess

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/loessgo/core/parallel"
	"github.com/YuminosukeSato/loessgo/dataset"
	"github.com/YuminosukeSato/loessgo/metrics"
	"github.com/YuminosukeSato/loessgo/pkg/errors"
	"github.com/YuminosukeSato/loessgo/pkg/log"
)

const (
	defaultAlpha             = 0.75
	defaultDegree            = 1
	defaultParallelThreshold = 512
)

// robustScaleFloor guards the residual scale against an exact (or
// effectively exact) fit; below it the previous robustness weights are kept
// rather than dividing by zero.
const robustScaleFloor = 1e-12

// Smoother is a configured loess smoother. It is a pure function of
// (dataset, evaluation points): it holds no state across calls and may be
// reused concurrently with different inputs.
type Smoother struct {
	alpha             float64
	degree            int
	kernel            Kernel
	robustIterations  int
	parallelThreshold int
}

// NewSmoother creates a Smoother. Invalid configuration fails fast and is
// never silently clamped.
func NewSmoother(options ...Option) (*Smoother, error) {
	s := &Smoother{
		alpha:             defaultAlpha,
		degree:            defaultDegree,
		kernel:            Gaussian,
		robustIterations:  0,
		parallelThreshold: defaultParallelThreshold,
	}
	for _, opt := range options {
		opt(s)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Smoother) validate() error {
	if !(s.alpha > 0 && s.alpha <= 1) || math.IsNaN(s.alpha) {
		return errors.NewConfigurationError("alpha", "must be in (0, 1]", s.alpha)
	}
	if s.degree < 0 || s.degree > 2 {
		return errors.NewConfigurationError("degree", "must be 0, 1 or 2", s.degree)
	}
	if s.robustIterations < 0 {
		return errors.NewConfigurationError("robust_iterations", "must be non-negative", s.robustIterations)
	}
	if s.kernel == nil {
		return errors.NewConfigurationError("kernel", "must not be nil", nil)
	}
	if s.parallelThreshold < 1 {
		return errors.NewConfigurationError("parallel_threshold", "must be positive", s.parallelThreshold)
	}
	return nil
}

// Fit evaluates the smoother at evalPoints and returns one fitted point per
// evaluation point, in input order. Evaluation points outside the observed
// x-range are permitted; their neighborhoods are one-sided.
func (s *Smoother) Fit(data dataset.Dataset, evalPoints []float64) (FittedCurve, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	n := len(data)
	if n < s.degree+1 {
		return nil, errors.NewInsufficientDataError("LoessSmoother.Fit", s.degree+1, n)
	}
	if err := errors.CheckNumericalStability("LoessSmoother.Fit evalPoints", evalPoints); err != nil {
		return nil, err
	}

	k := int(math.Ceil(s.alpha * float64(n)))
	if k > n {
		k = n
	}
	if k < 1 {
		k = 1
	}

	log.GetLogger().Debug("fitting loess curve",
		log.SmootherKey, "LoessSmoother",
		log.OperationKey, "fit",
		log.AlphaKey, s.alpha,
		log.DegreeKey, s.degree,
		log.RobustIterationsKey, s.robustIterations,
		log.SamplesKey, n,
		log.EvalPointsKey, len(evalPoints),
		log.NeighborhoodKey, k,
	)

	// Robustness passes run over the sample x-values; each pass must see
	// the previous pass's residuals before the next starts.
	var robustWeights []float64
	if s.robustIterations > 0 {
		robustWeights = make([]float64, n)
		for i := range robustWeights {
			robustWeights[i] = 1
		}
		xs := data.Xs()
		for t := 0; t < s.robustIterations; t++ {
			fitted := s.evaluate(data, xs, k, robustWeights)
			if !s.updateRobustWeights(data, fitted, robustWeights) {
				break
			}
		}
	}

	curve := s.evaluate(data, evalPoints, k, robustWeights)

	if degenerate := curve.DegenerateCount(); degenerate > 0 {
		log.GetLogger().Debug("loess curve has degenerate points",
			log.OperationKey, "fit",
			log.DegenerateKey, degenerate,
		)
	}
	return curve, nil
}

// evaluate runs one full pass over the given query points. Per-point fits
// share only the immutable dataset, so they are fanned out across workers;
// results are assembled in input order.
func (s *Smoother) evaluate(data dataset.Dataset, points []float64, k int, robustWeights []float64) FittedCurve {
	curve := make(FittedCurve, len(points))
	parallel.ParallelizeWithThreshold(len(points), s.parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			y, degenerate := s.fitAt(data, points[i], k, robustWeights)
			curve[i] = Point{X: points[i], Y: y, Degenerate: degenerate}
		}
	})
	return curve
}

// fitAt computes the fitted value at a single evaluation point.
func (s *Smoother) fitAt(data dataset.Dataset, x0 float64, k int, robustWeights []float64) (float64, bool) {
	indices, dMax := nearestIndices(data, x0, k)

	weights := make([]float64, len(indices))
	for j, idx := range indices {
		if dMax == 0 {
			// All selected neighbors coincide with x0: no distance
			// attenuation.
			weights[j] = 1
		} else {
			u := math.Abs(data[idx].X-x0) / dMax
			if u > 1 {
				u = 1
			}
			weights[j] = s.kernel(u)
		}
		if robustWeights != nil {
			weights[j] *= robustWeights[idx]
		}
	}

	return localFit(data, indices, weights, s.degree, x0)
}

// updateRobustWeights recomputes the bisquare robustness weights from the
// residuals of a full pass. It reports false when the residual scale has
// collapsed to zero, in which case the current weights are kept and further
// passes are pointless.
func (s *Smoother) updateRobustWeights(data dataset.Dataset, fitted FittedCurve, robustWeights []float64) bool {
	n := len(data)
	absResiduals := make([]float64, n)
	for i := range data {
		absResiduals[i] = math.Abs(data[i].Y - fitted[i].Y)
	}

	sorted := make([]float64, n)
	copy(sorted, absResiduals)
	sort.Float64s(sorted)
	scale := 6 * stat.Quantile(0.5, stat.Empirical, sorted, nil)
	if scale < robustScaleFloor {
		return false
	}

	for i := range robustWeights {
		robustWeights[i] = bisquare(absResiduals[i] / scale)
	}
	return true
}

// Smooth returns the fitted values at evalPoints, in input order. It is the
// model.CurveSmoother form of Fit for callers that do not need per-point
// degeneracy flags.
func (s *Smoother) Smooth(data dataset.Dataset, evalPoints []float64) ([]float64, error) {
	curve, err := s.Fit(data, evalPoints)
	if err != nil {
		return nil, err
	}
	return curve.Ys(), nil
}

// Residuals fits the smoother at the dataset's own x-values and returns
// y_i - yhat_i in sample order.
func (s *Smoother) Residuals(data dataset.Dataset) ([]float64, error) {
	curve, err := s.Fit(data, data.Xs())
	if err != nil {
		return nil, err
	}
	return curve.Residuals(data)
}

// Score returns the coefficient of determination R² of the fitted values at
// the dataset's own x-values.
func (s *Smoother) Score(data dataset.Dataset) (float64, error) {
	curve, err := s.Fit(data, data.Xs())
	if err != nil {
		return 0, err
	}
	return metrics.R2Score(data.Ys(), curve.Ys())
}

// GetParams returns the smoother's hyperparameters.
func (s *Smoother) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"alpha":              s.alpha,
		"degree":             s.degree,
		"robust_iterations":  s.robustIterations,
		"parallel_threshold": s.parallelThreshold,
	}
}

// SetParams sets the smoother's hyperparameters. Values are validated the
// same way NewSmoother validates them; on error the smoother is unchanged.
func (s *Smoother) SetParams(params map[string]interface{}) error {
	next := *s
	if v, ok := params["alpha"].(float64); ok {
		next.alpha = v
	}
	if v, ok := params["degree"].(int); ok {
		next.degree = v
	}
	if v, ok := params["robust_iterations"].(int); ok {
		next.robustIterations = v
	}
	if v, ok := params["parallel_threshold"].(int); ok {
		next.parallelThreshold = v
	}
	if err := next.validate(); err != nil {
		return err
	}
	*s = next
	return nil
}
