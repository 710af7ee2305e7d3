package loess

import (
	"github.com/YuminosukeSato/loessgo/dataset"
	"github.com/YuminosukeSato/loessgo/metrics"
	"github.com/YuminosukeSato/loessgo/pkg/errors"
	"github.com/YuminosukeSato/loessgo/pkg/log"
)

// BandwidthResult is the leave-one-out score of one candidate bandwidth.
type BandwidthResult struct {
	Alpha float64
	RMSE  float64
}

// SelectBandwidth scores each candidate alpha by leave-one-out
// cross-validation (fit on n-1 samples, predict the held-out x, accumulate
// squared error) and returns the best result along with the score of every
// candidate. The remaining options (degree, kernel, robustness) are shared
// by all candidates.
func SelectBandwidth(data dataset.Dataset, alphas []float64, options ...Option) (BandwidthResult, []BandwidthResult, error) {
	if len(alphas) == 0 {
		return BandwidthResult{}, nil, errors.NewValueError("loess.SelectBandwidth", "no candidate alphas")
	}
	if err := data.Validate(); err != nil {
		return BandwidthResult{}, nil, err
	}

	results := make([]BandwidthResult, 0, len(alphas))
	for _, alpha := range alphas {
		opts := append([]Option{}, options...)
		opts = append(opts, WithAlpha(alpha))
		smoother, err := NewSmoother(opts...)
		if err != nil {
			return BandwidthResult{}, nil, err
		}

		if len(data)-1 < smoother.degree+1 {
			return BandwidthResult{}, nil, errors.NewInsufficientDataError(
				"loess.SelectBandwidth", smoother.degree+2, len(data))
		}

		rmse, err := leaveOneOutRMSE(smoother, data)
		if err != nil {
			return BandwidthResult{}, nil, err
		}
		results = append(results, BandwidthResult{Alpha: alpha, RMSE: rmse})
	}

	best := results[0]
	for _, r := range results[1:] {
		if r.RMSE < best.RMSE {
			best = r
		}
	}

	log.GetLogger().Debug("bandwidth selected",
		log.OperationKey, "select_bandwidth",
		log.AlphaKey, best.Alpha,
		"rmse", best.RMSE,
		"candidates", len(alphas),
	)
	return best, results, nil
}

func leaveOneOutRMSE(smoother *Smoother, data dataset.Dataset) (float64, error) {
	n := len(data)
	held := make([]float64, 0, n)
	predicted := make([]float64, 0, n)

	train := make(dataset.Dataset, n-1)
	for i := 0; i < n; i++ {
		copy(train, data[:i])
		copy(train[i:], data[i+1:])

		curve, err := smoother.Fit(train, []float64{data[i].X})
		if err != nil {
			return 0, err
		}
		held = append(held, data[i].Y)
		predicted = append(predicted, curve[0].Y)
	}

	return metrics.RMSE(held, predicted)
}
