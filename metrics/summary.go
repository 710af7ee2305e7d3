package metrics

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/loessgo/core/model"
	"github.com/YuminosukeSato/loessgo/dataset"
)

// Summary aggregates the residual-distribution metrics for one fitted
// configuration, so candidate smoothers can be compared side by side.
type Summary struct {
	MSE  float64
	RMSE float64
	MAE  float64
	R2   float64
	MAD  float64
}

// String formats the summary for quick inspection.
func (s Summary) String() string {
	return fmt.Sprintf("rmse=%.6g mae=%.6g r2=%.4f mad=%.6g", s.RMSE, s.MAE, s.R2, s.MAD)
}

// Summarize computes the full residual summary for observed and fitted
// values.
func Summarize(yTrue, yPred []float64) (Summary, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return Summary{}, err
	}
	mae, err := MAE(yTrue, yPred)
	if err != nil {
		return Summary{}, err
	}
	r2, err := R2Score(yTrue, yPred)
	if err != nil {
		return Summary{}, err
	}

	residuals := make([]float64, len(yTrue))
	for i := range yTrue {
		residuals[i] = yTrue[i] - yPred[i]
	}
	mad, err := MedianAbsoluteDeviation(residuals)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		MSE:  mse,
		RMSE: math.Sqrt(mse),
		MAE:  mae,
		R2:   r2,
		MAD:  mad,
	}, nil
}

// SummarizeSmoother fits the smoother at the dataset's own x-values and
// summarizes the resulting residuals. This is the entry point of the
// model-comparison workflow: run it once per candidate configuration and
// compare the summaries.
func SummarizeSmoother(s model.CurveSmoother, data dataset.Dataset) (Summary, error) {
	yPred, err := s.Smooth(data, data.Xs())
	if err != nil {
		return Summary{}, err
	}
	return Summarize(data.Ys(), yPred)
}
