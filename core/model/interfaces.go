// Package model defines the interfaces implemented by smoothers so that
// comparison workflows and rendering code can treat candidate
// configurations interchangeably.
package model

import (
	"github.com/YuminosukeSato/loessgo/dataset"
)

// CurveSmoother produces pointwise fitted values at the given evaluation
// points. Implementations must be pure: repeated calls with identical
// inputs return identical output, and no state is carried between calls.
type CurveSmoother interface {
	// Smooth returns one fitted value per evaluation point, in input order.
	Smooth(data dataset.Dataset, evalPoints []float64) ([]float64, error)
}

// Scorer is the interface for smoothers that can score their fit quality.
type Scorer interface {
	// Score returns the coefficient of determination R² of the fitted
	// values at the dataset's own x-values.
	Score(data dataset.Dataset) (float64, error)
}

// ParameterGetter is the interface for smoothers that expose their
// configuration.
type ParameterGetter interface {
	// GetParams returns the smoother's hyperparameters.
	GetParams() map[string]interface{}
}

// ParameterSetter is the interface for smoothers whose configuration can be
// modified after construction. Implementations validate values the same way
// construction does.
type ParameterSetter interface {
	// SetParams sets the smoother's hyperparameters.
	SetParams(params map[string]interface{}) error
}
