// Standard attribute keys for smoothing operations. Using these keys keeps
// log output consistent and filterable across the library.

package log

// Smoother configuration context.
const (
	// SmootherKey identifies the smoother type. Example: "LoessSmoother".
	SmootherKey = "smoother.name"

	// AlphaKey is the bandwidth fraction used for neighborhood selection.
	AlphaKey = "smoother.alpha"

	// DegreeKey is the local polynomial degree.
	DegreeKey = "smoother.degree"

	// RobustIterationsKey is the number of robustness reweighting passes.
	RobustIterationsKey = "smoother.robust_iterations"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "select_bandwidth", "score".
	OperationKey = "op"
)

// Data shape context.
const (
	// SamplesKey is the number of samples in the dataset.
	SamplesKey = "data.samples"

	// EvalPointsKey is the number of evaluation points requested.
	EvalPointsKey = "data.eval_points"

	// NeighborhoodKey is the neighborhood size k for the current fit.
	NeighborhoodKey = "data.neighborhood"

	// DegenerateKey is the count of degenerate evaluation points in a curve.
	DegenerateKey = "fit.degenerate_points"
)
