package loess

// Option is a function that configures a Smoother.
type Option func(*Smoother)

// WithAlpha sets the bandwidth fraction in (0, 1]: each local neighborhood
// contains ceil(alpha * n) samples.
func WithAlpha(alpha float64) Option {
	return func(s *Smoother) {
		s.alpha = alpha
	}
}

// WithDegree sets the local polynomial degree: 0 (weighted mean),
// 1 (weighted line) or 2 (weighted parabola).
func WithDegree(degree int) Option {
	return func(s *Smoother) {
		s.degree = degree
	}
}

// WithKernel sets the distance weighting kernel. Default is Gaussian.
func WithKernel(kernel Kernel) Option {
	return func(s *Smoother) {
		s.kernel = kernel
	}
}

// WithRobustIterations sets the number of bisquare reweighting passes used
// to down-weight high-residual points. Zero disables robustness.
func WithRobustIterations(iterations int) Option {
	return func(s *Smoother) {
		s.robustIterations = iterations
	}
}

// WithParallelThreshold sets the evaluation-point count above which
// per-point fits run on parallel workers.
func WithParallelThreshold(threshold int) Option {
	return func(s *Smoother) {
		s.parallelThreshold = threshold
	}
}
