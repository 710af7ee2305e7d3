package loess

import "math"

// Kernel maps a normalized distance u in [0, 1] to a non-negative weight.
// A kernel must be monotonically non-increasing on [0, 1] so nearer
// neighbors never receive less weight than farther ones.
type Kernel func(u float64) float64

// GaussianScale is the factor by which the normalized distance is rescaled
// before the normal-density evaluation in the default kernel. The value 3
// pushes the weight at the neighborhood edge (u = 1) to exp(-4.5) ≈ 0.011,
// effectively excluding the farthest neighbors. It is a convention of this
// library, not a universal loess constant; supply a custom kernel to change
// the shape.
const GaussianScale = 3.0

// normalPeak is the standard normal density at zero, 1/sqrt(2π).
const normalPeak = 0.3989423

// Gaussian is the default kernel: the standard normal density evaluated at
// GaussianScale*u, divided by the density's peak so the kernel is exactly 1
// at u = 0.
func Gaussian(u float64) float64 {
	if u < 0 {
		u = -u
	}
	if u > 1 {
		return 0
	}
	z := GaussianScale * u
	density := normalPeak * math.Exp(-z*z/2)
	return density / normalPeak
}

// GaussianWithScale returns a Gaussian-shaped kernel with a custom distance
// rescaling factor. Larger scales concentrate weight on the nearest
// neighbors.
func GaussianWithScale(scale float64) Kernel {
	return func(u float64) float64 {
		if u < 0 {
			u = -u
		}
		if u > 1 {
			return 0
		}
		z := scale * u
		return math.Exp(-z * z / 2)
	}
}

// Uniform weights every neighbor equally. With degree 0 this reduces the
// smoother to a moving average over the neighborhood.
func Uniform(u float64) float64 {
	if u < 0 {
		u = -u
	}
	if u > 1 {
		return 0
	}
	return 1
}

// Tricube is the kernel of classic lowess: (1 - u³)³ on [0, 1].
func Tricube(u float64) float64 {
	if u < 0 {
		u = -u
	}
	if u >= 1 {
		return 0
	}
	v := 1 - u*u*u
	return v * v * v
}

// bisquare is the bounded robustness weight function: (1 - u²)² for
// |u| < 1 and 0 beyond. Residuals past the cutoff contribute nothing to
// subsequent robust passes.
func bisquare(u float64) float64 {
	if u < 0 {
		u = -u
	}
	if u >= 1 {
		return 0
	}
	v := 1 - u*u
	return v * v
}
