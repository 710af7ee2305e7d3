// Package dataset defines the immutable (x, y) sample collections consumed
// by the smoothers, together with a small delimited-text loader. Datasets
// are plain values threaded through function arguments; nothing in the
// library mutates a dataset after construction.
package dataset

import (
	"math"
	"sort"
	"strconv"

	"github.com/YuminosukeSato/loessgo/pkg/errors"
)

// Sample is a single (x, y) observation.
type Sample struct {
	X float64
	Y float64
}

// Dataset is a finite, ordered sequence of samples. Duplicate x-values are
// permitted; order is meaningful because neighborhood ties are broken by
// original index.
type Dataset []Sample

// FromSlices builds a Dataset from parallel x and y slices.
func FromSlices(xs, ys []float64) (Dataset, error) {
	if len(xs) != len(ys) {
		return nil, errors.NewDimensionError("dataset.FromSlices", len(xs), len(ys))
	}
	if len(xs) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "dataset.FromSlices")
	}

	data := make(Dataset, len(xs))
	for i := range xs {
		data[i] = Sample{X: xs[i], Y: ys[i]}
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return data, nil
}

// Validate checks that the dataset is non-empty and free of NaN or Inf
// values.
func (d Dataset) Validate() error {
	if len(d) == 0 {
		return errors.Wrap(errors.ErrEmptyData, "dataset.Validate")
	}
	for i, s := range d {
		if math.IsNaN(s.X) || math.IsInf(s.X, 0) {
			return errors.NewValueError("dataset.Validate", "non-finite x value at index "+strconv.Itoa(i))
		}
		if math.IsNaN(s.Y) || math.IsInf(s.Y, 0) {
			return errors.NewValueError("dataset.Validate", "non-finite y value at index "+strconv.Itoa(i))
		}
	}
	return nil
}

// Xs returns the x-values in sample order.
func (d Dataset) Xs() []float64 {
	xs := make([]float64, len(d))
	for i, s := range d {
		xs[i] = s.X
	}
	return xs
}

// Ys returns the y-values in sample order.
func (d Dataset) Ys() []float64 {
	ys := make([]float64, len(d))
	for i, s := range d {
		ys[i] = s.Y
	}
	return ys
}

// XRange returns the minimum and maximum x-values.
func (d Dataset) XRange() (min, max float64) {
	min = math.Inf(1)
	max = math.Inf(-1)
	for _, s := range d {
		if s.X < min {
			min = s.X
		}
		if s.X > max {
			max = s.X
		}
	}
	return min, max
}

// SortedByX returns a copy of the dataset ordered by ascending x, with the
// original order preserved among equal x-values.
func (d Dataset) SortedByX() Dataset {
	out := make(Dataset, len(d))
	copy(out, d)
	sort.SliceStable(out, func(i, j int) bool { return out[i].X < out[j].X })
	return out
}

// EvalGrid returns n evenly spaced evaluation points spanning the dataset's
// x-range, for drawing a smooth curve over the observed domain.
func (d Dataset) EvalGrid(n int) []float64 {
	if n <= 0 || len(d) == 0 {
		return nil
	}
	min, max := d.XRange()
	if n == 1 || min == max {
		grid := make([]float64, n)
		for i := range grid {
			grid[i] = min
		}
		return grid
	}
	grid := make([]float64, n)
	step := (max - min) / float64(n-1)
	for i := range grid {
		grid[i] = min + float64(i)*step
	}
	grid[n-1] = max
	return grid
}
