// Package loessgo provides locally weighted regression (loess) smoothing
// for exploratory data analysis in Go.
//
// A loess smoother produces a smooth curve from scattered (x, y) data
// without assuming a single global functional form: each fitted value comes
// from a weighted polynomial fit over the nearest fraction of the data.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/loessgo/dataset"
//	    "github.com/YuminosukeSato/loessgo/loess"
//	)
//
//	func main() {
//	    data, err := dataset.FromSlices(
//	        []float64{1, 2, 3, 4, 5, 6, 7, 8},
//	        []float64{1.2, 1.9, 3.4, 3.6, 5.5, 5.9, 7.2, 8.1},
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    smoother, err := loess.NewSmoother(
//	        loess.WithAlpha(0.6),
//	        loess.WithDegree(1),
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    curve, err := smoother.Fit(data, data.EvalGrid(50))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(curve.Ys())
//	}
//
// # Packages
//
//   - loess: the smoother, kernels and bandwidth selection
//   - dataset: immutable (x, y) sample collections and CSV loading
//   - metrics: residual-distribution metrics for comparing configurations
//   - chart: scatter, curve and residual-diagnostic rendering
//   - core/model: interfaces implemented by smoothers
//   - core/parallel: parallel evaluation utilities
//
// # Robust smoothing
//
// For outlier-prone data, enable bisquare reweighting:
//
//	smoother, err := loess.NewSmoother(
//	    loess.WithAlpha(0.5),
//	    loess.WithRobustIterations(2),
//	)
//
// Each robustness pass down-weights high-residual points before refitting,
// so isolated outliers stop dragging the curve toward themselves.
package loessgo
