// Package chart renders datasets and smoothed curves to image files via
// gonum/plot. It covers the two diagnostic views the smoothing workflow
// needs: observed scatter with one or more fitted curves overlaid, and a
// residuals-versus-x plot with a zero reference line. Styling is
// intentionally minimal.
package chart

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/loessgo/dataset"
	"github.com/YuminosukeSato/loessgo/loess"
	"github.com/YuminosukeSato/loessgo/pkg/errors"
)

// Series is one named fitted curve to overlay on a scatter plot.
type Series struct {
	Name  string
	Curve loess.FittedCurve
}

// Options controls plot labeling and output size.
type Options struct {
	Title  string
	XLabel string
	YLabel string
	// Width and Height in inches. Zero means 6x4.
	Width  float64
	Height float64
}

func (o Options) size() (vg.Length, vg.Length) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = 6
	}
	if h <= 0 {
		h = 4
	}
	return vg.Length(w) * vg.Inch, vg.Length(h) * vg.Inch
}

// SaveScatter writes a scatter plot of the dataset with each series drawn
// as a line, to the file at path (format chosen by extension: .png, .svg,
// .pdf).
func SaveScatter(data dataset.Dataset, series []Series, opts Options, path string) error {
	if err := data.Validate(); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel

	scatter, err := plotter.NewScatter(samplesXYs(data))
	if err != nil {
		return errors.Wrap(err, "chart.SaveScatter: scatter")
	}
	p.Add(scatter)
	p.Legend.Add("observed", scatter)

	for i, s := range series {
		line, err := plotter.NewLine(curveXYs(s.Curve))
		if err != nil {
			return errors.Wrapf(err, "chart.SaveScatter: series %q", s.Name)
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		if s.Name != "" {
			p.Legend.Add(s.Name, line)
		}
	}

	w, h := opts.size()
	if err := p.Save(w, h, path); err != nil {
		return errors.Wrap(err, "chart.SaveScatter: save")
	}
	return nil
}

// SaveResiduals writes a residuals-versus-x diagnostic plot for a curve
// fitted at the dataset's own x-values, with a zero reference line.
func SaveResiduals(data dataset.Dataset, curve loess.FittedCurve, opts Options, path string) error {
	residuals, err := curve.Residuals(data)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel

	pts := make(plotter.XYs, len(data))
	for i := range data {
		pts[i].X = data[i].X
		pts[i].Y = residuals[i]
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, "chart.SaveResiduals: scatter")
	}
	p.Add(scatter)

	min, max := data.XRange()
	zero, err := plotter.NewLine(plotter.XYs{{X: min, Y: 0}, {X: max, Y: 0}})
	if err != nil {
		return errors.Wrap(err, "chart.SaveResiduals: zero line")
	}
	zero.Color = plotutil.Color(1)
	p.Add(zero)

	w, h := opts.size()
	if err := p.Save(w, h, path); err != nil {
		return errors.Wrap(err, "chart.SaveResiduals: save")
	}
	return nil
}

func samplesXYs(data dataset.Dataset) plotter.XYs {
	pts := make(plotter.XYs, len(data))
	for i, s := range data {
		pts[i].X = s.X
		pts[i].Y = s.Y
	}
	return pts
}

func curveXYs(curve loess.FittedCurve) plotter.XYs {
	pts := make(plotter.XYs, len(curve))
	for i, p := range curve {
		pts[i].X = p.X
		pts[i].Y = p.Y
	}
	return pts
}
