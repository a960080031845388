// Package plotter renders fit overlays, the observed samples as a scatter and
// the model curve as a line across the observed range.
package plotter

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Vanoraco/astropy/pkg/modeling"
	"github.com/Vanoraco/astropy/pkg/modeling/grid"
)

const (
	plotWidth    = 6 * vg.Inch
	plotHeight   = 4 * vg.Inch
	curveSamples = 200
)

// SaveFit writes a plot of the observations against the model curve. The
// image format follows the file extension, ".png" or ".svg" for instance.
// The model must take a single input.
func SaveFit(m modeling.Model, x, y *grid.Grid, fileName string) error {
	if m == nil {
		return errors.Wrap(modeling.ErrModelMustBeSet, "unable to plot")
	}

	if x == nil || y == nil || x.Len() == 0 {
		return errors.Wrap(modeling.ErrDataMustBeSet, "unable to plot")
	}

	if x.Len() != y.Len() {
		return errors.Wrapf(grid.ErrShapeMismatch, "%d observations for %d samples", y.Len(), x.Len())
	}

	xs := x.Values()
	ys := y.Values()

	points := make(plotter.XYs, len(xs))
	for i := range xs {
		points[i].X = xs[i]
		points[i].Y = ys[i]
	}

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return errors.Wrap(err, "unable to build the scatter")
	}

	curve, err := curvePoints(m, xs)
	if err != nil {
		return err
	}

	line, err := plotter.NewLine(curve)
	if err != nil {
		return errors.Wrap(err, "unable to build the line")
	}

	p := plot.New()
	p.Title.Text = m.Kind()
	p.X.Label.Text = m.Inputs()[0]
	p.Y.Label.Text = m.Outputs()[0]

	p.Add(scatter, line)
	p.Legend.Add("data", scatter)
	p.Legend.Add("fit", line)
	p.Legend.Top = true

	err = p.Save(plotWidth, plotHeight, fileName)
	if err != nil {
		return errors.Wrapf(err, "unable to save %s", fileName)
	}

	return nil
}

// curvePoints samples the model across the observed range.
func curvePoints(m modeling.Model, xs []float64) (plotter.XYs, error) {
	lo, hi := xs[0], xs[0]
	for _, v := range xs {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	samples := make([]float64, curveSamples)
	step := (hi - lo) / float64(curveSamples-1)
	for i := range samples {
		samples[i] = lo + float64(i)*step
	}

	outs, err := m.Eval(grid.Vector(samples...))
	if err != nil {
		return nil, errors.Wrap(err, "unable to evaluate the model")
	}

	values := outs[0].Values()

	points := make(plotter.XYs, len(values))
	for i := range values {
		points[i].X = samples[i]
		points[i].Y = values[i]
	}

	return points, nil
}
