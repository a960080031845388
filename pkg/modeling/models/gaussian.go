package models

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/Vanoraco/astropy/pkg/modeling"
	"github.com/Vanoraco/astropy/pkg/modeling/grid"
)

// Gaussian1D evaluates amplitude exp(-(x-mean)^2 / (2 stddev^2)).
type Gaussian1D struct {
	*modeling.Params
}

// NewGaussian1D builds a one dimensional Gaussian.
func NewGaussian1D(amplitude, mean, stddev float64, opts ...modeling.ConstraintOption) (*Gaussian1D, error) {
	p, err := modeling.NewParams("gaussian1d",
		[]string{"amplitude", "mean", "stddev"},
		[]float64{amplitude, mean, stddev}, opts...)
	if err != nil {
		return nil, err
	}

	return &Gaussian1D{Params: p}, nil
}

// Inputs implements modeling.Model.
func (g *Gaussian1D) Inputs() []string {
	return []string{"x"}
}

// Outputs implements modeling.Model.
func (g *Gaussian1D) Outputs() []string {
	return []string{"y"}
}

// Eval implements modeling.Model.
func (g *Gaussian1D) Eval(in ...*grid.Grid) ([]*grid.Grid, error) {
	x, err := oneInput(in)
	if err != nil {
		return nil, err
	}

	amplitude, mean, stddev := g.At(0), g.At(1), g.At(2)
	out := x.Map(func(v float64) float64 {
		d := v - mean

		return amplitude * math.Exp(-d*d/(2*stddev*stddev))
	})

	return []*grid.Grid{out}, nil
}

// Derivative implements modeling.Differentiable with the analytic partials
// against amplitude, mean and stddev.
func (g *Gaussian1D) Derivative(in ...*grid.Grid) (*mat.Dense, error) {
	x, err := oneInput(in)
	if err != nil {
		return nil, err
	}

	amplitude, mean, stddev := g.At(0), g.At(1), g.At(2)
	xs := x.Values()
	jac := mat.NewDense(len(xs), 3, nil)

	for i, v := range xs {
		d := v - mean
		e := math.Exp(-d * d / (2 * stddev * stddev))

		jac.Set(i, 0, e)
		jac.Set(i, 1, amplitude*e*d/(stddev*stddev))
		jac.Set(i, 2, amplitude*e*d*d/(stddev*stddev*stddev))
	}

	return jac, nil
}

// Copy implements modeling.Model.
func (g *Gaussian1D) Copy() modeling.Model {
	return &Gaussian1D{Params: g.Params.Clone()}
}

// Gaussian2D is an elliptical Gaussian over the plane, the cross-section
// rotated by theta radians.
type Gaussian2D struct {
	*modeling.Params
}

// NewGaussian2D builds a two dimensional Gaussian.
func NewGaussian2D(amplitude, xMean, yMean, xStddev, yStddev, theta float64,
	opts ...modeling.ConstraintOption,
) (*Gaussian2D, error) {
	p, err := modeling.NewParams("gaussian2d",
		[]string{"amplitude", "xmean", "ymean", "xstddev", "ystddev", "theta"},
		[]float64{amplitude, xMean, yMean, xStddev, yStddev, theta}, opts...)
	if err != nil {
		return nil, err
	}

	return &Gaussian2D{Params: p}, nil
}

// Inputs implements modeling.Model.
func (g *Gaussian2D) Inputs() []string {
	return []string{"x", "y"}
}

// Outputs implements modeling.Model.
func (g *Gaussian2D) Outputs() []string {
	return []string{"z"}
}

// Eval implements modeling.Model.
func (g *Gaussian2D) Eval(in ...*grid.Grid) ([]*grid.Grid, error) {
	x, y, err := twoInputs(in)
	if err != nil {
		return nil, err
	}

	amplitude, xMean, yMean := g.At(0), g.At(1), g.At(2)
	xStddev, yStddev, theta := g.At(3), g.At(4), g.At(5)

	cos2 := math.Cos(theta) * math.Cos(theta)
	sin2 := math.Sin(theta) * math.Sin(theta)
	sin2t := math.Sin(2 * theta)
	xvar := xStddev * xStddev
	yvar := yStddev * yStddev

	a := (cos2/xvar + sin2/yvar) / 2
	b := (sin2t/xvar - sin2t/yvar) / 2
	c := (sin2/xvar + cos2/yvar) / 2

	out, err := grid.Map2(x, y, func(xv, yv float64) float64 {
		dx := xv - xMean
		dy := yv - yMean

		return amplitude * math.Exp(-(a*dx*dx + b*dx*dy + c*dy*dy))
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to evaluate gaussian")
	}

	return []*grid.Grid{out}, nil
}

// Copy implements modeling.Model.
func (g *Gaussian2D) Copy() modeling.Model {
	return &Gaussian2D{Params: g.Params.Clone()}
}

var (
	_ modeling.Model          = (*Gaussian1D)(nil)
	_ modeling.Differentiable = (*Gaussian1D)(nil)
	_ modeling.Model          = (*Gaussian2D)(nil)
)
