package models

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/Vanoraco/astropy/pkg/modeling"
	"github.com/Vanoraco/astropy/pkg/modeling/grid"
)

// Rotation2D rotates coordinate pairs counter-clockwise around the origin.
// The angle parameter is in degrees.
type Rotation2D struct {
	*modeling.Params
}

// NewRotation2D builds a planar rotation by the given angle in degrees.
func NewRotation2D(angle float64, opts ...modeling.ConstraintOption) (*Rotation2D, error) {
	p, err := modeling.NewParams("rotation2d", []string{"angle"}, []float64{angle}, opts...)
	if err != nil {
		return nil, err
	}

	return &Rotation2D{Params: p}, nil
}

// Inputs implements modeling.Model.
func (r *Rotation2D) Inputs() []string {
	return []string{"x", "y"}
}

// Outputs implements modeling.Model. The rotation rebinds the coordinates it
// consumed.
func (r *Rotation2D) Outputs() []string {
	return []string{"x", "y"}
}

// Eval implements modeling.Model.
func (r *Rotation2D) Eval(in ...*grid.Grid) ([]*grid.Grid, error) {
	x, y, err := twoInputs(in)
	if err != nil {
		return nil, err
	}

	sin, cos := math.Sincos(r.At(0) * math.Pi / 180)

	xr, err := grid.Map2(x, y, func(xv, yv float64) float64 { return xv*cos - yv*sin })
	if err != nil {
		return nil, errors.Wrap(err, "unable to rotate x")
	}

	yr, err := grid.Map2(x, y, func(xv, yv float64) float64 { return xv*sin + yv*cos })
	if err != nil {
		return nil, errors.Wrap(err, "unable to rotate y")
	}

	return []*grid.Grid{xr, yr}, nil
}

// Derivative implements modeling.Differentiable. The rows cover the
// flattened x outputs followed by the flattened y outputs.
func (r *Rotation2D) Derivative(in ...*grid.Grid) (*mat.Dense, error) {
	x, y, err := twoInputs(in)
	if err != nil {
		return nil, err
	}

	xs, ys, err := pairValues(x, y)
	if err != nil {
		return nil, errors.Wrap(err, "unable to align coordinates")
	}

	sin, cos := math.Sincos(r.At(0) * math.Pi / 180)
	toRad := math.Pi / 180
	n := len(xs)
	jac := mat.NewDense(2*n, 1, nil)

	for i := 0; i < n; i++ {
		jac.Set(i, 0, (-xs[i]*sin-ys[i]*cos)*toRad)
		jac.Set(n+i, 0, (xs[i]*cos-ys[i]*sin)*toRad)
	}

	return jac, nil
}

// Inverse implements modeling.Invertible.
func (r *Rotation2D) Inverse() (modeling.Model, error) {
	return NewRotation2D(-r.At(0))
}

// Copy implements modeling.Model.
func (r *Rotation2D) Copy() modeling.Model {
	return &Rotation2D{Params: r.Params.Clone()}
}

var (
	_ modeling.Model          = (*Rotation2D)(nil)
	_ modeling.Differentiable = (*Rotation2D)(nil)
	_ modeling.Invertible     = (*Rotation2D)(nil)
)
