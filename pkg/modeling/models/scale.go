package models

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/Vanoraco/astropy/pkg/modeling"
	"github.com/Vanoraco/astropy/pkg/modeling/grid"
)

// Scale multiplies its input by a constant factor. Several factors evaluate
// as parameter sets the same way Shift does.
type Scale struct {
	*modeling.Params
}

// NewScale builds a scale model over one or more factors.
func NewScale(factors []float64, opts ...modeling.ConstraintOption) (*Scale, error) {
	if len(factors) == 0 {
		return nil, ErrNoParameters
	}

	p, err := modeling.NewParams("scale", setNames("factor", len(factors)), factors, opts...)
	if err != nil {
		return nil, err
	}

	return &Scale{Params: p}, nil
}

// Inputs implements modeling.Model.
func (s *Scale) Inputs() []string {
	return []string{"x"}
}

// Outputs implements modeling.Model.
func (s *Scale) Outputs() []string {
	return []string{"y"}
}

// Eval implements modeling.Model.
func (s *Scale) Eval(in ...*grid.Grid) ([]*grid.Grid, error) {
	x, err := oneInput(in)
	if err != nil {
		return nil, err
	}

	out, err := grid.Outer(x, s.Parameters(), func(v, factor float64) float64 { return v * factor })
	if err != nil {
		return nil, errors.Wrap(err, "unable to apply factors")
	}

	return []*grid.Grid{out}, nil
}

// Derivative implements modeling.Differentiable. The partial against a
// factor is the input element it scaled.
func (s *Scale) Derivative(in ...*grid.Grid) (*mat.Dense, error) {
	x, err := oneInput(in)
	if err != nil {
		return nil, err
	}

	xs := x.Values()
	k := s.NumParams()

	if k == 1 {
		jac := mat.NewDense(len(xs), 1, nil)
		for i, v := range xs {
			jac.Set(i, 0, v)
		}

		return jac, nil
	}

	jac := mat.NewDense(len(xs)*k, k, nil)
	for i, v := range xs {
		for j := 0; j < k; j++ {
			jac.Set(i*k+j, j, v)
		}
	}

	return jac, nil
}

// DesignMatrix implements modeling.LinearModel.
func (s *Scale) DesignMatrix(in ...*grid.Grid) (*mat.Dense, error) {
	return s.Derivative(in...)
}

// Inverse implements modeling.Invertible.
func (s *Scale) Inverse() (modeling.Model, error) {
	factors := s.Parameters()
	for i, f := range factors {
		if f == 0 {
			return nil, errors.Wrap(modeling.ErrNotInvertible, "scale factor is zero")
		}

		factors[i] = 1 / f
	}

	return NewScale(factors)
}

// Copy implements modeling.Model.
func (s *Scale) Copy() modeling.Model {
	return &Scale{Params: s.Params.Clone()}
}

var (
	_ modeling.Model          = (*Scale)(nil)
	_ modeling.Differentiable = (*Scale)(nil)
	_ modeling.Invertible     = (*Scale)(nil)
	_ modeling.LinearModel    = (*Scale)(nil)
)
