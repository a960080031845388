package models

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/Vanoraco/astropy/pkg/modeling"
	"github.com/Vanoraco/astropy/pkg/modeling/grid"
)

// Kernel evaluates a user supplied curve at a single point.
type Kernel func(x float64, params []float64) float64

// Custom1D wraps a Kernel into a full model so user defined curves can be
// composed and fitted like the built in catalog.
type Custom1D struct {
	*modeling.Params
	kernel Kernel
	deriv  func(x float64, params []float64) []float64
}

// NewCustom1D builds a model around kernel with the given parameter names
// and starting values.
func NewCustom1D(kind string, kernel Kernel, names []string, values []float64, opts ...modeling.ConstraintOption) (*Custom1D, error) {
	if kernel == nil {
		return nil, ErrKernelMustBeSet
	}

	p, err := modeling.NewParams(kind, names, values, opts...)
	if err != nil {
		return nil, err
	}

	return &Custom1D{Params: p, kernel: kernel}, nil
}

// WithDerivative registers the partial derivatives of the kernel with respect
// to each parameter. Without it Derivative falls back to central differences.
func (c *Custom1D) WithDerivative(deriv func(x float64, params []float64) []float64) *Custom1D {
	c.deriv = deriv

	return c
}

// Inputs implements modeling.Model.
func (c *Custom1D) Inputs() []string {
	return []string{"x"}
}

// Outputs implements modeling.Model.
func (c *Custom1D) Outputs() []string {
	return []string{"y"}
}

// Eval implements modeling.Model.
func (c *Custom1D) Eval(in ...*grid.Grid) ([]*grid.Grid, error) {
	x, err := oneInput(in)
	if err != nil {
		return nil, err
	}

	params := c.Parameters()

	return []*grid.Grid{x.Map(func(v float64) float64 { return c.kernel(v, params) })}, nil
}

// Derivative implements modeling.Differentiable. It uses the registered
// partials when available and estimates them by central differences
// otherwise.
func (c *Custom1D) Derivative(in ...*grid.Grid) (*mat.Dense, error) {
	x, err := oneInput(in)
	if err != nil {
		return nil, err
	}

	xs := x.Values()
	params := c.Parameters()
	jac := mat.NewDense(len(xs), len(params), nil)

	if c.deriv != nil {
		for i, v := range xs {
			row := c.deriv(v, params)
			if len(row) != len(params) {
				return nil, errors.Wrapf(modeling.ErrParameterCount, "derivative returned %d partials", len(row))
			}

			jac.SetRow(i, row)
		}

		return jac, nil
	}

	for j := range params {
		h := 1e-6 * math.Max(1, math.Abs(params[j]))

		orig := params[j]
		for i, v := range xs {
			params[j] = orig + h
			hi := c.kernel(v, params)
			params[j] = orig - h
			lo := c.kernel(v, params)
			params[j] = orig

			jac.Set(i, j, (hi-lo)/(2*h))
		}
	}

	return jac, nil
}

// Copy implements modeling.Model.
func (c *Custom1D) Copy() modeling.Model {
	return &Custom1D{Params: c.Params.Clone(), kernel: c.kernel, deriv: c.deriv}
}

var (
	_ modeling.Model          = (*Custom1D)(nil)
	_ modeling.Differentiable = (*Custom1D)(nil)
)
