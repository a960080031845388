package models

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/Vanoraco/astropy/pkg/modeling"
	"github.com/Vanoraco/astropy/pkg/modeling/grid"
)

// Shift adds a constant offset to its input. With several offsets every
// parameter set is evaluated at once: a scalar input becomes a vector with
// one element per offset, a vector input of length n becomes an n by k
// matrix, rows indexed by input element and columns by offset.
type Shift struct {
	*modeling.Params
}

// NewShift builds a shift model over one or more offsets.
func NewShift(offsets []float64, opts ...modeling.ConstraintOption) (*Shift, error) {
	if len(offsets) == 0 {
		return nil, ErrNoParameters
	}

	p, err := modeling.NewParams("shift", setNames("offset", len(offsets)), offsets, opts...)
	if err != nil {
		return nil, err
	}

	return &Shift{Params: p}, nil
}

// Inputs implements modeling.Model.
func (s *Shift) Inputs() []string {
	return []string{"x"}
}

// Outputs implements modeling.Model.
func (s *Shift) Outputs() []string {
	return []string{"y"}
}

// Eval implements modeling.Model.
func (s *Shift) Eval(in ...*grid.Grid) ([]*grid.Grid, error) {
	x, err := oneInput(in)
	if err != nil {
		return nil, err
	}

	out, err := grid.Outer(x, s.Parameters(), func(v, offset float64) float64 { return v + offset })
	if err != nil {
		return nil, errors.Wrap(err, "unable to apply offsets")
	}

	return []*grid.Grid{out}, nil
}

// Derivative implements modeling.Differentiable. The partial against an
// offset is one on the elements that offset produced, zero elsewhere.
func (s *Shift) Derivative(in ...*grid.Grid) (*mat.Dense, error) {
	x, err := oneInput(in)
	if err != nil {
		return nil, err
	}

	n := x.Len()
	k := s.NumParams()

	if k == 1 {
		jac := mat.NewDense(n, 1, nil)
		for i := 0; i < n; i++ {
			jac.Set(i, 0, 1)
		}

		return jac, nil
	}

	jac := mat.NewDense(n*k, k, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			jac.Set(i*k+j, j, 1)
		}
	}

	return jac, nil
}

// DesignMatrix implements modeling.LinearModel. The offsets enter linearly,
// the input itself is an implicit term.
func (s *Shift) DesignMatrix(in ...*grid.Grid) (*mat.Dense, error) {
	return s.Derivative(in...)
}

// ImplicitTerms implements modeling.ImplicitTerms, returning the input
// broadcast to the output shape.
func (s *Shift) ImplicitTerms(in ...*grid.Grid) (*grid.Grid, error) {
	x, err := oneInput(in)
	if err != nil {
		return nil, err
	}

	out, err := grid.Outer(x, s.Parameters(), func(v, _ float64) float64 { return v })
	if err != nil {
		return nil, errors.Wrap(err, "unable to broadcast input")
	}

	return out, nil
}

// Inverse implements modeling.Invertible.
func (s *Shift) Inverse() (modeling.Model, error) {
	offsets := s.Parameters()
	for i := range offsets {
		offsets[i] = -offsets[i]
	}

	return NewShift(offsets)
}

// Copy implements modeling.Model.
func (s *Shift) Copy() modeling.Model {
	return &Shift{Params: s.Params.Clone()}
}

var (
	_ modeling.Model          = (*Shift)(nil)
	_ modeling.Differentiable = (*Shift)(nil)
	_ modeling.Invertible     = (*Shift)(nil)
	_ modeling.LinearModel    = (*Shift)(nil)
	_ modeling.ImplicitTerms  = (*Shift)(nil)
)
