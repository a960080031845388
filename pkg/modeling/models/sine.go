package models

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/Vanoraco/astropy/pkg/modeling"
	"github.com/Vanoraco/astropy/pkg/modeling/grid"
)

// Sine1D evaluates amplitude sin(2 pi frequency x).
type Sine1D struct {
	*modeling.Params
}

// NewSine1D builds a sine model.
func NewSine1D(amplitude, frequency float64, opts ...modeling.ConstraintOption) (*Sine1D, error) {
	p, err := modeling.NewParams("sine1d",
		[]string{"amplitude", "frequency"},
		[]float64{amplitude, frequency}, opts...)
	if err != nil {
		return nil, err
	}

	return &Sine1D{Params: p}, nil
}

// Inputs implements modeling.Model.
func (s *Sine1D) Inputs() []string {
	return []string{"x"}
}

// Outputs implements modeling.Model.
func (s *Sine1D) Outputs() []string {
	return []string{"y"}
}

// Eval implements modeling.Model.
func (s *Sine1D) Eval(in ...*grid.Grid) ([]*grid.Grid, error) {
	x, err := oneInput(in)
	if err != nil {
		return nil, err
	}

	amplitude, frequency := s.At(0), s.At(1)
	out := x.Map(func(v float64) float64 {
		return amplitude * math.Sin(2*math.Pi*frequency*v)
	})

	return []*grid.Grid{out}, nil
}

// Derivative implements modeling.Differentiable.
func (s *Sine1D) Derivative(in ...*grid.Grid) (*mat.Dense, error) {
	x, err := oneInput(in)
	if err != nil {
		return nil, err
	}

	amplitude, frequency := s.At(0), s.At(1)
	xs := x.Values()
	jac := mat.NewDense(len(xs), 2, nil)

	for i, v := range xs {
		phase := 2 * math.Pi * frequency * v

		jac.Set(i, 0, math.Sin(phase))
		jac.Set(i, 1, amplitude*2*math.Pi*v*math.Cos(phase))
	}

	return jac, nil
}

// Copy implements modeling.Model.
func (s *Sine1D) Copy() modeling.Model {
	return &Sine1D{Params: s.Params.Clone()}
}

var (
	_ modeling.Model          = (*Sine1D)(nil)
	_ modeling.Differentiable = (*Sine1D)(nil)
)
