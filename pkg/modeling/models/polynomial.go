package models

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/Vanoraco/astropy/pkg/modeling"
	"github.com/Vanoraco/astropy/pkg/modeling/grid"
)

// Polynomial1D evaluates c0 + c1 x + ... + cd x^d.
type Polynomial1D struct {
	*modeling.Params
	degree int
}

// NewPolynomial1D builds a univariate polynomial of the given degree. It
// needs degree+1 coefficients, constant term first.
func NewPolynomial1D(degree int, coefficients []float64, opts ...modeling.ConstraintOption) (*Polynomial1D, error) {
	if degree < 0 {
		return nil, errors.Wrapf(ErrDegree, "degree %d", degree)
	}

	if len(coefficients) != degree+1 {
		return nil, errors.Wrapf(modeling.ErrParameterCount, "degree %d needs %d coefficients", degree, degree+1)
	}

	p, err := modeling.NewParams("polynomial1d", seqNames("c", degree+1), coefficients, opts...)
	if err != nil {
		return nil, err
	}

	return &Polynomial1D{Params: p, degree: degree}, nil
}

// Degree returns the polynomial degree.
func (p *Polynomial1D) Degree() int {
	return p.degree
}

// Inputs implements modeling.Model.
func (p *Polynomial1D) Inputs() []string {
	return []string{"x"}
}

// Outputs implements modeling.Model.
func (p *Polynomial1D) Outputs() []string {
	return []string{"y"}
}

// Eval implements modeling.Model using Horner's scheme.
func (p *Polynomial1D) Eval(in ...*grid.Grid) ([]*grid.Grid, error) {
	x, err := oneInput(in)
	if err != nil {
		return nil, err
	}

	coeffs := p.Parameters()
	out := x.Map(func(v float64) float64 {
		sum := coeffs[p.degree]
		for i := p.degree - 1; i >= 0; i-- {
			sum = sum*v + coeffs[i]
		}

		return sum
	})

	return []*grid.Grid{out}, nil
}

// DesignMatrix implements modeling.LinearModel with the Vandermonde matrix
// of the input.
func (p *Polynomial1D) DesignMatrix(in ...*grid.Grid) (*mat.Dense, error) {
	x, err := oneInput(in)
	if err != nil {
		return nil, err
	}

	xs := x.Values()
	design := mat.NewDense(len(xs), p.degree+1, nil)

	for i, v := range xs {
		pow := 1.0
		for j := 0; j <= p.degree; j++ {
			design.Set(i, j, pow)
			pow *= v
		}
	}

	return design, nil
}

// Derivative implements modeling.Differentiable. For a linear model the
// Jacobian is the design matrix.
func (p *Polynomial1D) Derivative(in ...*grid.Grid) (*mat.Dense, error) {
	return p.DesignMatrix(in...)
}

// Copy implements modeling.Model.
func (p *Polynomial1D) Copy() modeling.Model {
	return &Polynomial1D{Params: p.Params.Clone(), degree: p.degree}
}

// Polynomial2D evaluates the sum over i+j <= d of cij x^i y^j.
type Polynomial2D struct {
	*modeling.Params
	degree int
	powers [][2]int
}

// NewPolynomial2D builds a bivariate polynomial of the given maximum total
// degree. Coefficients are ordered by total degree, the x power descending
// inside each block: c0_0, c1_0, c0_1, c2_0, c1_1, c0_2 and so on.
func NewPolynomial2D(degree int, coefficients []float64, opts ...modeling.ConstraintOption) (*Polynomial2D, error) {
	if degree < 0 {
		return nil, errors.Wrapf(ErrDegree, "degree %d", degree)
	}

	powers := make([][2]int, 0, (degree+1)*(degree+2)/2)
	names := make([]string, 0, cap(powers))

	for total := 0; total <= degree; total++ {
		for i := total; i >= 0; i-- {
			powers = append(powers, [2]int{i, total - i})
			names = append(names, fmt.Sprintf("c%d_%d", i, total-i))
		}
	}

	if len(coefficients) != len(powers) {
		return nil, errors.Wrapf(modeling.ErrParameterCount, "degree %d needs %d coefficients", degree, len(powers))
	}

	p, err := modeling.NewParams("polynomial2d", names, coefficients, opts...)
	if err != nil {
		return nil, err
	}

	return &Polynomial2D{Params: p, degree: degree, powers: powers}, nil
}

// Degree returns the maximum total degree.
func (p *Polynomial2D) Degree() int {
	return p.degree
}

// Inputs implements modeling.Model.
func (p *Polynomial2D) Inputs() []string {
	return []string{"x", "y"}
}

// Outputs implements modeling.Model.
func (p *Polynomial2D) Outputs() []string {
	return []string{"z"}
}

// Eval implements modeling.Model.
func (p *Polynomial2D) Eval(in ...*grid.Grid) ([]*grid.Grid, error) {
	x, y, err := twoInputs(in)
	if err != nil {
		return nil, err
	}

	coeffs := p.Parameters()
	out, err := grid.Map2(x, y, func(xv, yv float64) float64 {
		sum := 0.0
		for t, pw := range p.powers {
			sum += coeffs[t] * intPow(xv, pw[0]) * intPow(yv, pw[1])
		}

		return sum
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to evaluate polynomial")
	}

	return []*grid.Grid{out}, nil
}

// DesignMatrix implements modeling.LinearModel, one column per term.
func (p *Polynomial2D) DesignMatrix(in ...*grid.Grid) (*mat.Dense, error) {
	x, y, err := twoInputs(in)
	if err != nil {
		return nil, err
	}

	xs, ys, err := pairValues(x, y)
	if err != nil {
		return nil, errors.Wrap(err, "unable to align coordinates")
	}

	design := mat.NewDense(len(xs), len(p.powers), nil)

	for i := range xs {
		for t, pw := range p.powers {
			design.Set(i, t, intPow(xs[i], pw[0])*intPow(ys[i], pw[1]))
		}
	}

	return design, nil
}

// Derivative implements modeling.Differentiable.
func (p *Polynomial2D) Derivative(in ...*grid.Grid) (*mat.Dense, error) {
	return p.DesignMatrix(in...)
}

// Copy implements modeling.Model.
func (p *Polynomial2D) Copy() modeling.Model {
	return &Polynomial2D{Params: p.Params.Clone(), degree: p.degree, powers: p.powers}
}

func intPow(v float64, n int) float64 {
	out := 1.0
	for i := 0; i < n; i++ {
		out *= v
	}

	return out
}

var (
	_ modeling.Model          = (*Polynomial1D)(nil)
	_ modeling.LinearModel    = (*Polynomial1D)(nil)
	_ modeling.Differentiable = (*Polynomial1D)(nil)
	_ modeling.Model          = (*Polynomial2D)(nil)
	_ modeling.LinearModel    = (*Polynomial2D)(nil)
	_ modeling.Differentiable = (*Polynomial2D)(nil)
)
