package models

import (
	"github.com/gomlx/bsplines"
	"github.com/pkg/errors"

	"github.com/Vanoraco/astropy/pkg/modeling"
	"github.com/Vanoraco/astropy/pkg/modeling/grid"
)

// Spline1D is a B-spline over regularly spaced knots on [0, 1], extrapolated
// linearly outside. The control points are the parameters, so the curve can
// be fitted like any other model. It carries no analytic derivative, the
// nonlinear fitter estimates the Jacobian instead.
type Spline1D struct {
	*modeling.Params
	degree int
	curve  *bsplines.BSpline
}

// NewSpline1D builds a B-spline of the given degree over the control points.
func NewSpline1D(degree int, controlPoints []float64, opts ...modeling.ConstraintOption) (*Spline1D, error) {
	if degree < 1 {
		return nil, errors.Wrapf(ErrDegree, "degree %d", degree)
	}

	if len(controlPoints) <= degree {
		return nil, errors.Wrapf(ErrControlPoints, "%d control points for degree %d", len(controlPoints), degree)
	}

	p, err := modeling.NewParams("spline1d", seqNames("c", len(controlPoints)), controlPoints, opts...)
	if err != nil {
		return nil, err
	}

	return &Spline1D{Params: p, degree: degree, curve: newCurve(degree, p.Parameters())}, nil
}

func newCurve(degree int, controlPoints []float64) *bsplines.BSpline {
	return bsplines.NewRegular(degree, len(controlPoints)).
		WithExtrapolation(bsplines.ExtrapolateLinear).
		WithControlPoints(controlPoints)
}

// Degree returns the spline degree.
func (s *Spline1D) Degree() int {
	return s.degree
}

// Inputs implements modeling.Model.
func (s *Spline1D) Inputs() []string {
	return []string{"x"}
}

// Outputs implements modeling.Model.
func (s *Spline1D) Outputs() []string {
	return []string{"y"}
}

// SetParameters replaces the control points and rebuilds the curve.
func (s *Spline1D) SetParameters(values []float64) error {
	if err := s.Params.SetParameters(values); err != nil {
		return err
	}

	s.curve = newCurve(s.degree, s.Params.Parameters())

	return nil
}

// Eval implements modeling.Model.
func (s *Spline1D) Eval(in ...*grid.Grid) ([]*grid.Grid, error) {
	x, err := oneInput(in)
	if err != nil {
		return nil, err
	}

	return []*grid.Grid{x.Map(s.curve.Evaluate)}, nil
}

// Copy implements modeling.Model.
func (s *Spline1D) Copy() modeling.Model {
	clone := s.Params.Clone()

	return &Spline1D{Params: clone, degree: s.degree, curve: newCurve(s.degree, clone.Parameters())}
}

var _ modeling.Model = (*Spline1D)(nil)
