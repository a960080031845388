package fitting

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/Vanoraco/astropy/pkg/modeling"
	"github.com/Vanoraco/astropy/pkg/modeling/grid"
)

// Linear solves models that expose a design matrix in a single QR least
// squares pass. Tied parameters are rejected, fixed parameters are folded
// into the right hand side.
type Linear struct{}

func NewLinear() *Linear {
	return &Linear{}
}

// Fit adjusts the parameters of m so its output matches y over x. The model
// is left holding the fitted parameters.
func (f *Linear) Fit(m modeling.Model, x, y *grid.Grid, opts ...FitOption) (*Result, error) {
	return f.fit(m, []*grid.Grid{x}, y, opts...)
}

// Fit2D is Fit for models over two inputs.
func (f *Linear) Fit2D(m modeling.Model, x, y, z *grid.Grid, opts ...FitOption) (*Result, error) {
	return f.fit(m, []*grid.Grid{x, y}, z, opts...)
}

func (f *Linear) fit(m modeling.Model, in []*grid.Grid, obs *grid.Grid, opts ...FitOption) (*Result, error) {
	if m == nil {
		return nil, modeling.ErrModelMustBeSet
	}

	if obs == nil {
		return nil, modeling.ErrDataMustBeSet
	}

	for _, g := range in {
		if g == nil {
			return nil, modeling.ErrDataMustBeSet
		}
	}

	lin, ok := m.(modeling.LinearModel)
	if !ok {
		return nil, errors.Wrap(ErrNotLinear, m.Kind())
	}

	if len(in) != len(m.Inputs()) {
		return nil, errors.Wrapf(modeling.ErrInputCount, "%d inputs for %s", len(in), m.Kind())
	}

	cfg := &fitConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	ps := NewParameterSet(m)
	if ps.NumFree() == 0 {
		return nil, ErrNoFreeParameters
	}

	if ps.HasTied() {
		return nil, ErrTiedNotSupported
	}

	design, err := lin.DesignMatrix(in...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to build the design matrix")
	}

	rows, cols := design.Dims()
	target := obs.Values()
	if rows != len(target) {
		return nil, errors.Wrapf(ErrObservationShape, "%d design rows for %d observations", rows, len(target))
	}

	if rows < ps.NumFree() {
		return nil, errors.Wrapf(ErrInsufficientData, "%d observations, %d free parameters", rows, ps.NumFree())
	}

	var wvals []float64
	if cfg.weights != nil {
		if cfg.weights.Len() != len(target) {
			return nil, errors.Wrapf(ErrWeightShape, "%d weights for %d observations", cfg.weights.Len(), len(target))
		}

		wvals = cfg.weights.Values()
	}

	rhs := append([]float64(nil), target...)

	if it, ok := m.(modeling.ImplicitTerms); ok {
		terms, err := it.ImplicitTerms(in...)
		if err != nil {
			return nil, errors.Wrap(err, "unable to compute implicit terms")
		}

		for i, v := range terms.Values() {
			rhs[i] -= v
		}
	}

	values := m.Parameters()
	free := ps.FreeIndices()
	isFree := make([]bool, cols)
	for _, p := range free {
		isFree[p] = true
	}

	for p := 0; p < cols; p++ {
		if isFree[p] {
			continue
		}

		for i := 0; i < rows; i++ {
			rhs[i] -= design.At(i, p) * values[p]
		}
	}

	a := mat.NewDense(rows, ps.NumFree(), nil)
	for i := 0; i < rows; i++ {
		w := 1.0
		if wvals != nil {
			w = wvals[i]
		}

		rhs[i] *= w
		for j, p := range free {
			a.Set(i, j, w*design.At(i, p))
		}
	}

	b := mat.NewVecDense(rows, rhs)
	sol := mat.NewVecDense(ps.NumFree(), nil)

	qr := new(mat.QR)
	qr.Factorize(a)
	if err := qr.SolveVecTo(sol, false, b); err != nil {
		return nil, errors.Wrap(err, "unable to solve the least squares system")
	}

	flat := make([]float64, ps.NumFree())
	for j := range flat {
		flat[j] = sol.AtVec(j)
	}

	if err := ps.WriteBack(flat); err != nil {
		return nil, err
	}

	out, err := m.Eval(in...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to evaluate the fitted model")
	}

	return &Result{
		Params: m.Parameters(),
		Fitted: ps.Flat(),
		Fixed:  ps.Fixed(),
		RSS:    residualSumSquares(flattenOutputs(out), target, wvals),
	}, nil
}

var _ Fitter = (*Linear)(nil)
