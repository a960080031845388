package fitting

import (
	"math"
	"time"

	"github.com/maorshutman/lm"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"k8s.io/klog/v2"

	"github.com/Vanoraco/astropy/pkg/modeling"
	"github.com/Vanoraco/astropy/pkg/modeling/grid"
	"github.com/Vanoraco/astropy/pkg/modeling/measure"
)

const (
	defaultMaxIterations = 100
	defaultObjectiveTol  = 1e-16
	defaultGradientTol   = 1e-8
	defaultStepTol       = 1e-8
	defaultTau           = 1e-6
)

// NonLinear fits arbitrary models with the Levenberg-Marquardt algorithm.
type NonLinear struct {
	measure       measure.Measure
	maxIterations int
	objectiveTol  float64
	gradientTol   float64
	stepTol       float64
	tau           float64
}

func NewNonLinear(opts ...NonLinearOption) *NonLinear {
	f := &NonLinear{
		measure:       measure.NewDefaultMeasure(),
		maxIterations: defaultMaxIterations,
		objectiveTol:  defaultObjectiveTol,
		gradientTol:   defaultGradientTol,
		stepTol:       defaultStepTol,
		tau:           defaultTau,
	}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fit adjusts the parameters of m so its output matches y over x. The model
// is left holding the fitted parameters, even when the solver gives up.
func (f *NonLinear) Fit(m modeling.Model, x, y *grid.Grid, opts ...FitOption) (*Result, error) {
	return f.fit(m, []*grid.Grid{x}, y, opts...)
}

// Fit2D is Fit for models over two inputs.
func (f *NonLinear) Fit2D(m modeling.Model, x, y, z *grid.Grid, opts ...FitOption) (*Result, error) {
	return f.fit(m, []*grid.Grid{x, y}, z, opts...)
}

//nolint:funlen
func (f *NonLinear) fit(m modeling.Model, in []*grid.Grid, obs *grid.Grid, opts ...FitOption) (*Result, error) {
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

	out, err := m.Eval(in...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to evaluate model")
	}

	target := obs.Values()
	size := len(target)
	if predicted := flattenOutputs(out); len(predicted) != size {
		return nil, errors.Wrapf(ErrObservationShape, "%d predictions for %d observations", len(predicted), size)
	}

	if size < ps.NumFree() {
		return nil, errors.Wrapf(ErrInsufficientData, "%d observations, %d free parameters", size, ps.NumFree())
	}

	var wvals []float64
	if cfg.weights != nil {
		if cfg.weights.Len() != size {
			return nil, errors.Wrapf(ErrWeightShape, "%d weights for %d observations", cfg.weights.Len(), size)
		}

		wvals = cfg.weights.Values()
	}

	resMetric := f.measure.Metric(m.Kind() + " residuals")
	residuals := func(dst, x []float64) {
		start := time.Now()
		defer func() { resMetric.AddDuration(time.Since(start)) }()

		if err := ps.WriteBack(x); err != nil {
			fillNaN(dst)

			return
		}

		out, err := m.Eval(in...)
		if err != nil {
			fillNaN(dst)

			return
		}

		k := 0
		for _, g := range out {
			for _, v := range g.Values() {
				r := v - target[k]
				if wvals != nil {
					r *= wvals[k]
				}

				dst[k] = r
				k++
			}
		}
	}

	jacMetric := f.measure.Metric(m.Kind() + " jacobian")
	var jacFn func(dst *mat.Dense, x []float64)

	if d, ok := m.(modeling.Differentiable); ok && !cfg.estimate {
		free := ps.FreeIndices()
		jacFn = func(dst *mat.Dense, x []float64) {
			start := time.Now()
			defer func() { jacMetric.AddDuration(time.Since(start)) }()

			if err := ps.WriteBack(x); err != nil {
				fillDenseNaN(dst)

				return
			}

			full, err := d.Derivative(in...)
			if err != nil {
				fillDenseNaN(dst)

				return
			}

			for i := 0; i < size; i++ {
				w := 1.0
				if wvals != nil {
					w = wvals[i]
				}

				for j, p := range free {
					dst.Set(i, j, w*full.At(i, p))
				}
			}
		}
	} else {
		numJac := &lm.NumJac{Func: residuals}
		jacFn = func(dst *mat.Dense, x []float64) {
			start := time.Now()
			defer func() { jacMetric.AddDuration(time.Since(start)) }()

			numJac.Jac(dst, x)
		}
	}

	if klog.V(2).Enabled() {
		klog.Infof("fitting %s: %d free parameters, %d residuals", m.Kind(), ps.NumFree(), size)
	}

	prob := lm.LMProblem{
		Dim:        ps.NumFree(),
		Size:       size,
		Func:       residuals,
		Jac:        jacFn,
		InitParams: ps.Flat(),
		Tau:        f.tau,
		Eps1:       f.gradientTol,
		Eps2:       f.stepTol,
	}

	results, err := lm.LM(prob, &lm.Settings{Iterations: f.maxIterations, ObjectiveTol: f.objectiveTol})
	if err != nil {
		return nil, errors.Wrapf(ErrDidNotConverge, "solver: %v", err)
	}

	if err := ps.WriteBack(results.X); err != nil {
		return nil, err
	}

	out, err = m.Eval(in...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to evaluate the fitted model")
	}

	res := &Result{
		Params: m.Parameters(),
		Fitted: ps.Flat(),
		Fixed:  ps.Fixed(),
		RSS:    residualSumSquares(flattenOutputs(out), target, wvals),
	}

	if klog.V(2).Enabled() {
		klog.Infof("fitted %s: rss=%g", m.Kind(), res.RSS)
	}

	return res, nil
}

func fillNaN(dst []float64) {
	for i := range dst {
		dst[i] = math.NaN()
	}
}

func fillDenseNaN(dst *mat.Dense) {
	rows, cols := dst.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			dst.Set(i, j, math.NaN())
		}
	}
}

var _ Fitter = (*NonLinear)(nil)
