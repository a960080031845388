package fitting

import (
	"github.com/Vanoraco/astropy/pkg/modeling/grid"
	"github.com/Vanoraco/astropy/pkg/modeling/measure"
)

type NonLinearOption func(f *NonLinear)

func MaxIterations(iterations int) NonLinearOption {
	return func(f *NonLinear) {
		f.maxIterations = iterations
	}
}

func ObjectiveTol(tol float64) NonLinearOption {
	return func(f *NonLinear) {
		f.objectiveTol = tol
	}
}

func GradientTol(tol float64) NonLinearOption {
	return func(f *NonLinear) {
		f.gradientTol = tol
	}
}

func StepTol(tol float64) NonLinearOption {
	return func(f *NonLinear) {
		f.stepTol = tol
	}
}

func Tau(tau float64) NonLinearOption {
	return func(f *NonLinear) {
		f.tau = tau
	}
}

func WithMeasure(m measure.Measure) NonLinearOption {
	return func(f *NonLinear) {
		f.measure = m
	}
}

type FitOption func(c *fitConfig)

type fitConfig struct {
	weights  *grid.Grid
	estimate bool
}

// WithWeights scales each residual by the matching weight.
func WithWeights(weights *grid.Grid) FitOption {
	return func(c *fitConfig) {
		c.weights = weights
	}
}

// EstimateJacobian forces a finite difference Jacobian even when the model
// provides an analytic one.
func EstimateJacobian() FitOption {
	return func(c *fitConfig) {
		c.estimate = true
	}
}
