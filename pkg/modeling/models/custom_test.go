package models_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vanoraco/astropy/pkg/modeling"
	"github.com/Vanoraco/astropy/pkg/modeling/grid"
	"github.com/Vanoraco/astropy/pkg/modeling/models"
)

func expKernel(x float64, params []float64) float64 {
	return params[0] * math.Exp(params[1]*x)
}

func TestCustom1DEval(t *testing.T) {
	t.Parallel()

	m, err := models.NewCustom1D("expgrowth", expKernel, []string{"a", "b"}, []float64{2, 0.5})
	require.NoError(t, err)
	assert.Equal(t, "expgrowth", m.Kind())

	out, err := m.Eval(grid.Vector(0, 1))
	require.NoError(t, err)
	assert.InDelta(t, 2, out[0].Values()[0], 1e-12)
	assert.InDelta(t, 2*math.Exp(0.5), out[0].Values()[1], 1e-12)
}

func TestCustom1DNilKernel(t *testing.T) {
	t.Parallel()

	_, err := models.NewCustom1D("broken", nil, []string{"a"}, []float64{1})
	assert.ErrorIs(t, err, models.ErrKernelMustBeSet)
}

func TestCustom1DDerivativeFallback(t *testing.T) {
	t.Parallel()

	m, err := models.NewCustom1D("expgrowth", expKernel, []string{"a", "b"}, []float64{2, 0.5})
	require.NoError(t, err)

	analytic := m.Copy().(*models.Custom1D).WithDerivative(func(x float64, params []float64) []float64 {
		e := math.Exp(params[1] * x)

		return []float64{e, params[0] * x * e}
	})

	xs := grid.Vector(0.3, 0.9, 1.7)
	estimated, err := m.Derivative(xs)
	require.NoError(t, err)
	exact, err := analytic.Derivative(xs)
	require.NoError(t, err)

	rows, cols := exact.Dims()
	require.Equal(t, 3, rows)
	require.Equal(t, 2, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			assert.InDelta(t, exact.At(i, j), estimated.At(i, j), 1e-5)
		}
	}
}

func TestCustom1DBadDerivative(t *testing.T) {
	t.Parallel()

	m, err := models.NewCustom1D("expgrowth", expKernel, []string{"a", "b"}, []float64{2, 0.5})
	require.NoError(t, err)
	m.WithDerivative(func(x float64, params []float64) []float64 {
		return []float64{1}
	})

	_, err = m.Derivative(grid.Vector(1))
	assert.ErrorIs(t, err, modeling.ErrParameterCount)
}

func TestCustom1DCopy(t *testing.T) {
	t.Parallel()

	m, err := models.NewCustom1D("expgrowth", expKernel, []string{"a", "b"}, []float64{2, 0.5})
	require.NoError(t, err)

	clone := m.Copy()
	require.NoError(t, clone.SetParameters([]float64{10, 1}))

	assert.Equal(t, []float64{2, 0.5}, m.Parameters())
	assert.Equal(t, []float64{10, 1}, clone.Parameters())
}
