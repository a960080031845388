package fitting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vanoraco/astropy/pkg/modeling"
	"github.com/Vanoraco/astropy/pkg/modeling/fitting"
	"github.com/Vanoraco/astropy/pkg/modeling/grid"
	"github.com/Vanoraco/astropy/pkg/modeling/models"
)

func polynomialSamples(t *testing.T, coefficients []float64) (*grid.Grid, *grid.Grid) {
	t.Helper()

	truth, err := models.NewPolynomial1D(len(coefficients)-1, coefficients)
	require.NoError(t, err)

	xs := make([]float64, 10)
	for i := range xs {
		xs[i] = -1 + float64(i)*0.4
	}

	x := grid.Vector(xs...)
	out, err := truth.Eval(x)
	require.NoError(t, err)

	return x, out[0]
}

func TestLinearPolynomialExact(t *testing.T) {
	t.Parallel()

	x, y := polynomialSamples(t, []float64{1, -2, 0, 0.5})

	m, err := models.NewPolynomial1D(3, []float64{0, 0, 0, 0})
	require.NoError(t, err)

	f := fitting.NewLinear()
	res, err := f.Fit(m, x, y)
	require.NoError(t, err)

	want := []float64{1, -2, 0, 0.5}
	for i := range want {
		assert.InDelta(t, want[i], res.Params[i], 1e-8)
	}
	assert.InDelta(t, 0, res.RSS, 1e-12)
}

func TestLinearFixedCoefficient(t *testing.T) {
	t.Parallel()

	x, y := polynomialSamples(t, []float64{1, -2, 0, 0.5})

	m, err := models.NewPolynomial1D(3, []float64{1, 0, 0, 0}, modeling.Fixed("c0"))
	require.NoError(t, err)

	f := fitting.NewLinear()
	res, err := f.Fit(m, x, y)
	require.NoError(t, err)

	assert.Equal(t, 1.0, res.Params[0])
	assert.InDelta(t, -2, res.Params[1], 1e-8)
	assert.InDelta(t, 0, res.Params[2], 1e-8)
	assert.InDelta(t, 0.5, res.Params[3], 1e-8)
	assert.Len(t, res.Fitted, 3)
	assert.Equal(t, []bool{true, false, false, false}, res.Fixed)
}

func TestLinearShiftImplicitTerms(t *testing.T) {
	t.Parallel()

	x := grid.Vector(0, 1, 2, 3)
	y := x.Map(func(v float64) float64 { return v + 7 })

	m, err := models.NewShift([]float64{0})
	require.NoError(t, err)

	f := fitting.NewLinear()
	res, err := f.Fit(m, x, y)
	require.NoError(t, err)

	assert.InDelta(t, 7, res.Params[0], 1e-10)
}

func TestLinearWeights(t *testing.T) {
	t.Parallel()

	// Two conflicting measurements at the same point, the zero weight one
	// must not pull the offset.
	x := grid.Vector(1, 1)
	y := grid.Vector(2, 4)

	m, err := models.NewShift([]float64{0})
	require.NoError(t, err)

	f := fitting.NewLinear()
	res, err := f.Fit(m, x, y, fitting.WithWeights(grid.Vector(1, 0)))
	require.NoError(t, err)

	assert.InDelta(t, 1, res.Params[0], 1e-10)
}

func TestLinearTiedNotSupported(t *testing.T) {
	t.Parallel()

	m, err := models.NewPolynomial1D(1, []float64{0, 0}, modeling.Tied("c1", func(params []float64) float64 {
		return params[0] * 2
	}))
	require.NoError(t, err)

	f := fitting.NewLinear()
	_, err = f.Fit(m, grid.Vector(1, 2, 3), grid.Vector(1, 2, 3))
	assert.ErrorIs(t, err, fitting.ErrTiedNotSupported)
}

func TestLinearNotLinear(t *testing.T) {
	t.Parallel()

	m, err := models.NewGaussian1D(1, 0, 1)
	require.NoError(t, err)

	f := fitting.NewLinear()
	_, err = f.Fit(m, grid.Vector(1, 2, 3), grid.Vector(1, 2, 3))
	assert.ErrorIs(t, err, fitting.ErrNotLinear)
}

func TestLinearInsufficientData(t *testing.T) {
	t.Parallel()

	m, err := models.NewPolynomial1D(3, []float64{0, 0, 0, 0})
	require.NoError(t, err)

	f := fitting.NewLinear()
	_, err = f.Fit(m, grid.Vector(1, 2), grid.Vector(1, 2))
	assert.ErrorIs(t, err, fitting.ErrInsufficientData)
}
