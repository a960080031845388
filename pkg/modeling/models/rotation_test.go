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

func TestRotation2DQuarterTurn(t *testing.T) {
	t.Parallel()

	r, err := models.NewRotation2D(90)
	require.NoError(t, err)

	out, err := r.Eval(grid.Vector(1), grid.Vector(0))
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.InDelta(t, 0, out[0].Value(), 1e-12)
	assert.InDelta(t, 1, out[1].Value(), 1e-12)
}

func TestRotation2DRoundTrip(t *testing.T) {
	t.Parallel()

	x, y, err := grid.Indices(3, 4)
	require.NoError(t, err)

	r, err := models.NewRotation2D(30)
	require.NoError(t, err)
	inv, err := modeling.Inverse(r)
	require.NoError(t, err)
	assert.Equal(t, []float64{-30}, inv.Parameters())

	rotated, err := r.Eval(x, y)
	require.NoError(t, err)
	back, err := inv.Eval(rotated[0], rotated[1])
	require.NoError(t, err)

	assert.InDeltaSlice(t, x.Values(), back[0].Values(), 1e-12)
	assert.InDeltaSlice(t, y.Values(), back[1].Values(), 1e-12)
}

func TestRotation2DDerivative(t *testing.T) {
	t.Parallel()

	r, err := models.NewRotation2D(0)
	require.NoError(t, err)

	jac, err := r.Derivative(grid.Vector(1, 2), grid.Vector(3, 4))
	require.NoError(t, err)

	rows, cols := jac.Dims()
	require.Equal(t, 4, rows)
	require.Equal(t, 1, cols)

	toRad := math.Pi / 180
	assert.InDelta(t, -3*toRad, jac.At(0, 0), 1e-15)
	assert.InDelta(t, -4*toRad, jac.At(1, 0), 1e-15)
	assert.InDelta(t, 1*toRad, jac.At(2, 0), 1e-15)
	assert.InDelta(t, 2*toRad, jac.At(3, 0), 1e-15)
}

func TestRotation2DInputCount(t *testing.T) {
	t.Parallel()

	r, err := models.NewRotation2D(45)
	require.NoError(t, err)

	_, err = r.Eval(grid.Vector(1))
	assert.ErrorIs(t, err, modeling.ErrInputCount)
}
