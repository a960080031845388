package modeling_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vanoraco/astropy/pkg/modeling"
	"github.com/Vanoraco/astropy/pkg/modeling/grid"
	"github.com/Vanoraco/astropy/pkg/modeling/models"
)

func shiftThenScale(t *testing.T) (*modeling.SerialComposite, modeling.Model, modeling.Model) {
	t.Helper()

	shift, err := models.NewShift([]float64{2})
	require.NoError(t, err)
	scale, err := models.NewScale([]float64{3})
	require.NoError(t, err)

	c, err := modeling.NewSerial([]modeling.Model{shift, scale}, nil, nil)
	require.NoError(t, err)

	return c, shift, scale
}

func TestNewSerialErrors(t *testing.T) {
	t.Parallel()

	shift, err := models.NewShift([]float64{1})
	require.NoError(t, err)

	_, err = modeling.NewSerial(nil, nil, nil)
	assert.ErrorIs(t, err, modeling.ErrNoModels)

	_, err = modeling.NewSerial([]modeling.Model{shift, nil}, nil, nil)
	assert.ErrorIs(t, err, modeling.ErrModelMustBeSet)

	_, err = modeling.NewSerial([]modeling.Model{shift}, nil, [][]string{{"y"}})
	assert.ErrorIs(t, err, modeling.ErrMapPair)

	_, err = modeling.NewSerial([]modeling.Model{shift}, [][]string{{"x"}, {"t"}}, [][]string{{"y"}, {"z"}})
	assert.ErrorIs(t, err, modeling.ErrMapCount)
}

func TestNewSerialChainArity(t *testing.T) {
	t.Parallel()

	surface, err := models.NewPolynomial2D(1, []float64{0, 1, 1})
	require.NoError(t, err)
	rot, err := models.NewRotation2D(45)
	require.NoError(t, err)

	_, err = modeling.NewSerial([]modeling.Model{surface, rot}, nil, nil)
	assert.ErrorIs(t, err, modeling.ErrArityMismatch)
}

func TestSerialPositional(t *testing.T) {
	t.Parallel()

	c, shift, scale := shiftThenScale(t)

	x := grid.Vector(1, 2)
	out, err := c.Eval(x)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, []float64{9, 12}, out[0].Values())

	mid, err := shift.Eval(x)
	require.NoError(t, err)
	manual, err := scale.Eval(mid[0])
	require.NoError(t, err)
	assert.Equal(t, manual[0].Values(), out[0].Values())
}

func TestSerialEvalInputCount(t *testing.T) {
	t.Parallel()

	c, _, _ := shiftThenScale(t)

	_, err := c.Eval(grid.Vector(1), grid.Vector(2))
	assert.ErrorIs(t, err, modeling.ErrInputCount)
}

func TestSerialParameters(t *testing.T) {
	t.Parallel()

	c, shift, scale := shiftThenScale(t)

	assert.Equal(t, []string{"0.offset", "1.factor"}, c.ParamNames())
	assert.Equal(t, []float64{2, 3}, c.Parameters())

	require.NoError(t, c.SetParameters([]float64{5, 10}))
	assert.Equal(t, []float64{5}, shift.Parameters())
	assert.Equal(t, []float64{10}, scale.Parameters())

	err := c.SetParameters([]float64{1})
	assert.ErrorIs(t, err, modeling.ErrParameterCount)
}

func TestSerialConstraintsRebaseTied(t *testing.T) {
	t.Parallel()

	shift, err := models.NewShift([]float64{5})
	require.NoError(t, err)
	scale, err := models.NewScale([]float64{2, 6}, modeling.Tied("factor_1", func(params []float64) float64 {
		return params[0] * 3
	}))
	require.NoError(t, err)

	c, err := modeling.NewSerial([]modeling.Model{shift, scale}, nil, nil)
	require.NoError(t, err)

	cons := c.Constraints()
	require.Equal(t, 3, cons.Len())
	assert.Nil(t, cons.Tied(0))
	assert.Nil(t, cons.Tied(1))

	expr := cons.Tied(2)
	require.NotNil(t, expr)
	assert.Equal(t, 6.0, expr([]float64{5, 2, 6}))
}

func TestSerialLabeledRouting(t *testing.T) {
	t.Parallel()

	shift, err := models.NewShift([]float64{2})
	require.NoError(t, err)
	scale, err := models.NewScale([]float64{3})
	require.NoError(t, err)

	c, err := modeling.NewSerial(
		[]modeling.Model{shift, scale},
		[][]string{{"x"}, {"t"}},
		[][]string{{"t"}, {"y"}},
	)
	require.NoError(t, err)

	ld, err := modeling.NewLabeledData([]*grid.Grid{grid.Vector(1, 2)}, []string{"x"})
	require.NoError(t, err)

	out, err := c.EvalLabeled(ld)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "t", "y"}, out.Names())

	yg, err := out.Get("y")
	require.NoError(t, err)
	assert.Equal(t, []float64{9, 12}, yg.Values())

	tg, err := out.Get("t")
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, tg.Values())
}

func TestSerialLabeledRebindInPlace(t *testing.T) {
	t.Parallel()

	shift, err := models.NewShift([]float64{2})
	require.NoError(t, err)
	scale, err := models.NewScale([]float64{3})
	require.NoError(t, err)

	c, err := modeling.NewSerial(
		[]modeling.Model{shift, scale},
		[][]string{{"x"}, {"x"}},
		[][]string{{"x"}, {"x"}},
	)
	require.NoError(t, err)

	ld, err := modeling.NewLabeledData([]*grid.Grid{grid.Vector(1, 2)}, []string{"x"})
	require.NoError(t, err)

	out, err := c.EvalLabeled(ld)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, out.Names())

	g, err := out.Get("x")
	require.NoError(t, err)
	assert.Equal(t, []float64{9, 12}, g.Values())
}

func TestSerialRotationViaMaps(t *testing.T) {
	t.Parallel()

	rot, err := models.NewRotation2D(90)
	require.NoError(t, err)

	c, err := modeling.NewSerial(
		[]modeling.Model{rot},
		[][]string{{"x", "y"}},
		[][]string{{"xr", "yr"}},
	)
	require.NoError(t, err)

	out, err := c.Eval(grid.Vector(1), grid.Vector(0))
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.InDelta(t, 0, out[0].Value(), 1e-12)
	assert.InDelta(t, 1, out[1].Value(), 1e-12)
}

func TestSerialEvalLabeledNoRouting(t *testing.T) {
	t.Parallel()

	c, _, _ := shiftThenScale(t)

	ld, err := modeling.NewLabeledData([]*grid.Grid{grid.Vector(1)}, []string{"x"})
	require.NoError(t, err)

	_, err = c.EvalLabeled(ld)
	assert.ErrorIs(t, err, modeling.ErrNoRouting)

	_, err = c.EvalLabeled(nil)
	assert.ErrorIs(t, err, modeling.ErrDataMustBeSet)
}

func TestSerialInverse(t *testing.T) {
	t.Parallel()

	c, _, _ := shiftThenScale(t)

	inv, err := modeling.Inverse(c)
	require.NoError(t, err)
	assert.Equal(t, []string{"0.factor", "1.offset"}, inv.ParamNames())

	x := grid.Vector(1, 2, 3)
	out, err := c.Eval(x)
	require.NoError(t, err)
	back, err := inv.Eval(out[0])
	require.NoError(t, err)
	assert.InDeltaSlice(t, x.Values(), back[0].Values(), 1e-12)
}

func TestSerialInverseMaps(t *testing.T) {
	t.Parallel()

	rot, err := models.NewRotation2D(30)
	require.NoError(t, err)

	c, err := modeling.NewSerial(
		[]modeling.Model{rot},
		[][]string{{"x", "y"}},
		[][]string{{"xr", "yr"}},
	)
	require.NoError(t, err)

	inv, err := modeling.Inverse(c)
	require.NoError(t, err)
	assert.Equal(t, []string{"xr", "yr"}, inv.Inputs())
	assert.Equal(t, []string{"x", "y"}, inv.Outputs())
}

func TestSerialInverseNotInvertible(t *testing.T) {
	t.Parallel()

	shift, err := models.NewShift([]float64{1})
	require.NoError(t, err)
	gauss, err := models.NewGaussian1D(1, 0, 1)
	require.NoError(t, err)

	c, err := modeling.NewSerial([]modeling.Model{shift, gauss}, nil, nil)
	require.NoError(t, err)

	_, err = modeling.Inverse(c)
	assert.ErrorIs(t, err, modeling.ErrNotInvertible)
}

func TestSerialCopy(t *testing.T) {
	t.Parallel()

	c, shift, _ := shiftThenScale(t)

	clone := c.Copy()
	require.NoError(t, clone.SetParameters([]float64{100, 200}))

	assert.Equal(t, []float64{2, 3}, c.Parameters())
	assert.Equal(t, []float64{2}, shift.Parameters())
}

func TestSerialPropagatesStageError(t *testing.T) {
	t.Parallel()

	c, err := modeling.NewSerial([]modeling.Model{newBrokenModel(t)}, nil, nil)
	require.NoError(t, err)

	_, err = c.Eval(grid.Vector(1))
	assert.ErrorIs(t, err, assert.AnError)
}
