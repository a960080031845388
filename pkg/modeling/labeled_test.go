package modeling_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vanoraco/astropy/pkg/modeling"
	"github.com/Vanoraco/astropy/pkg/modeling/grid"
)

func TestNewLabeledData(t *testing.T) {
	t.Parallel()

	ld, err := modeling.NewLabeledData(
		[]*grid.Grid{grid.Vector(1, 2), grid.Scalar(3)},
		[]string{"x", "y"},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "y"}, ld.Names())
	assert.Equal(t, 2, ld.Len())

	g, err := ld.Get("x")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, g.Values())
}

func TestNewLabeledDataErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		grids []*grid.Grid
		names []string
		want  error
	}{
		"count mismatch": {grids: []*grid.Grid{grid.Scalar(1)}, names: []string{"x", "y"}, want: modeling.ErrNameCount},
		"duplicate name": {grids: []*grid.Grid{grid.Scalar(1), grid.Scalar(2)}, names: []string{"x", "x"}, want: modeling.ErrDuplicateName},
		"nil grid":       {grids: []*grid.Grid{nil}, names: []string{"x"}, want: modeling.ErrGridMustBeSet},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := modeling.NewLabeledData(tc.grids, tc.names)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLabeledDataMissingVariable(t *testing.T) {
	t.Parallel()

	ld, err := modeling.NewLabeledData([]*grid.Grid{grid.Scalar(1)}, []string{"x"})
	require.NoError(t, err)

	_, err = ld.Get("z")
	assert.ErrorIs(t, err, modeling.ErrMissingVariable)
}

func TestLabeledDataRebind(t *testing.T) {
	t.Parallel()

	ld, err := modeling.NewLabeledData([]*grid.Grid{grid.Scalar(1)}, []string{"x"})
	require.NoError(t, err)

	require.NoError(t, ld.Set("x", grid.Scalar(9)))
	assert.Equal(t, []string{"x"}, ld.Names())

	g, err := ld.Get("x")
	require.NoError(t, err)
	assert.Equal(t, 9.0, g.Value())

	require.NoError(t, ld.Set("y", grid.Scalar(2)))
	assert.Equal(t, []string{"x", "y"}, ld.Names())
}

func TestLabeledDataSetNil(t *testing.T) {
	t.Parallel()

	ld, err := modeling.NewLabeledData([]*grid.Grid{grid.Scalar(1)}, []string{"x"})
	require.NoError(t, err)

	assert.ErrorIs(t, ld.Set("x", nil), modeling.ErrGridMustBeSet)
}

func TestLabeledDataCopy(t *testing.T) {
	t.Parallel()

	ld, err := modeling.NewLabeledData([]*grid.Grid{grid.Scalar(1)}, []string{"x"})
	require.NoError(t, err)

	clone := ld.Copy()
	require.NoError(t, clone.Set("y", grid.Scalar(2)))
	require.NoError(t, clone.Set("x", grid.Scalar(7)))

	assert.Equal(t, []string{"x"}, ld.Names())

	g, err := ld.Get("x")
	require.NoError(t, err)
	assert.Equal(t, 1.0, g.Value())
}
